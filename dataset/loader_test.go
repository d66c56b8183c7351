package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/thant-thiha/Premier-League-23-24/pkg/errors"
)

const sampleCSV = `Round,Venue,Result,GF,GA,Opponent,xG,xGA,Poss,Sh,SoT,FK,PKatt,Team
Matchweek 1,Home,W,2,1,Chelsea,1.8,0.9,61,14,6,1,0,Arsenal
Matchweek 1,Away,L,1,2,Arsenal,0.9,1.8,39,8,3,0,1,Chelsea
`

func TestRead(t *testing.T) {
	ds, err := Read(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Read() unexpected error: %v", err)
	}

	if ds.Len() != 2 {
		t.Fatalf("Read() rows = %d, want 2", ds.Len())
	}

	row := ds.Row(0)
	if row.Team != "Arsenal" || row.GF != 2 || row.XG != 1.8 || row.PKAtt != 0 {
		t.Errorf("Read() first row parsed wrong: %+v", row)
	}
}

func TestReadExtraColumnsIgnored(t *testing.T) {
	csv := `Date,Round,Venue,Result,GF,GA,Opponent,xG,xGA,Poss,Sh,SoT,Dist,FK,PKatt,Team
2023-08-12,Matchweek 1,Home,W,2,1,Chelsea,1.8,0.9,61,14,6,15.2,1,0,Arsenal
`
	ds, err := Read(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Read() unexpected error: %v", err)
	}
	if ds.Row(0).FK != 1 {
		t.Errorf("Read() FK = %d, want 1", ds.Row(0).FK)
	}
}

func TestFetchAndLoad(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "matches.csv")
	if err := Fetch(context.Background(), srv.URL, path); err != nil {
		t.Fatalf("Fetch() unexpected error: %v", err)
	}

	ds, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if ds.Len() != 2 {
		t.Errorf("Load() rows = %d, want 2", ds.Len())
	}

	// A present file is never refreshed.
	if err := Fetch(context.Background(), srv.URL, path); err != nil {
		t.Fatalf("second Fetch() unexpected error: %v", err)
	}
	if hits != 1 {
		t.Errorf("server hit %d times, want 1 (cached file should be reused)", hits)
	}
}

func TestFetchFailedDownloadLeavesNoCacheFile(t *testing.T) {
	// Declare more bytes than the handler sends so the client sees the
	// connection drop mid-body.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", strconv.Itoa(len(sampleCSV)*10))
		w.Write([]byte(sampleCSV[:60]))
	}))
	defer srv.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "matches.csv")
	if err := Fetch(context.Background(), srv.URL, path); err == nil {
		t.Fatal("Fetch() should fail on a truncated download")
	}

	// A truncated download must not become the cache; otherwise the next
	// run would accept it as a valid table.
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("truncated download left a cache file at %s", path)
	}
	leftovers, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading cache dir: %v", err)
	}
	if len(leftovers) != 0 {
		t.Errorf("failed download left %d files behind: %v", len(leftovers), leftovers)
	}
}

func TestFetchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "matches.csv")
	if err := Fetch(context.Background(), srv.URL, path); err == nil {
		t.Fatal("Fetch() should fail on a non-200 response")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("failed fetch left a cache file at %s", path)
	}
}

func TestReadFailures(t *testing.T) {
	tests := []struct {
		name        string
		csv         string
		wantQuality bool
		wantMissing bool
	}{
		{
			name: "missing required column",
			csv: `Round,Venue,Result,GF,GA,Opponent,xG,xGA,Poss,Sh,SoT,FK,Team
Matchweek 1,Home,W,2,1,Chelsea,1.8,0.9,61,14,6,1,Arsenal
`,
			wantMissing: true,
		},
		{
			name: "empty cell is a missing value",
			csv: `Round,Venue,Result,GF,GA,Opponent,xG,xGA,Poss,Sh,SoT,FK,PKatt,Team
Matchweek 1,Home,W,2,,Chelsea,1.8,0.9,61,14,6,1,0,Arsenal
`,
			wantQuality: true,
		},
		{
			name: "malformed integer",
			csv: `Round,Venue,Result,GF,GA,Opponent,xG,xGA,Poss,Sh,SoT,FK,PKatt,Team
Matchweek 1,Home,W,two,1,Chelsea,1.8,0.9,61,14,6,1,0,Arsenal
`,
			wantQuality: true,
		},
		{
			name: "malformed float",
			csv: `Round,Venue,Result,GF,GA,Opponent,xG,xGA,Poss,Sh,SoT,FK,PKatt,Team
Matchweek 1,Home,W,2,1,Chelsea,high,0.9,61,14,6,1,0,Arsenal
`,
			wantQuality: true,
		},
		{
			name: "no data rows",
			csv:  "Round,Venue,Result,GF,GA,Opponent,xG,xGA,Poss,Sh,SoT,FK,PKatt,Team\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.csv))
			if err == nil {
				t.Fatal("Read() expected an error")
			}
			if tt.wantQuality {
				var dq *errors.DataQualityError
				if !errors.As(err, &dq) {
					t.Errorf("Read() error = %v, want DataQualityError", err)
				}
			}
			if tt.wantMissing && !errors.Is(err, errors.ErrMissingColumn) {
				t.Errorf("Read() error = %v, want ErrMissingColumn", err)
			}
		})
	}
}
