package dataset

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/thant-thiha/Premier-League-23-24/pkg/errors"
	"github.com/thant-thiha/Premier-League-23-24/pkg/log"
)

// Columns the loader requires in the source file header.
var requiredColumns = []string{
	"Round", "Venue", "Result", "GF", "GA", "Opponent",
	"xG", "xGA", "Poss", "Sh", "SoT", "FK", "PKatt", "Team",
}

// Fetch downloads the match table to path when no cached copy exists. The
// file is treated as read-only afterward; a present file is never refreshed.
func Fetch(ctx context.Context, url, path string) error {
	if _, err := os.Stat(path); err == nil {
		slog.Debug("using cached match table", log.PathKey, path)
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "Fetch: building request")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "Fetch: downloading %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Newf("Fetch: downloading %s: unexpected status %s", url, resp.Status)
	}

	// Download into a temp file and rename only on success, so a failed
	// transfer never leaves a truncated file the cache check would accept.
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".download-*")
	if err != nil {
		return errors.Wrap(err, "Fetch: creating cache file")
	}

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrap(err, "Fetch: writing cache file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(err, "Fetch: closing cache file")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(err, "Fetch: committing cache file")
	}

	slog.Info("downloaded match table", log.PathKey, path)
	return nil
}

// Load parses the delimited match table at path. Every required column must
// be present in the header and every cell must parse; an empty or malformed
// cell is a data-quality failure, not a value to impute.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Load: opening %s", path)
	}
	defer f.Close()

	return Read(f)
}

// Read parses the match table from r. Split out from Load so tests can feed
// inline CSV.
func Read(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, errors.Wrap(err, "Read: reading header")
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			return nil, errors.Wrapf(errors.ErrMissingColumn, "Read: header lacks %q", name)
		}
	}

	var rows []Match
	for rowNum := 0; ; rowNum++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewDataQualityError(rowNum, "", "malformed row: "+err.Error())
		}

		row, err := parseRow(record, index, rowNum)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, errors.NewModelError("Read", "no data rows", errors.ErrEmptyData)
	}

	return &Dataset{rows: rows}, nil
}

func parseRow(record []string, index map[string]int, rowNum int) (Match, error) {
	cell := func(name string) (string, error) {
		i := index[name]
		if i >= len(record) {
			return "", errors.NewDataQualityError(rowNum, name, "row shorter than header")
		}
		if record[i] == "" {
			return "", errors.NewDataQualityError(rowNum, name, "missing value")
		}
		return record[i], nil
	}

	var row Match
	var err error

	if row.Round, err = cell("Round"); err != nil {
		return row, err
	}
	if row.Venue, err = cell("Venue"); err != nil {
		return row, err
	}
	if row.Result, err = cell("Result"); err != nil {
		return row, err
	}
	if row.Opponent, err = cell("Opponent"); err != nil {
		return row, err
	}
	if row.Team, err = cell("Team"); err != nil {
		return row, err
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"GF", &row.GF},
		{"GA", &row.GA},
		{"Sh", &row.Sh},
		{"SoT", &row.SoT},
		{"FK", &row.FK},
		{"PKatt", &row.PKAtt},
	}
	for _, col := range ints {
		raw, err := cell(col.name)
		if err != nil {
			return row, err
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return row, errors.NewDataQualityError(rowNum, col.name, "not an integer: "+raw)
		}
		*col.dst = v
	}

	floats := []struct {
		name string
		dst  *float64
	}{
		{"xG", &row.XG},
		{"xGA", &row.XGA},
		{"Poss", &row.Poss},
	}
	for _, col := range floats {
		raw, err := cell(col.name)
		if err != nil {
			return row, err
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return row, errors.NewDataQualityError(rowNum, col.name, "not a number: "+raw)
		}
		*col.dst = v
	}

	return row, nil
}
