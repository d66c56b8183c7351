// Command goalsreport runs the total-goals regression analysis once and
// prints the RMSE comparison table.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/thant-thiha/Premier-League-23-24/pipeline"
	"github.com/thant-thiha/Premier-League-23-24/pkg/log"
)

func main() {
	log.Setup("info")

	cfg := pipeline.DefaultConfig()

	table, err := pipeline.Run(context.Background(), cfg)
	if err != nil {
		slog.Error("run failed", log.ErrAttr(err))
		os.Exit(1)
	}

	if err := table.Render(os.Stdout); err != nil {
		slog.Error("rendering table failed", log.ErrAttr(err))
		os.Exit(1)
	}

	if cfg.ChartPath != "" {
		if err := table.SaveChart(cfg.ChartPath); err != nil {
			slog.Error("writing chart failed", log.ErrAttr(err))
			os.Exit(1)
		}
		slog.Info("wrote chart", log.PathKey, cfg.ChartPath)
	}
}
