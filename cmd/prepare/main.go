// Command prepare runs the load-and-join pipeline over the raw entity files
// and writes the cleaned dataset CSV the dashboard serves.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"shoplens/internal/config"
	"shoplens/internal/dataprocessing"
	"shoplens/internal/infrastructure"
)

func main() {
	rawDir := flag.String("in", "", "directory holding the raw entity CSV files (defaults to configured raw dir)")
	outPath := flag.String("out", "", "path of the cleaned dataset CSV (defaults to configured clean path)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	if *rawDir == "" {
		*rawDir = cfg.Paths.RawDir
	}
	if *outPath == "" {
		*outPath = cfg.CleanDataPath()
	}

	if err := cfg.EnsureDirectories(); err != nil {
		logger.Error("failed to ensure directories", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pipeline := dataprocessing.NewPipeline(logger)

	dataset, stats, err := pipeline.Run(ctx, dataprocessing.DefaultSources(*rawDir))
	if err != nil {
		logger.Error("pipeline failed", "error", err)
		os.Exit(1)
	}

	if err := dataprocessing.WriteCleanCSV(*outPath, dataset.Records); err != nil {
		logger.Error("failed to write clean dataset", "error", err, "path", *outPath)
		os.Exit(1)
	}

	logger.Info("clean dataset written",
		slog.String("path", *outPath),
		slog.Int("records", len(dataset.Records)),
		slog.Int("orders_read", stats.OrdersRead),
		slog.Int("items_read", stats.ItemsRead),
		slog.Int("dropped_bad_timestamp", stats.DroppedBadTimestamp),
		slog.Int("dropped_bad_number", stats.DroppedBadNumber),
		slog.Int("dropped_duplicates", stats.DroppedDuplicates),
		slog.Int("dropped_invalid_order", stats.DroppedInvalidOrder))
}
