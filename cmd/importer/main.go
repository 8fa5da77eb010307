package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/overruled/enforcement-search/internal/config"
	"github.com/overruled/enforcement-search/internal/infrastructure/importer"
	"github.com/overruled/enforcement-search/internal/infrastructure/repository/postgres"
	"github.com/overruled/enforcement-search/internal/observability/logging"
)

func main() {
	cfg := config.Load()

	source := flag.String("source", "SRCExport.csv", "path to the CSV or XLSX export to load")
	table := flag.String("table", cfg.ImportTable, "destination table name")
	batch := flag.Int("batch", cfg.ImportBatch, "rows per insert batch")
	flag.Parse()

	logger := logging.NewTextLogger(os.Stderr, "enforcement-search-importer", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *source, *table, *batch, logger); err != nil {
		logger.Error("import_failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, source, table string, batch int, logger *slog.Logger) error {
	ds, err := importer.ReadFile(source)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	logger.Info("source_parsed", "file", source, "columns", len(ds.Headers), "rows", len(ds.Rows))

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return fmt.Errorf("open postgres: %w", err)
	}
	defer func() {
		_ = db.Close()
	}()

	repo := postgres.NewActionRepository(db, table)
	loader := importer.NewLoader(repo, batch, logger)

	summary, err := loader.Load(ctx, ds)
	if err != nil {
		return fmt.Errorf("load rows: %w", err)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("verify row count: %w", err)
	}
	logger.Info("import_verified",
		"loaded", summary.Loaded,
		"skipped_rows", summary.SkippedRows,
		"failed_batches", summary.FailedBatches,
		"table_rows", count,
	)
	return nil
}
