package importer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/overruled/enforcement-search/internal/core/domain"
	"github.com/overruled/enforcement-search/internal/core/ports"
)

const defaultBatchSize = 1000

// Summary reports one full-reload import run.
type Summary struct {
	Total         int
	Loaded        int
	SkippedRows   int
	FailedBatches int
}

// Loader performs a truncate-and-reload import of a parsed export. Rows
// that cannot be built are skipped; a batch whose insert fails is dropped
// and the run continues, matching a bulk load where one poisoned batch
// must not abort the reload.
type Loader struct {
	store     ports.ActionStore
	batchSize int
	logger    *slog.Logger
}

func NewLoader(store ports.ActionStore, batchSize int, logger *slog.Logger) *Loader {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{store: store, batchSize: batchSize, logger: logger}
}

func (l *Loader) Load(ctx context.Context, ds *Dataset) (Summary, error) {
	if ds == nil || len(ds.Headers) == 0 {
		return Summary{}, fmt.Errorf("import source has no header row")
	}

	if err := l.store.Reset(ctx); err != nil {
		return Summary{}, fmt.Errorf("reset action store: %w", err)
	}

	summary := Summary{Total: len(ds.Rows)}
	batch := make([]domain.EnforcementAction, 0, l.batchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := l.store.InsertBatch(ctx, batch); err != nil {
			summary.FailedBatches++
			l.logger.Error("batch_insert_failed",
				"size", len(batch),
				"first_id", batch[0].ID,
				"error", err,
			)
		} else {
			summary.Loaded += len(batch)
		}
		batch = batch[:0]
	}

	for i, row := range ds.Rows {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		action, invalid, err := buildAction(ds.Headers, row)
		if err != nil {
			summary.SkippedRows++
			l.logger.Warn("row_skipped", "row", i+2, "error", err)
			continue
		}
		if len(invalid) > 0 {
			l.logger.Warn("row_values_nulled", "row", i+2, "id", action.ID, "columns", invalid)
		}

		batch = append(batch, action)
		if len(batch) >= l.batchSize {
			flush()
		}
	}
	flush()

	l.logger.Info("import_complete",
		"total", summary.Total,
		"loaded", summary.Loaded,
		"skipped_rows", summary.SkippedRows,
		"failed_batches", summary.FailedBatches,
	)
	return summary, nil
}
