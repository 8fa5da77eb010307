package importer

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/overruled/enforcement-search/internal/core/domain"
)

type storeFake struct {
	resetCalled bool
	batches     [][]domain.EnforcementAction
	failBatch   int
}

func (s *storeFake) Reset(context.Context) error {
	s.resetCalled = true
	return nil
}

func (s *storeFake) InsertBatch(_ context.Context, actions []domain.EnforcementAction) error {
	s.batches = append(s.batches, actions)
	if len(s.batches) == s.failBatch {
		return fmt.Errorf("deadlock detected")
	}
	return nil
}

func TestReadCSVStripsBOMAndKeepsRaggedRows(t *testing.T) {
	src := "\ufeffID,Title,SettlementAmount\n1,First Action,\"$1,000\"\n2,Second Action\n"
	ds, err := ReadCSV(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if ds.Headers[0] != "ID" {
		t.Fatalf("BOM not stripped from header: %q", ds.Headers[0])
	}
	if len(ds.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(ds.Rows))
	}
	if len(ds.Rows[1]) != 2 {
		t.Fatalf("short row must survive, got %v", ds.Rows[1])
	}
}

func TestLoadBatchesAndSkipsBadRows(t *testing.T) {
	store := &storeFake{}
	loader := NewLoader(store, 2, nil)

	ds := &Dataset{
		Headers: []string{"ID", "Title"},
		Rows: [][]string{
			{"1", "First"},
			{"2", "Second"},
			{"not-an-id", "Broken"},
			{"3", "Third"},
		},
	}

	summary, err := loader.Load(context.Background(), ds)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !store.resetCalled {
		t.Fatalf("store must be reset before loading")
	}
	if summary.Loaded != 3 || summary.SkippedRows != 1 {
		t.Fatalf("summary = %+v, want 3 loaded, 1 skipped", summary)
	}
	if len(store.batches) != 2 || len(store.batches[0]) != 2 || len(store.batches[1]) != 1 {
		t.Fatalf("batching wrong: %d batches", len(store.batches))
	}
}

func TestLoadContinuesPastFailedBatch(t *testing.T) {
	store := &storeFake{failBatch: 1}
	loader := NewLoader(store, 1, nil)

	ds := &Dataset{
		Headers: []string{"ID"},
		Rows:    [][]string{{"1"}, {"2"}},
	}

	summary, err := loader.Load(context.Background(), ds)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if summary.FailedBatches != 1 || summary.Loaded != 1 {
		t.Fatalf("summary = %+v, want 1 failed batch and 1 loaded row", summary)
	}
}

func TestLoadRejectsEmptySource(t *testing.T) {
	loader := NewLoader(&storeFake{}, 0, nil)
	if _, err := loader.Load(context.Background(), &Dataset{}); err == nil {
		t.Fatalf("empty dataset must be rejected")
	}
}
