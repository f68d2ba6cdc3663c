package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/indicator/pkg/domain"
	"github.com/aretw0/indicator/pkg/ports"
)

// DocumentSourceContractTest is a reusable test suite that verifies if an
// adapter complies with ports.DocumentSource. setupData maps each stored id
// to the traces it must return.
func DocumentSourceContractTest(t *testing.T, source ports.DocumentSource, setupData map[string]int) {
	t.Helper()
	ctx := context.Background()

	t.Run("Get_Success", func(t *testing.T) {
		for id, traces := range setupData {
			doc, err := source.Get(ctx, id)
			if err != nil {
				t.Fatalf("unexpected error getting document %s: %v", id, err)
			}
			if doc.ID != id {
				t.Errorf("id mismatch: got %q, want %q", doc.ID, id)
			}
			if len(doc.Traces) != traces {
				t.Errorf("trace count mismatch for %s: got %d, want %d", id, len(doc.Traces), traces)
			}
		}
	})

	t.Run("Get_NotFound", func(t *testing.T) {
		_, err := source.Get(ctx, "non-existent-document")
		if !errors.Is(err, domain.ErrTraceNotFound) {
			t.Errorf("expected ErrTraceNotFound, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		ids, err := source.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing documents: %v", err)
		}
		if len(ids) != len(setupData) {
			t.Errorf("expected %d documents, got %d", len(setupData), len(ids))
		}
		for i := 1; i < len(ids); i++ {
			if ids[i-1] > ids[i] {
				t.Errorf("ids not sorted: %v", ids)
				break
			}
		}

		lookup := make(map[string]bool)
		for _, id := range ids {
			lookup[id] = true
		}
		for id := range setupData {
			if !lookup[id] {
				t.Errorf("document %s missing from list", id)
			}
		}
	})
}

// DocumentStoreContractTest verifies the write side of ports.DocumentStore.
// store must start empty.
func DocumentStoreContractTest(t *testing.T, store ports.DocumentStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("Save_MissingID", func(t *testing.T) {
		err := store.Save(ctx, &domain.Document{Traces: []map[string]any{{}}})
		if !errors.Is(err, domain.ErrMissingID) {
			t.Errorf("expected ErrMissingID, got %v", err)
		}
	})

	t.Run("Save_Get_Replace", func(t *testing.T) {
		doc := &domain.Document{
			ID:     "board",
			Layout: map[string]any{"paper_bgcolor": "black"},
			Traces: []map[string]any{{"mode": "gauge", "value": 3.5}},
		}
		if err := store.Save(ctx, doc); err != nil {
			t.Fatalf("unexpected error saving: %v", err)
		}
		got, err := store.Get(ctx, "board")
		if err != nil {
			t.Fatalf("unexpected error getting: %v", err)
		}
		if got.ID != "board" || len(got.Traces) != 1 {
			t.Fatalf("unexpected document: %+v", got)
		}
		if got.Traces[0]["mode"] != "gauge" || got.Traces[0]["value"] != 3.5 {
			t.Errorf("trace not preserved: %v", got.Traces[0])
		}
		if got.Layout["paper_bgcolor"] != "black" {
			t.Errorf("layout not preserved: %v", got.Layout)
		}

		doc.Traces = append(doc.Traces, map[string]any{"mode": "delta"})
		if err := store.Save(ctx, doc); err != nil {
			t.Fatalf("unexpected error replacing: %v", err)
		}
		got, err = store.Get(ctx, "board")
		if err != nil {
			t.Fatalf("unexpected error getting: %v", err)
		}
		if len(got.Traces) != 2 {
			t.Errorf("expected 2 traces after replace, got %d", len(got.Traces))
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := store.Save(ctx, &domain.Document{ID: "gone", Traces: []map[string]any{{}}}); err != nil {
			t.Fatalf("unexpected error saving: %v", err)
		}
		if err := store.Delete(ctx, "gone"); err != nil {
			t.Fatalf("unexpected error deleting: %v", err)
		}
		if _, err := store.Get(ctx, "gone"); !errors.Is(err, domain.ErrTraceNotFound) {
			t.Errorf("expected ErrTraceNotFound after delete, got %v", err)
		}
		if err := store.Delete(ctx, "never-existed"); err != nil {
			t.Errorf("deleting an unknown id failed: %v", err)
		}

		ids, err := store.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing: %v", err)
		}
		if len(ids) != 1 || ids[0] != "board" {
			t.Errorf("expected [board], got %v", ids)
		}
	})
}
