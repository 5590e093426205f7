package vectordb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/tanaybasak/lawai/internal/domain/entities"
)

func openTestIndex(t *testing.T) *SQLiteIndex {
	t.Helper()
	path := filepath.Join(t.TempDir(), "criminal.db")
	idx, err := Open(path, entities.DomainCriminal)
	if err != nil {
		t.Fatalf("opening index: %v", err)
	}
	t.Cleanup(func() { idx.Close() })
	return idx
}

func TestSQLiteIndex_StoreAndSearch(t *testing.T) {
	idx := openTestIndex(t)
	ctx := context.Background()

	passages := []entities.Passage{
		{SectionID: "378", Title: "Theft", Body: "Whoever intends to take dishonestly...", Law: "IPC"},
		{SectionID: "420", Title: "Cheating", Body: "Whoever cheats and thereby dishonestly induces...", Law: "IPC"},
		{SectionID: "499", Title: "Defamation", Body: "Whoever makes or publishes any imputation...", Law: "IPC"},
	}
	embeddings := [][]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0.9, 0.1, 0},
	}
	if err := idx.Store(ctx, passages, embeddings); err != nil {
		t.Fatalf("store failed: %v", err)
	}

	results, err := idx.Search(ctx, []float32{1, 0, 0}, 2)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].SectionID != "378" {
		t.Errorf("expected section 378 first, got %s", results[0].SectionID)
	}
	if results[1].SectionID != "499" {
		t.Errorf("expected section 499 second, got %s", results[1].SectionID)
	}
	if results[0].Domain != entities.DomainCriminal {
		t.Errorf("expected domain stamped on result, got %q", results[0].Domain)
	}
	if results[0].Law != "IPC" {
		t.Errorf("expected law preserved, got %q", results[0].Law)
	}
}

func TestSQLiteIndex_StoreMismatchedLengths(t *testing.T) {
	idx := openTestIndex(t)

	err := idx.Store(context.Background(), []entities.Passage{{SectionID: "1"}}, nil)
	if err == nil {
		t.Error("expected error for passage/embedding count mismatch")
	}
}

func TestSQLiteIndex_CountAndClear(t *testing.T) {
	idx := openTestIndex(t)
	ctx := context.Background()

	passages := []entities.Passage{
		{SectionID: "66", Title: "Computer related offences", Body: "..."},
		{SectionID: "66C", Title: "Identity theft", Body: "..."},
	}
	if err := idx.Store(ctx, passages, [][]float32{{1, 0}, {0, 1}}); err != nil {
		t.Fatalf("store failed: %v", err)
	}

	count, err := idx.Count(ctx)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected count 2, got %d", count)
	}

	if err := idx.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	count, err = idx.Count(ctx)
	if err != nil {
		t.Fatalf("count after clear failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected empty index after clear, got %d", count)
	}
}

func TestSQLiteIndex_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nda_mutual.db")
	ctx := context.Background()

	idx, err := Open(path, entities.DomainNDAMutual)
	if err != nil {
		t.Fatalf("opening index: %v", err)
	}
	passages := []entities.Passage{{SectionID: "C1", Title: "Definitions", Body: "Confidential Information means..."}}
	if err := idx.Store(ctx, passages, [][]float32{{1, 0}}); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	idx.Close()

	reopened, err := Open(path, entities.DomainNDAMutual)
	if err != nil {
		t.Fatalf("reopening index: %v", err)
	}
	defer reopened.Close()

	results, err := reopened.Search(ctx, []float32{1, 0}, 5)
	if err != nil {
		t.Fatalf("search after reopen failed: %v", err)
	}
	if len(results) != 1 || results[0].SectionID != "C1" {
		t.Errorf("expected persisted clause C1, got %+v", results)
	}
}

func TestSQLiteIndex_SearchEmpty(t *testing.T) {
	idx := openTestIndex(t)

	results, err := idx.Search(context.Background(), []float32{1, 0, 0}, 5)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results from empty index, got %d", len(results))
	}
}
