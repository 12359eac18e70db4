package history

import (
	"fmt"
	"testing"

	"github.com/knobase/kb/internal/storage"
)

func newTestTracker(t *testing.T) (*Tracker, *storage.MemoryStore) {
	t.Helper()

	store := storage.NewMemoryStore()
	tracker, err := NewTracker(store, 0)
	if err != nil {
		t.Fatalf("failed to create tracker: %v", err)
	}
	return tracker, store
}

func TestRecordDeduplicatesToFront(t *testing.T) {
	t.Parallel()

	tracker, _ := newTestTracker(t)
	for _, q := range []string{"alpha", "beta", "alpha"} {
		if err := tracker.Record(q); err != nil {
			t.Fatalf("record failed: %v", err)
		}
	}

	got := tracker.List()
	if len(got) != 2 || got[0] != "alpha" || got[1] != "beta" {
		t.Fatalf("unexpected history: %v", got)
	}
}

func TestRecordDropsOldestBeyondLimit(t *testing.T) {
	t.Parallel()

	tracker, _ := newTestTracker(t)
	for i := 0; i < DefaultLimit+1; i++ {
		if err := tracker.Record(fmt.Sprintf("query-%d", i)); err != nil {
			t.Fatalf("record failed: %v", err)
		}
	}

	got := tracker.List()
	if len(got) != DefaultLimit {
		t.Fatalf("expected %d entries, got %d", DefaultLimit, len(got))
	}
	if got[0] != fmt.Sprintf("query-%d", DefaultLimit) {
		t.Fatalf("newest entry should be first, got %q", got[0])
	}
	for _, entry := range got {
		if entry == "query-0" {
			t.Fatalf("oldest entry should have been dropped")
		}
	}
}

func TestRecordIgnoresShortQueries(t *testing.T) {
	t.Parallel()

	tracker, _ := newTestTracker(t)
	if err := tracker.Record("a"); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if got := tracker.List(); len(got) != 0 {
		t.Fatalf("short query should be ignored, got %v", got)
	}

	// Two runes is enough even when they are multi-byte.
	if err := tracker.Record("笔记"); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if got := tracker.List(); len(got) != 1 {
		t.Fatalf("two-rune query should be recorded, got %v", got)
	}
}

func TestHistoryPersistsAcrossLoads(t *testing.T) {
	t.Parallel()

	tracker, store := newTestTracker(t)
	if err := tracker.Record("golang"); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	reloaded, err := NewTracker(store, 0)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if got := reloaded.List(); len(got) != 1 || got[0] != "golang" {
		t.Fatalf("unexpected reloaded history: %v", got)
	}
}

func TestClearRemovesPersistedHistory(t *testing.T) {
	t.Parallel()

	tracker, store := newTestTracker(t)
	if err := tracker.Record("golang"); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if err := tracker.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	if got := tracker.List(); len(got) != 0 {
		t.Fatalf("expected empty history, got %v", got)
	}
	if _, ok, _ := store.Load(storage.KeySearchHistory); ok {
		t.Fatalf("persisted history should be removed")
	}
}
