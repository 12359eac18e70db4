// Package history tracks recent search queries as a bounded
// most-recently-used list.
package history

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/knobase/kb/internal/storage"
)

// DefaultLimit bounds the history when the site config does not override it.
const DefaultLimit = 10

// Queries shorter than this are too noisy to remember.
const minQueryLength = 2

type Tracker struct {
	store   storage.Store
	limit   int
	entries []string
}

// NewTracker loads the persisted history. A malformed document starts fresh.
func NewTracker(store storage.Store, limit int) (*Tracker, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	t := &Tracker{store: store, limit: limit}

	raw, ok, err := store.Load(storage.KeySearchHistory)
	if err != nil {
		return nil, fmt.Errorf("loading search history: %w", err)
	}
	if ok {
		if err := json.Unmarshal([]byte(raw), &t.entries); err != nil {
			t.entries = nil
		}
	}

	if len(t.entries) > t.limit {
		t.entries = t.entries[:t.limit]
	}

	return t, nil
}

// Record remembers a query, moving an exact repeat to the front instead of
// duplicating it. Queries shorter than two characters are ignored.
func (t *Tracker) Record(query string) error {
	if utf8.RuneCountInString(query) < minQueryLength {
		return nil
	}

	kept := t.entries[:0]
	for _, entry := range t.entries {
		if entry != query {
			kept = append(kept, entry)
		}
	}

	t.entries = append([]string{query}, kept...)
	if len(t.entries) > t.limit {
		t.entries = t.entries[:t.limit]
	}

	return t.persist()
}

// List returns the history, most recent first.
func (t *Tracker) List() []string {
	entries := make([]string, len(t.entries))
	copy(entries, t.entries)
	return entries
}

// Clear forgets every recorded query.
func (t *Tracker) Clear() error {
	t.entries = nil
	return t.store.Delete(storage.KeySearchHistory)
}

func (t *Tracker) persist() error {
	data, err := json.Marshal(t.entries)
	if err != nil {
		return err
	}
	return t.store.Save(storage.KeySearchHistory, string(data))
}
