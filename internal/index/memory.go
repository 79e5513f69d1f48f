package index

import (
	"sync"
	"time"

	"github.com/lunaria/lunaria/internal/domain"
)

// EntryIndex is the authoritative in-memory collection for the
// signed-in user. It is refreshed wholesale from the store after every
// settled mutation rather than patched incrementally, which keeps it
// from diverging from the remote state.
type EntryIndex struct {
	mu         sync.RWMutex
	entries    map[string]*domain.Entry // ID -> Entry
	order      []string                 // load order of the last reload
	lastReload time.Time
}

// NewEntryIndex creates an empty index.
func NewEntryIndex() *EntryIndex {
	return &EntryIndex{
		entries: make(map[string]*domain.Entry),
	}
}

// ReplaceAll swaps in a freshly loaded collection.
func (idx *EntryIndex) ReplaceAll(entries []*domain.Entry) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.entries = make(map[string]*domain.Entry, len(entries))
	idx.order = make([]string, 0, len(entries))
	for _, e := range entries {
		if _, dup := idx.entries[e.ID]; !dup {
			idx.order = append(idx.order, e.ID)
		}
		idx.entries[e.ID] = e
	}
	idx.lastReload = time.Now()
}

// Get retrieves one entry by id.
func (idx *EntryIndex) Get(id string) (*domain.Entry, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	e, ok := idx.entries[id]
	return e, ok
}

// All returns the collection in load order.
func (idx *EntryIndex) All() []*domain.Entry {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]*domain.Entry, 0, len(idx.order))
	for _, id := range idx.order {
		if e, ok := idx.entries[id]; ok {
			out = append(out, e)
		}
	}
	return out
}

// Count returns the number of entries.
func (idx *EntryIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.entries)
}

// LastReload returns when the collection was last replaced.
func (idx *EntryIndex) LastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}
