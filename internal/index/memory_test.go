package index

import (
	"sync"
	"testing"

	"github.com/lunaria/lunaria/internal/domain"
)

func TestNewEntryIndex(t *testing.T) {
	idx := NewEntryIndex()
	if idx == nil {
		t.Fatal("NewEntryIndex() returned nil")
	}
	if got := idx.All(); len(got) != 0 {
		t.Errorf("new index should be empty, got %d entries", len(got))
	}
	if !idx.LastReload().IsZero() {
		t.Error("new index should have a zero last-reload time")
	}
}

func TestReplaceAllOverwrites(t *testing.T) {
	idx := NewEntryIndex()

	idx.ReplaceAll([]*domain.Entry{
		{ID: "a", Name: "Faucet A"},
	})
	idx.ReplaceAll([]*domain.Entry{
		{ID: "b", Name: "Faucet B"},
		{ID: "c", Name: "Mining Pool"},
	})

	all := idx.All()
	if len(all) != 2 {
		t.Fatalf("ReplaceAll() kept %d entries, want 2", len(all))
	}
	if _, ok := idx.Get("a"); ok {
		t.Error("entry a should have been replaced away")
	}
	if idx.LastReload().IsZero() {
		t.Error("last-reload time should be set after ReplaceAll")
	}
}

func TestAllPreservesLoadOrder(t *testing.T) {
	idx := NewEntryIndex()
	idx.ReplaceAll([]*domain.Entry{
		{ID: "c"}, {ID: "a"}, {ID: "b"},
	})

	got := idx.All()
	want := []string{"c", "a", "b"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("All()[%d].ID = %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestGet(t *testing.T) {
	idx := NewEntryIndex()
	idx.ReplaceAll([]*domain.Entry{{ID: "a", Name: "Faucet A"}})

	e, ok := idx.Get("a")
	if !ok || e.Name != "Faucet A" {
		t.Errorf("Get(a) = %+v, %v", e, ok)
	}
	if _, ok := idx.Get("missing"); ok {
		t.Error("Get(missing) should report not found")
	}
}

func TestConcurrentAccess(t *testing.T) {
	idx := NewEntryIndex()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			idx.ReplaceAll([]*domain.Entry{{ID: "a"}, {ID: "b"}})
		}()
		go func() {
			defer wg.Done()
			_ = idx.All()
			_ = idx.Count()
		}()
	}
	wg.Wait()

	if idx.Count() != 2 {
		t.Errorf("Count() = %d, want 2", idx.Count())
	}
}
