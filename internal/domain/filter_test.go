package domain

import (
	"testing"
	"time"
)

func testEntries() []*Entry {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return []*Entry{
		{ID: "a", Name: "Faucet A", Category: CategoryFaucet, ClickCount: 5, CreatedAt: t0},
		{ID: "b", Name: "Faucet B", Category: CategoryFaucet, ClickCount: 1, CreatedAt: t0.Add(time.Hour)},
		{ID: "c", Name: "Mining Pool", Category: CategoryMining, Description: "best faucet site", IsFavorite: true, CreatedAt: t0.Add(2 * time.Hour)},
		{ID: "d", Name: "Staker", Category: CategoryStaking, Tags: []string{"passive", "ETH"}, CreatedAt: t0.Add(3 * time.Hour)},
	}
}

func ids(entries []*Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestComputeViewEmptyFilterIsPermutation(t *testing.T) {
	entries := testEntries()

	for _, key := range []SortKey{SortNewest, SortOldest, SortName, SortCategory, SortFavorites, SortMostClicked} {
		view := ComputeView(entries, FilterSpec{SortBy: key})
		if len(view) != len(entries) {
			t.Fatalf("sort %q: got %d entries, want %d", key, len(view), len(entries))
		}
		seen := make(map[string]int)
		for _, e := range view {
			seen[e.ID]++
		}
		for _, e := range entries {
			if seen[e.ID] != 1 {
				t.Errorf("sort %q: entry %q appears %d times, want 1", key, e.ID, seen[e.ID])
			}
		}
	}
}

func TestComputeViewSearch(t *testing.T) {
	entries := testEntries()

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{
			name:   "name match",
			search: "faucet a",
			want:   []string{"a"},
		},
		{
			name:   "description match retains entry",
			search: "faucet",
			want:   []string{"c", "b", "a"}, // newest first
		},
		{
			name:   "tag match is case-insensitive",
			search: "eth",
			want:   []string{"d"},
		},
		{
			name:   "whitespace-only search matches everything",
			search: "   ",
			want:   []string{"d", "c", "b", "a"},
		},
		{
			name:   "no match",
			search: "doge",
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := ComputeView(entries, FilterSpec{Search: tt.search, SortBy: SortNewest})
			got := ids(view)
			if len(got) != len(tt.want) {
				t.Fatalf("ComputeView() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ComputeView()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestComputeViewFavoritesCategory(t *testing.T) {
	entries := testEntries()

	// The favorites pseudo-category must select exactly the favorite
	// entries, whatever the sort key.
	for _, key := range []SortKey{SortNewest, SortName, SortMostClicked} {
		view := ComputeView(entries, FilterSpec{Category: CategoryFavorites, SortBy: key})
		if len(view) != 1 || view[0].ID != "c" {
			t.Errorf("sort %q: favorites view = %v, want [c]", key, ids(view))
		}
	}
}

func TestComputeViewConcreteCategory(t *testing.T) {
	view := ComputeView(testEntries(), FilterSpec{Category: CategoryFaucet, SortBy: SortOldest})
	got := ids(view)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("faucet view = %v, want [a b]", got)
	}
}

func TestComputeViewMostClicked(t *testing.T) {
	view := ComputeView(testEntries(), FilterSpec{SortBy: SortMostClicked})

	for i := 1; i < len(view); i++ {
		if view[i-1].ClickCount < view[i].ClickCount {
			t.Errorf("click counts not non-increasing at %d: %d < %d",
				i, view[i-1].ClickCount, view[i].ClickCount)
		}
	}
	// Zero-click entries keep their original relative order.
	if view[0].ID != "a" || view[1].ID != "b" {
		t.Errorf("mostClicked view = %v, want a then b first", ids(view))
	}
}

func TestComputeViewNewestOldest(t *testing.T) {
	entries := testEntries()

	newest := ComputeView(entries, FilterSpec{Category: CategoryFaucet, SortBy: SortNewest})
	if got := ids(newest); got[0] != "b" || got[1] != "a" {
		t.Errorf("newest = %v, want [b a]", got)
	}

	oldest := ComputeView(entries, FilterSpec{Category: CategoryFaucet, SortBy: SortOldest})
	if got := ids(oldest); got[0] != "a" || got[1] != "b" {
		t.Errorf("oldest = %v, want [a b]", got)
	}
}

func TestComputeViewUnknownSortFallsBackToNewest(t *testing.T) {
	entries := testEntries()

	got := ids(ComputeView(entries, FilterSpec{SortBy: "bogus"}))
	want := ids(ComputeView(entries, FilterSpec{SortBy: SortNewest}))
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unknown sort key: got %v, want newest order %v", got, want)
		}
	}
}

func TestComputeViewDoesNotMutateInput(t *testing.T) {
	entries := testEntries()
	before := ids(entries)

	ComputeView(entries, FilterSpec{SortBy: SortName})

	after := ids(entries)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("input order changed: %v -> %v", before, after)
		}
	}
}

func TestComputeViewEmptyInput(t *testing.T) {
	view := ComputeView(nil, FilterSpec{Search: "x", Category: CategoryMining, SortBy: SortName})
	if len(view) != 0 {
		t.Errorf("ComputeView(nil) = %v, want empty", ids(view))
	}
}

func TestParseSortKey(t *testing.T) {
	if got := ParseSortKey("mostClicked"); got != SortMostClicked {
		t.Errorf("ParseSortKey(mostClicked) = %q", got)
	}
	if got := ParseSortKey("definitely-not-a-key"); got != SortNewest {
		t.Errorf("ParseSortKey(unknown) = %q, want newest", got)
	}
	if got := ParseSortKey(""); got != SortNewest {
		t.Errorf("ParseSortKey(empty) = %q, want newest", got)
	}
}
