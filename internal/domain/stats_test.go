package domain

import "testing"

func TestComputeStatsEmpty(t *testing.T) {
	got := ComputeStats(nil)
	want := Stats{}
	if got != want {
		t.Errorf("ComputeStats(nil) = %+v, want zero value", got)
	}
}

func TestComputeStats(t *testing.T) {
	entries := []*Entry{
		{Category: CategoryMining, ClickCount: 3},
		{Category: CategoryMining, IsFavorite: true, ClickCount: 7},
		{Category: CategoryStaking, IsFavorite: true},
	}

	got := ComputeStats(entries)

	if got.Total != 3 {
		t.Errorf("Total = %d, want 3", got.Total)
	}
	// mining appears twice but counts once.
	if got.DistinctCategories != 2 {
		t.Errorf("DistinctCategories = %d, want 2", got.DistinctCategories)
	}
	if got.Favorites != 2 {
		t.Errorf("Favorites = %d, want 2", got.Favorites)
	}
	if got.TotalClicks != 10 {
		t.Errorf("TotalClicks = %d, want 10", got.TotalClicks)
	}
}
