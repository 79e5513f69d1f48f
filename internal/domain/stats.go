package domain

// Stats summarizes a collection for the dashboard header.
type Stats struct {
	Total              int   `json:"total"`
	DistinctCategories int   `json:"distinct_categories"`
	Favorites          int   `json:"favorites"`
	TotalClicks        int64 `json:"total_clicks"`
}

// ComputeStats aggregates summary metrics over a collection in one pass.
// An empty collection yields the zero value.
func ComputeStats(entries []*Entry) Stats {
	var s Stats
	seen := make(map[Category]struct{}, len(Categories))

	for _, e := range entries {
		s.Total++
		if _, ok := seen[e.Category]; !ok {
			seen[e.Category] = struct{}{}
			s.DistinctCategories++
		}
		if e.IsFavorite {
			s.Favorites++
		}
		if e.ClickCount > 0 {
			s.TotalClicks += e.ClickCount
		}
	}
	return s
}
