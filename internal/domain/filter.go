package domain

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the ordering of the display list.
type SortKey string

const (
	SortNewest      SortKey = "newest"
	SortOldest      SortKey = "oldest"
	SortName        SortKey = "name"
	SortCategory    SortKey = "category"
	SortFavorites   SortKey = "favorites"
	SortMostClicked SortKey = "mostClicked"
)

// ParseSortKey maps raw input to a sort key. Unknown values fall back
// to SortNewest so an invalid key can never leave the list unsorted.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortNewest, SortOldest, SortName, SortCategory, SortFavorites, SortMostClicked:
		return SortKey(s)
	default:
		return SortNewest
	}
}

// FilterSpec holds the view parameters the UI controls.
// It is ephemeral session state with no persisted identity.
type FilterSpec struct {
	// Search is a free-text term matched against name, description
	// and tags. Matching is case-insensitive substring containment.
	Search string

	// Category restricts the view to one category. The pseudo-value
	// "favorites" selects favorite entries instead; empty means all.
	Category Category

	// SortBy orders the filtered result.
	SortBy SortKey
}

// nameCollator compares names the way a user-facing list expects,
// not by raw byte order.
var nameCollator = collate.New(language.Und, collate.IgnoreCase)

// ComputeView filters and sorts a collection per spec.
//
// It is pure: the input slice and its entries are never mutated, and
// equal inputs always produce the same output. Ties keep the original
// relative order.
func ComputeView(entries []*Entry, spec FilterSpec) []*Entry {
	out := make([]*Entry, 0, len(entries))

	term := strings.ToLower(strings.TrimSpace(spec.Search))
	for _, e := range entries {
		if term != "" && !matchesSearch(e, term) {
			continue
		}
		if !matchesCategory(e, spec.Category) {
			continue
		}
		out = append(out, e)
	}

	sortEntries(out, ParseSortKey(string(spec.SortBy)))
	return out
}

func matchesSearch(e *Entry, term string) bool {
	if strings.Contains(strings.ToLower(e.Name), term) {
		return true
	}
	if e.Description != "" && strings.Contains(strings.ToLower(e.Description), term) {
		return true
	}
	for _, tag := range e.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

func matchesCategory(e *Entry, category Category) bool {
	switch category {
	case "":
		return true
	case CategoryFavorites:
		return e.IsFavorite
	default:
		return e.Category == category
	}
}

func sortEntries(entries []*Entry, key SortKey) {
	switch key {
	case SortOldest:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].CreatedAt.Before(entries[j].CreatedAt)
		})
	case SortName:
		sort.SliceStable(entries, func(i, j int) bool {
			return nameCollator.CompareString(entries[i].Name, entries[j].Name) < 0
		})
	case SortCategory:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Category < entries[j].Category
		})
	case SortFavorites:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].IsFavorite && !entries[j].IsFavorite
		})
	case SortMostClicked:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].ClickCount > entries[j].ClickCount
		})
	default: // SortNewest
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		})
	}
}
