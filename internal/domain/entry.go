package domain

import "time"

// Category classifies an entry. The set is fixed; anything unknown
// collapses to CategoryOther.
type Category string

const (
	CategoryFaucet  Category = "faucet"
	CategoryMining  Category = "mining"
	CategoryStaking Category = "staking"
	CategoryDefi    Category = "defi"
	CategoryTrading Category = "trading"
	CategoryShorlin Category = "shorlin"
	CategoryOther   Category = "other"

	// CategoryFavorites is a filter pseudo-category. It is never stored
	// on an entry and never counted as a distinct category.
	CategoryFavorites Category = "favorites"
)

// Categories lists every storable category, in display order.
var Categories = []Category{
	CategoryFaucet,
	CategoryMining,
	CategoryStaking,
	CategoryDefi,
	CategoryTrading,
	CategoryShorlin,
	CategoryOther,
}

// ParseCategory maps raw input to a storable category.
// Unknown or empty values become CategoryOther.
func ParseCategory(s string) Category {
	c := Category(s)
	for _, known := range Categories {
		if c == known {
			return c
		}
	}
	return CategoryOther
}

// DisplayName returns the label shown for a category.
func (c Category) DisplayName() string {
	switch c {
	case CategoryFaucet:
		return "Faucets"
	case CategoryMining:
		return "Mining"
	case CategoryStaking:
		return "Staking"
	case CategoryDefi:
		return "DeFi"
	case CategoryTrading:
		return "Trading"
	case CategoryShorlin:
		return "Shorlin"
	case CategoryFavorites:
		return "Favorites"
	default:
		return "Other"
	}
}

// Status reflects whether an entry's site is still worth opening.
type Status string

const (
	StatusActive    Status = "active"
	StatusAttention Status = "attention"
	StatusInactive  Status = "inactive"
)

// Entry represents one curated record in a user's collection:
// a link to a mining, faucet or staking site plus display metadata.
//
// Identity is assigned by the store at creation and never changes.
type Entry struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the store-assigned unique identifier.
	ID string `json:"id"`

	// UserID is the owning user. An entry is only ever visible
	// to its owner.
	UserID string `json:"user_id"`

	// ─────────────────────────────
	// Content
	// ─────────────────────────────

	// Name is the display name. Never empty.
	Name string `json:"name"`

	// Category is one of the fixed storable categories.
	Category Category `json:"category"`

	// URL is the site to open. Optional.
	URL string `json:"url,omitempty"`

	// Description is free text shown on the card. Optional.
	Description string `json:"description,omitempty"`

	// Tags is an ordered list of search keywords. May be empty.
	Tags []string `json:"tags,omitempty"`

	// Image is a reference to the card image.
	Image string `json:"image,omitempty"`

	// CardColor is a display hint for the card accent.
	CardColor string `json:"card_color,omitempty"`

	// ─────────────────────────────
	// Usage & state
	// ─────────────────────────────

	// IsFavorite marks the entry as a favorite.
	IsFavorite bool `json:"is_favorite"`

	// ClickCount counts successful opens. Never decreases.
	ClickCount int64 `json:"click_count"`

	// LastOpened is set on every open. Zero until first opened.
	LastOpened time.Time `json:"last_opened,omitzero"`

	// Status is the liveness assessment of the linked site.
	Status Status `json:"status"`

	// ShareCode is an opaque token for sharing this single entry.
	// Optional.
	ShareCode string `json:"share_code,omitempty"`

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	// CreatedAt is set once at creation and never mutated.
	CreatedAt time.Time `json:"created_at"`
}

// Normalize fills defaulted fields on a freshly built entry.
// It does not touch identity or CreatedAt.
func (e *Entry) Normalize() {
	if e.Category == "" || e.Category == CategoryFavorites {
		e.Category = CategoryOther
	}
	if e.Status == "" {
		e.Status = StatusActive
	}
	if e.ClickCount < 0 {
		e.ClickCount = 0
	}
}

// Clone returns a deep copy. Callers hand Entry snapshots across
// goroutine boundaries, so shared slices must not leak.
func (e *Entry) Clone() *Entry {
	cp := *e
	if e.Tags != nil {
		cp.Tags = append([]string(nil), e.Tags...)
	}
	return &cp
}
