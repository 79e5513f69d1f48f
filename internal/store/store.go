// Package store defines the contract with the external record-storage
// collaborator. The core only ever talks to this interface; the Redis
// implementation lives in store/redis.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/lunaria/lunaria/internal/domain"
)

// ErrNotFound is returned when a looked-up record or setting is absent.
var ErrNotFound = errors.New("not found")

// CounterKind selects which usage counter an increment targets.
type CounterKind string

const (
	CounterPage     CounterKind = "page"
	CounterCategory CounterKind = "category"
)

// UsageCount is one row of a usage ranking.
type UsageCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// EntryPatch carries the fields of a partial update. Nil fields are
// left untouched.
type EntryPatch struct {
	Name        *string
	Category    *domain.Category
	URL         *string
	Description *string
	Tags        *[]string
	Image       *string
	CardColor   *string
	IsFavorite  *bool
	ClickCount  *int64
	LastOpened  *time.Time
	Status      *domain.Status
	ShareCode   *string
}

// Store is the record-storage collaborator. All operations are scoped
// to a single user; implementations own id assignment on Create.
type Store interface {
	// List returns every entry owned by userID.
	List(ctx context.Context, userID string) ([]*domain.Entry, error)

	// Create persists a new entry and returns it with its assigned id
	// and creation timestamp filled in.
	Create(ctx context.Context, entry *domain.Entry) (*domain.Entry, error)

	// Update applies a partial patch to one entry.
	Update(ctx context.Context, userID, id string, patch EntryPatch) error

	// Delete removes one entry.
	Delete(ctx context.Context, userID, id string) error

	// DeleteAll removes every entry owned by userID.
	DeleteAll(ctx context.Context, userID string) error

	// IncrementCounter bumps a usage counter. Fire-and-forget
	// tracking; the core never reads these back synchronously.
	IncrementCounter(ctx context.Context, kind CounterKind, userID, name, extra string) error

	// TopUsage returns the highest usage counters of one kind,
	// descending by count.
	TopUsage(ctx context.Context, kind CounterKind, userID string, limit int) ([]UsageCount, error)

	Settings
}

// Settings is the per-user key/value settings store. Split out so the
// modal coordinator can depend on just this slice of the collaborator.
type Settings interface {
	// GetSetting returns the value for key, or ErrNotFound when absent.
	GetSetting(ctx context.Context, userID, key string) (string, error)

	// UpsertSetting creates or replaces the value for key.
	UpsertSetting(ctx context.Context, userID, key, value string) error
}
