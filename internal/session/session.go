// Package session is the UI-facing core of the service. It owns the
// in-memory collection, the current filter parameters, the
// notification queue and the modal coordinator, and forwards every
// mutation to the record-storage collaborator followed by a full
// reload.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lunaria/lunaria/internal/domain"
	"github.com/lunaria/lunaria/internal/index"
	"github.com/lunaria/lunaria/internal/logger"
	"github.com/lunaria/lunaria/internal/modal"
	"github.com/lunaria/lunaria/internal/notify"
	"github.com/lunaria/lunaria/internal/store"
)

// Session drives one signed-in user's collection.
//
// Engine computations (View, Stats) run synchronously on the calling
// goroutine. Mutations hit the store on the calling goroutine too,
// except the usage-counter increments which are fire-and-forget; there
// is no transactional grouping between them.
type Session struct {
	store  store.Store
	index  *index.EntryIndex
	queue  *notify.Queue
	coord  *modal.Coordinator
	logger logger.Logger
	userID string

	mu     sync.RWMutex // guards filter
	filter domain.FilterSpec
}

// New creates a session for userID. The caller is expected to Reload
// once at startup.
func New(st store.Store, queue *notify.Queue, log logger.Logger, userID string) *Session {
	return &Session{
		store:  st,
		index:  index.NewEntryIndex(),
		queue:  queue,
		coord:  modal.New(st, queue, userID),
		logger: log,
		userID: userID,
		filter: domain.FilterSpec{SortBy: domain.SortNewest},
	}
}

// ─────────────────────────────────────────────────────────────────
// Read-only snapshots
// ─────────────────────────────────────────────────────────────────

// View returns the display list for the current filter parameters.
func (s *Session) View() []*domain.Entry {
	return domain.ComputeView(s.index.All(), s.Filter())
}

// Stats returns the summary metrics over the whole collection,
// independent of the current filter.
func (s *Session) Stats() domain.Stats {
	return domain.ComputeStats(s.index.All())
}

// Entry returns one entry from the current collection.
func (s *Session) Entry(id string) (*domain.Entry, bool) {
	return s.index.Get(id)
}

// Notifications returns the live notifications, oldest first.
func (s *Session) Notifications() []notify.Notification {
	return s.queue.Snapshot()
}

// Notify pushes a user-facing message.
func (s *Session) Notify(message string, severity notify.Severity) int64 {
	return s.queue.Push(message, severity)
}

// Dismiss removes a notification early.
func (s *Session) Dismiss(id int64) {
	s.queue.Dismiss(id)
}

// Modal returns the coordinator for the modal surfaces.
func (s *Session) Modal() *modal.Coordinator {
	return s.coord
}

// LastReload returns when the collection was last refreshed.
func (s *Session) LastReload() time.Time {
	return s.index.LastReload()
}

// Count returns the size of the collection.
func (s *Session) Count() int {
	return s.index.Count()
}

// Filter returns the current filter parameters.
func (s *Session) Filter() domain.FilterSpec {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// SetFilter replaces the filter parameters.
func (s *Session) SetFilter(spec domain.FilterSpec) {
	s.mu.Lock()
	defer s.mu.Unlock()
	spec.SortBy = domain.ParseSortKey(string(spec.SortBy))
	s.filter = spec
}

// ─────────────────────────────────────────────────────────────────
// Collection lifecycle
// ─────────────────────────────────────────────────────────────────

// Reload refreshes the collection wholesale from the store. On
// failure the last-known collection stays in place and the error is
// surfaced through the notification queue.
func (s *Session) Reload(ctx context.Context) error {
	entries, err := s.store.List(ctx, s.userID)
	if err != nil {
		s.logger.Error("failed to reload entries", logger.Error(err))
		s.queue.Push("Could not load your entries", notify.SeverityError)
		return fmt.Errorf("reload entries: %w", err)
	}
	s.index.ReplaceAll(entries)
	s.logger.Debug("collection reloaded", logger.Int("count", len(entries)))
	return nil
}

// Create persists a new entry and reloads. The entry keeps whatever
// the caller filled in; the store assigns id and creation time.
func (s *Session) Create(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	entry.UserID = s.userID
	created, err := s.store.Create(ctx, entry)
	if err != nil {
		s.logger.Error("failed to create entry", logger.Error(err))
		s.queue.Push("Could not save the entry", notify.SeverityError)
		return nil, fmt.Errorf("create entry: %w", err)
	}

	s.queue.Push("Entry added", notify.SeveritySuccess)
	_ = s.Reload(ctx)
	return created, nil
}

// Update applies a partial patch and reloads.
func (s *Session) Update(ctx context.Context, id string, patch store.EntryPatch) error {
	if err := s.store.Update(ctx, s.userID, id, patch); err != nil {
		s.logger.Error("failed to update entry",
			logger.String("id", id), logger.Error(err))
		s.queue.Push("Could not update the entry", notify.SeverityError)
		return fmt.Errorf("update entry: %w", err)
	}

	s.queue.Push("Entry updated", notify.SeveritySuccess)
	_ = s.Reload(ctx)
	return nil
}

// Delete removes one entry and reloads.
func (s *Session) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, s.userID, id); err != nil {
		s.logger.Error("failed to delete entry",
			logger.String("id", id), logger.Error(err))
		s.queue.Push("Could not delete the entry", notify.SeverityError)
		return fmt.Errorf("delete entry: %w", err)
	}

	s.queue.Push("Entry deleted", notify.SeveritySuccess)
	_ = s.Reload(ctx)
	return nil
}

// DeleteAll wipes the user's whole collection and reloads.
func (s *Session) DeleteAll(ctx context.Context) error {
	if err := s.store.DeleteAll(ctx, s.userID); err != nil {
		s.logger.Error("failed to delete all entries", logger.Error(err))
		s.queue.Push("Could not delete your entries", notify.SeverityError)
		return fmt.Errorf("delete all entries: %w", err)
	}

	s.queue.Push("All entries deleted", notify.SeveritySuccess)
	_ = s.Reload(ctx)
	return nil
}

// ToggleFavorite flips an entry's favorite flag and reloads.
func (s *Session) ToggleFavorite(ctx context.Context, id string) error {
	entry, ok := s.index.Get(id)
	if !ok {
		return fmt.Errorf("entry %s: %w", id, store.ErrNotFound)
	}

	fav := !entry.IsFavorite
	if err := s.store.Update(ctx, s.userID, id, store.EntryPatch{IsFavorite: &fav}); err != nil {
		s.logger.Error("failed to toggle favorite",
			logger.String("id", id), logger.Error(err))
		s.queue.Push("Could not update the entry", notify.SeverityError)
		return fmt.Errorf("toggle favorite: %w", err)
	}

	_ = s.Reload(ctx)
	return nil
}

// OpenEntry records an open of the entry's site: click count and
// last-opened stamp go through the store, the page and category usage
// counters are bumped as independent fire-and-forget requests, then
// the collection is reloaded. Entries without a URL are a no-op.
func (s *Session) OpenEntry(ctx context.Context, id string) (*domain.Entry, error) {
	entry, ok := s.index.Get(id)
	if !ok {
		return nil, fmt.Errorf("entry %s: %w", id, store.ErrNotFound)
	}
	if entry.URL == "" {
		return entry, nil
	}

	clicks := entry.ClickCount + 1
	now := time.Now()
	patch := store.EntryPatch{ClickCount: &clicks, LastOpened: &now}
	if err := s.store.Update(ctx, s.userID, id, patch); err != nil {
		s.logger.Error("failed to record open",
			logger.String("id", id), logger.Error(err))
		s.queue.Push("Could not record the click", notify.SeverityError)
		return nil, fmt.Errorf("record open: %w", err)
	}

	// Usage tracking is best effort and independent of the click
	// update: either increment may fail or land in any order without
	// rolling back the other.
	bgCtx := context.WithoutCancel(ctx)
	go func() {
		if err := s.store.IncrementCounter(bgCtx, store.CounterPage, s.userID, entry.Name, entry.URL); err != nil {
			s.logger.Warn("page usage increment failed", logger.Error(err))
		}
	}()
	go func() {
		if err := s.store.IncrementCounter(bgCtx, store.CounterCategory, s.userID, entry.Category.DisplayName(), string(entry.Category)); err != nil {
			s.logger.Warn("category usage increment failed", logger.Error(err))
		}
	}()

	_ = s.Reload(ctx)
	return entry, nil
}

// TopPageUsage returns the most-opened pages, descending.
func (s *Session) TopPageUsage(ctx context.Context, limit int) ([]store.UsageCount, error) {
	return s.store.TopUsage(ctx, store.CounterPage, s.userID, limit)
}

// TopCategoryUsage returns the most-used categories, descending.
func (s *Session) TopCategoryUsage(ctx context.Context, limit int) ([]store.UsageCount, error) {
	return s.store.TopUsage(ctx, store.CounterCategory, s.userID, limit)
}
