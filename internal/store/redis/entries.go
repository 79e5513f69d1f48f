// Package redis implements the record-storage collaborator on Redis.
// Entries are JSON documents under per-user keys plus a set of ids,
// usage counters are sorted sets, settings are a hash.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/lunaria/lunaria/internal/domain"
	"github.com/lunaria/lunaria/internal/store"
)

// Store handles Redis operations for entries, usage counters and
// settings. It satisfies store.Store.
type Store struct {
	client *goredis.Client
}

// NewStore creates a new Redis store.
func NewStore(client *goredis.Client) *Store {
	return &Store{client: client}
}

var _ store.Store = (*Store)(nil)

// List retrieves every entry owned by userID.
func (s *Store) List(ctx context.Context, userID string) ([]*domain.Entry, error) {
	ids, err := s.client.SMembers(ctx, entrySetKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list entry ids: %w", err)
	}

	entries := make([]*domain.Entry, 0, len(ids))
	for _, id := range ids {
		entry, err := s.getEntry(ctx, userID, id)
		if err != nil {
			// A dangling id in the set is not worth failing the
			// whole load over.
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Create assigns an id and creation timestamp, persists the entry and
// returns it.
func (s *Store) Create(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	created := entry.Clone()
	created.ID = uuid.NewString()
	created.CreatedAt = time.Now()
	created.Normalize()

	if err := s.saveEntry(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}

// Update applies a partial patch to one entry.
func (s *Store) Update(ctx context.Context, userID, id string, patch store.EntryPatch) error {
	entry, err := s.getEntry(ctx, userID, id)
	if err != nil {
		return err
	}

	applyPatch(entry, patch)
	entry.Normalize()
	return s.saveEntry(ctx, entry)
}

// Delete removes one entry.
func (s *Store) Delete(ctx context.Context, userID, id string) error {
	if err := s.client.Del(ctx, entryKey(userID, id)).Err(); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	if err := s.client.SRem(ctx, entrySetKey(userID), id).Err(); err != nil {
		return fmt.Errorf("failed to remove entry from set: %w", err)
	}
	return nil
}

// DeleteAll removes every entry owned by userID.
func (s *Store) DeleteAll(ctx context.Context, userID string) error {
	ids, err := s.client.SMembers(ctx, entrySetKey(userID)).Result()
	if err != nil {
		return fmt.Errorf("failed to list entry ids: %w", err)
	}

	pipe := s.client.Pipeline()
	for _, id := range ids {
		pipe.Del(ctx, entryKey(userID, id))
	}
	pipe.Del(ctx, entrySetKey(userID))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete entries: %w", err)
	}
	return nil
}

func (s *Store) getEntry(ctx context.Context, userID, id string) (*domain.Entry, error) {
	data, err := s.client.Get(ctx, entryKey(userID, id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, fmt.Errorf("entry %s: %w", id, store.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}

	var entry domain.Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entry: %w", err)
	}
	return &entry, nil
}

func (s *Store) saveEntry(ctx context.Context, entry *domain.Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}

	if err := s.client.Set(ctx, entryKey(entry.UserID, entry.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}
	if err := s.client.SAdd(ctx, entrySetKey(entry.UserID), entry.ID).Err(); err != nil {
		return fmt.Errorf("failed to add entry to set: %w", err)
	}
	return nil
}

// applyPatch copies the non-nil patch fields onto the entry.
// ClickCount is clamped so it can never move backwards.
func applyPatch(entry *domain.Entry, patch store.EntryPatch) {
	if patch.Name != nil {
		entry.Name = *patch.Name
	}
	if patch.Category != nil {
		entry.Category = *patch.Category
	}
	if patch.URL != nil {
		entry.URL = *patch.URL
	}
	if patch.Description != nil {
		entry.Description = *patch.Description
	}
	if patch.Tags != nil {
		entry.Tags = append([]string(nil), (*patch.Tags)...)
	}
	if patch.Image != nil {
		entry.Image = *patch.Image
	}
	if patch.CardColor != nil {
		entry.CardColor = *patch.CardColor
	}
	if patch.IsFavorite != nil {
		entry.IsFavorite = *patch.IsFavorite
	}
	if patch.ClickCount != nil && *patch.ClickCount > entry.ClickCount {
		entry.ClickCount = *patch.ClickCount
	}
	if patch.LastOpened != nil {
		entry.LastOpened = *patch.LastOpened
	}
	if patch.Status != nil {
		entry.Status = *patch.Status
	}
	if patch.ShareCode != nil {
		entry.ShareCode = *patch.ShareCode
	}
}
