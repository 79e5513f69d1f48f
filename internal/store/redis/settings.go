package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/lunaria/lunaria/internal/store"
)

// GetSetting returns the value for key, or store.ErrNotFound when the
// user has never written it.
func (s *Store) GetSetting(ctx context.Context, userID, key string) (string, error) {
	value, err := s.client.HGet(ctx, settingsKey(userID), key).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", fmt.Errorf("setting %s: %w", key, store.ErrNotFound)
		}
		return "", fmt.Errorf("failed to get setting: %w", err)
	}
	return value, nil
}

// UpsertSetting creates or replaces the value for key.
func (s *Store) UpsertSetting(ctx context.Context, userID, key, value string) error {
	if err := s.client.HSet(ctx, settingsKey(userID), key, value).Err(); err != nil {
		return fmt.Errorf("failed to save setting: %w", err)
	}
	return nil
}
