package redis

import (
	"context"
	"fmt"

	"github.com/lunaria/lunaria/internal/store"
)

// IncrementCounter bumps one usage counter. The extra argument (a URL
// for page counters, a category code for category counters) is kept
// out of the ranking; only the display name is scored.
func (s *Store) IncrementCounter(ctx context.Context, kind store.CounterKind, userID, name, _ string) error {
	key := usageKey(userID, string(kind))
	if err := s.client.ZIncrBy(ctx, key, 1, name).Err(); err != nil {
		return fmt.Errorf("failed to increment %s usage: %w", kind, err)
	}
	return nil
}

// TopUsage returns the highest counters of one kind, descending.
func (s *Store) TopUsage(ctx context.Context, kind store.CounterKind, userID string, limit int) ([]store.UsageCount, error) {
	if limit <= 0 {
		limit = 10
	}
	key := usageKey(userID, string(kind))
	rows, err := s.client.ZRevRangeWithScores(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s usage: %w", kind, err)
	}

	out := make([]store.UsageCount, 0, len(rows))
	for _, row := range rows {
		name, ok := row.Member.(string)
		if !ok {
			continue
		}
		out = append(out, store.UsageCount{Name: name, Count: int64(row.Score)})
	}
	return out, nil
}
