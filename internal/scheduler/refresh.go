package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/lunaria/lunaria/internal/logger"
)

// Reloader is the slice of the session the refresher drives.
type Reloader interface {
	Reload(ctx context.Context) error
}

// CollectionRefresher periodically re-pulls the collection from the
// store so a session that sits idle still converges with remote
// changes, and exposes a manual trigger for the /reload endpoint.
type CollectionRefresher struct {
	target        Reloader
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewCollectionRefresher creates a refresher around the given target.
func NewCollectionRefresher(
	target Reloader,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *CollectionRefresher {
	return &CollectionRefresher{
		target:        target,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start performs one immediate refresh, then refreshes on every tick
// or manual trigger until Stop or ctx cancellation.
func (cr *CollectionRefresher) Start(ctx context.Context) error {
	if err := cr.target.Reload(ctx); err != nil {
		return fmt.Errorf("initial refresh failed: %w", err)
	}

	ticker := time.NewTicker(cr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := cr.target.Reload(ctx); err != nil {
					cr.logger.Error("periodic refresh failed",
						logger.Error(err))
				}
			case <-cr.manualTrigger:
				cr.logger.Info("manual refresh triggered")
				if err := cr.target.Reload(ctx); err != nil {
					cr.logger.Error("manual refresh failed",
						logger.Error(err))
				}
			case <-cr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the refresher.
func (cr *CollectionRefresher) Stop() {
	close(cr.stopCh)
}
