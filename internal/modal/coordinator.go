// Package modal arbitrates which of the overlapping UI surfaces is
// visible. At most one surface is ever active; opening any surface
// closes whatever was open, there is no stacking.
package modal

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/lunaria/lunaria/internal/domain"
	"github.com/lunaria/lunaria/internal/notify"
	"github.com/lunaria/lunaria/internal/store"
)

// Surface identifies one modal surface.
type Surface string

const (
	SurfaceNone         Surface = "none"
	SurfaceAddEdit      Surface = "add-edit"
	SurfaceConfirm      Surface = "confirm"
	SurfaceShare        Surface = "share"
	SurfaceExportImport Surface = "export-import"
	SurfaceAddByURL     Surface = "add-by-url"
	SurfaceMainMenu     Surface = "main-menu"
)

// shareCodeKey is the settings key holding the per-user collection
// share code.
const shareCodeKey = "collectionShareCode"

// ConfirmRequest is a guarded action pending user confirmation.
// Action runs at most once.
type ConfirmRequest struct {
	Message     string
	ConfirmText string
	Action      func(ctx context.Context) error
}

// ShareTarget is what the share surface presents: either one entry or
// the user's whole collection.
type ShareTarget struct {
	Entry      *domain.Entry `json:"entry,omitempty"`
	Collection bool          `json:"collection"`
	ShareCode  string        `json:"share_code"`
}

// State is a read-only snapshot of the coordinator. The confirm
// callback is intentionally not exposed.
type State struct {
	Surface     Surface       `json:"surface"`
	Editing     *domain.Entry `json:"editing,omitempty"`
	Message     string        `json:"message,omitempty"`
	ConfirmText string        `json:"confirm_text,omitempty"`
	Share       *ShareTarget  `json:"share,omitempty"`
}

// Coordinator is the modal state machine. Safe for concurrent use.
type Coordinator struct {
	settings store.Settings
	notifier *notify.Queue
	userID   string

	// newCode generates a fresh collection share code.
	// Replaceable in tests.
	newCode func() string

	mu      sync.Mutex
	surface Surface
	editing *domain.Entry
	confirm *ConfirmRequest
	share   *ShareTarget
}

// New creates a coordinator in the closed state.
func New(settings store.Settings, notifier *notify.Queue, userID string) *Coordinator {
	return &Coordinator{
		settings: settings,
		notifier: notifier,
		userID:   userID,
		newCode:  newShareCode,
		surface:  SurfaceNone,
	}
}

// newShareCode returns a 10-digit numeric code.
func newShareCode() string {
	return fmt.Sprintf("%d", 1_000_000_000+rand.Int63n(9_000_000_000))
}

// openLocked switches to a surface, dropping every other payload.
func (c *Coordinator) openLocked(s Surface) {
	c.surface = s
	c.editing = nil
	c.confirm = nil
	c.share = nil
}

// OpenAddEdit opens the add/edit form. A nil entry means "create new";
// otherwise the snapshot is carried as-is for editing. Persisting the
// result is the caller's job, not the coordinator's.
func (c *Coordinator) OpenAddEdit(entry *domain.Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.openLocked(SurfaceAddEdit)
	c.editing = entry
}

// OpenConfirm opens the confirmation dialog for a guarded action.
func (c *Coordinator) OpenConfirm(req ConfirmRequest) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.openLocked(SurfaceConfirm)
	c.confirm = &req
}

// OpenShareEntry opens the share dialog for one entry.
func (c *Coordinator) OpenShareEntry(entry *domain.Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.openLocked(SurfaceShare)
	c.share = &ShareTarget{Entry: entry, ShareCode: entry.ShareCode}
}

// OpenShareCollection opens the share dialog for the whole collection.
//
// The collection share code is provisioned lazily, once per user: read
// from the settings store, generated and persisted on first use. When
// the code cannot be retrieved or created the share surface is NOT
// opened; the failure is routed to the notification queue and the
// previous state stays as it was.
func (c *Coordinator) OpenShareCollection(ctx context.Context) error {
	code, err := c.settings.GetSetting(ctx, c.userID, shareCodeKey)
	switch {
	case err == nil:
	case errors.Is(err, store.ErrNotFound):
		code = c.newCode()
		if err := c.settings.UpsertSetting(ctx, c.userID, shareCodeKey, code); err != nil {
			c.notifier.Push("Could not create a collection share code", notify.SeverityError)
			return fmt.Errorf("persist share code: %w", err)
		}
	default:
		c.notifier.Push("Could not load your collection share code", notify.SeverityError)
		return fmt.Errorf("load share code: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.openLocked(SurfaceShare)
	c.share = &ShareTarget{Collection: true, ShareCode: code}
	return nil
}

// OpenExportImport opens the export/import dialog.
func (c *Coordinator) OpenExportImport() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.openLocked(SurfaceExportImport)
}

// OpenAddByURL opens the add-by-url dialog.
func (c *Coordinator) OpenAddByURL() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.openLocked(SurfaceAddByURL)
}

// OpenMainMenu opens the full-screen menu.
func (c *Coordinator) OpenMainMenu() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.openLocked(SurfaceMainMenu)
}

// Close closes whatever is open. Closing an already-closed
// coordinator is a no-op.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.openLocked(SurfaceNone)
}

// CloseSurface closes the given surface only when it is the active
// one; otherwise nothing happens.
func (c *Coordinator) CloseSurface(s Surface) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.surface == s {
		c.openLocked(SurfaceNone)
	}
}

// Confirm runs the pending confirmable action, then returns to the
// closed state regardless of the action's outcome. The action runs at
// most once; confirming with no confirm dialog open is a no-op.
func (c *Coordinator) Confirm(ctx context.Context) error {
	c.mu.Lock()
	if c.surface != SurfaceConfirm || c.confirm == nil {
		c.mu.Unlock()
		return nil
	}
	action := c.confirm.Action
	c.openLocked(SurfaceNone)
	c.mu.Unlock()

	// Run outside the lock: actions hit the store and may push
	// notifications of their own.
	if action == nil {
		return nil
	}
	return action(ctx)
}

// State returns a read-only snapshot of the current surface and its
// payload.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := State{Surface: c.surface, Editing: c.editing, Share: c.share}
	if c.confirm != nil {
		s.Message = c.confirm.Message
		s.ConfirmText = c.confirm.ConfirmText
	}
	return s
}
