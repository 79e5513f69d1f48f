package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lunaria/lunaria/internal/domain"
	"github.com/lunaria/lunaria/internal/logger"
	"github.com/lunaria/lunaria/internal/notify"
	"github.com/lunaria/lunaria/internal/store"
)

// fakeStore is an in-memory store.Store with per-method failure
// injection.
type fakeStore struct {
	mu       sync.Mutex
	nextID   int
	entries  map[string]*domain.Entry
	usage    map[string]map[string]int64 // kind -> name -> count
	settings map[string]string

	listErr   error
	createErr error
	updateErr error
	deleteErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		entries:  make(map[string]*domain.Entry),
		usage:    map[string]map[string]int64{"page": {}, "category": {}},
		settings: make(map[string]string),
	}
}

func (f *fakeStore) List(_ context.Context, _ string) ([]*domain.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*domain.Entry, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, e.Clone())
	}
	return out, nil
}

func (f *fakeStore) Create(_ context.Context, entry *domain.Entry) (*domain.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	created := entry.Clone()
	created.ID = fmt.Sprintf("id-%d", f.nextID)
	created.CreatedAt = time.Now()
	created.Normalize()
	f.entries[created.ID] = created
	return created.Clone(), nil
}

func (f *fakeStore) Update(_ context.Context, _, id string, patch store.EntryPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	e, ok := f.entries[id]
	if !ok {
		return store.ErrNotFound
	}
	if patch.IsFavorite != nil {
		e.IsFavorite = *patch.IsFavorite
	}
	if patch.ClickCount != nil && *patch.ClickCount > e.ClickCount {
		e.ClickCount = *patch.ClickCount
	}
	if patch.LastOpened != nil {
		e.LastOpened = *patch.LastOpened
	}
	if patch.Name != nil {
		e.Name = *patch.Name
	}
	return nil
}

func (f *fakeStore) Delete(_ context.Context, _, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.entries, id)
	return nil
}

func (f *fakeStore) DeleteAll(_ context.Context, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.entries = make(map[string]*domain.Entry)
	return nil
}

func (f *fakeStore) IncrementCounter(_ context.Context, kind store.CounterKind, _, name, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.usage[string(kind)][name]++
	return nil
}

func (f *fakeStore) TopUsage(_ context.Context, kind store.CounterKind, _ string, _ int) ([]store.UsageCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []store.UsageCount
	for name, count := range f.usage[string(kind)] {
		out = append(out, store.UsageCount{Name: name, Count: count})
	}
	return out, nil
}

func (f *fakeStore) GetSetting(_ context.Context, _, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.settings[key]
	if !ok {
		return "", store.ErrNotFound
	}
	return v, nil
}

func (f *fakeStore) UpsertSetting(_ context.Context, _, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settings[key] = value
	return nil
}

func (f *fakeStore) usageCount(kind, name string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.usage[kind][name]
}

func newTestSession(f *fakeStore) *Session {
	log := logger.New("error", false)
	queue := notify.New(time.Minute)
	return New(f, queue, log, "user-1")
}

func TestCreateReloadsCollection(t *testing.T) {
	f := newFakeStore()
	s := newTestSession(f)

	created, err := s.Create(context.Background(), &domain.Entry{Name: "Faucet A", Category: domain.CategoryFaucet})
	if err != nil {
		t.Fatalf("Create() = %v", err)
	}
	if created.ID == "" {
		t.Error("created entry has no id")
	}
	if s.Count() != 1 {
		t.Errorf("Count() = %d after create, want 1", s.Count())
	}
	if len(s.View()) != 1 {
		t.Errorf("View() has %d entries, want 1", len(s.View()))
	}
}

func TestCreateFailureLeavesStateIntact(t *testing.T) {
	f := newFakeStore()
	s := newTestSession(f)
	if _, err := s.Create(context.Background(), &domain.Entry{Name: "Faucet A"}); err != nil {
		t.Fatalf("seed create: %v", err)
	}

	f.createErr = errors.New("unreachable")
	_, err := s.Create(context.Background(), &domain.Entry{Name: "Faucet B"})
	if err == nil {
		t.Fatal("Create() = nil, want error")
	}

	// Prior collection is untouched and the failure is a notification.
	if s.Count() != 1 {
		t.Errorf("Count() = %d after failed create, want 1", s.Count())
	}
	notifs := s.Notifications()
	last := notifs[len(notifs)-1]
	if last.Severity != notify.SeverityError {
		t.Errorf("last notification severity = %q, want error", last.Severity)
	}
}

func TestReloadFailureKeepsLastKnownCollection(t *testing.T) {
	f := newFakeStore()
	s := newTestSession(f)
	if _, err := s.Create(context.Background(), &domain.Entry{Name: "Faucet A"}); err != nil {
		t.Fatalf("seed create: %v", err)
	}

	f.listErr = errors.New("unreachable")
	if err := s.Reload(context.Background()); err == nil {
		t.Fatal("Reload() = nil, want error")
	}
	if s.Count() != 1 {
		t.Errorf("Count() = %d after failed reload, want last-known 1", s.Count())
	}
}

func TestToggleFavorite(t *testing.T) {
	f := newFakeStore()
	s := newTestSession(f)
	created, _ := s.Create(context.Background(), &domain.Entry{Name: "Faucet A"})

	if err := s.ToggleFavorite(context.Background(), created.ID); err != nil {
		t.Fatalf("ToggleFavorite() = %v", err)
	}
	e, _ := s.Entry(created.ID)
	if !e.IsFavorite {
		t.Error("entry should be a favorite after toggle")
	}

	if err := s.ToggleFavorite(context.Background(), created.ID); err != nil {
		t.Fatalf("second ToggleFavorite() = %v", err)
	}
	e, _ = s.Entry(created.ID)
	if e.IsFavorite {
		t.Error("entry should not be a favorite after second toggle")
	}
}

func TestOpenEntryRecordsClickAndUsage(t *testing.T) {
	f := newFakeStore()
	s := newTestSession(f)
	created, _ := s.Create(context.Background(), &domain.Entry{
		Name:     "Faucet A",
		Category: domain.CategoryFaucet,
		URL:      "https://faucet-a.example.com",
	})

	if _, err := s.OpenEntry(context.Background(), created.ID); err != nil {
		t.Fatalf("OpenEntry() = %v", err)
	}

	e, _ := s.Entry(created.ID)
	if e.ClickCount != 1 {
		t.Errorf("ClickCount = %d, want 1", e.ClickCount)
	}
	if e.LastOpened.IsZero() {
		t.Error("LastOpened not stamped")
	}

	// The usage increments are fire-and-forget goroutines; give them
	// a moment to land.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if f.usageCount("page", "Faucet A") == 1 && f.usageCount("category", "Faucets") == 1 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Errorf("usage counters = page:%d category:%d, want 1 and 1",
		f.usageCount("page", "Faucet A"), f.usageCount("category", "Faucets"))
}

func TestOpenEntryWithoutURLIsNoOp(t *testing.T) {
	f := newFakeStore()
	s := newTestSession(f)
	created, _ := s.Create(context.Background(), &domain.Entry{Name: "Faucet A"})

	if _, err := s.OpenEntry(context.Background(), created.ID); err != nil {
		t.Fatalf("OpenEntry() = %v", err)
	}
	e, _ := s.Entry(created.ID)
	if e.ClickCount != 0 {
		t.Errorf("ClickCount = %d for url-less entry, want 0", e.ClickCount)
	}
}

func TestDeleteAll(t *testing.T) {
	f := newFakeStore()
	s := newTestSession(f)
	_, _ = s.Create(context.Background(), &domain.Entry{Name: "Faucet A"})
	_, _ = s.Create(context.Background(), &domain.Entry{Name: "Faucet B"})

	if err := s.DeleteAll(context.Background()); err != nil {
		t.Fatalf("DeleteAll() = %v", err)
	}
	if s.Count() != 0 {
		t.Errorf("Count() = %d after delete all, want 0", s.Count())
	}
}

func TestSetFilterNormalizesSortKey(t *testing.T) {
	s := newTestSession(newFakeStore())

	s.SetFilter(domain.FilterSpec{SortBy: "nonsense"})
	if got := s.Filter().SortBy; got != domain.SortNewest {
		t.Errorf("SortBy = %q after unknown key, want newest", got)
	}
}

func TestImportReportsPerEntryResults(t *testing.T) {
	f := newFakeStore()
	s := newTestSession(f)

	report := s.Import(context.Background(), []*domain.Entry{
		{Name: "Faucet A", Category: domain.CategoryFaucet},
		{Name: ""}, // skipped
		{Name: "Faucet B"},
	})

	if report.Created != 2 || report.Skipped != 1 || report.Failed != 0 {
		t.Errorf("report = %+v, want 2 created, 1 skipped", report)
	}
	if len(report.Log) != 3 {
		t.Errorf("log has %d lines, want 3", len(report.Log))
	}
	if s.Count() != 2 {
		t.Errorf("Count() = %d after import, want 2", s.Count())
	}
}

func TestImportContinuesPastFailures(t *testing.T) {
	f := newFakeStore()
	s := newTestSession(f)

	f.createErr = errors.New("unreachable")
	report := s.Import(context.Background(), []*domain.Entry{
		{Name: "Faucet A"},
		{Name: "Faucet B"},
	})

	if report.Failed != 2 || report.Created != 0 {
		t.Errorf("report = %+v, want 2 failed", report)
	}
}

func TestExportIsNewestFirstSnapshot(t *testing.T) {
	f := newFakeStore()
	s := newTestSession(f)
	_, _ = s.Create(context.Background(), &domain.Entry{Name: "Faucet A"})
	time.Sleep(5 * time.Millisecond) // distinct created_at
	_, _ = s.Create(context.Background(), &domain.Entry{Name: "Faucet B"})

	out := s.Export()
	if len(out) != 2 {
		t.Fatalf("Export() has %d entries, want 2", len(out))
	}
	if out[0].Name != "Faucet B" {
		t.Errorf("Export()[0] = %q, want newest first", out[0].Name)
	}
}
