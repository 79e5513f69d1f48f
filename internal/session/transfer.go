package session

import (
	"context"

	"github.com/lunaria/lunaria/internal/domain"
	"github.com/lunaria/lunaria/internal/notify"
)

// ImportLine is one row of an import log.
type ImportLine struct {
	Name   string `json:"name"`
	Status string `json:"status"` // "ok" | "skipped" | "failed"
	Detail string `json:"detail,omitempty"`
}

// ImportReport summarizes an import run.
type ImportReport struct {
	Created int          `json:"created"`
	Skipped int          `json:"skipped"`
	Failed  int          `json:"failed"`
	Log     []ImportLine `json:"log"`
}

// Export returns a snapshot of the whole collection, newest first,
// suitable for a JSON download.
func (s *Session) Export() []*domain.Entry {
	return domain.ComputeView(s.index.All(), domain.FilterSpec{SortBy: domain.SortNewest})
}

// Import creates the given entries one by one, collecting a per-entry
// result log. Entries without a name are skipped; a failing create
// does not abort the rest. The collection is reloaded once at the end.
func (s *Session) Import(ctx context.Context, entries []*domain.Entry) ImportReport {
	var report ImportReport

	for _, e := range entries {
		if e.Name == "" {
			report.Skipped++
			report.Log = append(report.Log, ImportLine{
				Name:   "(unnamed)",
				Status: "skipped",
				Detail: "missing name",
			})
			continue
		}

		incoming := e.Clone()
		incoming.ID = "" // ids are re-assigned on import
		incoming.UserID = s.userID
		incoming.Normalize()

		if _, err := s.store.Create(ctx, incoming); err != nil {
			report.Failed++
			report.Log = append(report.Log, ImportLine{
				Name:   e.Name,
				Status: "failed",
				Detail: err.Error(),
			})
			continue
		}
		report.Created++
		report.Log = append(report.Log, ImportLine{Name: e.Name, Status: "ok"})
	}

	if report.Created > 0 {
		s.queue.Push("Import finished", notify.SeveritySuccess)
	} else if report.Failed > 0 {
		s.queue.Push("Import failed", notify.SeverityError)
	}
	_ = s.Reload(ctx)
	return report
}
