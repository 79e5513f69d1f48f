package handlers

import (
	"net/http"
	"time"

	"github.com/lunaria/lunaria/internal/domain"
	"github.com/lunaria/lunaria/internal/httpserver/deps"
)

type exportResponse struct {
	ExportedAt time.Time       `json:"exported_at"`
	Entries    []*domain.Entry `json:"entries"`
}

// Export serves a JSON snapshot of the whole collection, newest first.
func Export(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="lunaria-export.json"`)
		writeJSON(w, http.StatusOK, exportResponse{
			ExportedAt: time.Now(),
			Entries:    d.Session.Export(),
		})
	}
}

type importPayload struct {
	Entries []*domain.Entry `json:"entries" validate:"required,min=1"`
}

// Import creates the posted entries one by one and returns the
// per-entry result log. A failing entry does not abort the rest.
func Import(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload importPayload
		if err := decodeJSON(w, r, &payload); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		report := d.Session.Import(r.Context(), payload.Entries)
		writeJSON(w, http.StatusOK, report)
	}
}
