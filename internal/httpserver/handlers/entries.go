package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/lunaria/lunaria/internal/domain"
	"github.com/lunaria/lunaria/internal/httpserver/deps"
	"github.com/lunaria/lunaria/internal/logger"
	"github.com/lunaria/lunaria/internal/modal"
	"github.com/lunaria/lunaria/internal/store"
)

// entryPayload is the create-entry request body.
type entryPayload struct {
	Name        string   `json:"name" validate:"required,max=120"`
	Category    string   `json:"category" validate:"omitempty,oneof=faucet mining staking defi trading shorlin other"`
	URL         string   `json:"url" validate:"omitempty,url"`
	Description string   `json:"description" validate:"max=1000"`
	Tags        []string `json:"tags" validate:"max=25,dive,max=50"`
	Image       string   `json:"image"`
	CardColor   string   `json:"card_color"`
	IsFavorite  bool     `json:"is_favorite"`
	Status      string   `json:"status" validate:"omitempty,oneof=active attention inactive"`
}

// entryPatchPayload is the update-entry request body. Absent fields
// stay untouched.
type entryPatchPayload struct {
	Name        *string   `json:"name" validate:"omitempty,min=1,max=120"`
	Category    *string   `json:"category" validate:"omitempty,oneof=faucet mining staking defi trading shorlin other"`
	URL         *string   `json:"url" validate:"omitempty,url"`
	Description *string   `json:"description" validate:"omitempty,max=1000"`
	Tags        *[]string `json:"tags" validate:"omitempty,max=25,dive,max=50"`
	Image       *string   `json:"image"`
	CardColor   *string   `json:"card_color"`
	IsFavorite  *bool     `json:"is_favorite"`
	Status      *string   `json:"status" validate:"omitempty,oneof=active attention inactive"`
}

type listResponse struct {
	Entries []*domain.Entry `json:"entries"`
	Filter  filterResponse  `json:"filter"`
	Stats   domain.Stats    `json:"stats"`
}

type filterResponse struct {
	Search   string `json:"search"`
	Category string `json:"category"`
	Sort     string `json:"sort"`
}

// ListEntries serves the display list. Query parameters become the
// session's filter parameters before the view is computed.
func ListEntries(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		spec := domain.FilterSpec{
			Search:   strings.TrimSpace(q.Get("search")),
			Category: domain.Category(strings.TrimSpace(q.Get("category"))),
			SortBy:   domain.ParseSortKey(q.Get("sort")),
		}
		d.Session.SetFilter(spec)

		entries := d.Session.View()
		writeJSON(w, http.StatusOK, listResponse{
			Entries: entries,
			Filter: filterResponse{
				Search:   spec.Search,
				Category: string(spec.Category),
				Sort:     string(spec.SortBy),
			},
			Stats: d.Session.Stats(),
		})
	}
}

// CreateEntry persists a new entry.
func CreateEntry(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload entryPayload
		if err := decodeJSON(w, r, &payload); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		entry := &domain.Entry{
			Name:        strings.TrimSpace(payload.Name),
			Category:    domain.ParseCategory(payload.Category),
			URL:         payload.URL,
			Description: payload.Description,
			Tags:        payload.Tags,
			Image:       payload.Image,
			CardColor:   payload.CardColor,
			IsFavorite:  payload.IsFavorite,
			Status:      domain.Status(payload.Status),
		}

		created, err := d.Session.Create(r.Context(), entry)
		if err != nil {
			writeError(w, storeStatus(err), "could not save the entry")
			return
		}
		d.Session.Modal().CloseSurface(modal.SurfaceAddEdit)
		writeJSON(w, http.StatusCreated, created)
	}
}

// UpdateEntry applies a partial update to one entry.
func UpdateEntry(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var payload entryPatchPayload
		if err := decodeJSON(w, r, &payload); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		patch := store.EntryPatch{
			Name:        payload.Name,
			URL:         payload.URL,
			Description: payload.Description,
			Tags:        payload.Tags,
			Image:       payload.Image,
			CardColor:   payload.CardColor,
			IsFavorite:  payload.IsFavorite,
		}
		if payload.Category != nil {
			c := domain.ParseCategory(*payload.Category)
			patch.Category = &c
		}
		if payload.Status != nil {
			s := domain.Status(*payload.Status)
			patch.Status = &s
		}

		if err := d.Session.Update(r.Context(), id, patch); err != nil {
			writeError(w, storeStatus(err), "could not update the entry")
			return
		}
		d.Session.Modal().CloseSurface(modal.SurfaceAddEdit)

		entry, ok := d.Session.Entry(id)
		if !ok {
			writeJSON(w, http.StatusOK, map[string]string{"id": id})
			return
		}
		writeJSON(w, http.StatusOK, entry)
	}
}

// DeleteEntry removes one entry.
func DeleteEntry(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := d.Session.Delete(r.Context(), id); err != nil {
			writeError(w, storeStatus(err), "could not delete the entry")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// RequestDeleteAll does not delete anything directly: it opens the
// confirm surface with a wipe-collection action that only runs when
// the client follows up with a confirm call.
func RequestDeleteAll(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Session.Modal().OpenConfirm(modal.ConfirmRequest{
			Message:     "Delete all entries? This cannot be undone.",
			ConfirmText: "Delete everything",
			Action:      d.Session.DeleteAll,
		})
		writeJSON(w, http.StatusAccepted, d.Session.Modal().State())
	}
}

// ToggleFavorite flips the favorite flag of one entry.
func ToggleFavorite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := d.Session.ToggleFavorite(r.Context(), id); err != nil {
			writeError(w, storeStatus(err), "could not update the entry")
			return
		}
		entry, _ := d.Session.Entry(id)
		writeJSON(w, http.StatusOK, entry)
	}
}

// OpenEntry records an open of the entry's site and returns the URL
// for the client to navigate to.
func OpenEntry(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		entry, err := d.Session.OpenEntry(r.Context(), id)
		if err != nil {
			writeError(w, storeStatus(err), "could not record the click")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"url": entry.URL})
	}
}

// resolvePayload is the add-by-url request body.
type resolvePayload struct {
	URL string `json:"url" validate:"required,url"`
}

// ResolveEntry prefills an entry from the site catalog for a given URL.
// Unknown sites get a host-derived fallback.
func ResolveEntry(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload resolvePayload
		if err := decodeJSON(w, r, &payload); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if d.Resolver == nil {
			writeError(w, http.StatusServiceUnavailable, "no site catalog configured")
			return
		}

		entry, err := d.Resolver.Resolve(payload.URL)
		if err != nil {
			d.Logger.Debug("resolve failed", logger.String("url", payload.URL), logger.Error(err))
			writeError(w, http.StatusBadRequest, "could not parse the url")
			return
		}
		writeJSON(w, http.StatusOK, entry)
	}
}
