package handlers

import (
	"net/http"
	"strconv"

	"github.com/lunaria/lunaria/internal/httpserver/deps"
	"github.com/lunaria/lunaria/internal/store"
)

// Stats serves the summary metrics over the whole collection.
func Stats(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Session.Stats())
	}
}

type usageResponse struct {
	Rows []store.UsageCount `json:"rows"`
}

func usageLimit(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		return 10
	}
	return limit
}

// TopPages serves the most-opened pages, descending.
func TopPages(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := d.Session.TopPageUsage(r.Context(), usageLimit(r))
		if err != nil {
			writeError(w, storeStatus(err), "could not load page usage")
			return
		}
		writeJSON(w, http.StatusOK, usageResponse{Rows: rows})
	}
}

// TopCategories serves the most-used categories, descending.
func TopCategories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := d.Session.TopCategoryUsage(r.Context(), usageLimit(r))
		if err != nil {
			writeError(w, storeStatus(err), "could not load category usage")
			return
		}
		writeJSON(w, http.StatusOK, usageResponse{Rows: rows})
	}
}
