package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lunaria/lunaria/internal/httpserver/deps"
	"github.com/lunaria/lunaria/internal/notify"
)

type notificationsResponse struct {
	Notifications []notify.Notification `json:"notifications"`
}

// ListNotifications serves the live notifications, oldest first.
func ListNotifications(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, notificationsResponse{
			Notifications: d.Session.Notifications(),
		})
	}
}

// DismissNotification removes one notification ahead of its expiry.
// Dismissing an already-gone notification is fine.
func DismissNotification(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid notification id")
			return
		}
		d.Session.Dismiss(id)
		w.WriteHeader(http.StatusNoContent)
	}
}
