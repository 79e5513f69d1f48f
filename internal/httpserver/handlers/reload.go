package handlers

import (
	"net/http"

	"github.com/lunaria/lunaria/internal/httpserver/deps"
	"github.com/lunaria/lunaria/internal/logger"
)

// Reload asks the background refresher for an immediate collection
// refresh. The trigger is non-blocking: when a refresh is already in
// flight the request is turned away instead of queued.
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case d.RefreshTrigger <- struct{}{}:
			d.Logger.Info("manual refresh triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusAccepted, map[string]string{"status": "refresh triggered"})
		default:
			d.Logger.Warn("refresh already in progress",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusTooManyRequests, map[string]string{"status": "refresh already in progress"})
		}
	}
}
