package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/lunaria/lunaria/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready      bool   `json:"ready"`
	Entries    int    `json:"entries"`
	LastReload string `json:"last_reload"`
	Redis      string `json:"redis"`
}

// Readyz reports whether the service can serve real traffic: the
// collection has been loaded at least once and the store answers.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := readyzResponse{
			Entries: d.Session.Count(),
			Redis:   "ok",
		}

		lastReload := d.Session.LastReload()
		if lastReload.IsZero() {
			resp.LastReload = "never"
		} else {
			resp.LastReload = lastReload.Format(time.RFC3339)
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		redisOK := d.RedisClient != nil && d.RedisClient.Ping(ctx).Err() == nil
		if !redisOK {
			resp.Redis = "unreachable"
		}

		resp.Ready = redisOK && !lastReload.IsZero()
		status := http.StatusOK
		if !resp.Ready {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, resp)
	}
}
