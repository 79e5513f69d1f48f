package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/lunaria/lunaria/internal/httpserver/deps"
	"github.com/lunaria/lunaria/internal/httpserver/handlers"
)

func init() { Register(registerNotifications) }

func registerNotifications(r chi.Router, d deps.Deps) {
	r.Get("/notifications", handlers.ListNotifications(d))
	r.Delete("/notifications/{id}", handlers.DismissNotification(d))
}
