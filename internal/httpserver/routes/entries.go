package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/lunaria/lunaria/internal/httpserver/deps"
	"github.com/lunaria/lunaria/internal/httpserver/handlers"
)

func init() { Register(registerEntries) }

func registerEntries(r chi.Router, d deps.Deps) {
	r.Route("/entries", func(r chi.Router) {
		r.Get("/", handlers.ListEntries(d))
		r.Post("/", handlers.CreateEntry(d))
		r.Post("/resolve", handlers.ResolveEntry(d))
		r.Delete("/", handlers.RequestDeleteAll(d))
		r.Put("/{id}", handlers.UpdateEntry(d))
		r.Delete("/{id}", handlers.DeleteEntry(d))
		r.Post("/{id}/favorite", handlers.ToggleFavorite(d))
		r.Post("/{id}/open", handlers.OpenEntry(d))
	})
}
