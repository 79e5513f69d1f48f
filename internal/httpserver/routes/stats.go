package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/lunaria/lunaria/internal/httpserver/deps"
	"github.com/lunaria/lunaria/internal/httpserver/handlers"
)

func init() { Register(registerStats) }

func registerStats(r chi.Router, d deps.Deps) {
	r.Get("/stats", handlers.Stats(d))
	r.Get("/usage/pages", handlers.TopPages(d))
	r.Get("/usage/categories", handlers.TopCategories(d))
}
