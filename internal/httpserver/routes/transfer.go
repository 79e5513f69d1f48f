package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/lunaria/lunaria/internal/httpserver/deps"
	"github.com/lunaria/lunaria/internal/httpserver/handlers"
)

func init() { Register(registerTransfer) }

func registerTransfer(r chi.Router, d deps.Deps) {
	r.Get("/export", handlers.Export(d))
	r.Post("/import", handlers.Import(d))
}
