package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/lunaria/lunaria/internal/httpserver/deps"
	"github.com/lunaria/lunaria/internal/httpserver/handlers"
)

func init() { Register(registerModal) }

func registerModal(r chi.Router, d deps.Deps) {
	r.Route("/modal", func(r chi.Router) {
		r.Get("/", handlers.ModalState(d))
		r.Post("/open", handlers.OpenModal(d))
		r.Post("/close", handlers.CloseModal(d))
		r.Post("/confirm", handlers.ConfirmModal(d))
		r.Post("/share-collection", handlers.ShareCollection(d))
	})
}
