package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/bm/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bm/internal/httpserver/handlers"
)

func init() { Register("links", registerLinks, noStore) }

func registerLinks(r chi.Router, d deps.Deps) {
	r.Route("/api/links", func(r chi.Router) {
		r.Get("/", handlers.ListLinks(d))
		r.Post("/", handlers.AddLinks(d))
		r.Delete("/", handlers.RemoveLinks(d))
	})
}
