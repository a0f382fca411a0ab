package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/bm/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bm/internal/httpserver/handlers"
)

func init() { Register("resources", registerResources, noStore) }

func registerResources(r chi.Router, d deps.Deps) {
	r.Route("/api/resources", func(r chi.Router) {
		r.Get("/", handlers.ListResources(d))
		r.Post("/", handlers.AddResources(d))
		r.Delete("/", handlers.RemoveResources(d))
	})
}
