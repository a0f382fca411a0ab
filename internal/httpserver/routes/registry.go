package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/bm/internal/httpserver/deps"
)

type (
	Registrar  func(r chi.Router, d deps.Deps)
	Middleware = func(http.Handler) http.Handler
)

type entry struct {
	name string
	reg  Registrar
	mws  []Middleware
}

var registry []entry

// Register adds a named route group with optional per-group middlewares.
// Groups are mounted in registration order.
func Register(name string, reg Registrar, mws ...Middleware) {
	registry = append(registry, entry{name: name, reg: reg, mws: mws})
}

// RegisterAll mounts every registered group on r and returns their names.
// Called once from server.New().
func RegisterAll(r chi.Router, d deps.Deps) []string {
	names := make([]string, 0, len(registry))
	for _, e := range registry {
		names = append(names, e.name)
		if len(e.mws) == 0 {
			e.reg(r, d)
			continue
		}
		e.reg(r.With(e.mws...), d)
	}
	return names
}

// noStore marks API responses as uncacheable; they reflect the files on disk.
func noStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
