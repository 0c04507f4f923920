// Package router assembles the service's HTTP surface: the middleware
// stack and the versioned mount prefix under which the person resource
// lives.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/holodmoose/ds-lab1/internal/http/handlers/person"
	"github.com/holodmoose/ds-lab1/internal/storage"
)

// New wires the person routes under /api/v1 and returns the root handler.
//
// Recoverer turns panics escaping a handler into a plain 500, so a
// misbehaving store connection never takes the process down with it.
func New(store storage.Storage) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/persons", person.Routes(store))
	})

	return r
}
