// Package api exposes the split calculator and settlement engine over HTTP.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the HTTP routes. Extra middleware (such as an access
// logger) runs after request IDs are assigned.
func NewRouter(mw ...func(http.Handler) http.Handler) http.Handler {
	h := NewHandler()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(mw...)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/splits", h.SplitRoutes())
		r.Post("/settlements", h.Settle)
	})

	return r
}
