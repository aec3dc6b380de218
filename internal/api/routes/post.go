package routes

import (
	"log/slog"

	"Blogsync/internal/api/handlers/post"
	"Blogsync/internal/core/posts"

	"github.com/go-chi/chi/v5"
)

// RegisterPostRoutes registers the /posts resource on the router
func RegisterPostRoutes(r chi.Router, service posts.Service, logger *slog.Logger) {
	handler := post.NewHandler(service, logger)

	r.Route("/posts", func(r chi.Router) {
		r.Get("/", handler.HandleList)
		r.Post("/", handler.HandleCreate)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handler.HandleGet)
			r.Patch("/", handler.HandlePatch)
			r.Put("/", handler.HandlePut)
			r.Delete("/", handler.HandleDelete)
		})
	})
}
