package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func SetupRoutes(handler *Handler, requestTimeout time.Duration) *chi.Mux {
	r := chi.NewRouter()

	// Setup middleware
	for _, middleware := range SetupMiddleware(requestTimeout) {
		r.Use(middleware)
	}

	// JSON content type
	r.Use(render.SetContentType(render.ContentTypeJSON))

	// Health check endpoint
	r.Get("/health", handler.HealthCheck)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/terrains", func(r chi.Router) {
			r.Get("/", handler.ListTerrains)
			r.Post("/", handler.CreateTerrain)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", handler.GetTerrain)
				r.Delete("/", handler.DeleteTerrain)

				// World-space queries
				r.Get("/height", handler.GetHeight)
				r.Get("/normal", handler.GetNormal)

				// Generated geometry
				r.Get("/sections/{index}", handler.GetSection)

				// Object scattering
				r.Post("/scatter", handler.Scatter)
				r.Get("/scatter-runs", handler.ListScatterRuns)
			})
		})

		r.Route("/scatter-runs/{runId}", func(r chi.Router) {
			r.Get("/", handler.GetScatterRun)
			r.Delete("/", handler.DeleteScatterRun)
		})
	})

	return r
}
