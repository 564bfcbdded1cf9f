// Package httpapi assembles the chi router for the service.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/http/handlers"
	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/middleware"
)

// Options configures the router's middleware and auxiliary endpoints.
type Options struct {
	Logger         zerolog.Logger
	AllowedOrigins []string
	CountryLookup  middleware.CountryLookup
	MetricsHandler http.Handler
	StaticDir      string
}

// NewRouter wires middleware, API routes, the metrics endpoint and the
// static media file server.
func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(opts.Logger),
		middleware.CORS(opts.AllowedOrigins),
		middleware.I18N("en", opts.CountryLookup),
	)

	r.Get("/v1/healthz", app.Health)

	r.Post("/v1/refine", app.Refine)
	r.Post("/v1/analyze", app.Analyze)

	r.Route("/v1/artifacts", func(r chi.Router) {
		r.Get("/", app.ArtifactsList)
		r.Post("/", app.ArtifactsKeep)
		r.Delete("/", app.ArtifactsReset)
		r.Get("/active", app.ArtifactsActive)
		r.Post("/{id}/activate", app.ArtifactsActivate)
		r.Post("/{id}/extend", app.Extend)
	})

	r.Post("/v1/credentials", app.CredentialsSelect)
	r.Get("/v1/credentials/status", app.CredentialsStatus)

	if opts.MetricsHandler != nil {
		r.Handle("/metrics", opts.MetricsHandler)
	}
	if opts.StaticDir != "" {
		fs := http.StripPrefix("/static/", http.FileServer(http.Dir(opts.StaticDir)))
		r.Get("/static/*", fs.ServeHTTP)
	}

	return r
}
