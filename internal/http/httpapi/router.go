package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"imagestudio/internal/http/handlers"
	"imagestudio/internal/infra"
	"imagestudio/internal/middleware"
)

func NewRouter(app *handlers.App, logger zerolog.Logger, cfg *infra.Config) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	r.Get("/", app.UI)
	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/stats", app.Stats)

	r.Route("/v1/session", func(r chi.Router) {
		r.Get("/", app.GetSession)
		r.Post("/image", app.UploadImage)
		r.Post("/mode", app.SetMode)
		r.Post("/prompt", app.SetPrompt)
		r.With(middleware.RateLimit(cfg.RateLimitPerMin, time.Minute)).
			Post("/submit", app.Submit)
		r.Post("/reset", app.Reset)
	})

	return r
}
