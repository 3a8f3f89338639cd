package api

import (
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aquametrics/aquascore/internal/quality"
)

// ChartRenderer renders a contribution map plus title into an encoded image.
// The scoring core only exposes contribution magnitudes; how they become an
// image is this collaborator's concern.
type ChartRenderer interface {
	Render(contributions map[quality.Parameter]float64, title string) (string, error)
}

func NewRouter(eval *quality.Evaluator, renderer ChartRenderer, staticDir string, rateLimitPerMinute int, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(rateLimitPerMinute))

	evaluate := NewEvaluateHandler(eval, renderer, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/evaluate", evaluate.Evaluate)
		r.Get("/parameters", evaluate.Parameters)
	})

	if staticDir != "" {
		r.Get("/", serveFile(filepath.Join(staticDir, "index.html")))
		r.Get("/index.html", serveFile(filepath.Join(staticDir, "index.html")))
		assets := http.StripPrefix("/assets/", http.FileServer(http.Dir(filepath.Join(staticDir, "assets"))))
		r.Handle("/assets/*", assets)
	}

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func serveFile(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, path)
	}
}
