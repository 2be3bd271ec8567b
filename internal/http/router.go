package http

import (
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/preston-bernstein/saturday-stats/internal/http/handlers"
	"github.com/preston-bernstein/saturday-stats/internal/http/middleware"
	"github.com/preston-bernstein/saturday-stats/internal/metrics"
)

// RouterConfig carries the cross-cutting pieces of the router.
type RouterConfig struct {
	CORSOrigins []string
	Logger      *slog.Logger
	Metrics     *metrics.Recorder
}

// NewRouter mounts the read model and the frame push endpoint behind
// request logging, panic recovery and CORS.
func NewRouter(h *handlers.Handler, frames nethttp.Handler, cfg RouterConfig) nethttp.Handler {
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.Logging(cfg.Logger, cfg.Metrics))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{nethttp.MethodGet, nethttp.MethodPut, nethttp.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         int((5 * time.Minute).Seconds()),
	}))

	if frames != nil {
		r.Method(nethttp.MethodGet, "/ws", frames)
	}
	h.Routes(r)
	return r
}
