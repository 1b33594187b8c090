package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cookieconsent/internal/platform/health"
	"cookieconsent/pkg/platform/middleware/request"
)

// DefaultMaxBodyBytes bounds page request bodies. Mount attributes and
// decisions are a few hundred bytes at most.
const DefaultMaxBodyBytes = 16 << 10

// Registrar mounts a feature's routes.
type Registrar interface {
	Register(r chi.Router)
}

// Deps are the pieces NewRouter wires together.
type Deps struct {
	Logger       *slog.Logger
	Metrics      *request.Metrics
	Health       *health.Handler
	MaxBodyBytes int64
	Features     []Registrar
}

// NewRouter wires all public endpoints with middleware.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(request.Recovery(deps.Logger))
	r.Use(request.RequestID)
	r.Use(request.ClientMetadata)
	r.Use(request.RequestTime)
	r.Use(request.Logger(deps.Logger))
	r.Use(request.LatencyMiddleware(deps.Metrics))

	if deps.Health != nil {
		deps.Health.Register(r)
	}
	r.Handle("/metrics", promhttp.Handler())

	maxBody := deps.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}
	r.Group(func(r chi.Router) {
		r.Use(request.ContentTypeJSON)
		r.Use(request.BodyLimit(maxBody))
		for _, f := range deps.Features {
			f.Register(r)
		}
	})

	return r
}
