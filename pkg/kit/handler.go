package kit

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// HTTPDeps is the ambient wiring shared by every service front-end.
type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string
}

// NewServiceHandler mounts routes behind request ids, panic recovery, request
// logging and, with a Registry, HTTP metrics. /metrics is exposed only when
// MetricsEnabled is set. extra runs innermost, in the given order.
func NewServiceHandler(routes http.Handler, deps HTTPDeps, extra ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(Recoverer)
	r.Use(Logging(deps.Log))

	if deps.Registry != nil {
		r.Use(NewMetrics(deps.Registry).Middleware(deps.Service, ChiRoutePatternOrPath))
	} else if deps.MetricsEnabled && deps.Log != nil {
		deps.Log.Warn("metrics enabled but Registry is nil")
	}
	r.Use(extra...)

	if deps.MetricsEnabled && deps.Registry != nil {
		r.With(MetricsAuth(deps.MetricsToken)).
			Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Mount("/", routes)
	return r
}
