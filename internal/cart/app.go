package cart

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"MiniCart/pkg/kit"
)

type HTTPDeps struct {
	Log       *zap.Logger
	Service   string
	SessionID string
	Registry  *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string
}

// NewHandler serves the cart routes tagged with the session id.
func NewHandler(s *Server, deps HTTPDeps) http.Handler {
	var extra []func(http.Handler) http.Handler
	if deps.SessionID != "" {
		extra = append(extra, sessionHeader(deps.SessionID))
	}

	return kit.NewServiceHandler(s.Routes(), kit.HTTPDeps{
		Log:            deps.Log,
		Service:        deps.Service,
		Registry:       deps.Registry,
		MetricsEnabled: deps.MetricsEnabled,
		MetricsToken:   deps.MetricsToken,
	}, extra...)
}

func sessionHeader(id string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Session-Id", id)
			next.ServeHTTP(w, r)
		})
	}
}
