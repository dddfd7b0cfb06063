// Package kernel assembles the HTTP stack: middleware order, the metrics
// and health endpoints, and the application routes.
package kernel

import (
	"net/http"
	"time"

	"github.com/tanakrit/pawmart/app/listeners"
	"github.com/tanakrit/pawmart/app/routes"
	"github.com/tanakrit/pawmart/pkg/metrics"
	"github.com/tanakrit/pawmart/pkg/middleware"
	"github.com/tanakrit/pawmart/pkg/reqid"
	"github.com/tanakrit/pawmart/pkg/router"
)

// NewHTTPKernel builds the fully wired router. Middleware runs top to
// bottom: metrics first so it times everything, then request IDs, panic
// recovery, request logging, CORS, and rate limiting.
func NewHTTPKernel() *router.Router {
	listeners.Register()

	r := router.New()

	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(300, time.Minute))

	r.HandleFunc("/metrics", metrics.Handler())
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok")) //nolint:errcheck
	})

	routes.RegisterAPI(r)

	return r
}
