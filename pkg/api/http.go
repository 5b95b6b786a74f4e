// Package api exposes the store operations over HTTP. Screens invoke
// these endpoints by id and render the results; no state lives here.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"familyconnect/pkg/api/handlers"
	"familyconnect/pkg/config"
	"familyconnect/pkg/store"
	"familyconnect/pkg/telemetry"
	"familyconnect/pkg/utils"
)

// NewRouter builds the HTTP surface: health and metrics at the root, the
// versioned API under /v1 behind the API-key and rate-limit middleware.
func NewRouter(cfg *config.Config, deps handlers.Deps) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if !store.Ready() {
			utils.JSONError(w, http.StatusServiceUnavailable, "store not ready")
			return
		}
		_ = utils.JSONWrite(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.Use(requestLogMiddleware)
	v1.Use(apiKeyMiddleware(cfg.Security.APIKeys.Frontend))
	v1.Use(rateLimitMiddleware(cfg.Security.RateLimit.RPS, cfg.Security.RateLimit.Burst))
	handlers.New(deps).Register(v1)

	return telemetry.Middleware(r)
}
