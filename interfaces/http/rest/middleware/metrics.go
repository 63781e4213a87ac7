package middleware

import (
	"net/http"
	"time"

	"notes-backend/pkg/observability"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Metrics records latency and count per route pattern. Unmatched requests
// are grouped under "unmatched" so arbitrary paths never become dimensions.
func Metrics(metrics *observability.Metrics) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" && pattern != "/*" {
					route = r.Method + " " + pattern
				}
			}
			metrics.RecordRequest(r.Context(), route, ww.Status(), time.Since(start))
		})
	}
}
