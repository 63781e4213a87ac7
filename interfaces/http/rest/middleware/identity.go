package middleware

import (
	"net/http"

	"notes-backend/pkg/auth"

	"go.uber.org/zap"
)

// Identity attaches the resolved caller to the request context. It never
// rejects a request: handlers decide whether a caller is required, so that
// unmatched routes still answer 404.
func Identity(resolver auth.IdentityResolver, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := resolver.Resolve(r)
			if err != nil {
				logger.Warn("Rejected caller credential",
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
				next.ServeHTTP(w, r)
				return
			}
			if user != nil {
				r = r.WithContext(auth.SetUserInContext(r.Context(), user))
			}
			next.ServeHTTP(w, r)
		})
	}
}
