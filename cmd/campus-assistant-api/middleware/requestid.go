package middleware

import (
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/campushq/campus-assistant/internal/observability"
)

// PropagateRequestID copies the chi request ID into the logging context so
// loggers built with WithContext carry it. Must be mounted after
// chimiddleware.RequestID.
func PropagateRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if reqID := chimiddleware.GetReqID(r.Context()); reqID != "" {
			ctx := observability.ContextWithRequestID(r.Context(), reqID)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}
