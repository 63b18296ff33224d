// middleware/request_id.go
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const ContextRequestID contextKey = "requestID"

// RequestIDMiddleware tags every request with a correlation id, honoring
// one supplied by the client. The id is echoed in the response and ends
// up on audit events.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), ContextRequestID, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestID reads the correlation id back off a request context.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ContextRequestID).(string)
	return id
}
