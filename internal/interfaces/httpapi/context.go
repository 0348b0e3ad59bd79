package httpapi

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"github.com/riskibarqy/novastream/internal/platform/id"
)

type contextKey string

const (
	clientIDContextKey  contextKey = "client_id"
	requestIDContextKey contextKey = "request_id"
	clientIDHeader                 = "X-Client-ID"
	requestIDHeader                = "X-Request-ID"
)

// Both client and request ids are limited to this shape.
var clientIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

func withClientID(ctx context.Context, clientID string) context.Context {
	return context.WithValue(ctx, clientIDContextKey, clientID)
}

// clientIDFromContext returns "" when the request carried no usable client id,
// which selects the shared default account.
func clientIDFromContext(ctx context.Context) string {
	clientID, _ := ctx.Value(clientIDContextKey).(string)
	return clientID
}

// ClientIdentity reads X-Client-ID so each browser keeps its own account record.
// Values outside [A-Za-z0-9._-]{1,64} are ignored.
func ClientIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := strings.TrimSpace(r.Header.Get(clientIDHeader))
		if !clientIDPattern.MatchString(clientID) {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(withClientID(r.Context(), clientID)))
	})
}

func requestIDFromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(requestIDContextKey).(string)
	return requestID
}

// RequestID echoes a well-formed X-Request-ID or mints a new one.
func RequestID(ids id.Generator, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if !clientIDPattern.MatchString(requestID) {
			requestID = ids.NewID()
		}
		w.Header().Set(requestIDHeader, requestID)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDContextKey, requestID)))
	})
}
