package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORS(t *testing.T) {
	const watchOrigin = "https://watch.novastream.example"

	tests := []struct {
		name        string
		allowed     []string
		method      string
		origin      string
		wantStatus  int
		wantOrigin  string
		wantExposed bool
	}{
		{name: "configured origin", allowed: []string{watchOrigin}, method: http.MethodGet, origin: watchOrigin, wantStatus: http.StatusOK, wantOrigin: watchOrigin, wantExposed: true},
		{name: "wildcard preflight", allowed: []string{"*"}, method: http.MethodOptions, origin: watchOrigin, wantStatus: http.StatusNoContent, wantOrigin: "*", wantExposed: true},
		{name: "unconfigured origin", allowed: []string{watchOrigin}, method: http.MethodGet, origin: "https://elsewhere.example", wantStatus: http.StatusOK},
		{name: "no origin header", allowed: []string{"*"}, method: http.MethodGet, wantStatus: http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			req := httptest.NewRequest(tc.method, "/v1/account", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			rec := httptest.NewRecorder()

			CORS(tc.allowed, next).ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tc.wantOrigin {
				t.Fatalf("unexpected Access-Control-Allow-Origin: %q", got)
			}
			exposed := rec.Header().Get("Access-Control-Expose-Headers") == requestIDHeader
			if exposed != tc.wantExposed {
				t.Fatalf("unexpected Access-Control-Expose-Headers: %q", rec.Header().Get("Access-Control-Expose-Headers"))
			}
		})
	}
}
