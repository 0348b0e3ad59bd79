package httpapi

import (
	"context"
	"testing"
)

func TestShouldCreateHTTPAPISpan(t *testing.T) {
	tests := map[string]bool{
		"httpapi.Handler.GetWatchPage":      true,
		"httpapi.Handler.AddProfile":        true,
		"httpapi.RequestLogging":            false,
		"httpapi.writeError":                false,
		"usecase.ContentService.FetchFeeds": false,
	}

	for name, want := range tests {
		if got := shouldCreateHTTPAPISpan(name); got != want {
			t.Fatalf("shouldCreateHTTPAPISpan(%q)=%v want=%v", name, got, want)
		}
	}
}

func TestShouldTraceRequest(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{path: "/healthz", want: false},
		{path: " /HEALTHZ ", want: false},
		{path: "/livez", want: false},
		{path: "/readyz", want: false},
		{path: "/metrics", want: false},
		{path: "/v1/account", want: true},
		{path: "/v1/sports/cricket/live", want: true},
		{path: "/v1/matches/abc/watch", want: true},
		{path: "/", want: true},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			if got := shouldTraceRequest(tc.path); got != tc.want {
				t.Fatalf("shouldTraceRequest(%q)=%v want=%v", tc.path, got, tc.want)
			}
		})
	}
}

func TestStartSpan_UntracedContextIsNoop(t *testing.T) {
	ctx := context.Background()
	gotCtx, span := startSpan(ctx, "httpapi.Handler.GetAccount")
	defer span.End()

	if gotCtx != ctx {
		t.Fatalf("expected context to be returned unchanged")
	}
	if span.SpanContext().IsValid() {
		t.Fatalf("expected no-op span without a parent trace")
	}
}
