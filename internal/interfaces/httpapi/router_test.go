package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/novastream/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/novastream/internal/platform/metrics"
	"github.com/riskibarqy/novastream/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUpstreamDown = errors.New("upstream down")

type stubSports struct {
	live []usecase.ExternalFixture
}

func (s stubSports) SupportsSport(sport string) bool { return sport == "football" }

func (s stubSports) FetchLiveFixtures(context.Context, string, string) ([]usecase.ExternalFixture, error) {
	return s.live, nil
}

func (s stubSports) FetchLiveRaces(context.Context, string) ([]usecase.ExternalRace, error) {
	return nil, errUpstreamDown
}

func (s stubSports) FetchScheduledFixtures(context.Context, usecase.ScheduleQuery) ([]usecase.ExternalFixture, error) {
	return nil, nil
}

func (s stubSports) FetchLeagues(context.Context, string, string) ([]usecase.ExternalLeague, error) {
	return nil, nil
}

func (s stubSports) FetchFixtureByID(_ context.Context, id string) (usecase.ExternalFixture, bool, error) {
	for _, f := range s.live {
		if f.ID == id {
			return f, true, nil
		}
	}
	return usecase.ExternalFixture{}, false, nil
}

type stubCricket struct{}

func (stubCricket) FetchCurrentMatches(context.Context) ([]usecase.ExternalCricketMatch, error) {
	return nil, errUpstreamDown
}

func (stubCricket) FetchMatches(context.Context) ([]usecase.ExternalCricketMatch, error) {
	return nil, errUpstreamDown
}

func (stubCricket) FetchSeries(context.Context, string) ([]usecase.ExternalCricketSeries, error) {
	return nil, errUpstreamDown
}

func (stubCricket) FetchMatchInfo(context.Context, string) (usecase.ExternalCricketMatch, bool, error) {
	return usecase.ExternalCricketMatch{}, false, nil
}

func (stubCricket) FetchMatchSquad(context.Context, string) ([]usecase.ExternalSquadTeam, error) {
	return nil, errUpstreamDown
}

func (stubCricket) FetchSeriesPoints(context.Context, string) ([]usecase.ExternalSeriesPoint, error) {
	return nil, errUpstreamDown
}

func (stubCricket) FetchCommentary(context.Context, string) ([]usecase.ExternalCommentary, error) {
	return nil, errUpstreamDown
}

type envelope struct {
	APIVersion string         `json:"apiVersion"`
	Data       map[string]any `json:"data"`
	Error      *struct {
		Code   int    `json:"code"`
		Status string `json:"status"`
	} `json:"error"`
}

func newTestRouter(t *testing.T) (http.Handler, *metrics.Registry) {
	t.Helper()

	registry := metrics.New()
	sports := stubSports{live: []usecase.ExternalFixture{
		{ID: "39", HomeName: "Man U", AwayName: "Chelsea", LeagueName: "Premier League", StatusLong: "Second Half"},
	}}
	contentService := usecase.NewContentService(sports, stubCricket{}, nil, usecase.ContentServiceConfig{Metrics: registry})
	accountService := usecase.NewAccountService(memory.NewKVStore(nil), nil)
	summaryService := usecase.NewSummaryService(contentService, nil)

	handler := NewHandler(contentService, accountService, summaryService, nil)
	return NewRouter(handler, nil, registry, []string{"*"}), registry
}

func serve(t *testing.T, router http.Handler, method, target, body, clientID string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if clientID != "" {
		req.Header.Set(clientIDHeader, clientID)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestRouter_Healthz(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t)

	rec, env := serve(t, router, http.MethodGet, "/healthz", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2.0", env.APIVersion)
	assert.Equal(t, "ok", env.Data["status"])
	assert.Equal(t, false, env.Data["summaryEnabled"])
}

func TestRouter_ContentRails(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t)

	tests := []struct {
		name       string
		target     string
		wantStatus string
		wantItems  int
	}{
		{name: "football live", target: "/v1/sports/football/live", wantStatus: "ok", wantItems: 1},
		{name: "unsupported sport", target: "/v1/sports/curling/live", wantStatus: "empty", wantItems: 0},
		{name: "cricket failure", target: "/v1/sports/cricket/live", wantStatus: "failed", wantItems: 0},
		{name: "formula-1 failure", target: "/v1/sports/formula-1/highlights", wantStatus: "failed", wantItems: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := serve(t, router, http.MethodGet, tt.target, "", "")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantStatus, env.Data["status"])
			items, ok := env.Data["items"].([]any)
			require.True(t, ok, "items must always be an array")
			assert.Len(t, items, tt.wantItems)
		})
	}
}

func TestRouter_ListFeedsRequiresSports(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t)

	rec, env := serve(t, router, http.MethodGet, "/v1/feeds?sports=,", "", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_ARGUMENT", env.Error.Status)
}

func TestRouter_MatchDetails(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t)

	rec, env := serve(t, router, http.MethodGet, "/v1/matches/39", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "39", env.Data["id"])
	assert.Equal(t, "Man U vs Chelsea", env.Data["title"])
	assert.Equal(t, "Football", env.Data["category"])
	assert.Nil(t, env.Data["scorecard"])
}

func TestRouter_SummaryDisabled(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t)

	rec, env := serve(t, router, http.MethodPost, "/v1/matches/39/summary", "", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNAVAILABLE", env.Error.Status)
}

func TestRouter_RegistryNotConfigured(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t)

	rec, _ := serve(t, router, http.MethodGet, "/v1/registry/matches/abc", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouter_AccountIsScopedByClientID(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t)

	// Without a stored pointer there is no active profile to log against.
	_, env := serve(t, router, http.MethodPost, "/v1/account/activity", `{"title":"Arsenal vs. Spurs"}`, "browser-a")
	assert.Equal(t, false, env.Data["added"])

	serve(t, router, http.MethodGet, "/v1/account/active-profile", "", "browser-a")
	rec, env := serve(t, router, http.MethodPost, "/v1/account/activity", `{"title":"Arsenal vs. Spurs"}`, "browser-a")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, env.Data["added"])

	_, envA := serve(t, router, http.MethodGet, "/v1/account/active-profile", "", "browser-a")
	_, envB := serve(t, router, http.MethodGet, "/v1/account/active-profile", "", "browser-b")

	activity := func(env envelope) []any {
		profile, _ := env.Data["profile"].(map[string]any)
		items, _ := profile["recentActivity"].([]any)
		return items
	}
	require.Len(t, activity(envA), 6)
	require.Len(t, activity(envB), 5)
	first, _ := activity(envA)[0].(map[string]any)
	assert.Equal(t, "Arsenal vs. Spurs", first["title"])
}

func TestRouter_AccountValidation(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		want   int
	}{
		{name: "unknown field", method: http.MethodPatch, target: "/v1/account/profiles/1", body: `{"nickname":"A"}`, want: http.StatusBadRequest},
		{name: "blank first name", method: http.MethodPatch, target: "/v1/account/profiles/1", body: `{"firstName":""}`, want: http.StatusBadRequest},
		{name: "non numeric profile id", method: http.MethodDelete, target: "/v1/account/profiles/abc", want: http.StatusBadRequest},
		{name: "missing notification flag", method: http.MethodPut, target: "/v1/account/profiles/1/notifications", body: `{"liveMatchAlerts":true}`, want: http.StatusBadRequest},
		{name: "unknown plan", method: http.MethodPut, target: "/v1/account/plan", body: `{"plan":"Platinum"}`, want: http.StatusBadRequest},
		{name: "unknown profile", method: http.MethodDelete, target: "/v1/account/profiles/42", want: http.StatusNotFound},
		{name: "empty activity title", method: http.MethodPost, target: "/v1/account/activity", body: `{"title":""}`, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := serve(t, router, tt.method, tt.target, tt.body, "validation")
			require.Equal(t, tt.want, rec.Code)
			require.NotNil(t, env.Error)
		})
	}
}

func TestRouter_RemovingLastProfileConflicts(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t)

	for _, id := range []string{"2", "3"} {
		rec, _ := serve(t, router, http.MethodDelete, "/v1/account/profiles/"+id, "", "solo")
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec, env := serve(t, router, http.MethodDelete, "/v1/account/profiles/1", "", "solo")
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "ABORTED", env.Error.Status)
}

func TestRouter_AddProfileBecomesActive(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t)

	rec, env := serve(t, router, http.MethodPost, "/v1/account/profiles", "", "family")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.EqualValues(t, 4, env.Data["id"])

	_, active := serve(t, router, http.MethodGet, "/v1/account/active-profile", "", "family")
	assert.EqualValues(t, 4, active.Data["profileId"])
}

func TestRouter_MetricsEndpointRecordsRoutes(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t)

	serve(t, router, http.MethodGet, "/v1/sports/football/live", "", "")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `route="GET /v1/sports/{sport}/live"`)
	assert.Contains(t, body, `novastream_content_results_total{operation="live",status="ok"} 1`)
}

func TestClientIdentity_IgnoresMalformedIDs(t *testing.T) {
	t.Parallel()

	var got string
	handler := ClientIdentity(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = clientIDFromContext(r.Context())
	}))

	tests := []struct {
		header string
		want   string
	}{
		{header: "abc-123", want: "abc-123"},
		{header: "  spaced.id  ", want: "spaced.id"},
		{header: "../../etc/passwd", want: ""},
		{header: strings.Repeat("x", 65), want: ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/v1/account", nil)
		req.Header.Set(clientIDHeader, tt.header)
		handler.ServeHTTP(httptest.NewRecorder(), req)
		if got != tt.want {
			t.Fatalf("client id for header %q: got=%q want=%q", tt.header, got, tt.want)
		}
	}
}

type fixedIDs string

func (f fixedIDs) NewID() string { return string(f) }

func TestRequestID_EchoesOrMints(t *testing.T) {
	t.Parallel()

	var seen string
	handler := RequestID(fixedIDs("minted-1"), http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = requestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "edge-42")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "edge-42", seen)
	assert.Equal(t, "edge-42", rec.Header().Get(requestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "not a valid id")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "minted-1", seen)
	assert.Equal(t, "minted-1", rec.Header().Get(requestIDHeader))
}
