package apisports

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/novastream/internal/platform/logging"
	"github.com/riskibarqy/novastream/internal/platform/metrics"
	"github.com/riskibarqy/novastream/internal/platform/resilience"
	"github.com/riskibarqy/novastream/internal/platform/upstream"
	"github.com/riskibarqy/novastream/internal/usecase"
)

const (
	apiKeyHeader   = "x-apisports-key"
	providerName   = "apisports"
	sportFootball  = "football"
	sportFormula1  = "formula-1"
	scheduleLayout = "2006-01-02"
)

var errProviderRejected = crerr.New("api-sports rejected request")

var defaultHosts = map[string]string{
	"football":   "https://v3.football.api-sports.io",
	"basketball": "https://v1.basketball.api-sports.io",
	"nba":        "https://v1.basketball.api-sports.io",
	"volleyball": "https://v1.volleyball.api-sports.io",
	"tennis":     "https://v1.tennis.api-sports.io",
	"formula-1":  "https://v1.formula-1.api-sports.io",
}

type ClientConfig struct {
	HTTPClient *http.Client
	APIKey     string
	// Hosts overrides the per-sport base URLs; unknown sports stay unsupported.
	Hosts          map[string]string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
	RateLimit      float64
	RateBurst      int
	CacheTTL       time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
	Logger         *logging.Logger
	Metrics        *metrics.Registry
}

type Client struct {
	hosts    map[string]string
	apiKey   string
	upstream *upstream.Client
}

func NewClient(cfg ClientConfig) *Client {
	hosts := make(map[string]string, len(defaultHosts))
	for sport, host := range defaultHosts {
		hosts[sport] = host
	}
	for sport, host := range cfg.Hosts {
		sport = normalizeSport(sport)
		if host = strings.TrimRight(strings.TrimSpace(host), "/"); sport != "" && host != "" {
			hosts[sport] = host
		}
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	return &Client{
		hosts:  hosts,
		apiKey: apiKey,
		upstream: upstream.New(upstream.Config{
			Name:           providerName,
			HTTPClient:     cfg.HTTPClient,
			Timeout:        cfg.Timeout,
			MaxRetries:     cfg.MaxRetries,
			RetryDelay:     cfg.RetryDelay,
			RateLimit:      cfg.RateLimit,
			RateBurst:      cfg.RateBurst,
			CacheTTL:       cfg.CacheTTL,
			CircuitBreaker: cfg.CircuitBreaker,
			Secrets:        []string{apiKey},
			Logger:         cfg.Logger,
			Metrics:        cfg.Metrics,
		}),
	}
}

func (c *Client) SupportsSport(sport string) bool {
	_, ok := c.hosts[normalizeSport(sport)]
	return ok
}

func (c *Client) FetchLiveFixtures(ctx context.Context, sport, leagueID string) ([]usecase.ExternalFixture, error) {
	query := url.Values{"live": {"all"}}
	setLeague(query, leagueID)

	var env envelope[fixtureItem]
	if err := c.doJSON(ctx, sport, "fixtures", query, &env); err != nil {
		return nil, fmt.Errorf("fetch live fixtures sport=%s: %w", sport, err)
	}
	return mapFixtures(env.Response), nil
}

func (c *Client) FetchLiveRaces(ctx context.Context, leagueID string) ([]usecase.ExternalRace, error) {
	query := url.Values{"status": {"live"}}
	setLeague(query, leagueID)

	var env envelope[raceItem]
	if err := c.doJSON(ctx, sportFormula1, "races", query, &env); err != nil {
		return nil, fmt.Errorf("fetch live races: %w", err)
	}

	out := make([]usecase.ExternalRace, 0, len(env.Response))
	for _, item := range env.Response {
		name := item.Race.Name
		if name == "" {
			name = item.Competition.Name
		}
		out = append(out, usecase.ExternalRace{
			ID:          item.ID.String(),
			Name:        name,
			Competition: item.Competition.Name,
			Status:      item.Status.String(),
		})
	}
	return out, nil
}

// FetchScheduledFixtures lists fixtures (football) or games (other sports) between two UTC dates.
func (c *Client) FetchScheduledFixtures(ctx context.Context, q usecase.ScheduleQuery) ([]usecase.ExternalFixture, error) {
	endpoint := "games"
	if normalizeSport(q.Sport) == sportFootball {
		endpoint = "fixtures"
	}
	query := url.Values{
		"from":   {q.From.UTC().Format(scheduleLayout)},
		"to":     {q.To.UTC().Format(scheduleLayout)},
		"season": {strconv.Itoa(q.Season)},
	}
	setLeague(query, q.LeagueID)

	var env envelope[fixtureItem]
	if err := c.doJSON(ctx, q.Sport, endpoint, query, &env); err != nil {
		return nil, fmt.Errorf("fetch scheduled %s sport=%s: %w", endpoint, q.Sport, err)
	}
	return mapFixtures(env.Response), nil
}

// FetchLeagues returns one league by id, or the current leagues when leagueID is empty.
func (c *Client) FetchLeagues(ctx context.Context, sport, leagueID string) ([]usecase.ExternalLeague, error) {
	query := url.Values{}
	if leagueID = strings.TrimSpace(leagueID); leagueID != "" {
		query.Set("id", leagueID)
	} else {
		query.Set("current", "true")
	}

	var env envelope[leagueItem]
	if err := c.doJSON(ctx, sport, "leagues", query, &env); err != nil {
		return nil, fmt.Errorf("fetch leagues sport=%s: %w", sport, err)
	}

	out := make([]usecase.ExternalLeague, 0, len(env.Response))
	for _, item := range env.Response {
		out = append(out, usecase.ExternalLeague{
			ID:      item.League.ID.String(),
			Name:    item.League.Name,
			Logo:    item.League.Logo,
			Country: item.Country.Name,
		})
	}
	return out, nil
}

// FetchFixtureByID looks up a single football fixture.
func (c *Client) FetchFixtureByID(ctx context.Context, fixtureID string) (usecase.ExternalFixture, bool, error) {
	fixtureID = strings.TrimSpace(fixtureID)
	if fixtureID == "" {
		return usecase.ExternalFixture{}, false, nil
	}

	var env envelope[fixtureItem]
	if err := c.doJSON(ctx, sportFootball, "fixtures", url.Values{"id": {fixtureID}}, &env); err != nil {
		return usecase.ExternalFixture{}, false, fmt.Errorf("fetch fixture id=%s: %w", fixtureID, err)
	}
	fixtures := mapFixtures(env.Response)
	if len(fixtures) == 0 {
		return usecase.ExternalFixture{}, false, nil
	}
	return fixtures[0], true, nil
}

func (c *Client) doJSON(ctx context.Context, sport, endpoint string, query url.Values, target rejectable) error {
	host, ok := c.hosts[normalizeSport(sport)]
	if !ok {
		return fmt.Errorf("%w: unsupported sport %q", usecase.ErrInvalidInput, sport)
	}

	header := http.Header{}
	header.Set(apiKeyHeader, c.apiKey)

	raw, err := c.upstream.Get(ctx, upstream.BuildURL(host, endpoint, query), header)
	if err != nil {
		return err
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	if reason := target.rejection(); reason != "" {
		return fmt.Errorf("%w: %s", errProviderRejected, c.upstream.Redact(reason))
	}
	return nil
}

func mapFixtures(items []fixtureItem) []usecase.ExternalFixture {
	out := make([]usecase.ExternalFixture, 0, len(items))
	for _, item := range items {
		id := item.ID.String()
		status := item.Status.Long
		if item.Fixture != nil {
			if fixtureID := item.Fixture.ID.String(); fixtureID != "" {
				id = fixtureID
			}
			if item.Fixture.Status.Long != "" {
				status = item.Fixture.Status.Long
			}
		}
		out = append(out, usecase.ExternalFixture{
			ID:         id,
			HomeName:   item.Teams.Home.Name,
			HomeLogo:   item.Teams.Home.Logo,
			AwayName:   item.Teams.Away.Name,
			AwayLogo:   item.Teams.Away.Logo,
			LeagueName: item.League.Name,
			StatusLong: status,
		})
	}
	return out
}

func setLeague(query url.Values, leagueID string) {
	if leagueID = strings.TrimSpace(leagueID); leagueID != "" {
		query.Set("league", leagueID)
	}
}

func normalizeSport(sport string) string {
	return strings.ToLower(strings.TrimSpace(sport))
}
