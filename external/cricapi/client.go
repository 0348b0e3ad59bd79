package cricapi

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
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
	defaultBaseURL = "https://api.cricapi.com/v1"
	apiKeyParam    = "apikey"
	providerName   = "cricapi"
)

var errProviderFailure = crerr.New("cricapi reported failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
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
	baseURL  string
	apiKey   string
	upstream *upstream.Client
}

func NewClient(cfg ClientConfig) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	apiKey := strings.TrimSpace(cfg.APIKey)

	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
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
			SecretParams:   []string{apiKeyParam},
			Secrets:        []string{apiKey},
			Logger:         cfg.Logger,
			Metrics:        cfg.Metrics,
		}),
	}
}

func (c *Client) FetchCurrentMatches(ctx context.Context) ([]usecase.ExternalCricketMatch, error) {
	var items []matchItem
	if err := c.doList(ctx, "currentMatches", url.Values{"offset": {"0"}}, &items); err != nil {
		return nil, fmt.Errorf("fetch current matches: %w", err)
	}
	return mapMatches(items), nil
}

func (c *Client) FetchMatches(ctx context.Context) ([]usecase.ExternalCricketMatch, error) {
	var items []matchItem
	if err := c.doList(ctx, "matches", url.Values{"offset": {"0"}}, &items); err != nil {
		return nil, fmt.Errorf("fetch matches: %w", err)
	}
	return mapMatches(items), nil
}

func (c *Client) FetchSeries(ctx context.Context, matchTypes string) ([]usecase.ExternalCricketSeries, error) {
	query := url.Values{}
	if matchTypes = strings.TrimSpace(matchTypes); matchTypes != "" {
		query.Set("matchType", matchTypes)
	}

	var items []seriesItem
	if err := c.doList(ctx, "series", query, &items); err != nil {
		return nil, fmt.Errorf("fetch series: %w", err)
	}

	out := make([]usecase.ExternalCricketSeries, 0, len(items))
	for _, item := range items {
		out = append(out, usecase.ExternalCricketSeries{
			ID:    item.ID.String(),
			Name:  item.Name,
			Image: item.ShieldImageURL,
		})
	}
	return out, nil
}

// FetchMatchInfo reports found=false when the provider has no data for the id.
func (c *Client) FetchMatchInfo(ctx context.Context, matchID string) (usecase.ExternalCricketMatch, bool, error) {
	data, err := c.fetchData(ctx, "match_info", url.Values{"id": {matchID}})
	if err != nil {
		return usecase.ExternalCricketMatch{}, false, fmt.Errorf("fetch match info id=%s: %w", matchID, err)
	}
	if !isObject(data) {
		return usecase.ExternalCricketMatch{}, false, nil
	}

	var item matchItem
	if err := sonic.Unmarshal(data, &item); err != nil {
		return usecase.ExternalCricketMatch{}, false, fmt.Errorf("decode match info id=%s: %w", matchID, err)
	}
	match := item.toExternal()
	if match.ID == "" && match.Name == "" {
		return usecase.ExternalCricketMatch{}, false, nil
	}
	return match, true, nil
}

func (c *Client) FetchMatchSquad(ctx context.Context, matchID string) ([]usecase.ExternalSquadTeam, error) {
	var items []squadItem
	if err := c.doList(ctx, "match_squad", url.Values{"id": {matchID}}, &items); err != nil {
		return nil, fmt.Errorf("fetch match squad id=%s: %w", matchID, err)
	}

	out := make([]usecase.ExternalSquadTeam, 0, len(items))
	for _, item := range items {
		team := usecase.ExternalSquadTeam{
			TeamName:  item.TeamName,
			ShortName: item.ShortName,
			Img:       item.Img,
			Players:   make([]usecase.ExternalSquadPlayer, 0, len(item.Players)),
		}
		for _, p := range item.Players {
			team.Players = append(team.Players, usecase.ExternalSquadPlayer{
				ID:           p.ID.String(),
				Name:         p.Name,
				Role:         p.Role,
				BattingStyle: p.BattingStyle,
				BowlingStyle: p.BowlingStyle,
				Country:      p.Country,
				PlayerImg:    p.PlayerImg,
			})
		}
		out = append(out, team)
	}
	return out, nil
}

func (c *Client) FetchSeriesPoints(ctx context.Context, seriesID string) ([]usecase.ExternalSeriesPoint, error) {
	var items []seriesPointItem
	if err := c.doList(ctx, "series_points", url.Values{"id": {seriesID}}, &items); err != nil {
		return nil, fmt.Errorf("fetch series points id=%s: %w", seriesID, err)
	}

	out := make([]usecase.ExternalSeriesPoint, 0, len(items))
	for _, item := range items {
		out = append(out, usecase.ExternalSeriesPoint{
			TeamName: item.TeamName,
			Img:      item.Img,
			Matches:  item.Matches.Int(),
			Wins:     item.Wins.Int(),
			Loss:     item.Loss.Int(),
			Ties:     item.Ties.Int(),
			NR:       item.NR.Int(),
			Points:   item.Points.Int(),
		})
	}
	return out, nil
}

func (c *Client) FetchCommentary(ctx context.Context, matchID string) ([]usecase.ExternalCommentary, error) {
	var items []commentaryItem
	if err := c.doList(ctx, "commentary", url.Values{"id": {matchID}}, &items); err != nil {
		return nil, fmt.Errorf("fetch commentary id=%s: %w", matchID, err)
	}

	out := make([]usecase.ExternalCommentary, 0, len(items))
	for _, item := range items {
		out = append(out, usecase.ExternalCommentary{Over: item.Over.String(), Comment: item.Commentary})
	}
	return out, nil
}

// doList decodes a list payload; a non-list data field counts as no rows.
func (c *Client) doList(ctx context.Context, endpoint string, query url.Values, target any) error {
	data, err := c.fetchData(ctx, endpoint, query)
	if err != nil {
		return err
	}
	if !isList(data) {
		return nil
	}
	if err := sonic.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode %s data: %w", endpoint, err)
	}
	return nil
}

func (c *Client) fetchData(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	params := url.Values{apiKeyParam: {c.apiKey}}
	for key, values := range query {
		params[key] = values
	}

	raw, err := c.upstream.Get(ctx, upstream.BuildURL(c.baseURL, endpoint, params), nil)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := sonic.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	if strings.EqualFold(env.Status, "failure") {
		return nil, fmt.Errorf("%w: endpoint=%s reason=%s", errProviderFailure, endpoint, c.upstream.Redact(env.Reason))
	}
	return env.Data, nil
}

func isList(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '['
}

func isObject(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 2 && trimmed[0] == '{'
}
