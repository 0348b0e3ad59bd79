package matchregistry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/novastream/internal/platform/logging"
	"github.com/riskibarqy/novastream/internal/platform/metrics"
	"github.com/riskibarqy/novastream/internal/platform/resilience"
	"github.com/riskibarqy/novastream/internal/platform/upstream"
	"github.com/riskibarqy/novastream/internal/usecase"
)

const defaultBaseURL = "https://x0xso2pa9i.execute-api.ap-south-1.amazonaws.com"

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	CircuitBreaker resilience.CircuitBreakerConfig
	Logger         *logging.Logger
	Metrics        *metrics.Registry
}

type Client struct {
	baseURL  string
	upstream *upstream.Client
}

func NewClient(cfg ClientConfig) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		upstream: upstream.New(upstream.Config{
			Name:           "matchregistry",
			HTTPClient:     cfg.HTTPClient,
			Timeout:        cfg.Timeout,
			MaxRetries:     cfg.MaxRetries,
			CircuitBreaker: cfg.CircuitBreaker,
			Logger:         cfg.Logger,
			Metrics:        cfg.Metrics,
		}),
	}
}

func (c *Client) FetchMatch(ctx context.Context, matchID string) (map[string]any, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, fmt.Errorf("%w: match id is required", usecase.ErrInvalidInput)
	}

	raw, err := c.upstream.Get(ctx, upstream.BuildURL(c.baseURL, "matches/"+url.PathEscape(matchID), nil), nil)
	if err != nil {
		var statusErr *upstream.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: registry match=%s", usecase.ErrNotFound, matchID)
		}
		return nil, fmt.Errorf("%w: fetch registry match=%s: %v", usecase.ErrDependencyUnavailable, matchID, err)
	}

	var out map[string]any
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: decode registry match=%s: %v", usecase.ErrDependencyUnavailable, matchID, err)
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}
