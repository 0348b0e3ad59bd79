package upstream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/novastream/internal/platform/cache"
	"github.com/riskibarqy/novastream/internal/platform/logging"
	"github.com/riskibarqy/novastream/internal/platform/metrics"
	"github.com/riskibarqy/novastream/internal/platform/resilience"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	maxResponseBytes   = 6 << 20
	maxCachedResponses = 2048
)

// ErrTransient marks failures worth retrying and counting against the breaker.
var ErrTransient = crerr.New("upstream transient failure")

// StatusError is returned for non-2xx provider responses.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s status=%d body=%s", e.Provider, e.StatusCode, e.Body)
}

type Config struct {
	Name           string
	HTTPClient     *http.Client
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
	RateLimit      float64
	RateBurst      int
	CacheTTL       time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
	// SecretParams are query parameter names whose values never reach logs or errors.
	SecretParams []string
	Secrets      []string
	Logger       *logging.Logger
	Metrics      *metrics.Registry
}

// Client performs guarded requests against one provider: rate limiting,
// retries on ErrTransient, a circuit breaker, in-flight dedup and an optional TTL cache.
type Client struct {
	name           string
	httpClient     *http.Client
	maxRetries     int
	retryDelay     time.Duration
	flightTimeout  time.Duration
	limiter        *rate.Limiter
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         singleflight.Group
	cache          *cache.Store[[]byte]
	redactor       *redactor
	logger         *logging.Logger
	metrics        *metrics.Registry
}

func New(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = "upstream"
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}

	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = time.Second
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), max(cfg.RateBurst, 1))
	}

	var store *cache.Store[[]byte]
	if cfg.CacheTTL > 0 {
		store = cache.NewStore[[]byte](cfg.CacheTTL, maxCachedResponses)
	}

	reg := cfg.Metrics
	breakerCfg := cfg.CircuitBreaker.WithDefaults()
	breaker := resilience.NewCircuitBreaker(name, breakerCfg, func(provider string, from, to resilience.CircuitState) {
		reg.SetCircuitOpen(provider, to != resilience.CircuitStateClosed)
		logger.Warn("upstream circuit state changed", "provider", provider, "from", string(from), "to", string(to))
	})

	return &Client{
		name:           name,
		httpClient:     httpClient,
		maxRetries:     max(cfg.MaxRetries, 0),
		retryDelay:     retryDelay,
		flightTimeout:  flightBudget(httpClient.Timeout, retryDelay, max(cfg.MaxRetries, 0)),
		limiter:        limiter,
		breaker:        breaker,
		circuitEnabled: breakerCfg.Enabled,
		cache:          store,
		redactor:       newRedactor(cfg.SecretParams, cfg.Secrets),
		logger:         logger,
		metrics:        reg,
	}
}

// flightBudget covers every attempt plus the doubling backoff between them.
func flightBudget(timeout, retryDelay time.Duration, retries int) time.Duration {
	retries = min(retries, 10)
	return timeout*time.Duration(retries+1) + retryDelay*time.Duration(1<<retries)
}

func (c *Client) Name() string {
	return c.name
}

// Redact hides configured secrets in free text such as URLs and error messages.
func (c *Client) Redact(value string) string {
	return c.redactor.apply(value)
}

// Get fetches fullURL and returns the raw 2xx body. Concurrent identical GETs share one request.
func (c *Client) Get(ctx context.Context, fullURL string, header http.Header) ([]byte, error) {
	if c.cache == nil {
		return c.sharedGet(ctx, fullURL, header)
	}
	return c.cache.GetOrLoad(ctx, fullURL, func(ctx context.Context) ([]byte, error) {
		return c.sharedGet(ctx, fullURL, header)
	})
}

// sharedGet runs the request detached from any single caller, bounded by
// flightTimeout. A caller that goes away stops waiting without failing the
// others joined on the same URL.
func (c *Client) sharedGet(ctx context.Context, fullURL string, header http.Header) ([]byte, error) {
	ch := c.flight.DoChan(fullURL, func() (any, error) {
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.flightTimeout)
		defer cancel()
		if err := c.allow(flightCtx); err != nil {
			return nil, err
		}
		return c.guarded(flightCtx, http.MethodGet, fullURL, header, nil)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		raw, ok := res.Val.([]byte)
		if !ok {
			return nil, fmt.Errorf("unexpected response payload type %T", res.Val)
		}
		return raw, nil
	}
}

// Post sends body and returns the raw 2xx response. Posts are never deduplicated or cached.
func (c *Client) Post(ctx context.Context, fullURL string, header http.Header, body []byte) ([]byte, error) {
	if err := c.allow(ctx); err != nil {
		return nil, err
	}
	return c.guarded(ctx, http.MethodPost, fullURL, header, body)
}

func (c *Client) allow(ctx context.Context) error {
	if !c.circuitEnabled {
		return nil
	}
	if err := c.breaker.Allow(); err != nil {
		c.metrics.ObserveUpstream(c.name, "circuit_open", 0)
		c.logger.WarnContext(ctx, "upstream circuit breaker rejected request", "provider", c.name, "state", string(c.breaker.State()))
		return fmt.Errorf("%s: %w", c.name, resilience.ErrCircuitOpen)
	}
	return nil
}

func (c *Client) guarded(ctx context.Context, method, fullURL string, header http.Header, body []byte) ([]byte, error) {
	raw, err := c.executeRequest(ctx, method, fullURL, header, body)
	if c.circuitEnabled {
		c.breaker.Record(err, isCircuitFailure)
	}
	return raw, err
}

func (c *Client) executeRequest(ctx context.Context, method, fullURL string, header http.Header, body []byte) ([]byte, error) {
	started := time.Now()
	attempts := uint(c.maxRetries + 1)

	raw, err := retry.DoWithData(
		func() ([]byte, error) {
			return c.attempt(ctx, method, fullURL, header, body)
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, ErrTransient)
		}),
		retry.OnRetry(func(n uint, err error) {
			c.logger.DebugContext(ctx, "retrying upstream request", "provider", c.name, "attempt", n+1, "error", err)
		}),
	)
	elapsed := time.Since(started)
	if err != nil {
		c.metrics.ObserveUpstream(c.name, outcomeOf(err), elapsed)
		c.logger.WarnContext(ctx, "upstream request failed",
			"provider", c.name,
			"method", method,
			"url", c.redactor.apply(fullURL),
			"duration_ms", elapsed.Milliseconds(),
			"error", err,
		)
		return nil, err
	}

	c.metrics.ObserveUpstream(c.name, "ok", elapsed)
	return raw, nil
}

func (c *Client) attempt(ctx context.Context, method, fullURL string, header http.Header, body []byte) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%s rate limiter: %w", c.name, err)
		}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %s", c.redactor.apply(err.Error()))
	}
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: send request: %s", ErrTransient, c.redactor.apply(err.Error()))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", ErrTransient, err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}

	statusErr := &StatusError{
		Provider:   c.name,
		StatusCode: resp.StatusCode,
		Body:       c.redactor.apply(abbreviateBody(raw)),
	}
	if isRetryableStatus(resp.StatusCode) {
		return nil, fmt.Errorf("%w: %w", ErrTransient, statusErr)
	}
	return nil, statusErr
}

func isCircuitFailure(err error) bool {
	return errors.Is(err, ErrTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.Is(err, ErrTransient):
		return "transient_error"
	default:
		return "error"
	}
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

type redactor struct {
	secrets []string
	params  *regexp.Regexp
}

func newRedactor(params, secrets []string) *redactor {
	r := &redactor{}
	for _, s := range secrets {
		if s = strings.TrimSpace(s); s != "" {
			r.secrets = append(r.secrets, s)
		}
	}
	quoted := make([]string, 0, len(params))
	for _, p := range params {
		if p = strings.TrimSpace(p); p != "" {
			quoted = append(quoted, regexp.QuoteMeta(p))
		}
	}
	if len(quoted) > 0 {
		r.params = regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)=[^&\s"']+`)
	}
	return r
}

func (r *redactor) apply(value string) string {
	if r == nil || value == "" {
		return value
	}
	for _, secret := range r.secrets {
		value = strings.ReplaceAll(value, secret, "REDACTED")
	}
	if r.params != nil {
		value = r.params.ReplaceAllString(value, "${1}=REDACTED")
	}
	return value
}
