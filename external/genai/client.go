package genai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/novastream/internal/platform/logging"
	"github.com/riskibarqy/novastream/internal/platform/metrics"
	"github.com/riskibarqy/novastream/internal/platform/resilience"
	"github.com/riskibarqy/novastream/internal/platform/upstream"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
)

var errEmptyCompletion = crerr.New("completion returned no content")

// ClientConfig targets any OpenAI-compatible chat completions endpoint.
type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Model          string
	Temperature    float64
	Timeout        time.Duration
	MaxRetries     int
	CircuitBreaker resilience.CircuitBreakerConfig
	Logger         *logging.Logger
	Metrics        *metrics.Registry
}

type Client struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	upstream    *upstream.Client
}

func NewClient(cfg ClientConfig) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	apiKey := strings.TrimSpace(cfg.APIKey)

	return &Client{
		baseURL:     baseURL,
		apiKey:      apiKey,
		model:       model,
		temperature: cfg.Temperature,
		upstream: upstream.New(upstream.Config{
			Name:           "genai",
			HTTPClient:     cfg.HTTPClient,
			Timeout:        timeout,
			MaxRetries:     cfg.MaxRetries,
			CircuitBreaker: cfg.CircuitBreaker,
			Secrets:        []string{apiKey},
			Logger:         cfg.Logger,
			Metrics:        cfg.Metrics,
		}),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Summarize sends prompt as a single user message and returns the first choice.
func (c *Client) Summarize(ctx context.Context, prompt string) (string, error) {
	body, err := sonic.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("encode chat request: %w", err)
	}

	header := http.Header{}
	if c.apiKey != "" {
		header.Set("Authorization", "Bearer "+c.apiKey)
	}

	raw, err := c.upstream.Post(ctx, c.baseURL+"/chat/completions", header, body)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	var resp chatResponse
	if err := sonic.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("decode chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", errEmptyCompletion
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
