package app

import (
	"context"
	"fmt"
	"net/http"

	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/novastream/external/apisports"
	"github.com/riskibarqy/novastream/external/cricapi"
	"github.com/riskibarqy/novastream/external/genai"
	"github.com/riskibarqy/novastream/external/matchregistry"
	"github.com/riskibarqy/novastream/internal/config"
	"github.com/riskibarqy/novastream/internal/domain/account"
	"github.com/riskibarqy/novastream/internal/infrastructure/repository"
	"github.com/riskibarqy/novastream/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/novastream/internal/infrastructure/repository/file"
	"github.com/riskibarqy/novastream/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/novastream/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/novastream/internal/infrastructure/repository/redis"
	"github.com/riskibarqy/novastream/internal/interfaces/httpapi"
	"github.com/riskibarqy/novastream/internal/platform/logging"
	"github.com/riskibarqy/novastream/internal/platform/metrics"
	"github.com/riskibarqy/novastream/internal/platform/resilience"
	"github.com/riskibarqy/novastream/internal/usecase"
)

// NewHTTPServer wires storage, providers and services into the public HTTP server.
// The returned cleanup releases storage connections and must run after shutdown.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	var registry *metrics.Registry
	if cfg.MetricsEnabled {
		registry = metrics.New()
	}

	store, closeStore, err := openStorage(ctx, cfg, registry, logger)
	if err != nil {
		return nil, nil, err
	}

	breaker := resilience.CircuitBreakerConfig{
		Enabled:          cfg.UpstreamCircuitEnabled,
		FailureThreshold: cfg.UpstreamCircuitFailureCount,
		OpenTimeout:      cfg.UpstreamCircuitOpenTimeout,
		HalfOpenMaxReq:   cfg.UpstreamCircuitHalfOpenReq,
	}

	cacheTTL := cfg.UpstreamCacheTTL
	if !cfg.UpstreamCacheEnabled {
		cacheTTL = 0
	}

	sportsClient := apisports.NewClient(apisports.ClientConfig{
		APIKey:         cfg.APISportsKey,
		Timeout:        cfg.APISportsTimeout,
		MaxRetries:     cfg.UpstreamMaxRetries,
		RetryDelay:     cfg.UpstreamRetryDelay,
		RateLimit:      cfg.UpstreamRateLimit,
		RateBurst:      cfg.UpstreamRateBurst,
		CacheTTL:       cacheTTL,
		CircuitBreaker: breaker,
		Logger:         logger,
		Metrics:        registry,
	})
	cricketClient := cricapi.NewClient(cricapi.ClientConfig{
		BaseURL:        cfg.CricAPIBaseURL,
		APIKey:         cfg.CricAPIKey,
		Timeout:        cfg.CricAPITimeout,
		MaxRetries:     cfg.UpstreamMaxRetries,
		RetryDelay:     cfg.UpstreamRetryDelay,
		RateLimit:      cfg.UpstreamRateLimit,
		RateBurst:      cfg.UpstreamRateBurst,
		CacheTTL:       cacheTTL,
		CircuitBreaker: breaker,
		Logger:         logger,
		Metrics:        registry,
	})

	// Interfaces stay nil when a collaborator is switched off; a typed nil
	// pointer would look configured to the services.
	var registryClient usecase.MatchRegistry
	if cfg.MatchRegistryEnabled && cfg.MatchRegistryBaseURL != "" {
		registryClient = matchregistry.NewClient(matchregistry.ClientConfig{
			BaseURL:        cfg.MatchRegistryBaseURL,
			Timeout:        cfg.MatchRegistryTimeout,
			MaxRetries:     cfg.UpstreamMaxRetries,
			CircuitBreaker: breaker,
			Logger:         logger,
			Metrics:        registry,
		})
	}

	var summarizer usecase.MatchSummarizer
	if cfg.SummaryEnabled {
		summarizer = genai.NewClient(genai.ClientConfig{
			BaseURL:        cfg.SummaryBaseURL,
			APIKey:         cfg.SummaryAPIKey,
			Model:          cfg.SummaryModel,
			Temperature:    cfg.SummaryTemperature,
			Timeout:        cfg.SummaryTimeout,
			MaxRetries:     cfg.UpstreamMaxRetries,
			CircuitBreaker: breaker,
			Logger:         logger,
			Metrics:        registry,
		})
	}

	contentSvc := usecase.NewContentService(sportsClient, cricketClient, registryClient, usecase.ContentServiceConfig{
		FeedWorkers: cfg.FeedWorkers,
		MaxFeeds:    cfg.FeedMaxSports,
		Logger:      logger,
		Metrics:     registry,
	})
	accountSvc := usecase.NewAccountService(store, logger)
	summarySvc := usecase.NewSummaryService(contentSvc, summarizer)

	handler := httpapi.NewHandler(contentSvc, accountSvc, summarySvc, logger)
	router := httpapi.NewRouter(handler, logger, registry, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	logger.Info("app wired",
		"storage_driver", cfg.StorageDriver,
		"registry_enabled", registryClient != nil,
		"summary_enabled", summarizer != nil,
		"metrics_enabled", registry != nil,
	)

	return server, closeStore, nil
}

func openStorage(ctx context.Context, cfg config.Config, registry *metrics.Registry, logger *logging.Logger) (account.Storage, func() error, error) {
	noop := func() error { return nil }

	var base account.Storage
	closer := noop
	switch cfg.StorageDriver {
	case config.StorageMemory, "":
		instrumented := repository.Instrument(memory.NewKVStore(nil), config.StorageMemory, registry)
		return instrumented, noop, nil
	case config.StorageFile:
		store, err := file.Open(cfg.StorageFileDir)
		if err != nil {
			return nil, nil, fmt.Errorf("open file storage: %w", err)
		}
		base = store
	case config.StorageRedis:
		store, err := redis.Dial(ctx, redis.Config{
			URL:      cfg.RedisURL,
			Prefix:   cfg.RedisKeyPrefix,
			PoolSize: cfg.RedisPoolSize,
			Timeout:  cfg.RedisTimeout,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("dial redis storage: %w", err)
		}
		base, closer = store, store.Close
	case config.StoragePostgres:
		dbName := dbNameFromURL(cfg.DBURL)
		db, err := otelsqlx.Open("postgres", cfg.DBURL,
			otelsql.WithDBSystem("postgresql"),
			otelsql.WithDBName(dbName),
			otelsql.WithQueryFormatter(formatDBQueryForTrace),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres storage: %w", err)
		}
		db.SetMaxOpenConns(cfg.DBMaxOpenConns)
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("ping postgres storage: %w", err)
		}
		base, closer = postgres.NewKVStore(db), db.Close
	default:
		return nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}

	var store account.Storage = repository.Instrument(base, cfg.StorageDriver, registry)
	if cfg.CacheEnabled {
		store = cache.NewKVStore(store, cfg.CacheTTL)
	}
	logger.Info("account storage ready", "driver", cfg.StorageDriver, "cache_enabled", cfg.CacheEnabled)

	return store, closer, nil
}
