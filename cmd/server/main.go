package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beautyai/backend/config"
	httpDelivery "github.com/beautyai/backend/internal/delivery/http"
	"github.com/beautyai/backend/internal/domain"
	"github.com/beautyai/backend/internal/infrastructure/cache"
	"github.com/beautyai/backend/internal/infrastructure/catalog"
	"github.com/beautyai/backend/internal/infrastructure/llm"
	"github.com/beautyai/backend/internal/infrastructure/makeup"
	"github.com/beautyai/backend/internal/infrastructure/rainforest"
	"github.com/beautyai/backend/internal/usecase"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting BeautyAI backend",
		zap.String("version", cfg.Server.Version),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("cache", cfg.Cache.Type))

	// Local catalog is built once and shared read-only
	cat := catalog.Build(catalog.Config{
		Seed:                 cfg.Catalog.Seed,
		GeneratedPerCategory: cfg.Catalog.GeneratedPerCategory,
		Aliases:              cfg.Search.CategoryAliases,
	})
	logger.Info("catalog built", zap.Int("products", cat.Len()))

	resultCache, closeCache, err := newCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeCache.Close(); err != nil {
			logger.Warn("closing cache", zap.Error(err))
		}
	}()

	completers := buildCompleters(ctx, cfg, logger)
	productSources := make([]domain.ProductSource, 0, len(completers))
	for _, c := range completers {
		productSources = append(productSources, llm.NewProductSource(c, logger))
	}

	remote := buildRemoteSources(cfg, productSources, logger)

	normalizer := usecase.NewNormalizer(priceBands(cfg), nil)
	aggregator := usecase.NewAggregator(
		remote,
		catalog.NewSource(cat, cfg.Search.GlobalSentinel),
		usecase.AggregatorConfig{SourceTimeout: cfg.Search.SourceTimeout},
		logger,
	)
	logger.Info("search sources", zap.Strings("order", aggregator.Sources()))

	services := httpDelivery.Services{
		Search: usecase.NewSearchService(resultCache, aggregator, normalizer, nil, usecase.SearchServiceConfig{
			CacheTTL:         cfg.Cache.TTL,
			DegradedCacheTTL: cfg.Cache.DegradedTTL,
			DefaultLimit:     cfg.Search.DefaultLimit,
			MaxLimit:         cfg.Search.MaxLimit,
			GlobalSentinel:   cfg.Search.GlobalSentinel,
			RemoteLimit:      cfg.Search.RemoteLimit,
		}, logger),
		Chat: usecase.NewChatService(
			completers,
			cat,
			usecase.NewMatchingService(usecase.MatchConfig{EnableFuzzyMatching: true}, logger),
			usecase.ChatServiceConfig{CompletionTimeout: cfg.LLM.Timeout},
			logger,
		),
		Generate: usecase.NewGenerateService(
			productSources,
			catalog.NewGenerator(nil),
			normalizer,
			usecase.GenerateServiceConfig{SourceTimeout: cfg.LLM.Timeout},
			logger,
		),
		Catalog: cat,
	}

	handler := httpDelivery.NewHandler(services, cfg.Server.Version, logger)
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.Server.RequestTimeout + 5*time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newCache returns the configured search-result cache and its closer
func newCache(ctx context.Context, cfg *config.Config) (domain.CacheRepository, io.Closer, error) {
	switch cfg.Cache.Type {
	case "redis":
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		rc, err := cache.NewRedisCache(pingCtx, cfg.Cache.RedisURL, cfg.Cache.KeyPrefix)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to redis: %w", err)
		}
		return rc, rc, nil
	default:
		mc := cache.NewMemoryCache(0)
		return mc, mc, nil
	}
}

// buildCompleters returns the language models with an API key, in configured order
func buildCompleters(ctx context.Context, cfg *config.Config, logger *zap.Logger) []domain.Completer {
	clientConfig := func(p config.ProviderConfig) llm.ClientConfig {
		return llm.ClientConfig{
			APIKey:   p.APIKey,
			Model:    p.Model,
			BaseURL:  p.BaseURL,
			Timeout:  cfg.LLM.Timeout,
			RetryMax: cfg.LLM.RetryMax,
		}
	}

	var completers []domain.Completer
	for _, name := range cfg.LLM.ProviderOrder {
		switch name {
		case llm.ProviderClaude:
			if cfg.LLM.Claude.APIKey == "" {
				continue
			}
			completers = append(completers, llm.NewClaudeClient(clientConfig(cfg.LLM.Claude), logger))
		case llm.ProviderOpenAI:
			if cfg.LLM.OpenAI.APIKey == "" {
				continue
			}
			completers = append(completers, llm.NewOpenAIClient(clientConfig(cfg.LLM.OpenAI)))
		case llm.ProviderGemini:
			if cfg.LLM.Gemini.APIKey == "" {
				continue
			}
			gc, err := llm.NewGeminiClient(ctx, clientConfig(cfg.LLM.Gemini))
			if err != nil {
				logger.Warn("gemini disabled", zap.Error(err))
				continue
			}
			completers = append(completers, gc)
		}
	}

	names := make([]string, 0, len(completers))
	for _, c := range completers {
		names = append(names, c.Name())
	}
	if len(names) == 0 {
		logger.Warn("no language model configured, chat uses local replies")
	} else {
		logger.Info("language models configured", zap.Strings("order", names))
	}
	return completers
}

// buildRemoteSources lists the enabled search adapters in fan-out order
func buildRemoteSources(cfg *config.Config, llmSources []domain.ProductSource, logger *zap.Logger) []domain.ProductSource {
	var remote []domain.ProductSource

	if cfg.Search.LLMProducts && len(llmSources) > 0 {
		// search fans out to the preferred model only
		remote = append(remote, llmSources[0])
	}

	if cfg.Rainforest.APIKey != "" {
		remote = append(remote, rainforest.NewClient(rainforest.Config{
			APIKey:        cfg.Rainforest.APIKey,
			BaseURL:       cfg.Rainforest.BaseURL,
			AmazonDomain:  cfg.Rainforest.AmazonDomain,
			Timeout:       cfg.Rainforest.Timeout,
			RetryMax:      cfg.Rainforest.RetryMax,
			RatePerSecond: cfg.Rainforest.RatePerSecond,
		}, logger))
	} else {
		logger.Info("rainforest disabled (no api key)")
	}

	if cfg.Makeup.Enabled {
		remote = append(remote, makeup.NewClient(makeup.Config{
			BaseURL:  cfg.Makeup.BaseURL,
			Timeout:  cfg.Makeup.Timeout,
			RetryMax: cfg.Makeup.RetryMax,
		}, logger))
	}

	return remote
}

func priceBands(cfg *config.Config) map[string]usecase.PriceBand {
	bands := make(map[string]usecase.PriceBand, len(cfg.Search.PriceBands))
	for source, band := range cfg.Search.PriceBands {
		bands[source] = usecase.PriceBand{Min: band.Min, Max: band.Max}
	}
	return bands
}
