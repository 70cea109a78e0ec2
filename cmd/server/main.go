package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"

	"keywordjourney/internal/brand"
	"keywordjourney/internal/cache"
	"keywordjourney/internal/config"
	"keywordjourney/internal/db"
	"keywordjourney/internal/handlers"
	"keywordjourney/internal/insights"
	"keywordjourney/internal/journey"
	"keywordjourney/internal/llm"
	"keywordjourney/internal/logger"
	"keywordjourney/internal/metrics"
	"keywordjourney/internal/report"
	"keywordjourney/internal/searchad"
	"keywordjourney/internal/server"
	"keywordjourney/internal/validation"
)

func main() {
	ctx := context.Background()

	config.LoadDotEnv()
	cfg := config.Load()

	zl := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = zl.Sync() }()
	log := logger.NewZapAdapter(zl)

	yamlCfg, err := config.LoadYAMLConfig()
	if err != nil {
		log.WithError(err).Error("failed to load YAML config", nil)
		os.Exit(1)
	}
	yamlCfg.Apply(cfg)

	for name, u := range map[string]string{"OPENAI_BASE_URL": cfg.OpenAIBaseURL, "NAVER_BASE_URL": cfg.NaverBaseURL} {
		if ok, reason := validation.ValidateURL(u); !ok {
			log.Error("invalid base URL", map[string]interface{}{"var": name, "reason": reason})
			os.Exit(1)
		}
	}

	probes := map[string]handlers.Pinger{}

	// Optional outcome store
	var store metrics.OutcomeStore
	if cfg.DatabaseURL != "" {
		database, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.WithError(err).Error("failed to connect to database", nil)
			os.Exit(1)
		}
		defer database.Close()

		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			log.WithError(err).Error("failed to run migrations", nil)
			os.Exit(1)
		}
		log.Info("migrations completed successfully", nil)
		store = database
		probes["database"] = database
	} else {
		log.Info("DATABASE_URL not set, classification outcomes will not be stored", nil)
	}
	metrics.Register(store, log)
	recorder := metrics.NewRecorder(store, log)

	// Optional redis for the stats cache and the rate limiter
	var storage fiber.Storage
	var statsCache *cache.Stats
	if cfg.RedisURL != "" {
		redisStorage, err := cache.OpenRedis(cfg.RedisURL)
		if err != nil {
			log.WithError(err).Error("failed to connect to redis", nil)
			os.Exit(1)
		}
		defer func() { _ = redisStorage.Close() }()
		storage = redisStorage
		statsCache = cache.NewStats(redisStorage, cfg.StatsCacheTTL, log)
		probes["redis"] = handlers.PingFunc(func(ctx context.Context) error {
			return cache.PingRedis(ctx, redisStorage)
		})
	}

	// Classification and insights backend
	var classifier *journey.Classifier
	var insightGenerator *insights.Generator
	if cfg.HasOpenAI() {
		client := llm.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, &http.Client{Timeout: cfg.LLMTimeout})
		classifier = journey.NewClassifier(client, journey.Options{
			BatchSize:      cfg.BatchSize,
			MaxConcurrency: cfg.MaxConcurrentBatches,
			Retry: journey.RetryPolicy{
				MaxRetries: cfg.MaxRetries,
				BaseDelay:  cfg.RetryBaseDelay,
			},
		}, log)
		insightGenerator = insights.NewGenerator(client, cfg.InsightModel, log)
	} else {
		log.Warn("OPENAI_API_KEY not set, classification and insights use dummy data", nil)
		insightGenerator = insights.NewGenerator(nil, cfg.InsightModel, log)
	}

	// Keyword statistics provider
	var provider searchad.Provider
	if cfg.HasNaver() {
		provider = searchad.NewClient(searchad.Credentials{
			APIKey:     cfg.NaverAPIKey,
			SecretKey:  cfg.NaverSecretKey,
			CustomerID: cfg.NaverCustomerID,
		}, cfg.NaverBaseURL, &http.Client{Timeout: 30 * time.Second})
	} else {
		log.Warn("Naver SearchAd credentials not set, keyword statistics use dummy data", nil)
	}
	stats := searchad.NewService(provider, statsCache, log)

	srv := server.New(cfg, storage, log)
	srv.RegisterRoutes(server.Dependencies{
		Classifier: classifier,
		Dummy:      journey.NewDummyClassifier(dummyRules(yamlCfg)),
		Recorder:   recorder,
		Stats:      stats,
		Insights:   insightGenerator,
		Brands:     brand.NewAnalyzer(stats),
		Reports:    report.NewRenderer(cfg.SiteTitle),
		Probes:     probes,
	})

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.WithError(err).Error("server error", nil)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server", nil)
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server forced to shutdown", nil)
	}
	recorder.Wait()
	log.Info("server exited", nil)
}

func dummyRules(c *config.YAMLConfig) []journey.Rule {
	var rules []journey.Rule
	for _, r := range c.GetDummyRules() {
		stage, ok := journey.ParseStage(r.Stage)
		if !ok {
			continue
		}
		rules = append(rules, journey.Rule{Stage: stage, Contains: r.Contains})
	}
	return rules
}
