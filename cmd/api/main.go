package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"journal-llm/internal/config"
	"journal-llm/internal/db"
	apihttp "journal-llm/internal/http"
	"journal-llm/internal/llm"
	"journal-llm/internal/repository"
	"journal-llm/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	ctxPing, cancelPing := context.WithTimeout(ctx, 5*time.Second)
	if err := db.Ping(ctxPing, pool); err != nil {
		logger.Fatal("db ping", zap.Error(err))
	}
	cancelPing()

	entryRepo := repository.NewPgEntryRepository(pool)
	moodRepo := repository.NewPgMoodRepository(pool)
	promptRepo := repository.NewPgPromptRepository(pool)

	statsCache := service.NewMemoryStatsCache(cfg.StatsCacheTTL)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxRedis, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxRedis).Err(); err != nil {
			logger.Warn("redis ping failed, using in-process stats cache", zap.Error(err))
		} else {
			statsCache = service.NewRedisStatsCache(redisClient, cfg.StatsCacheTTL)
		}
		cancel()
	}

	ollama := llm.NewOllamaClient(cfg.OllamaURL, cfg.OllamaModel, logger)
	modelClf := service.NewModelClassifier(ollama, logger)
	ruleClf := service.NewRuleClassifier()
	validator := service.NewEmotionValidator(logger)
	moodSvc := service.NewMoodService(modelClf, ruleClf, validator, cfg.AnalysisTimeout, logger)

	journalSvc := service.NewJournalService(logger, entryRepo, moodRepo, moodSvc, statsCache, cfg.MaxEntryLength)
	analyticsSvc := service.NewAnalyticsService(logger, moodRepo, statsCache)
	reflectionSvc := service.NewReflectionService(logger, entryRepo, promptRepo)

	entryHandler := apihttp.NewEntryHandler(logger, journalSvc)
	analyticsHandler := apihttp.NewAnalyticsHandler(logger, analyticsSvc)
	reflectionHandler := apihttp.NewReflectionHandler(logger, reflectionSvc)
	router := apihttp.NewRouter(logger, entryHandler, analyticsHandler, reflectionHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
