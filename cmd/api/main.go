package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/zizouhuweidi/trivia/internal/config"
	"github.com/zizouhuweidi/trivia/internal/database"
	"github.com/zizouhuweidi/trivia/internal/handler"
	"github.com/zizouhuweidi/trivia/internal/logger"
	"github.com/zizouhuweidi/trivia/internal/ratelimit"
	"github.com/zizouhuweidi/trivia/internal/repository/postgres"
	"github.com/zizouhuweidi/trivia/internal/service"
	"github.com/zizouhuweidi/trivia/internal/websocket"
)

func main() {
	// A missing .env is fine; the environment and defaults still apply
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zl.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database connection
	pool, err := database.ConnectPostgres(ctx, cfg.DB)
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if cfg.DB.Migrate {
		if err := database.Migrate(ctx, pool); err != nil {
			zl.Fatal("failed to migrate database", zap.Error(err))
		}
	}

	// Initialize repositories
	categoryRepo := postgres.NewCategoryRepository(pool)
	questionRepo := postgres.NewQuestionRepository(pool)

	// Initialize question feed
	hub := websocket.NewHub(zl)
	go hub.Run(ctx)

	// Initialize services
	triviaService := service.NewTriviaService(categoryRepo, questionRepo, hub)

	// Quiz requests are rate limited only when Redis is configured
	var quizMiddleware []echo.MiddlewareFunc
	if cfg.Redis.Enabled() {
		redisClient, err := database.ConnectRedis(cfg.Redis)
		if err != nil {
			zl.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()

		limiter := ratelimit.New(redisClient, cfg.RateLimit.QuizRequests, cfg.RateLimit.Window)
		quizMiddleware = append(quizMiddleware, handler.RateLimit(limiter, zl))
	}

	// Initialize handlers
	triviaHandler := handler.NewTriviaHandler(triviaService, quizMiddleware...)
	wsHandler := handler.NewWebSocketHandler(hub)

	e := handler.NewServer(zl, pool, triviaHandler, wsHandler)

	// Start server
	go func() {
		zl.Info("starting server", zap.String("addr", cfg.HTTP.Addr), zap.String("env", cfg.Env))
		if err := e.Start(cfg.HTTP.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	<-ctx.Done()
	zl.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		zl.Error("failed to shut down server", zap.Error(err))
	}
}
