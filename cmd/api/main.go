// @title AI Quiz Backend API
// @version 1.0
// @description Generates multiple-choice quizzes from a topic description via a configurable LLM provider, with a deterministic mock fallback.
// @host localhost:8080
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/leeman-woodside/ai-quiz-backend/internal/adapter"
	"github.com/leeman-woodside/ai-quiz-backend/internal/adapter/quizgen"
	"github.com/leeman-woodside/ai-quiz-backend/internal/cache"
	"github.com/leeman-woodside/ai-quiz-backend/internal/config"
	"github.com/leeman-woodside/ai-quiz-backend/internal/domain"
	"github.com/leeman-woodside/ai-quiz-backend/internal/handler"
	"github.com/leeman-woodside/ai-quiz-backend/internal/logger"
	"github.com/leeman-woodside/ai-quiz-backend/internal/middleware"
	"github.com/leeman-woodside/ai-quiz-backend/internal/service"
	"github.com/leeman-woodside/ai-quiz-backend/internal/util"

	_ "github.com/leeman-woodside/ai-quiz-backend/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		requestID := util.NewULID()
		c.Set("X-Request-ID", requestID)

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("request_id", requestID),
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Quiz generator: provider-backed, or mock-pinned when mock mode is on or
	// the configured provider cannot be used.
	generator, err := quizgen.NewLLMQuizGenerator(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create quiz generator", zap.Error(err))
	}

	// Optional response cache. An empty address disables it; a configured but
	// unreachable Redis is a hard startup failure.
	var cacheAdapter domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("Response cache enabled",
			zap.String("address", cfg.Redis.Address),
			zap.Duration("ttl", cfg.Cache.TTL))
	}

	quizService := service.NewQuizService(generator, cacheAdapter, cfg)
	quizHandler := handler.NewQuizHandler(quizService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  20 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  20 * time.Second,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigin,
		AllowCredentials: true,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		MaxAge:           300,
	}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	apiGroup := app.Group("/api")
	apiGroup.Post("/generate-quiz", quizHandler.GenerateQuiz)

	go func() {
		appLogger.Info("Starting server",
			zap.Int("port", cfg.Server.Port),
			zap.String("provider", cfg.LLM.Provider),
			zap.Bool("use_mock", cfg.LLM.UseMock))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
