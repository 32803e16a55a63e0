package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/creative-automation/backend/internal/ai"
	"github.com/creative-automation/backend/internal/compliance"
	"github.com/creative-automation/backend/internal/config"
	"github.com/creative-automation/backend/internal/creative"
	"github.com/creative-automation/backend/internal/db"
	"github.com/creative-automation/backend/internal/events"
	apphttp "github.com/creative-automation/backend/internal/http"
	"github.com/creative-automation/backend/internal/http/handlers"
	"github.com/creative-automation/backend/internal/status"
	"github.com/creative-automation/backend/internal/storage"
	"github.com/creative-automation/backend/internal/workflow"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis is optional; without it state and events stay in-process.
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		var err error
		rdb, err = db.NewRedisClient(ctx, cfg.RedisURL, log)
		if err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer rdb.Close()
	}

	// Storage
	store, err := storage.NewLocal(cfg.AssetsDir, cfg.OutputDir, log)
	if err != nil {
		log.Fatal("failed to initialize storage", zap.Error(err))
	}

	// Status store + event bus
	var statusStore status.Store
	var publisher events.Publisher
	var subscriber events.Subscriber
	if rdb != nil {
		statusStore = status.NewRedisStore(rdb, log)
		publisher = events.NewRedisPublisher(rdb, log)
		subscriber = events.NewRedisSubscriber(rdb, log)
	} else {
		statusStore = status.NewMemoryStore()
		bus := events.NewLocalBus()
		publisher = bus
		subscriber = bus
	}

	// Gemini oracles
	gemini, err := ai.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.TextModel, cfg.ImageModel, cfg.OracleTimeout, log)
	if err != nil {
		log.Fatal("failed to initialize gemini client", zap.Error(err))
	}

	// Workflow
	engine := creative.NewEngine(cfg.FontPaths)
	agent := compliance.NewAgent(gemini, cfg.Guidelines(), cfg.ComplianceMaxAttempts, log)
	fanout := workflow.NewFanout(engine, gemini, store, log)
	orchestrator := workflow.NewOrchestrator(agent, fanout, statusStore, publisher, log)

	// Handlers
	campaignHandler := handlers.NewCampaignHandler(orchestrator, statusStore, store, log)
	assetHandler := handlers.NewAssetHandler(store, log)
	wsHub := handlers.NewWSHub(subscriber, log)
	wsHub.Start(ctx)

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit: 32 * 1024 * 1024, // asset uploads
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb, campaignHandler, assetHandler, wsHub)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server",
		zap.String("addr", addr),
		zap.String("storage_mode", cfg.StorageMode()),
	)
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
