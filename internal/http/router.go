package http

import (
	"time"

	"github.com/creative-automation/backend/internal/config"
	"github.com/creative-automation/backend/internal/http/dto"
	"github.com/creative-automation/backend/internal/http/handlers"
	"github.com/creative-automation/backend/internal/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	campaignHandler *handlers.CampaignHandler,
	assetHandler *handlers.AssetHandler,
	wsHub *handlers.WSHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	health := func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{
			Status:           "healthy",
			StorageMode:      cfg.StorageMode(),
			OracleConfigured: cfg.GeminiAPIKey != "",
		})
	}
	app.Get("/", health)
	app.Get("/health", health)

	api := app.Group("/api/v1")
	api.Get("/health", health)

	api.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute))

	// Campaigns
	api.Post("/campaigns/generate", campaignHandler.GenerateCampaign)
	api.Post("/campaigns/parse-brief", campaignHandler.ParseBrief)
	api.Get("/campaigns/:id/status", campaignHandler.GetStatus)
	api.Get("/campaigns/:id/outputs", campaignHandler.ListOutputs)

	// Assets
	api.Post("/assets/upload", assetHandler.UploadAssets)

	// WebSocket
	app.Use("/ws", handlers.WSUpgradeMiddleware())
	app.Get("/ws", websocket.New(wsHub.HandleWS))
}
