package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"

	"relcheck/internal/logger"
	"relcheck/internal/pipeline"
)

// New builds the fiber application with all routes registered.
func New(p pipeline.Pipeline, log logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "relcheck",
		// Long transcripts can be pasted wholesale into the request body.
		BodyLimit: 10 * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(fiberlogger.New())

	h := &Handler{Pipeline: p, Logger: log}

	app.Get("/health", h.Health)

	apiV1 := app.Group("/api/v1")
	apiV1.Post("/analyze", h.Analyze)

	return app
}
