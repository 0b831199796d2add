package cmd

import (
	"github.com/samsimpson1/stonks/core/feed"
	"github.com/samsimpson1/stonks/core/loader"
	"github.com/samsimpson1/stonks/core/logger"
	"github.com/samsimpson1/stonks/core/middleware/rayid"
	"github.com/samsimpson1/stonks/feature/sales"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// newStatusApp builds the status server: ray ids, request logging, /health and the
// feature routes.
func newStatusApp(logg *zap.Logger, processor *sales.Processor, subscriber *feed.Subscriber) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// RayID first so every later log line carries it.
	app.Use(rayid.New())
	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Debug("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":     "ok",
			"feed_state": subscriber.State().String(),
		})
	})

	mgr := loader.NewManager()
	mgr.Register(sales.NewFeature(processor, subscriber.State, logg))
	if err := mgr.LoadAll(app); err != nil {
		return nil, err
	}
	return app, nil
}
