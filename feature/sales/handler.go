package sales

import (
	"github.com/samsimpson1/stonks/core/feed"
	"github.com/samsimpson1/stonks/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// StatusResponse is the body of GET /sales/stats.
type StatusResponse struct {
	FeedState string `json:"feed_state"`
	Stats     Stats  `json:"stats"`
}

// Handler exposes ingestion status over HTTP.
type Handler struct {
	processor *Processor
	feedState func() feed.State
	logger    *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(processor *Processor, feedState func() feed.State, logger *zap.Logger) *Handler {
	return &Handler{processor: processor, feedState: feedState, logger: logger}
}

// RegisterRoutes registers the sales routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sales")
	group.Get("/stats", h.HandleGetStats)
}

// HandleGetStats returns the processing counters and the feed connection state.
func (h *Handler) HandleGetStats(c *fiber.Ctx) error {
	resp := StatusResponse{
		FeedState: h.feedState().String(),
		Stats:     h.processor.Stats(),
	}
	logger.WithRayID(h.logger, c).Debug("Serving ingestion stats", zap.Uint64("admitted", resp.Stats.Admitted))
	return c.JSON(resp)
}
