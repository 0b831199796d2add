package cmd

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/samsimpson1/stonks/core/feed"
	"github.com/samsimpson1/stonks/core/middleware/rayid"
	"github.com/samsimpson1/stonks/feature/sales"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStatusApp(t *testing.T) {
	processor := sales.NewProcessor(nil, nil, nil, zap.NewNop())
	subscriber := feed.NewSubscriber(feed.Config{}, nil, processor, zap.NewNop())

	app, err := newStatusApp(zap.NewNop(), processor, subscriber)
	require.NoError(t, err)

	t.Run("Health", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, resp.Header.Get(rayid.Header))

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "ok", body["status"])
		assert.Equal(t, "disconnected", body["feed_state"])
	})

	t.Run("Stats", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/sales/stats", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}
