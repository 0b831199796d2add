package sales_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/samsimpson1/stonks/core/feed"
	"github.com/samsimpson1/stonks/feature/sales"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandleGetStats(t *testing.T) {
	p := newPipeline(t)

	app := fiber.New()
	feature := sales.NewFeature(p.processor, func() feed.State { return feed.StateReceiving }, zap.NewNop())
	assert.Equal(t, "sales", feature.Name())
	assert.True(t, feature.IsEnabled())
	require.NoError(t, feature.Load(app))

	resp, err := app.Test(httptest.NewRequest("GET", "/sales/stats", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var status sales.StatusResponse
	require.NoError(t, json.Unmarshal(body, &status))
	assert.Equal(t, "receiving", status.FeedState)
	assert.Equal(t, sales.Stats{}, status.Stats)
}
