package xivapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/samsimpson1/stonks/core/xivapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemName(t *testing.T) {
	var (
		mu        sync.Mutex
		lastQuery string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		lastQuery = r.URL.RawQuery
		mu.Unlock()
		switch r.URL.Path {
		case "/api/sheet/Item/46829":
			_, _ = w.Write([]byte(`{"schema":"Item@1","row_id":46829,"fields":{"Name":"Yan Horn"}}`))
		case "/api/sheet/Item/999999999":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"code":404,"message":"Not Found"}`))
		case "/api/sheet/Item/3":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"code":500,"message":"boom"}`))
		case "/api/sheet/Item/4":
			_, _ = w.Write([]byte(`{"fields":{}}`))
		default:
			_, _ = w.Write([]byte(`<html>rate limited</html>`))
		}
	}))
	defer srv.Close()

	client := xivapi.NewClient(xivapi.Config{BaseURL: srv.URL, TimeoutSeconds: 5})
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		name, err := client.ItemName(ctx, 46829)
		require.NoError(t, err)
		assert.Equal(t, "Yan Horn", name)
		mu.Lock()
		defer mu.Unlock()
		assert.Contains(t, lastQuery, "fields=Name")
		assert.Contains(t, lastQuery, "language=en")
	})

	t.Run("Not Found", func(t *testing.T) {
		_, err := client.ItemName(ctx, 999999999)
		assert.ErrorIs(t, err, xivapi.ErrNotFound)
	})

	t.Run("Other Error Code", func(t *testing.T) {
		_, err := client.ItemName(ctx, 3)
		assert.ErrorIs(t, err, xivapi.ErrMalformed)
	})

	t.Run("Missing Name", func(t *testing.T) {
		_, err := client.ItemName(ctx, 4)
		assert.ErrorIs(t, err, xivapi.ErrMalformed)
	})

	t.Run("Not JSON", func(t *testing.T) {
		_, err := client.ItemName(ctx, 5)
		assert.ErrorIs(t, err, xivapi.ErrMalformed)
	})
}
