package names

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/samsimpson1/stonks/core/xivapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseItemIDs(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	input := "46829\n\n  3 \nshard\n-1\n"

	ids, err := ParseItemIDs(strings.NewReader(input), zap.New(core))
	require.NoError(t, err)
	assert.Equal(t, []int64{46829, 3, -1}, ids)

	invalid := logs.FilterMessage("Skipping invalid item id").All()
	require.Len(t, invalid, 1)
	assert.Equal(t, int64(4), invalid[0].ContextMap()["line"])
}

func TestResolveAll(t *testing.T) {
	resolver, store, lookup, _ := newTestResolver(t)
	ctx := context.Background()

	require.NoError(t, store.InsertItemName(ctx, 1, "Fire Shard"))
	lookup.On("ItemName", mock.Anything, int64(2)).Return("Ice Shard", nil).Once()
	lookup.On("ItemName", mock.Anything, int64(3)).Return("", fmt.Errorf("%w: item 3", xivapi.ErrNotFound)).Once()
	lookup.On("ItemName", mock.Anything, int64(4)).Return("", fmt.Errorf("%w: item 4", xivapi.ErrMalformed)).Once()

	res, err := resolver.ResolveAll(ctx, []int64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, RetryResult{Resolved: 3, Unresolved: 1}, res)

	name, found, err := store.LookupItemName(ctx, 3)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Unknown Item 3", name)

	_, found, err = store.LookupItemName(ctx, 4)
	require.NoError(t, err)
	assert.False(t, found)
	lookup.AssertExpectations(t)
}
