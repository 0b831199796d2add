package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Lookup is a mock implementation of names.Lookup
type Lookup struct {
	mock.Mock
}

func (m *Lookup) ItemName(ctx context.Context, itemID int64) (string, error) {
	args := m.Called(ctx, itemID)
	return args.String(0), args.Error(1)
}
