// test/mock/status_cache.go
package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/oddsview/matchgate/model"
)

// MockStatusCache is a mock implementation of cache.Store
type MockStatusCache struct {
	mock.Mock
}

func (m *MockStatusCache) Get(ctx context.Context, apiKey, matchID string) (model.CachedStatus, bool, error) {
	args := m.Called(ctx, apiKey, matchID)
	return args.Get(0).(model.CachedStatus), args.Bool(1), args.Error(2)
}

func (m *MockStatusCache) Set(ctx context.Context, apiKey, matchID string, entry model.CachedStatus) error {
	args := m.Called(ctx, apiKey, matchID, entry)
	return args.Error(0)
}

func (m *MockStatusCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
