// test/mock/audit.go
package mock

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/oddsview/matchgate/audit"
)

// MockAuditService is a mock implementation of audit.Service
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) LogCheck(ctx context.Context, log audit.CheckLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockAuditService) QueryLogs(ctx context.Context, from, to time.Time, apiKeyID, matchID string) ([]audit.CheckLog, error) {
	args := m.Called(ctx, from, to, apiKeyID, matchID)
	return args.Get(0).([]audit.CheckLog), args.Error(1)
}
