// test/mock/entitlement_dao.go
package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/oddsview/matchgate/model"
)

// MockEntitlementDAO is a mock implementation of dao.EntitlementDAO
type MockEntitlementDAO struct {
	mock.Mock
}

func (m *MockEntitlementDAO) FindPolicyByAccessKey(ctx context.Context, apiKey string) (*model.ClusterEntitlementPolicy, error) {
	args := m.Called(ctx, apiKey)
	if policy := args.Get(0); policy != nil {
		return policy.(*model.ClusterEntitlementPolicy), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEntitlementDAO) FindRecord(ctx context.Context, matchID string) (*model.EntitlementRecord, error) {
	args := m.Called(ctx, matchID)
	if record := args.Get(0); record != nil {
		return record.(*model.EntitlementRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEntitlementDAO) FindRecordForCluster(ctx context.Context, matchID, clusterName string) (*model.EntitlementRecord, error) {
	args := m.Called(ctx, matchID, clusterName)
	if record := args.Get(0); record != nil {
		return record.(*model.EntitlementRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEntitlementDAO) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
