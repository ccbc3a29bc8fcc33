// dao/fallback_dao_test.go
package dao_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/oddsview/matchgate/dao"
	apperrors "github.com/oddsview/matchgate/errors"
	logger "github.com/oddsview/matchgate/logging"
	"github.com/oddsview/matchgate/model"
	mocks "github.com/oddsview/matchgate/test/mock"
)

func TestFallbackDAO(t *testing.T) {
	logger.InitLogger()
	defer logger.Sync()

	policy := &model.ClusterEntitlementPolicy{ClusterName: "alpha", APIKey: "k1"}
	record := &model.EntitlementRecord{MatchID: "m1", ClusterName: "alpha"}

	t.Run("PrimaryHit_LegacyNotConsulted", func(t *testing.T) {
		primary := new(mocks.MockEntitlementDAO)
		legacy := new(mocks.MockEntitlementDAO)
		fallback := dao.NewFallbackDAO(primary, legacy)

		primary.On("FindPolicyByAccessKey", mock.Anything, "k1").Return(policy, nil)

		got, err := fallback.FindPolicyByAccessKey(context.Background(), "k1")
		assert.NoError(t, err)
		assert.Equal(t, policy, got)
		legacy.AssertNotCalled(t, "FindPolicyByAccessKey")
	})

	t.Run("PrimaryNotFound_LegacyConsulted", func(t *testing.T) {
		primary := new(mocks.MockEntitlementDAO)
		legacy := new(mocks.MockEntitlementDAO)
		fallback := dao.NewFallbackDAO(primary, legacy)

		primary.On("FindRecordForCluster", mock.Anything, "m1", "alpha").
			Return(nil, apperrors.ErrRecordNotFound)
		legacy.On("FindRecordForCluster", mock.Anything, "m1", "alpha").Return(record, nil)

		got, err := fallback.FindRecordForCluster(context.Background(), "m1", "alpha")
		assert.NoError(t, err)
		assert.Equal(t, record, got)
	})

	t.Run("PrimaryInfraFailure_Propagates", func(t *testing.T) {
		primary := new(mocks.MockEntitlementDAO)
		legacy := new(mocks.MockEntitlementDAO)
		fallback := dao.NewFallbackDAO(primary, legacy)

		infraErr := errors.New("server selection timeout")
		primary.On("FindRecord", mock.Anything, "m1").Return(nil, infraErr)

		_, err := fallback.FindRecord(context.Background(), "m1")
		assert.ErrorIs(t, err, infraErr)
		legacy.AssertNotCalled(t, "FindRecord")
	})

	t.Run("NoLegacyStore_NotFoundPropagates", func(t *testing.T) {
		primary := new(mocks.MockEntitlementDAO)
		fallback := dao.NewFallbackDAO(primary, nil)

		primary.On("FindRecord", mock.Anything, "m1").Return(nil, apperrors.ErrRecordNotFound)

		_, err := fallback.FindRecord(context.Background(), "m1")
		assert.ErrorIs(t, err, apperrors.ErrRecordNotFound)
	})

	t.Run("Ping_PrimaryOnly", func(t *testing.T) {
		primary := new(mocks.MockEntitlementDAO)
		legacy := new(mocks.MockEntitlementDAO)
		fallback := dao.NewFallbackDAO(primary, legacy)

		primary.On("Ping", mock.Anything).Return(nil)

		assert.NoError(t, fallback.Ping(context.Background()))
		legacy.AssertNotCalled(t, "Ping")
	})
}
