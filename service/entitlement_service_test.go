package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "github.com/oddsview/matchgate/errors"
	logger "github.com/oddsview/matchgate/logging"
	"github.com/oddsview/matchgate/model"
	mocks "github.com/oddsview/matchgate/test/mock"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func timePtr(t time.Time) *time.Time { return &t }

func newTestService(t *testing.T) (*EntitlementService, *mocks.MockEntitlementDAO, *mocks.MockStatusCache) {
	t.Helper()
	if logger.Log == nil {
		logger.InitLogger()
	}
	daoMock := new(mocks.MockEntitlementDAO)
	cacheMock := new(mocks.MockStatusCache)
	svc := NewEntitlementService(daoMock, cacheMock, nil, nil)
	svc.now = func() time.Time { return testNow }
	return svc, daoMock, cacheMock
}

func TestCheck_MissingParameters_NoCollaboratorCalls(t *testing.T) {
	svc, daoMock, cacheMock := newTestService(t)

	for _, pair := range [][2]string{{"", "m1"}, {"k1", ""}, {"", ""}} {
		_, err := svc.Check(context.Background(), pair[0], pair[1])
		assert.ErrorIs(t, err, apperrors.ErrMissingParameters)
	}

	cacheMock.AssertNotCalled(t, "Get")
	daoMock.AssertNotCalled(t, "FindPolicyByAccessKey")
}

func TestCheck_PositiveCacheHit_NoStoreRead(t *testing.T) {
	svc, daoMock, cacheMock := newTestService(t)

	cacheMock.On("Get", mock.Anything, "k1", "m1").
		Return(model.CachedStatus{Status: model.StatusPaidActive, IsActive: true}, true, nil)

	status, err := svc.Check(context.Background(), "k1", "m1")
	assert.NoError(t, err)
	assert.Equal(t, model.StatusPaidActive, status)

	daoMock.AssertNotCalled(t, "FindPolicyByAccessKey")
	daoMock.AssertNotCalled(t, "FindRecordForCluster")
	cacheMock.AssertNotCalled(t, "Set")
}

func TestCheck_CachedExpired_ReconciledToPaidActive(t *testing.T) {
	svc, daoMock, cacheMock := newTestService(t)

	cached := model.CachedStatus{Status: model.StatusExpired, CachedAt: testNow.Add(-30 * time.Minute)}
	policy := &model.ClusterEntitlementPolicy{ClusterName: "alpha", APIKey: "k1", TrialPeriodDays: 7}
	// valid_until was extended after the entry was cached
	record := &model.EntitlementRecord{
		MatchID:     "m1",
		ClusterName: "alpha",
		CreatedOn:   testNow.AddDate(0, 0, -30),
		ValidUntil:  timePtr(testNow.AddDate(0, 0, 30)),
	}

	cacheMock.On("Get", mock.Anything, "k1", "m1").Return(cached, true, nil)
	daoMock.On("FindPolicyByAccessKey", mock.Anything, "k1").Return(policy, nil)
	daoMock.On("FindRecordForCluster", mock.Anything, "m1", "alpha").Return(record, nil)
	cacheMock.On("Set", mock.Anything, "k1", "m1", mock.MatchedBy(func(entry model.CachedStatus) bool {
		return entry.Status == model.StatusPaidActive && entry.IsActive
	})).Return(nil)

	status, err := svc.Check(context.Background(), "k1", "m1")
	assert.NoError(t, err)
	assert.Equal(t, model.StatusPaidActive, status)

	cacheMock.AssertExpectations(t)
	daoMock.AssertExpectations(t)
}

func TestCheck_CachedExpired_StillExpired_CacheUntouched(t *testing.T) {
	svc, daoMock, cacheMock := newTestService(t)

	cached := model.CachedStatus{Status: model.StatusExpired}
	policy := &model.ClusterEntitlementPolicy{ClusterName: "alpha", APIKey: "k1"}
	record := &model.EntitlementRecord{
		MatchID:     "m1",
		ClusterName: "alpha",
		CreatedOn:   testNow.AddDate(0, 0, -30),
		ValidUntil:  timePtr(testNow.AddDate(0, 0, -1)),
	}

	cacheMock.On("Get", mock.Anything, "k1", "m1").Return(cached, true, nil)
	daoMock.On("FindPolicyByAccessKey", mock.Anything, "k1").Return(policy, nil)
	daoMock.On("FindRecordForCluster", mock.Anything, "m1", "alpha").Return(record, nil)

	status, err := svc.Check(context.Background(), "k1", "m1")
	assert.NoError(t, err)
	assert.Equal(t, model.StatusExpired, status)

	cacheMock.AssertNotCalled(t, "Set")
}

func TestCheck_CachedExpired_RecordVanished(t *testing.T) {
	svc, daoMock, cacheMock := newTestService(t)

	cacheMock.On("Get", mock.Anything, "k1", "m1").
		Return(model.CachedStatus{Status: model.StatusExpired}, true, nil)
	daoMock.On("FindPolicyByAccessKey", mock.Anything, "k1").
		Return(&model.ClusterEntitlementPolicy{ClusterName: "alpha"}, nil)
	daoMock.On("FindRecordForCluster", mock.Anything, "m1", "alpha").
		Return(nil, apperrors.ErrRecordNotFound)

	status, err := svc.Check(context.Background(), "k1", "m1")
	assert.NoError(t, err)
	assert.Equal(t, model.StatusRecordNotFound, status)
}

func TestCheck_CacheMiss_TrialPrecedence(t *testing.T) {
	svc, daoMock, cacheMock := newTestService(t)

	policy := &model.ClusterEntitlementPolicy{ClusterName: "alpha", APIKey: "k1", TrialPeriodDays: 7}
	record := &model.EntitlementRecord{
		MatchID:     "m1",
		ClusterName: "alpha",
		CreatedOn:   testNow.AddDate(0, 0, -2),
		ValidUntil:  timePtr(testNow.AddDate(0, 0, 5)),
		IsTrial:     true,
	}

	cacheMock.On("Get", mock.Anything, "k1", "m1").Return(model.CachedStatus{}, false, nil)
	daoMock.On("FindPolicyByAccessKey", mock.Anything, "k1").Return(policy, nil)
	daoMock.On("FindRecordForCluster", mock.Anything, "m1", "alpha").Return(record, nil)
	cacheMock.On("Set", mock.Anything, "k1", "m1", mock.MatchedBy(func(entry model.CachedStatus) bool {
		return entry.Status == model.StatusTrialActive && entry.IsTrial && entry.TrialPeriodDays == 7
	})).Return(nil)

	status, err := svc.Check(context.Background(), "k1", "m1")
	assert.NoError(t, err)
	assert.Equal(t, model.StatusTrialActive, status)

	cacheMock.AssertExpectations(t)
}

func TestCheck_CacheMiss_NoTrialPeriod_PaidActive(t *testing.T) {
	svc, daoMock, cacheMock := newTestService(t)

	policy := &model.ClusterEntitlementPolicy{ClusterName: "alpha", APIKey: "k1", TrialPeriodDays: 0}
	record := &model.EntitlementRecord{
		MatchID:     "m1",
		ClusterName: "alpha",
		CreatedOn:   testNow.AddDate(0, 0, -2),
		ValidUntil:  timePtr(testNow.AddDate(0, 0, 5)),
		IsTrial:     true,
	}

	cacheMock.On("Get", mock.Anything, "k1", "m1").Return(model.CachedStatus{}, false, nil)
	daoMock.On("FindPolicyByAccessKey", mock.Anything, "k1").Return(policy, nil)
	daoMock.On("FindRecordForCluster", mock.Anything, "m1", "alpha").Return(record, nil)
	cacheMock.On("Set", mock.Anything, "k1", "m1", mock.Anything).Return(nil)

	status, err := svc.Check(context.Background(), "k1", "m1")
	assert.NoError(t, err)
	assert.Equal(t, model.StatusPaidActive, status)
}

func TestCheck_CacheMiss_UnknownKey_NotCached(t *testing.T) {
	svc, daoMock, cacheMock := newTestService(t)

	cacheMock.On("Get", mock.Anything, "bogus", "m1").Return(model.CachedStatus{}, false, nil)
	daoMock.On("FindPolicyByAccessKey", mock.Anything, "bogus").
		Return(nil, apperrors.ErrClusterNotFound)

	status, err := svc.Check(context.Background(), "bogus", "m1")
	assert.NoError(t, err)
	assert.Equal(t, model.StatusKeyInvalid, status)

	cacheMock.AssertNotCalled(t, "Set")
	daoMock.AssertNotCalled(t, "FindRecordForCluster")
}

// A not-found outcome is never cached: every repeat probe for an unknown
// match ID goes back to the store, so a record provisioned moments later is
// visible immediately.
func TestCheck_UnknownMatchID_StoreReadEveryTime(t *testing.T) {
	svc, daoMock, cacheMock := newTestService(t)

	policy := &model.ClusterEntitlementPolicy{ClusterName: "alpha", APIKey: "k1"}
	cacheMock.On("Get", mock.Anything, "k1", "missing").Return(model.CachedStatus{}, false, nil)
	daoMock.On("FindPolicyByAccessKey", mock.Anything, "k1").Return(policy, nil)
	daoMock.On("FindRecordForCluster", mock.Anything, "missing", "alpha").
		Return(nil, apperrors.ErrRecordNotFound)

	for i := 0; i < 2; i++ {
		status, err := svc.Check(context.Background(), "k1", "missing")
		assert.NoError(t, err)
		assert.Equal(t, model.StatusRecordNotFound, status)
	}

	daoMock.AssertNumberOfCalls(t, "FindRecordForCluster", 2)
	cacheMock.AssertNotCalled(t, "Set")
}

// Two checks within the TTL with no record change: one store read on the
// first call, none on the second.
func TestCheck_Idempotent_SingleStoreRead(t *testing.T) {
	svc, daoMock, cacheMock := newTestService(t)

	policy := &model.ClusterEntitlementPolicy{ClusterName: "alpha", APIKey: "k1"}
	record := &model.EntitlementRecord{
		MatchID:     "m1",
		ClusterName: "alpha",
		CreatedOn:   testNow.AddDate(0, 0, -2),
		ValidUntil:  timePtr(testNow.AddDate(0, 0, 5)),
	}
	entry := model.NewCachedStatus(model.StatusPaidActive, *record, *policy, testNow)

	cacheMock.On("Get", mock.Anything, "k1", "m1").Return(model.CachedStatus{}, false, nil).Once()
	cacheMock.On("Get", mock.Anything, "k1", "m1").Return(entry, true, nil).Once()
	daoMock.On("FindPolicyByAccessKey", mock.Anything, "k1").Return(policy, nil).Once()
	daoMock.On("FindRecordForCluster", mock.Anything, "m1", "alpha").Return(record, nil).Once()
	cacheMock.On("Set", mock.Anything, "k1", "m1", mock.Anything).Return(nil).Once()

	first, err := svc.Check(context.Background(), "k1", "m1")
	assert.NoError(t, err)
	second, err := svc.Check(context.Background(), "k1", "m1")
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	daoMock.AssertNumberOfCalls(t, "FindPolicyByAccessKey", 1)
	daoMock.AssertNumberOfCalls(t, "FindRecordForCluster", 1)
}

func TestCheck_CacheOutage_FallsThroughToStore(t *testing.T) {
	svc, daoMock, cacheMock := newTestService(t)

	policy := &model.ClusterEntitlementPolicy{ClusterName: "alpha", APIKey: "k1"}
	record := &model.EntitlementRecord{
		MatchID:     "m1",
		ClusterName: "alpha",
		CreatedOn:   testNow.AddDate(0, 0, -2),
		ValidUntil:  timePtr(testNow.AddDate(0, 0, 5)),
	}

	cacheMock.On("Get", mock.Anything, "k1", "m1").
		Return(model.CachedStatus{}, false, errors.New("connection refused"))
	daoMock.On("FindPolicyByAccessKey", mock.Anything, "k1").Return(policy, nil)
	daoMock.On("FindRecordForCluster", mock.Anything, "m1", "alpha").Return(record, nil)
	cacheMock.On("Set", mock.Anything, "k1", "m1", mock.Anything).
		Return(errors.New("connection refused"))

	status, err := svc.Check(context.Background(), "k1", "m1")
	assert.NoError(t, err)
	assert.Equal(t, model.StatusPaidActive, status)
}

func TestCheck_StoreFailure_NeverMaskedAsDomainOutcome(t *testing.T) {
	svc, daoMock, cacheMock := newTestService(t)

	cacheMock.On("Get", mock.Anything, "k1", "m1").Return(model.CachedStatus{}, false, nil)
	daoMock.On("FindPolicyByAccessKey", mock.Anything, "k1").
		Return(nil, errors.New("server selection timeout"))

	status, err := svc.Check(context.Background(), "k1", "m1")
	assert.ErrorIs(t, err, apperrors.ErrDatabaseOperation)
	assert.Empty(t, status)
}

func TestHealth(t *testing.T) {
	t.Run("BothCollaboratorsUp", func(t *testing.T) {
		svc, daoMock, cacheMock := newTestService(t)
		daoMock.On("Ping", mock.Anything).Return(nil)
		cacheMock.On("Ping", mock.Anything).Return(nil)

		assert.NoError(t, svc.Health(context.Background()))
	})

	t.Run("CacheDown", func(t *testing.T) {
		svc, daoMock, cacheMock := newTestService(t)
		daoMock.On("Ping", mock.Anything).Return(nil)
		cacheMock.On("Ping", mock.Anything).Return(errors.New("connection refused"))

		assert.Error(t, svc.Health(context.Background()))
	})
}
