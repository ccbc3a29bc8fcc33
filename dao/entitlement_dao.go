// dao/entitlement_dao.go
package dao

import (
	"context"
	"errors"

	"go.uber.org/zap"

	apperrors "github.com/oddsview/matchgate/errors"
	logger "github.com/oddsview/matchgate/logging"
	"github.com/oddsview/matchgate/model"
)

// EntitlementDAO reads cluster policies and entitlement records from an
// authoritative store. Implementations may be arbitrarily slow and are not
// assumed to be strongly consistent with concurrent writers.
type EntitlementDAO interface {
	// FindPolicyByAccessKey resolves an API key to its owning cluster's
	// policy, returning errors.ErrClusterNotFound when no cluster carries
	// the key.
	FindPolicyByAccessKey(ctx context.Context, apiKey string) (*model.ClusterEntitlementPolicy, error)

	// FindRecord looks a record up by match ID alone. Match IDs are globally
	// unique, but the result is not authorization: callers must check the
	// owning cluster before trusting it.
	FindRecord(ctx context.Context, matchID string) (*model.EntitlementRecord, error)

	// FindRecordForCluster looks a record up scoped to its owning cluster.
	// A record owned by a different cluster is reported as not found.
	FindRecordForCluster(ctx context.Context, matchID, clusterName string) (*model.EntitlementRecord, error)

	// Ping reports store liveness for the health surface.
	Ping(ctx context.Context) error
}

// FallbackDAO reads from a primary store and falls back to a legacy store in
// a fixed order. Entitlement data is being migrated between the two; only a
// not-found outcome falls through, infrastructure failures always propagate.
type FallbackDAO struct {
	primary EntitlementDAO
	legacy  EntitlementDAO
}

var _ EntitlementDAO = (*FallbackDAO)(nil)

// NewFallbackDAO composes the primary store with an optional legacy store.
// A nil legacy store makes the composite a pass-through.
func NewFallbackDAO(primary, legacy EntitlementDAO) *FallbackDAO {
	return &FallbackDAO{primary: primary, legacy: legacy}
}

func (dao *FallbackDAO) FindPolicyByAccessKey(ctx context.Context, apiKey string) (*model.ClusterEntitlementPolicy, error) {
	policy, err := dao.primary.FindPolicyByAccessKey(ctx, apiKey)
	if dao.legacy != nil && errors.Is(err, apperrors.ErrClusterNotFound) {
		logger.Debug("Cluster policy not in primary store, trying legacy store")
		return dao.legacy.FindPolicyByAccessKey(ctx, apiKey)
	}
	return policy, err
}

func (dao *FallbackDAO) FindRecord(ctx context.Context, matchID string) (*model.EntitlementRecord, error) {
	record, err := dao.primary.FindRecord(ctx, matchID)
	if dao.legacy != nil && errors.Is(err, apperrors.ErrRecordNotFound) {
		logger.Debug("Record not in primary store, trying legacy store", zap.String("matchID", matchID))
		return dao.legacy.FindRecord(ctx, matchID)
	}
	return record, err
}

func (dao *FallbackDAO) FindRecordForCluster(ctx context.Context, matchID, clusterName string) (*model.EntitlementRecord, error) {
	record, err := dao.primary.FindRecordForCluster(ctx, matchID, clusterName)
	if dao.legacy != nil && errors.Is(err, apperrors.ErrRecordNotFound) {
		logger.Debug("Record not in primary store, trying legacy store", zap.String("matchID", matchID))
		return dao.legacy.FindRecordForCluster(ctx, matchID, clusterName)
	}
	return record, err
}

// Ping probes the primary store only; the legacy store is read best-effort
// and its outage must not fail the health surface.
func (dao *FallbackDAO) Ping(ctx context.Context) error {
	return dao.primary.Ping(ctx)
}
