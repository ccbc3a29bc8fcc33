package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/oddsview/matchgate/audit"
	"github.com/oddsview/matchgate/cache"
	"github.com/oddsview/matchgate/dao"
	apperrors "github.com/oddsview/matchgate/errors"
	logger "github.com/oddsview/matchgate/logging"
	"github.com/oddsview/matchgate/model"
	"github.com/oddsview/matchgate/resolver"
	"github.com/oddsview/matchgate/util"
)

const eventEntitlementChecked = "entitlement.checked"

// IEntitlementService is the interface for the entitlement lookup service
type IEntitlementService interface {
	Check(ctx context.Context, apiKey, matchID string) (model.Status, error)
	Health(ctx context.Context) error
}

// CheckedEvent is the payload published after every completed check.
type CheckedEvent struct {
	APIKey   string
	MatchID  string
	Status   model.Status
	CacheHit bool
	At       time.Time
}

// EntitlementService answers whether an entitlement is currently valid, and
// under which tier, using a cache-aside flow over the authoritative store.
//
// The cache policy is asymmetric on purpose: a cached positive status is
// trusted until its TTL lapses, because an active entitlement can only decay.
// A cached Expired status is always reconciled against the store, because a
// payment or a freshly provisioned trial can reactivate it while the stale
// entry still sits in cache.
type EntitlementService struct {
	entitlementDAO dao.EntitlementDAO
	statusCache    cache.Store
	auditService   audit.Service
	eventBus       *util.EventBus
	now            func() time.Time
}

var _ IEntitlementService = (*EntitlementService)(nil)

// NewEntitlementService creates a new instance of EntitlementService
func NewEntitlementService(entitlementDAO dao.EntitlementDAO, statusCache cache.Store, auditService audit.Service, eventBus *util.EventBus) *EntitlementService {
	service := &EntitlementService{
		entitlementDAO: entitlementDAO,
		statusCache:    statusCache,
		auditService:   auditService,
		eventBus:       eventBus,
		now:            time.Now,
	}

	// Set up event subscriptions
	if eventBus != nil && auditService != nil {
		eventBus.Subscribe(eventEntitlementChecked, service.handleEntitlementChecked)
	}

	return service
}

func (s *EntitlementService) handleEntitlementChecked(ctx context.Context, event util.Event) error {
	payload, ok := event.Payload.(CheckedEvent)
	if !ok {
		logger.Error("Invalid event payload type", zap.Any("payload", event.Payload))
		return fmt.Errorf("invalid event payload type: %T", event.Payload)
	}

	return s.auditService.LogCheck(ctx, audit.CheckLog{
		Timestamp: payload.At,
		APIKeyID:  audit.APIKeyID(payload.APIKey),
		MatchID:   payload.MatchID,
		Status:    string(payload.Status),
		CacheHit:  payload.CacheHit,
	})
}

func (s *EntitlementService) publishChecked(ctx context.Context, apiKey, matchID string, status model.Status, cacheHit bool) {
	if s.eventBus == nil {
		return
	}
	s.eventBus.Publish(ctx, eventEntitlementChecked, CheckedEvent{
		APIKey:   apiKey,
		MatchID:  matchID,
		Status:   status,
		CacheHit: cacheHit,
		At:       s.now(),
	})
}

// Check resolves the current status of the (apiKey, matchID) entitlement.
//
// Domain outcomes (KeyInvalid, RecordNotFound, Expired) come back as Status
// values, not errors; the error return is reserved for caller mistakes
// (ErrMissingParameters) and collaborator failures. A store failure is never
// downgraded to a domain outcome. A cache failure is downgraded to a forced
// miss so a cache outage cannot take down resolution.
func (s *EntitlementService) Check(ctx context.Context, apiKey, matchID string) (model.Status, error) {
	if apiKey == "" || matchID == "" {
		return "", apperrors.ErrMissingParameters
	}

	cached, hit, err := s.statusCache.Get(ctx, apiKey, matchID)
	if err != nil {
		logger.Warn("Cache read failed, falling through to store",
			zap.Error(err), zap.String("matchID", matchID))
		hit = false
	}

	if hit {
		if cached.Status.IsPositive() {
			// Positive statuses only decay; no store read needed until the
			// entry expires.
			s.publishChecked(ctx, apiKey, matchID, cached.Status, true)
			return cached.Status, nil
		}
		status, err := s.reconcile(ctx, apiKey, matchID, cached)
		if err != nil {
			return "", err
		}
		s.publishChecked(ctx, apiKey, matchID, status, true)
		return status, nil
	}

	status, err := s.resolveAndCache(ctx, apiKey, matchID)
	if err != nil {
		return "", err
	}
	s.publishChecked(ctx, apiKey, matchID, status, false)
	return status, nil
}

// reconcile revalidates a cached Expired entry against the store and
// overwrites the entry when the recomputed status differs.
func (s *EntitlementService) reconcile(ctx context.Context, apiKey, matchID string, cached model.CachedStatus) (model.Status, error) {
	policy, err := s.entitlementDAO.FindPolicyByAccessKey(ctx, apiKey)
	if errors.Is(err, apperrors.ErrClusterNotFound) {
		// The cluster dropped the key after the entry was cached.
		return model.StatusKeyInvalid, nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrDatabaseOperation, err)
	}

	record, err := s.entitlementDAO.FindRecordForCluster(ctx, matchID, policy.ClusterName)
	if errors.Is(err, apperrors.ErrRecordNotFound) {
		return model.StatusRecordNotFound, nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrDatabaseOperation, err)
	}

	now := s.now()
	status := resolver.Resolve(*record, policy.TrialPeriodDays, now)
	if status != cached.Status {
		logger.Info("Reconciled stale cached status",
			zap.String("matchID", matchID),
			zap.String("from", string(cached.Status)),
			zap.String("to", string(status)))
		entry := model.NewCachedStatus(status, *record, *policy, now)
		if err := s.statusCache.Set(ctx, apiKey, matchID, entry); err != nil {
			logger.Warn("Failed to update cache after reconciliation",
				zap.Error(err), zap.String("matchID", matchID))
		}
	}
	return status, nil
}

// resolveAndCache handles a cache miss: authoritative reads, resolution, and
// cache population. KeyInvalid and RecordNotFound are never cached, so
// unauthenticated probes cannot poison entries and a record provisioned
// moments later is visible immediately.
func (s *EntitlementService) resolveAndCache(ctx context.Context, apiKey, matchID string) (model.Status, error) {
	policy, err := s.entitlementDAO.FindPolicyByAccessKey(ctx, apiKey)
	if errors.Is(err, apperrors.ErrClusterNotFound) {
		return model.StatusKeyInvalid, nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrDatabaseOperation, err)
	}

	record, err := s.entitlementDAO.FindRecordForCluster(ctx, matchID, policy.ClusterName)
	if errors.Is(err, apperrors.ErrRecordNotFound) {
		return model.StatusRecordNotFound, nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrDatabaseOperation, err)
	}

	now := s.now()
	status := resolver.Resolve(*record, policy.TrialPeriodDays, now)

	entry := model.NewCachedStatus(status, *record, *policy, now)
	if err := s.statusCache.Set(ctx, apiKey, matchID, entry); err != nil {
		logger.Warn("Failed to populate cache",
			zap.Error(err), zap.String("matchID", matchID))
	}

	return status, nil
}

// Health probes the record store and the cache concurrently; the first
// failure wins.
func (s *EntitlementService) Health(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.entitlementDAO.Ping(gctx) })
	g.Go(func() error { return s.statusCache.Ping(gctx) })
	return g.Wait()
}
