package model

import "time"

// Status is the resolved lifecycle state of an entitlement at one instant.
// Exactly one value applies to a given (apiKey, matchID) pair.
type Status string

const (
	StatusPaidActive     Status = "Paid Active"
	StatusTrialActive    Status = "Trial Active"
	StatusExpired        Status = "Expired"
	StatusKeyInvalid     Status = "Key Invalid"
	StatusRecordNotFound Status = "Record Not Found"
)

// IsPositive reports whether the status represents a currently usable
// entitlement. Positive statuses only decay, so cached positive entries are
// trusted until their TTL lapses; everything else must be revalidated.
func (s Status) IsPositive() bool {
	return s == StatusPaidActive || s == StatusTrialActive
}

// CachedStatus is the cache entry for one (apiKey, matchID) pair. It carries
// the resolved status plus the raw record fields so a later reconciliation can
// recompute the status without depending on which revision wrote the entry.
type CachedStatus struct {
	Status          Status     `json:"status"`
	IsActive        bool       `json:"is_active"`
	IsTrial         bool       `json:"is_trial"`
	CreatedOn       time.Time  `json:"created_on"`
	ValidUntil      *time.Time `json:"valid_until,omitempty"`
	TrialPeriodDays int        `json:"trial_period_days"`
	CachedAt        time.Time  `json:"cached_at"`
}

// NewCachedStatus derives a cache entry from the record and policy that
// produced the given status.
func NewCachedStatus(status Status, record EntitlementRecord, policy ClusterEntitlementPolicy, now time.Time) CachedStatus {
	return CachedStatus{
		Status:          status,
		IsActive:        status.IsPositive(),
		IsTrial:         record.IsTrial,
		CreatedOn:       record.CreatedOn,
		ValidUntil:      record.ValidUntil,
		TrialPeriodDays: policy.TrialPeriodDays,
		CachedAt:        now,
	}
}
