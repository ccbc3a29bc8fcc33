// Package resolver computes the lifecycle status of an entitlement record at
// a given instant. It performs no I/O, which keeps it testable independently
// of the record store and the cache.
package resolver

import (
	"time"

	"github.com/oddsview/matchgate/model"
)

// Resolve maps an entitlement record plus its cluster's trial policy to a
// status at the instant now.
//
// The paid window is open while now precedes ValidUntil; a nil ValidUntil
// means no paid period was ever established. The trial window is open while
// the record is flagged as trial, the cluster grants a trial period, and now
// has not passed CreatedOn plus that period. When both windows are open the
// trial wins the tie, so callers can bill the period correctly.
func Resolve(record model.EntitlementRecord, trialPeriodDays int, now time.Time) model.Status {
	paidActive := record.ValidUntil != nil && now.Before(*record.ValidUntil)

	inTrial := false
	if record.IsTrial && trialPeriodDays > 0 {
		trialEnd := record.CreatedOn.AddDate(0, 0, trialPeriodDays)
		inTrial = !now.After(trialEnd)
	}

	switch {
	case paidActive && inTrial:
		return model.StatusTrialActive
	case paidActive:
		return model.StatusPaidActive
	default:
		return model.StatusExpired
	}
}
