package model

import "time"

// ClusterEntitlementPolicy describes how a cluster sells access to its match
// feeds. Each cluster carries one or more API keys; a key resolves to at most
// one cluster, so lookups by key are unambiguous.
type ClusterEntitlementPolicy struct {
	ClusterName     string  `json:"cluster_name" bson:"cluster_name"`
	APIKey          string  `json:"api_key" bson:"api_key"`
	TrialPeriodDays int     `json:"trial_period_days" bson:"trial_period_days"`
	Price           float64 `json:"price" bson:"price"`
}

// EntitlementRecord is the authoritative record for a single match ID.
// Records are provisioned and extended by external processes; this service
// only reads them. A nil ValidUntil means no paid period was ever established.
type EntitlementRecord struct {
	MatchID     string     `json:"match_id" bson:"match_id"`
	ClusterName string     `json:"cluster_name" bson:"cluster_name"`
	CreatedOn   time.Time  `json:"created_on" bson:"created_on"`
	ValidUntil  *time.Time `json:"valid_until,omitempty" bson:"valid_until,omitempty"`
	IsTrial     bool       `json:"is_trial" bson:"is_trial"`
}
