// audit/model.go
package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// CheckLog records the outcome of one entitlement check. API keys are stored
// as truncated digests, never raw.
type CheckLog struct {
	Timestamp time.Time `json:"timestamp"`
	APIKeyID  string    `json:"api_key_id"`
	MatchID   string    `json:"match_id"`
	Status    string    `json:"status"`
	CacheHit  bool      `json:"cache_hit"`
}

// APIKeyID derives the storable identifier for an API key.
func APIKeyID(apiKey string) string {
	sum := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(sum[:8])
}
