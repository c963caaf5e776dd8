package entitlements

import "strings"

// Tier is a named subscription level.
type Tier string

const (
	TierFree     Tier = "free"
	TierPersonal Tier = "personal"
	TierPro      Tier = "pro"
	TierBusiness Tier = "business"

	// TierFounder is the privileged override tier: unlimited and
	// non-expiring. It is never sold, only granted.
	TierFounder Tier = "founder"
)

// ParseTier normalizes a stored or user-supplied tier name. Unknown values
// resolve to TierFree so a corrupted row can never grant entitlements.
func ParseTier(s string) Tier {
	switch t := Tier(strings.ToLower(strings.TrimSpace(s))); t {
	case TierPersonal, TierPro, TierBusiness, TierFounder:
		return t
	default:
		return TierFree
	}
}
