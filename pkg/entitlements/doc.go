// Package entitlements defines the subscription tiers of the product and
// the per-tier feature limits derived from them.
//
// Limits are a pure function of the tier: a static lookup table, not
// per-subscriber state. The billing service resolves the effective tier
// (honoring expiry and overrides) and this package answers what that tier
// is allowed to do.
//
// Example:
//
//	limits := entitlements.ForTier(entitlements.TierPro)
//	if !limits.CanCreateCard(currentCount) {
//		// surface upgrade prompt
//	}
package entitlements
