package entitlements

// Unlimited indicates no limit for a countable resource (-1 chosen for SQL
// and JSON compatibility).
const Unlimited int64 = -1

// Limits describes what a tier may do: countable resource ceilings and
// boolean feature flags for the card editor surfaces.
type Limits struct {
	MaxCards         int64 `json:"max_cards"`
	MaxProfileImages int64 `json:"max_profile_images"`
	MaxGalleryImages int64 `json:"max_gallery_images"`
	MaxCustomLinks   int64 `json:"max_custom_links"`
	DesignVariants   int64 `json:"design_variants_count"`

	VisibleSections bool `json:"visible_sections_enabled"`
	Signatures      bool `json:"signatures_enabled"`
	Backgrounds     bool `json:"backgrounds_enabled"`
}

// tierLimits is the static entitlement table. Founder rows are unlimited
// across the board.
var tierLimits = map[Tier]Limits{
	TierFree: {
		MaxCards:         1,
		MaxProfileImages: 1,
		MaxGalleryImages: 1,
		MaxCustomLinks:   1,
		DesignVariants:   1,
	},
	TierPersonal: {
		MaxCards:         1,
		MaxProfileImages: 3,
		MaxGalleryImages: 5,
		MaxCustomLinks:   5,
		DesignVariants:   3,
		VisibleSections:  true,
	},
	TierPro: {
		MaxCards:         3,
		MaxProfileImages: 5,
		MaxGalleryImages: 15,
		MaxCustomLinks:   15,
		DesignVariants:   6,
		VisibleSections:  true,
		Signatures:       true,
	},
	TierBusiness: {
		MaxCards:         10,
		MaxProfileImages: 10,
		MaxGalleryImages: 50,
		MaxCustomLinks:   50,
		DesignVariants:   10,
		VisibleSections:  true,
		Signatures:       true,
		Backgrounds:      true,
	},
	TierFounder: {
		MaxCards:         Unlimited,
		MaxProfileImages: Unlimited,
		MaxGalleryImages: Unlimited,
		MaxCustomLinks:   Unlimited,
		DesignVariants:   Unlimited,
		VisibleSections:  true,
		Signatures:       true,
		Backgrounds:      true,
	},
}

// ForTier returns the limit set for a tier. Unknown tiers fall back to the
// free tier, mirroring ParseTier.
func ForTier(t Tier) Limits {
	if l, ok := tierLimits[t]; ok {
		return l
	}
	return tierLimits[TierFree]
}

func allows(limit, current int64) bool {
	return limit == Unlimited || current < limit
}

// CanCreateCard reports whether another card fits within the limit.
func (l Limits) CanCreateCard(current int64) bool {
	return allows(l.MaxCards, current)
}

// CanAddProfileImage reports whether another profile image fits within the limit.
func (l Limits) CanAddProfileImage(current int64) bool {
	return allows(l.MaxProfileImages, current)
}

// CanAddGalleryImage reports whether another gallery image fits within the limit.
func (l Limits) CanAddGalleryImage(current int64) bool {
	return allows(l.MaxGalleryImages, current)
}

// CanAddCustomLink reports whether another custom link fits within the limit.
func (l Limits) CanAddCustomLink(current int64) bool {
	return allows(l.MaxCustomLinks, current)
}

// CanUseDesignVariant reports whether the zero-based design variant index
// is available on this tier.
func (l Limits) CanUseDesignVariant(index int64) bool {
	return index >= 0 && allows(l.DesignVariants, index)
}
