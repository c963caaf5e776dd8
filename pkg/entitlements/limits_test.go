package entitlements_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tapcard/tapcard/pkg/entitlements"
)

func TestParseTier(t *testing.T) {
	t.Parallel()

	assert.Equal(t, entitlements.TierFree, entitlements.ParseTier("free"))
	assert.Equal(t, entitlements.TierPro, entitlements.ParseTier("pro"))
	assert.Equal(t, entitlements.TierPro, entitlements.ParseTier("Pro"))
	assert.Equal(t, entitlements.TierFounder, entitlements.ParseTier(" FOUNDER "))
	assert.Equal(t, entitlements.TierFree, entitlements.ParseTier(""))
	assert.Equal(t, entitlements.TierFree, entitlements.ParseTier("enterprise"))
}

func TestForTier(t *testing.T) {
	t.Parallel()

	t.Run("free is the floor", func(t *testing.T) {
		t.Parallel()

		free := entitlements.ForTier(entitlements.TierFree)

		assert.Equal(t, int64(1), free.MaxCards)
		assert.False(t, free.VisibleSections)
		assert.False(t, free.Signatures)
		assert.False(t, free.Backgrounds)
	})

	t.Run("founder is unlimited", func(t *testing.T) {
		t.Parallel()

		founder := entitlements.ForTier(entitlements.TierFounder)

		assert.Equal(t, entitlements.Unlimited, founder.MaxCards)
		assert.Equal(t, entitlements.Unlimited, founder.MaxGalleryImages)
		assert.True(t, founder.VisibleSections)
		assert.True(t, founder.Signatures)
		assert.True(t, founder.Backgrounds)
	})

	t.Run("unknown tier falls back to free", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, entitlements.ForTier(entitlements.TierFree), entitlements.ForTier("platinum"))
	})

	t.Run("paid tiers grow monotonically", func(t *testing.T) {
		t.Parallel()

		personal := entitlements.ForTier(entitlements.TierPersonal)
		pro := entitlements.ForTier(entitlements.TierPro)
		business := entitlements.ForTier(entitlements.TierBusiness)

		assert.LessOrEqual(t, personal.MaxCards, pro.MaxCards)
		assert.LessOrEqual(t, pro.MaxCards, business.MaxCards)
		assert.LessOrEqual(t, personal.MaxCustomLinks, pro.MaxCustomLinks)
		assert.LessOrEqual(t, pro.MaxCustomLinks, business.MaxCustomLinks)
	})
}

func TestLimits_Predicates(t *testing.T) {
	t.Parallel()

	t.Run("counting limits", func(t *testing.T) {
		t.Parallel()

		pro := entitlements.ForTier(entitlements.TierPro)

		assert.True(t, pro.CanCreateCard(0))
		assert.True(t, pro.CanCreateCard(2))
		assert.False(t, pro.CanCreateCard(3))
		assert.False(t, pro.CanCreateCard(100))
	})

	t.Run("unlimited never exhausts", func(t *testing.T) {
		t.Parallel()

		founder := entitlements.ForTier(entitlements.TierFounder)

		assert.True(t, founder.CanCreateCard(1_000_000))
		assert.True(t, founder.CanAddGalleryImage(1_000_000))
		assert.True(t, founder.CanUseDesignVariant(42))
	})

	t.Run("design variant index", func(t *testing.T) {
		t.Parallel()

		personal := entitlements.ForTier(entitlements.TierPersonal)

		assert.True(t, personal.CanUseDesignVariant(0))
		assert.True(t, personal.CanUseDesignVariant(2))
		assert.False(t, personal.CanUseDesignVariant(3))
		assert.False(t, personal.CanUseDesignVariant(-1))
	})
}
