package complexes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPlanFeatures(t *testing.T) {
	t.Run("every tier defines every feature key", func(t *testing.T) {
		for _, plan := range []PlanTier{PlanTierBasic, PlanTierStandard, PlanTierPremium} {
			features := DefaultPlanFeatures(plan)
			assert.Len(t, features, len(GetAllFeatureKeys()), "plan %s", plan)
			for _, f := range features {
				assert.Equal(t, plan, f.PlanID)
				assert.True(t, IsValidFeatureKey(f.FeatureKey))
			}
		}
	})

	t.Run("basic tier has billing disabled", func(t *testing.T) {
		assert.False(t, PlanHasFeature(PlanTierBasic, FeatureBillingEngine))
		assert.False(t, PlanHasFeature(PlanTierBasic, FeatureLateFees))
	})

	t.Run("standard and premium tiers have billing enabled", func(t *testing.T) {
		assert.True(t, PlanHasFeature(PlanTierStandard, FeatureBillingEngine))
		assert.True(t, PlanHasFeature(PlanTierPremium, FeatureBillingEngine))
	})

	t.Run("financial reports are premium only", func(t *testing.T) {
		assert.False(t, PlanHasFeature(PlanTierBasic, FeatureFinancialReport))
		assert.False(t, PlanHasFeature(PlanTierStandard, FeatureFinancialReport))
		assert.True(t, PlanHasFeature(PlanTierPremium, FeatureFinancialReport))
	})

	t.Run("unknown tier falls back to basic", func(t *testing.T) {
		features := DefaultPlanFeatures(PlanTier("GOLD"))
		require.NotEmpty(t, features)
		assert.Equal(t, PlanTierBasic, features[0].PlanID)
	})
}

func TestPlanFeature_Limits(t *testing.T) {
	t.Run("feature without limit is unlimited", func(t *testing.T) {
		pf := NewPlanFeature(PlanTierPremium, FeatureReservations, true, "")
		assert.True(t, pf.IsUnlimited())
	})

	t.Run("feature with limit is not unlimited", func(t *testing.T) {
		pf := NewPlanFeatureWithLimit(PlanTierBasic, FeatureReservations, true, 2, "")
		require.False(t, pf.IsUnlimited())
		assert.Equal(t, 2, *pf.Limit)
	})
}

func TestPlanFeature_EnableDisable(t *testing.T) {
	pf := NewPlanFeature(PlanTierBasic, FeatureAssemblies, false, "")

	pf.Enable()
	assert.True(t, pf.Enabled)

	pf.Disable()
	assert.False(t, pf.Enabled)
}

func TestPlanHasFeature(t *testing.T) {
	t.Run("unknown feature key is not enabled", func(t *testing.T) {
		assert.False(t, PlanHasFeature(PlanTierPremium, FeatureKey("teleportation")))
	})
}
