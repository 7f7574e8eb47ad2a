package complexes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResidentialComplex(t *testing.T) {
	t.Run("creates complex successfully", func(t *testing.T) {
		c, err := NewResidentialComplex("TORRES01", "Torres del Parque")

		require.NoError(t, err)
		assert.NotNil(t, c)
		assert.Equal(t, "TORRES01", c.Code)
		assert.Equal(t, "Torres del Parque", c.Name)
		assert.Equal(t, ComplexStatusActive, c.Status)
		assert.Equal(t, PlanTierBasic, c.Plan)
		assert.Nil(t, c.TrialEndsAt)
		assert.False(t, c.PQRSettings.ResidentCanClose)
		assert.Len(t, c.GetDomainEvents(), 1)
	})

	t.Run("converts code to uppercase", func(t *testing.T) {
		c, err := NewResidentialComplex("torres01", "Torres del Parque")

		require.NoError(t, err)
		assert.Equal(t, "TORRES01", c.Code)
	})

	t.Run("fails with empty code", func(t *testing.T) {
		c, err := NewResidentialComplex("", "Torres del Parque")

		assert.Error(t, err)
		assert.Nil(t, c)
		assert.Contains(t, err.Error(), "code cannot be empty")
	})

	t.Run("fails with invalid code characters", func(t *testing.T) {
		c, err := NewResidentialComplex("TORRES@01", "Torres del Parque")

		assert.Error(t, err)
		assert.Nil(t, c)
		assert.Contains(t, err.Error(), "can only contain")
	})

	t.Run("fails with empty name", func(t *testing.T) {
		c, err := NewResidentialComplex("TORRES01", "")

		assert.Error(t, err)
		assert.Nil(t, c)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})
}

func TestNewTrialComplex(t *testing.T) {
	t.Run("creates trial complex successfully", func(t *testing.T) {
		c, err := NewTrialComplex("TRIAL01", "Conjunto Prueba", 30)

		require.NoError(t, err)
		assert.Equal(t, ComplexStatusTrial, c.Status)
		require.NotNil(t, c.TrialEndsAt)
		assert.True(t, c.TrialEndsAt.After(time.Now().AddDate(0, 0, 29)))
		assert.True(t, c.IsTrialActive())
	})

	t.Run("fails with non-positive trial days", func(t *testing.T) {
		c, err := NewTrialComplex("TRIAL01", "Conjunto Prueba", 0)

		assert.Error(t, err)
		assert.Nil(t, c)
	})
}

func TestResidentialComplex_SetPlan(t *testing.T) {
	t.Run("changes plan and emits event", func(t *testing.T) {
		c, err := NewResidentialComplex("TORRES01", "Torres del Parque")
		require.NoError(t, err)
		c.ClearDomainEvents()

		err = c.SetPlan(PlanTierStandard)

		require.NoError(t, err)
		assert.Equal(t, PlanTierStandard, c.Plan)
		require.Len(t, c.GetDomainEvents(), 1)
		evt, ok := c.GetDomainEvents()[0].(*ComplexPlanChangedEvent)
		require.True(t, ok)
		assert.Equal(t, PlanTierBasic, evt.OldPlan)
		assert.Equal(t, PlanTierStandard, evt.NewPlan)
	})

	t.Run("upgrade out of trial ends the trial window", func(t *testing.T) {
		c, err := NewTrialComplex("TRIAL01", "Conjunto Prueba", 30)
		require.NoError(t, err)

		err = c.SetPlan(PlanTierPremium)

		require.NoError(t, err)
		assert.Equal(t, ComplexStatusActive, c.Status)
		assert.Nil(t, c.TrialEndsAt)
		assert.False(t, c.IsTrialActive())
	})

	t.Run("fails with unknown plan", func(t *testing.T) {
		c, err := NewResidentialComplex("TORRES01", "Torres del Parque")
		require.NoError(t, err)

		err = c.SetPlan(PlanTier("GOLD"))

		assert.Error(t, err)
		assert.Equal(t, PlanTierBasic, c.Plan)
	})
}

func TestResidentialComplex_IsTrialActive(t *testing.T) {
	t.Run("expired trial is not active", func(t *testing.T) {
		c, err := NewTrialComplex("TRIAL01", "Conjunto Prueba", 30)
		require.NoError(t, err)
		past := time.Now().Add(-time.Hour)
		c.TrialEndsAt = &past

		assert.False(t, c.IsTrialActive())
	})

	t.Run("active complex is never in trial", func(t *testing.T) {
		c, err := NewResidentialComplex("TORRES01", "Torres del Parque")
		require.NoError(t, err)
		future := time.Now().AddDate(0, 0, 10)
		c.TrialEndsAt = &future

		assert.False(t, c.IsTrialActive())
	})
}

func TestResidentialComplex_HasBillingAccess(t *testing.T) {
	t.Run("basic plan has no billing access", func(t *testing.T) {
		c, err := NewResidentialComplex("TORRES01", "Torres del Parque")
		require.NoError(t, err)

		assert.False(t, c.HasBillingAccess())
	})

	t.Run("standard plan has billing access", func(t *testing.T) {
		c, err := NewResidentialComplex("TORRES01", "Torres del Parque")
		require.NoError(t, err)
		require.NoError(t, c.SetPlan(PlanTierStandard))

		assert.True(t, c.HasBillingAccess())
	})

	t.Run("active trial has billing access regardless of tier", func(t *testing.T) {
		c, err := NewTrialComplex("TRIAL01", "Conjunto Prueba", 30)
		require.NoError(t, err)
		assert.Equal(t, PlanTierBasic, c.Plan)

		assert.True(t, c.HasBillingAccess())
	})

	t.Run("expired trial loses billing access", func(t *testing.T) {
		c, err := NewTrialComplex("TRIAL01", "Conjunto Prueba", 30)
		require.NoError(t, err)
		past := time.Now().Add(-time.Minute)
		c.TrialEndsAt = &past

		assert.False(t, c.HasBillingAccess())
	})
}

func TestResidentialComplex_StatusChanges(t *testing.T) {
	t.Run("deactivate then activate", func(t *testing.T) {
		c, err := NewResidentialComplex("TORRES01", "Torres del Parque")
		require.NoError(t, err)

		require.NoError(t, c.Deactivate())
		assert.Equal(t, ComplexStatusInactive, c.Status)

		require.NoError(t, c.Activate())
		assert.Equal(t, ComplexStatusActive, c.Status)
	})

	t.Run("deactivate fails when already inactive", func(t *testing.T) {
		c, err := NewResidentialComplex("TORRES01", "Torres del Parque")
		require.NoError(t, err)
		require.NoError(t, c.Deactivate())

		assert.Error(t, c.Deactivate())
	})
}

func TestResidentialComplex_UpdatePQRSettings(t *testing.T) {
	c, err := NewResidentialComplex("TORRES01", "Torres del Parque")
	require.NoError(t, err)
	v := c.GetVersion()

	c.UpdatePQRSettings(PQRSettings{ResidentCanClose: true, AutoAssignEnabled: true})

	assert.True(t, c.PQRSettings.ResidentCanClose)
	assert.True(t, c.PQRSettings.AutoAssignEnabled)
	assert.Equal(t, v+1, c.GetVersion())
}

func TestPQRSettings_ScanValue(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		in := PQRSettings{ResidentCanClose: true}
		val, err := in.Value()
		require.NoError(t, err)

		var out PQRSettings
		require.NoError(t, out.Scan(val))
		assert.Equal(t, in, out)
	})

	t.Run("nil scans to zero value", func(t *testing.T) {
		var out PQRSettings
		require.NoError(t, out.Scan(nil))
		assert.Equal(t, PQRSettings{}, out)
	})
}
