package guarantee

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crediris/internal/simulation/models"
)

func TestCheck(t *testing.T) {
	t.Run("consistent selection passes", func(t *testing.T) {
		sel := models.CoverageSelection{Death: true, PTIA: true, IPT: true}
		assert.Empty(t, Check(sel))
	})

	t.Run("empty selection passes", func(t *testing.T) {
		assert.Empty(t, Check(models.CoverageSelection{}))
	})

	t.Run("PTIA without death", func(t *testing.T) {
		violations := Check(models.CoverageSelection{PTIA: true})
		require.Len(t, violations, 1)
		assert.Equal(t, "PTIA", violations[0].Guarantee)
		assert.Equal(t, "DC", violations[0].Requires)
		assert.Equal(t, "La garantie PTIA nécessite la garantie Décès", violations[0].Message)
	})

	t.Run("ITT alone reports only its own missing link", func(t *testing.T) {
		violations := Check(models.CoverageSelection{ITT: true})
		require.Len(t, violations, 1)
		assert.Equal(t, "ITT", violations[0].Guarantee)
		assert.Equal(t, "IPT", violations[0].Requires)
	})

	t.Run("multiple broken links reported in chain order", func(t *testing.T) {
		violations := Check(models.CoverageSelection{PTIA: true, IPP: true})
		require.Len(t, violations, 2)
		assert.Equal(t, "PTIA", violations[0].Guarantee)
		assert.Equal(t, "IPP", violations[1].Guarantee)
	})
}

func TestNormalize(t *testing.T) {
	t.Run("IPP pulls in the whole chain", func(t *testing.T) {
		out := Normalize(models.CoverageSelection{IPP: true, Quotity: 100})
		assert.Equal(t, models.CoverageSelection{
			Death: true, PTIA: true, IPT: true, ITT: true, IPP: true, Quotity: 100,
		}, out)
	})

	t.Run("ITT pulls in IPT, PTIA and death but not IPP", func(t *testing.T) {
		out := Normalize(models.CoverageSelection{ITT: true})
		assert.True(t, out.Death)
		assert.True(t, out.PTIA)
		assert.True(t, out.IPT)
		assert.True(t, out.ITT)
		assert.False(t, out.IPP)
	})

	t.Run("death alone is already closed", func(t *testing.T) {
		sel := models.CoverageSelection{Death: true, Quotity: 50}
		assert.Equal(t, sel, Normalize(sel))
	})

	t.Run("never disables a selected guarantee", func(t *testing.T) {
		sel := models.CoverageSelection{Death: true, ITT: true}
		out := Normalize(sel)
		assert.True(t, out.Death)
		assert.True(t, out.ITT)
	})

	t.Run("idempotent", func(t *testing.T) {
		sel := models.CoverageSelection{IPP: true, PTIA: true}
		once := Normalize(sel)
		assert.Equal(t, once, Normalize(once))
	})

	t.Run("output always passes the strict check", func(t *testing.T) {
		// Walk every flag combination once.
		for mask := range 32 {
			sel := models.CoverageSelection{
				Death: mask&1 != 0,
				PTIA:  mask&2 != 0,
				IPT:   mask&4 != 0,
				ITT:   mask&8 != 0,
				IPP:   mask&16 != 0,
			}
			assert.Empty(t, Check(Normalize(sel)), "selection %+v", sel)
		}
	})
}

// Check and Normalize agree: a selection passes Check exactly when Normalize
// leaves it unchanged.
func TestCheckNormalizeAgreement(t *testing.T) {
	for mask := range 32 {
		sel := models.CoverageSelection{
			Death: mask&1 != 0,
			PTIA:  mask&2 != 0,
			IPT:   mask&4 != 0,
			ITT:   mask&8 != 0,
			IPP:   mask&16 != 0,
		}
		passes := len(Check(sel)) == 0
		unchanged := Normalize(sel) == sel
		assert.Equal(t, passes, unchanged, "selection %+v", sel)
	}
}

func TestCheckDisclosures(t *testing.T) {
	t.Run("clean profile passes", func(t *testing.T) {
		assert.Empty(t, CheckDisclosures(models.HealthProfile{}))
	})

	t.Run("smoker must declare a count", func(t *testing.T) {
		violations := CheckDisclosures(models.HealthProfile{Smoker: true})
		require.Len(t, violations, 1)
		assert.Equal(t, "FUMEUR", violations[0].Guarantee)
	})

	t.Run("smoker with count passes", func(t *testing.T) {
		assert.Empty(t, CheckDisclosures(models.HealthProfile{Smoker: true, CigarettesPerDay: 5}))
	})

	t.Run("dangerous sports need details", func(t *testing.T) {
		violations := CheckDisclosures(models.HealthProfile{PracticesDangerousSports: true})
		require.Len(t, violations, 1)
		assert.Equal(t, "SPORTS", violations[0].Guarantee)
	})

	t.Run("dangerous sports with details pass", func(t *testing.T) {
		assert.Empty(t, CheckDisclosures(models.HealthProfile{
			PracticesDangerousSports: true,
			DangerousSportsDetails:   "Parapente",
		}))
	})
}
