package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveModeProfileKnownTiers(t *testing.T) {
	assert.Equal(t, "Easy Wanderer", ResolveModeProfile("budget").ModeName)
	assert.Equal(t, "Balanced Flow", ResolveModeProfile("moderate").ModeName)
	assert.Equal(t, "Intense Adventure", ResolveModeProfile("luxury").ModeName)
}

func TestResolveModeProfileDefaultsToModerate(t *testing.T) {
	for _, tier := range []string{"", "unknown", "LUXURY cruise", "   "} {
		profile := ResolveModeProfile(tier)
		assert.Equal(t, "4-5", profile.AttractionsPerDay, "tier %q", tier)
		assert.Equal(t, "Balanced", profile.Pace, "tier %q", tier)
		assert.Equal(t, "$120-180", profile.DailyCostBand, "tier %q", tier)
	}
}

func TestResolveModeProfileNormalizesCase(t *testing.T) {
	assert.Equal(t, "luxury", ResolveModeProfile(" Luxury ").TierName)
}

func TestTotalBudget(t *testing.T) {
	assert.Equal(t, "$600-900", TotalBudget("$120-180", 5))
	assert.Equal(t, "$540-750", TotalBudget("$180-250", 3))
	assert.Equal(t, "$50-90", TotalBudget("$50-90", 1))
}
