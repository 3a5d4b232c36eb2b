package services

import (
	"fmt"
	"strconv"
	"strings"
)

// ModeProfile holds the nominal plan attributes for one budget tier.
type ModeProfile struct {
	TierName          string
	ModeName          string
	Emoji             string
	AttractionsPerDay string
	Pace              string
	DailyCostBand     string // "$<low>-<high>", parsed by TotalBudget
	Flexibility       string
}

// modeTable maps each budget tier to its profile. Exactly one profile
// exists per tier; lookups for anything else resolve to moderate.
var modeTable = map[string]ModeProfile{
	"budget": {
		TierName:          "budget",
		ModeName:          "Easy Wanderer",
		Emoji:             "🐢",
		AttractionsPerDay: "2-3",
		Pace:              "Relaxed",
		DailyCostBand:     "$50-90",
		Flexibility:       "Very flexible",
	},
	"moderate": {
		TierName:          "moderate",
		ModeName:          "Balanced Flow",
		Emoji:             "⚖️",
		AttractionsPerDay: "4-5",
		Pace:              "Balanced",
		DailyCostBand:     "$120-180",
		Flexibility:       "Moderately flexible",
	},
	"luxury": {
		TierName:          "luxury",
		ModeName:          "Intense Adventure",
		Emoji:             "🚀",
		AttractionsPerDay: "6-8",
		Pace:              "Fast-paced",
		DailyCostBand:     "$180-250",
		Flexibility:       "Tightly scheduled",
	},
}

// ResolveModeProfile returns the profile for a budget tier. Unknown or
// empty tiers resolve to the moderate profile rather than failing.
func ResolveModeProfile(tier string) ModeProfile {
	if profile, ok := modeTable[strings.ToLower(strings.TrimSpace(tier))]; ok {
		return profile
	}
	return modeTable["moderate"]
}

// TotalBudget multiplies a daily cost band by a trip duration, e.g.
// "$120-180" over 5 days yields "$600-900". The band format is owned by
// the mode table; passing anything else is a programmer error and the
// unparsed bound is treated as zero.
func TotalBudget(dailyCostBand string, durationDays int) string {
	band := strings.TrimPrefix(dailyCostBand, "$")
	parts := strings.SplitN(band, "-", 2)
	low, high := 0, 0
	if len(parts) == 2 {
		low, _ = strconv.Atoi(parts[0])
		high, _ = strconv.Atoi(parts[1])
	}
	return fmt.Sprintf("$%d-%d", low*durationDays, high*durationDays)
}
