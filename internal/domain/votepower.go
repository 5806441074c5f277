package domain

import (
	"math"
	"time"
)

// VotePower is the computed weight applied to a cast vote.
type VotePower struct {
	FID          int64     `json:"fid"`
	Power        int       `json:"power"`
	ZaoCasts     int       `json:"zaoCasts"`
	NeynarScore  float64   `json:"neynarScore"`
	Multiplier   float64   `json:"multiplier"`
	CalculatedAt time.Time `json:"calculatedAt"`
}

// ActivityBonus maps recent channel activity to a vote power bonus.
func ActivityBonus(casts int) int {
	switch {
	case casts >= 50:
		return 3
	case casts >= 20:
		return 2
	case casts >= 5:
		return 1
	default:
		return 0
	}
}

// ReputationMultiplier maps a provider reputation score in [0,1] to a
// quality multiplier. The [0.5, 0.7) band is intentionally neutral.
func ReputationMultiplier(score float64) float64 {
	switch {
	case score >= 0.9:
		return 1.5
	case score >= 0.7:
		return 1.25
	case score < 0.5:
		return 0.5
	default:
		return 1.0
	}
}

// FinalPower combines activity and reputation into the committed vote power.
// The cap is applied after rounding; the floor of 1 is implied by the base
// power (the smallest reachable raw value, 1*0.5, rounds up to 1) but is
// re-applied so the [1, MaxPower] invariant holds structurally.
func FinalPower(casts int, score float64) int {
	base := BasePower + ActivityBonus(casts)
	raw := math.Round(float64(base) * ReputationMultiplier(score))
	power := int(math.Min(raw, MaxPower))
	if power < BasePower {
		power = BasePower
	}
	return power
}
