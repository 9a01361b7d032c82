// Package scoring derives pipeline tiers and star ratings from a 0-100 score.
package scoring

import "math"

// Tier is the coarse hiring bucket.
type Tier string

const (
	TierGreen  Tier = "green"
	TierYellow Tier = "yellow"
	TierRed    Tier = "red"
)

// VehicleStatus is what the applicant reported about transportation.
type VehicleStatus string

const (
	VehicleHas     VehicleStatus = "has_vehicle"
	VehicleNone    VehicleStatus = "no_vehicle"
	VehicleUnknown VehicleStatus = "unknown"
)

const (
	greenMin  = 80
	yellowMin = 50

	vehicleBonus   = 5
	vehiclePenalty = 10
)

// CalculateTier maps a score to green (>=80), yellow (>=50) or red.
func CalculateTier(score float64) Tier {
	switch {
	case score >= greenMin:
		return TierGreen
	case score >= yellowMin:
		return TierYellow
	default:
		return TierRed
	}
}

// CalculateStarRating maps a score onto 0-5 stars, piecewise linear per
// tier and rounded to one decimal.
func CalculateStarRating(score float64) float64 {
	var stars float64
	switch {
	case score >= greenMin:
		stars = 4.0 + (score-80)/20
	case score >= yellowMin:
		stars = 2.0 + (score-50)/30*1.9
	default:
		stars = score / 50 * 1.5
	}
	return math.Round(stars*10) / 10
}

// AdjustScoreForVehicle applies the vehicle bonus or penalty when the job
// requires a vehicle. The result is clamped to 0-100.
func AdjustScoreForVehicle(score float64, status VehicleStatus, vehicleRequired bool) float64 {
	if !vehicleRequired {
		return score
	}
	adjusted := score
	switch status {
	case VehicleHas:
		adjusted += vehicleBonus
	case VehicleNone:
		adjusted -= vehiclePenalty
	}
	return math.Max(0, math.Min(100, adjusted))
}

// ParseVehicleStatus normalizes free-form input; anything unrecognized is
// unknown.
func ParseVehicleStatus(s string) VehicleStatus {
	switch VehicleStatus(s) {
	case VehicleHas, VehicleNone:
		return VehicleStatus(s)
	}
	return VehicleUnknown
}
