package rubric

import (
	"math"
	"strconv"
)

// Experience tier boundaries as fractions of the required years.
const (
	closeLowerFactor = 0.5
	closeUpperFactor = 0.95
	strongFactor     = 2.0
)

// ExperienceTier classifies relevant years against a requirement.
type ExperienceTier string

const (
	TierRequired ExperienceTier = "required"
	TierClose    ExperienceTier = "close"
	TierNotClose ExperienceTier = "not_close"
)

// Thresholds are the year boundaries derived from a requirement.
type Thresholds struct {
	Required float64 `json:"required"`
	CloseMin float64 `json:"closeMin"`
	CloseMax float64 `json:"closeMax"`
	Strong   float64 `json:"strong"`
}

// TiersFor derives the boundaries for requiredYears. Negative input is
// treated as zero.
func TiersFor(requiredYears float64) Thresholds {
	req := normalizeYears(requiredYears)
	return Thresholds{
		Required: req,
		CloseMin: req * closeLowerFactor,
		CloseMax: req * closeUpperFactor,
		Strong:   req * strongFactor,
	}
}

// Classify places relevant years into a tier. Anything from half the
// requirement up to (but not including) the requirement is close; the
// 95% mark is the documented upper edge and the band between it and the
// requirement is rounded into close rather than left unclassified.
func (t Thresholds) Classify(years float64) ExperienceTier {
	switch {
	case years >= t.Required:
		return TierRequired
	case years >= t.CloseMin:
		return TierClose
	default:
		return TierNotClose
	}
}

func normalizeYears(v float64) float64 {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// FormatYears renders a year count with at most two decimals, dropping
// trailing zeros.
func FormatYears(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
