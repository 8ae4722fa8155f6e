package growth

import (
	"math"

	"github.com/growthmate/growthmate/pkg/types"
)

// DefaultPercentile is returned whenever no estimate can be made.
const DefaultPercentile = 50.0

// Bounds of every estimate. Values at or beyond the outer reference columns
// are reported at these extremes, never extrapolated.
const (
	MinPercentile = 3.0
	MaxPercentile = 97.0
)

// Classification thresholds. Both boundaries belong to StatusNormal.
const (
	ThresholdLow  = 15.0
	ThresholdHigh = 85.0
)

// Status is the coarse growth band a percentile falls into.
type Status string

const (
	StatusLow    Status = "low"
	StatusNormal Status = "normal"
	StatusHigh   Status = "high"
)

// Display colours for each Status.
const (
	ColorLow    = "#ef4444"
	ColorNormal = "#10b981"
	ColorHigh   = "#f59e0b"
)

// Classification is a growth band plus the colour the UI renders it in.
type Classification struct {
	Status Status
	Color  string
}

// Measurement is a single height or weight reading.
type Measurement struct {
	Value     float64
	AgeMonths float64
	Type      types.MeasurementType
	Gender    types.Gender
}

// Percentile is shorthand for CalculatePercentile on m's fields.
func (m Measurement) Percentile() float64 {
	return CalculatePercentile(m.Value, m.AgeMonths, m.Type, m.Gender)
}

// CalculatePercentile estimates the population percentile of value for a
// child of ageMonths. The result is always within [3, 97].
func CalculatePercentile(value, ageMonths float64, typ types.MeasurementType, gender types.Gender) float64 {
	curve, ok := standards[gender][typ]
	if !ok || len(curve) == 0 {
		return DefaultPercentile
	}
	return PercentileFromReference(value, nearest(curve, ageMonths).Values)
}

// PercentileFromReference places value on a single reference row.
//
//	value <= ref[0]  → 3
//	value >= ref[4]  → 97
//	ref[i] <= value <= ref[i+1] → linear interpolation between the
//	                              percentiles of columns i and i+1
//
// A row that brackets nothing (NaN input or a corrupted row) yields 50.
func PercentileFromReference(value float64, ref [5]float64) float64 {
	if value <= ref[0] {
		return MinPercentile
	}
	if value >= ref[len(ref)-1] {
		return MaxPercentile
	}
	for i := 0; i < len(ref)-1; i++ {
		lo, hi := ref[i], ref[i+1]
		if value >= lo && value <= hi {
			pLo, pHi := percentiles[i], percentiles[i+1]
			if hi == lo {
				return pLo
			}
			// Fraction first: a value equal to a column maps to that
			// column's percentile exactly.
			return pLo + (value-lo)/(hi-lo)*(pHi-pLo)
		}
	}
	return DefaultPercentile
}

// nearest returns the checkpoint whose age is closest to ageMonths.
// curve is sorted by age, so keeping the first of two equal distances
// resolves ties toward the younger checkpoint.
func nearest(curve []Checkpoint, ageMonths float64) Checkpoint {
	best := curve[0]
	bestDist := math.Abs(float64(best.AgeMonths) - ageMonths)
	for _, cp := range curve[1:] {
		if d := math.Abs(float64(cp.AgeMonths) - ageMonths); d < bestDist {
			best, bestDist = cp, d
		}
	}
	return best
}

// NearestCheckpointAge reports which checkpoint age CalculatePercentile would
// use for ageMonths. ok is false for unknown gender/type pairs.
func NearestCheckpointAge(ageMonths float64, typ types.MeasurementType, gender types.Gender) (age int, ok bool) {
	curve, ok := standards[gender][typ]
	if !ok || len(curve) == 0 {
		return 0, false
	}
	return nearest(curve, ageMonths).AgeMonths, true
}

// ClassifyGrowthStatus maps a percentile to its growth band:
// below 15 is low, above 85 is high, anything else (15 and 85 included)
// is normal.
func ClassifyGrowthStatus(percentile float64) Classification {
	switch {
	case percentile < ThresholdLow:
		return Classification{Status: StatusLow, Color: ColorLow}
	case percentile > ThresholdHigh:
		return Classification{Status: StatusHigh, Color: ColorHigh}
	default:
		return Classification{Status: StatusNormal, Color: ColorNormal}
	}
}
