package growth

import (
	"math"
	"time"

	"github.com/growthmate/growthmate/pkg/calendar"
)

// BodyMassIndex returns weight / height² with height converted from cm to m,
// rounded to one decimal place, halves away from zero (22.25 → 22.3).
// A non-positive height returns 0.
func BodyMassIndex(weightKg, heightCm float64) float64 {
	if heightCm <= 0 {
		return 0
	}
	m := heightCm / 100
	return math.Round(weightKg/(m*m)*10) / 10
}

// AgeInMonths returns the whole months elapsed from birth to asOf. Partial
// months are dropped. A birth date after asOf gives a negative age.
func AgeInMonths(birth, asOf time.Time) int {
	return calendar.MonthsBetween(birth, asOf)
}
