package growth

import (
	"sort"
	"time"

	"github.com/growthmate/growthmate/pkg/types"
)

// Observation is a dated measurement value.
type Observation struct {
	Value float64
	At    time.Time
}

// Point is an Observation placed on the reference curve.
type Point struct {
	Value      float64
	At         time.Time
	AgeMonths  int
	Percentile float64
	Classification
}

// Series places each observation on the gender/typ reference curve using the
// child's age at the time of the observation. The result is ordered by At;
// observations sharing a timestamp keep their input order.
func Series(birth time.Time, gender types.Gender, typ types.MeasurementType, obs []Observation) []Point {
	points := make([]Point, 0, len(obs))
	for _, o := range obs {
		age := AgeInMonths(birth, o.At)
		p := CalculatePercentile(o.Value, float64(age), typ, gender)
		points = append(points, Point{
			Value:          o.Value,
			At:             o.At,
			AgeMonths:      age,
			Percentile:     p,
			Classification: ClassifyGrowthStatus(p),
		})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].At.Before(points[j].At)
	})
	return points
}

// Latest returns the most recent point of a series built by Series.
func Latest(points []Point) (Point, bool) {
	if len(points) == 0 {
		return Point{}, false
	}
	return points[len(points)-1], true
}
