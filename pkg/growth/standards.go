package growth

import "github.com/growthmate/growthmate/pkg/types"

// percentiles are the population percentiles each reference row describes.
var percentiles = [5]float64{3, 15, 50, 85, 97}

// Checkpoint is one row of a reference curve: at AgeMonths, Values[i] is the
// measurement at percentile Percentiles()[i]. Values are non-decreasing.
type Checkpoint struct {
	AgeMonths int
	Values    [5]float64
}

// WHO Child Growth Standards, https://www.who.int/tools/child-growth-standards
// Height in cm, weight in kg. Rows sorted by AgeMonths.
var standards = map[types.Gender]map[types.MeasurementType][]Checkpoint{
	types.GenderMale: {
		types.MeasurementHeight: {
			{0, [5]float64{46.3, 48.0, 49.9, 51.8, 53.4}},
			{3, [5]float64{57.2, 59.0, 61.4, 63.9, 65.7}},
			{6, [5]float64{63.3, 65.2, 67.6, 70.1, 72.0}},
			{9, [5]float64{67.7, 69.7, 72.3, 74.9, 76.9}},
			{12, [5]float64{71.3, 73.4, 76.1, 78.9, 81.0}},
			{18, [5]float64{77.2, 79.5, 82.4, 85.4, 87.7}},
			{24, [5]float64{81.9, 84.3, 87.4, 90.6, 93.0}},
			{36, [5]float64{89.4, 92.1, 95.6, 99.1, 101.8}},
			{48, [5]float64{95.9, 98.8, 102.7, 106.6, 109.5}},
			{60, [5]float64{101.7, 104.9, 109.1, 113.3, 116.5}},
		},
		types.MeasurementWeight: {
			{0, [5]float64{2.5, 2.9, 3.3, 3.7, 4.1}},
			{3, [5]float64{5.0, 5.6, 6.4, 7.2, 7.8}},
			{6, [5]float64{6.4, 7.1, 7.9, 8.8, 9.5}},
			{9, [5]float64{7.4, 8.1, 9.0, 10.0, 10.7}},
			{12, [5]float64{8.1, 8.9, 9.9, 11.0, 11.8}},
			{18, [5]float64{9.3, 10.2, 11.3, 12.5, 13.4}},
			{24, [5]float64{10.2, 11.2, 12.4, 13.7, 14.7}},
			{36, [5]float64{11.8, 13.0, 14.4, 15.9, 17.1}},
			{48, [5]float64{13.4, 14.8, 16.4, 18.2, 19.6}},
			{60, [5]float64{15.0, 16.6, 18.4, 20.4, 22.0}},
		},
	},
	types.GenderFemale: {
		types.MeasurementHeight: {
			{0, [5]float64{45.6, 47.2, 49.1, 51.0, 52.7}},
			{3, [5]float64{55.9, 57.7, 59.8, 61.9, 63.7}},
			{6, [5]float64{61.8, 63.7, 65.9, 68.1, 70.0}},
			{9, [5]float64{66.1, 68.1, 70.4, 72.7, 74.7}},
			{12, [5]float64{69.8, 71.8, 74.3, 76.8, 78.9}},
			{18, [5]float64{75.7, 78.0, 80.7, 83.4, 85.7}},
			{24, [5]float64{80.7, 83.2, 86.0, 88.8, 91.3}},
			{36, [5]float64{88.3, 91.0, 94.2, 97.4, 100.1}},
			{48, [5]float64{94.9, 97.9, 101.4, 104.9, 107.9}},
			{60, [5]float64{101.1, 104.3, 108.1, 111.9, 115.1}},
		},
		types.MeasurementWeight: {
			{0, [5]float64{2.4, 2.8, 3.2, 3.6, 4.0}},
			{3, [5]float64{4.7, 5.3, 6.0, 6.7, 7.3}},
			{6, [5]float64{6.0, 6.7, 7.4, 8.2, 8.9}},
			{9, [5]float64{6.9, 7.7, 8.5, 9.4, 10.2}},
			{12, [5]float64{7.6, 8.4, 9.3, 10.3, 11.1}},
			{18, [5]float64{8.8, 9.7, 10.8, 12.0, 12.9}},
			{24, [5]float64{9.8, 10.8, 12.0, 13.3, 14.3}},
			{36, [5]float64{11.5, 12.7, 14.1, 15.6, 16.8}},
			{48, [5]float64{13.1, 14.5, 16.1, 17.9, 19.3}},
			{60, [5]float64{14.7, 16.3, 18.2, 20.2, 21.8}},
		},
	},
}

// Percentiles returns the percentile checkpoints every reference row maps to.
func Percentiles() [5]float64 {
	return percentiles
}

// Reference returns a copy of the reference curve for gender and typ.
func Reference(gender types.Gender, typ types.MeasurementType) ([]Checkpoint, bool) {
	curve, ok := standards[gender][typ]
	if !ok {
		return nil, false
	}
	out := make([]Checkpoint, len(curve))
	copy(out, curve)
	return out, true
}
