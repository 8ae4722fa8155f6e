// Package growth estimates where a child's height or weight falls in the WHO
// Child Growth Standards population.
//
// standards.go holds the reference table: for each gender and measurement
// type, a sorted list of checkpoint ages (0–60 months) with the measurement
// values at the 3rd, 15th, 50th, 85th and 97th percentiles.
//
// percentile.go provides CalculatePercentile. It snaps the age to the nearest
// checkpoint (ties go to the younger checkpoint), clamps values outside the
// tracked range to exactly 3 or 97, and interpolates linearly between the two
// surrounding percentile checkpoints otherwise. Unknown gender/type pairs and
// malformed reference rows yield 50 instead of an error: the result is a UI
// hint, not a diagnosis.
//
// body.go provides BodyMassIndex and AgeInMonths; series.go turns a list of
// dated observations into chart-ready points.
//
// Everything in this package is pure and safe for concurrent use.
package growth
