// Package calendar implements the month arithmetic shared by the growth and
// vaccination engines.
//
// AddMonths clamps to the last day of the target month (Jan 31 + 1 month is
// Feb 28/29), unlike time.AddDate which normalises the overflow into the
// following month. MonthsBetween counts whole months and truncates toward
// zero, so it is sign-symmetric: MonthsBetween(a, b) == -MonthsBetween(b, a)
// whenever neither date sits on a clamped month end.
package calendar
