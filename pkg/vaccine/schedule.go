package vaccine

import (
	"fmt"
	"sort"
	"time"

	"github.com/growthmate/growthmate/pkg/calendar"
	"github.com/growthmate/growthmate/pkg/types"
)

// Status is the state of an outstanding dose relative to today.
type Status string

const (
	StatusOverdue  Status = "overdue"
	StatusDue      Status = "due"
	StatusUpcoming Status = "upcoming"
)

// Rank orders statuses for display: overdue first, upcoming last.
func (s Status) Rank() int {
	switch s {
	case StatusOverdue:
		return 0
	case StatusDue:
		return 1
	default:
		return 2
	}
}

// ParseStatus converts s to a Status.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusOverdue, StatusDue, StatusUpcoming:
		return st, nil
	default:
		return "", fmt.Errorf("vaccine: unknown status %q", s)
	}
}

// dueWindowMonths is how far ahead of its recommended age a dose turns due.
const dueWindowMonths = 1

// Entry is one outstanding dose.
type Entry struct {
	Vaccine    Vaccine
	DoseNumber int // 1-based
	DueDate    time.Time
	Status     Status
}

// ComputeSchedule returns every catalog dose missing from completed, with its
// due date and status as of today, sorted by status rank then due date.
// Doses that tie on both keys keep catalog order.
//
// Only the calendar dates of birth and today matter: birth is re-anchored to
// midnight in today's location so a date-only birth date is never shifted
// across a day boundary by a timezone offset.
func ComputeSchedule(birth time.Time, completed []types.CompletedDose, today time.Time) []Entry {
	today = calendar.StartOfDay(today)
	birth = anchorBirth(birth, today.Location())
	ageMonths := calendar.MonthsBetween(birth, today)

	done := make(map[string]map[int]struct{}, len(completed))
	for _, c := range completed {
		if done[c.VaccineID] == nil {
			done[c.VaccineID] = make(map[int]struct{})
		}
		done[c.VaccineID][c.DoseNumber] = struct{}{}
	}

	var out []Entry
	for _, v := range catalog {
		for i, age := range v.RecommendedAges {
			dose := i + 1
			if _, ok := done[v.ID][dose]; ok {
				continue
			}
			due := calendar.AddMonths(birth, age)
			out = append(out, Entry{
				Vaccine:    v.clone(),
				DoseNumber: dose,
				DueDate:    due,
				Status:     statusOf(due, today, ageMonths, age),
			})
		}
	}

	Sort(out)
	return out
}

// AgeInMonths returns the child's age in whole months on today, counted the
// way ComputeSchedule counts it: birth and today are both taken as calendar
// dates in today's location.
func AgeInMonths(birth, today time.Time) int {
	today = calendar.StartOfDay(today)
	return calendar.MonthsBetween(anchorBirth(birth, today.Location()), today)
}

func anchorBirth(birth time.Time, loc *time.Location) time.Time {
	y, m, d := birth.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// Sort orders entries in place by status rank, then due date. The sort is
// stable, so entries equal on both keys keep their relative order.
func Sort(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		ri, rj := entries[i].Status.Rank(), entries[j].Status.Rank()
		if ri != rj {
			return ri < rj
		}
		return entries[i].DueDate.Before(entries[j].DueDate)
	})
}

// statusOf classifies one dose. A dose becomes due up to a month before its
// recommended age, not only once the due date has arrived.
func statusOf(due, today time.Time, ageMonths, recommendedAge int) Status {
	switch {
	case due.Before(today):
		return StatusOverdue
	case calendar.MonthsBetween(today, due) <= dueWindowMonths &&
		ageMonths >= recommendedAge-dueWindowMonths:
		return StatusDue
	default:
		return StatusUpcoming
	}
}

// Summary counts a schedule's entries by status.
type Summary struct {
	Overdue  int
	Due      int
	Upcoming int
	// Next is the first entry of the schedule, nil when nothing is outstanding.
	Next *Entry
}

// Summarize counts entries by status. entries must be ordered as returned by
// ComputeSchedule.
func Summarize(entries []Entry) Summary {
	var s Summary
	for _, e := range entries {
		switch e.Status {
		case StatusOverdue:
			s.Overdue++
		case StatusDue:
			s.Due++
		default:
			s.Upcoming++
		}
	}
	if len(entries) > 0 {
		next := entries[0]
		s.Next = &next
	}
	return s
}

// Scheduler computes schedules against a clock. The zero value is not usable;
// create one with NewScheduler.
type Scheduler struct {
	now func() time.Time
}

// NewScheduler returns a Scheduler whose "today" is the current date in loc.
// A nil loc means UTC.
func NewScheduler(loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{now: func() time.Time { return time.Now().In(loc) }}
}

// NewSchedulerWithClock returns a Scheduler that reads "today" from now.
func NewSchedulerWithClock(now func() time.Time) *Scheduler {
	return &Scheduler{now: now}
}

// Today returns the scheduler's current date.
func (s *Scheduler) Today() time.Time {
	return calendar.StartOfDay(s.now())
}

// Schedule reads the clock once and computes the schedule for that instant.
func (s *Scheduler) Schedule(birth time.Time, completed []types.CompletedDose) []Entry {
	return ComputeSchedule(birth, completed, s.now())
}
