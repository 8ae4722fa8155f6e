package reminder

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/growthmate/growthmate/pkg/types"
)

// Defaults applied when Options fields are zero.
const (
	DefaultLimit           = 64
	DefaultHourlyInterval  = 8 * time.Hour
	DefaultDailyInterval   = 24 * time.Hour
	DefaultAppointmentLead = 24 * time.Hour
)

// Kind identifies what a reminder is about.
type Kind string

const (
	KindMedication  Kind = "medication"
	KindAppointment Kind = "appointment"
)

// Reminder is one planned notification.
type Reminder struct {
	ID    string
	Kind  Kind
	RefID string // medication ID or vaccine ID
	At    time.Time
	Title string
	Body  string
}

// Options bounds a medication plan.
type Options struct {
	// Limit caps the number of reminders per medication. Zero means
	// DefaultLimit.
	Limit int
}

var firstNumber = regexp.MustCompile(`\d+`)

// ParseFrequency converts a free-text medication frequency to an interval.
//
//	contains "hour"            → the first number in the text, in hours (8 if absent or 0)
//	contains "daily" or "day"  → 12h if it also contains "twice", else 24h
//	anything else              → 24h
func ParseFrequency(freq string) time.Duration {
	f := strings.ToLower(freq)
	switch {
	case strings.Contains(f, "hour"):
		n, err := strconv.Atoi(firstNumber.FindString(f))
		if err != nil || n <= 0 {
			return DefaultHourlyInterval
		}
		return time.Duration(n) * time.Hour
	case strings.Contains(f, "daily") || strings.Contains(f, "day"):
		if strings.Contains(f, "twice") {
			return DefaultDailyInterval / 2
		}
		return DefaultDailyInterval
	default:
		return DefaultDailyInterval
	}
}

// PlanMedication returns the reminders for med, starting at the later of its
// start date and now and stepping by its parsed frequency. Planning stops at
// the end date (inclusive) or after opts.Limit reminders, whichever comes
// first. Inactive medications and medications without reminders enabled
// produce nothing.
func PlanMedication(med types.Medication, now time.Time, opts Options) []Reminder {
	if !med.Reminders || !med.Active {
		return nil
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	interval := ParseFrequency(med.Frequency)

	at := med.StartDate
	if now.After(at) {
		at = now
	}

	var out []Reminder
	for len(out) < limit {
		if med.EndDate != nil && at.After(*med.EndDate) {
			break
		}
		out = append(out, Reminder{
			ID:    newID(at),
			Kind:  KindMedication,
			RefID: med.ID,
			At:    at,
			Title: "Medication Reminder",
			Body:  fmt.Sprintf("Time to take %s (%s)", med.Name, med.Dosage),
		})
		at = at.Add(interval)
	}
	return out
}

// Appointment is a booked vaccination visit.
type Appointment struct {
	VaccineID  string
	DoseNumber int
	At         time.Time
	Location   string
}

// PlanAppointment returns a reminder lead before the appointment. A
// non-positive lead means DefaultAppointmentLead.
func PlanAppointment(a Appointment, lead time.Duration) Reminder {
	if lead <= 0 {
		lead = DefaultAppointmentLead
	}
	at := a.At.Add(-lead)
	return Reminder{
		ID:    newID(at),
		Kind:  KindAppointment,
		RefID: a.VaccineID,
		At:    at,
		Title: "Vaccination Appointment Tomorrow",
		Body:  fmt.Sprintf("Reminder: Vaccination appointment at %s", a.Location),
	}
}

// newID returns a ULID whose timestamp is the reminder's fire time. Times
// ULIDs cannot encode (before 1970) fall back to the current time.
func newID(at time.Time) string {
	id, err := ulid.New(ulid.Timestamp(at), ulid.DefaultEntropy())
	if err != nil {
		return ulid.Make().String()
	}
	return id.String()
}
