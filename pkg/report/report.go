package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/growthmate/growthmate/pkg/types"
)

const (
	longDate  = "January 2, 2006"
	shortDate = time.DateOnly
)

// Export is everything one export run writes.
type Export struct {
	ChildName   string
	GeneratedAt time.Time
	Records     []types.HealthRecord
	Medications []types.Medication
}

// BaseName returns the file-name stem for a child's export, with runs of
// whitespace in the name replaced by underscores.
func BaseName(childName string) string {
	return strings.Join(strings.Fields(childName), "_") + "_health_data"
}

// errWriter remembers the first write error so report rendering can stay
// linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

// WriteReport writes the plain-text report. Optional fields (notes,
// measurements) are omitted when empty.
func WriteReport(w io.Writer, e Export) error {
	ew := &errWriter{w: w}
	ew.printf("Health Report for %s\n", e.ChildName)
	ew.printf("Generated on %s\n\n", e.GeneratedAt.Format(longDate))

	ew.printf("HEALTH RECORDS\n==============\n\n")
	for _, r := range e.Records {
		ew.printf("Date: %s\n", r.CreatedAt.Format(longDate))
		ew.printf("Type: %s\n", r.Type)
		ew.printf("Title: %s\n", r.Title)
		if r.Notes != "" {
			ew.printf("Notes: %s\n", r.Notes)
		}
		if r.Height != 0 {
			ew.printf("Height: %s cm\n", formatFloat(r.Height))
		}
		if r.Weight != 0 {
			ew.printf("Weight: %s kg\n", formatFloat(r.Weight))
		}
		ew.printf("\n")
	}

	ew.printf("MEDICATIONS\n===========\n\n")
	for _, m := range e.Medications {
		ew.printf("Name: %s\n", m.Name)
		ew.printf("Dosage: %s\n", m.Dosage)
		ew.printf("Frequency: %s\n", m.Frequency)
		ew.printf("Start Date: %s\n", m.StartDate.Format(longDate))
		if m.EndDate != nil {
			ew.printf("End Date: %s\n", m.EndDate.Format(longDate))
		} else {
			ew.printf("End Date: Ongoing\n")
		}
		ew.printf("Status: %s\n", medicationStatus(m))
		if m.Notes != "" {
			ew.printf("Notes: %s\n", m.Notes)
		}
		ew.printf("\n")
	}
	if ew.err != nil {
		return fmt.Errorf("report: write text: %w", ew.err)
	}
	return nil
}

// WriteRecordsCSV writes health records as CSV with header
// Date,Type,Title,Notes,Height,Weight.
func WriteRecordsCSV(w io.Writer, records []types.HealthRecord) error {
	rows := [][]string{{"Date", "Type", "Title", "Notes", "Height", "Weight"}}
	for _, r := range records {
		rows = append(rows, []string{
			r.CreatedAt.Format(shortDate),
			r.Type,
			r.Title,
			r.Notes,
			optionalFloat(r.Height),
			optionalFloat(r.Weight),
		})
	}
	return writeCSV(w, rows)
}

// WriteMedicationsCSV writes medications as CSV with header
// Name,Dosage,Frequency,Start Date,End Date,Status,Notes.
func WriteMedicationsCSV(w io.Writer, meds []types.Medication) error {
	rows := [][]string{{"Name", "Dosage", "Frequency", "Start Date", "End Date", "Status", "Notes"}}
	for _, m := range meds {
		end := ""
		if m.EndDate != nil {
			end = m.EndDate.Format(shortDate)
		}
		rows = append(rows, []string{
			m.Name,
			m.Dosage,
			m.Frequency,
			m.StartDate.Format(shortDate),
			end,
			medicationStatus(m),
			m.Notes,
		})
	}
	return writeCSV(w, rows)
}

func writeCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("report: write csv: %w", err)
	}
	return nil
}

func medicationStatus(m types.Medication) string {
	if m.Active {
		return "Active"
	}
	return "Completed"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func optionalFloat(v float64) string {
	if v == 0 {
		return ""
	}
	return formatFloat(v)
}
