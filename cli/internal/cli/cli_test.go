package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/goccy/go-json"
)

// fixedNow is the wall clock for every command test.
var fixedNow = time.Date(2026, time.October, 17, 15, 4, 0, 0, time.UTC)

const miaProfile = `child:
  id: mia
  name: Mia Lopez
  birth_date: 2025-10-17
  gender: female
completed:
  - vaccine: hepb
    dose: 1
records:
  - type: measurement
    title: Birth
    date: 2025-10-17
    height: 49.1
    weight: 3.2
  - type: measurement
    title: 12 month checkup
    date: 2026-10-17
    height: 74.3
    weight: 9.3
  - type: symptom
    title: Fever, mild
    notes: Resolved after two days
    date: 2026-03-01
medications:
  - name: Amoxicillin
    dosage: 5ml
    frequency: every 8 hours
    start_date: 2026-10-15
    end_date: 2026-10-22
    reminders: true
  - name: Vitamin D
    dosage: 1 drop
    frequency: daily
    start_date: 2025-11-01
    active: false
    reminders: true
`

func writeProfile(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "mia.yaml")
	if err := os.WriteFile(p, []byte(miaProfile), 0o600); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	return p
}

// run executes growthctl with args and returns what it wrote to stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(func() time.Time { return fixedNow })
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("growthctl %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func TestPercentile_JSON(t *testing.T) {
	out := mustRun(t, "percentile", "--type", "height", "--gender", "male", "--age", "0", "--value", "49.9", "--format", "json")

	var got percentileOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, out)
	}
	if got.Percentile != 50 || got.Status != "normal" || got.ReferenceAgeMonths != 0 {
		t.Errorf("got %+v, want percentile 50 normal at 0 months", got)
	}
}

func TestPercentile_Text(t *testing.T) {
	out := mustRun(t, "percentile", "-t", "weight", "-g", "female", "-a", "12", "-v", "6.0")
	if !strings.Contains(out, "percentile 3.0, low") {
		t.Errorf("output: %q", out)
	}
}

func TestPercentile_InvalidFlags(t *testing.T) {
	tests := [][]string{
		{"percentile", "--type", "length", "--gender", "male", "--value", "50"},
		{"percentile", "--type", "height", "--gender", "x", "--value", "50"},
		{"percentile", "--type", "height", "--gender", "male", "--value", "50", "--age", "-1"},
		{"percentile", "--type", "height", "--gender", "male"},
		{"percentile", "--type", "height", "--gender", "male", "--value", "50", "--format", "xml"},
	}
	for _, args := range tests {
		if _, err := run(t, args...); err == nil {
			t.Errorf("growthctl %s: expected error", strings.Join(args, " "))
		}
	}
}

func TestBMI(t *testing.T) {
	out := mustRun(t, "bmi", "--weight", "10", "--height", "75")
	if strings.TrimSpace(out) != "BMI 17.8" {
		t.Errorf("output: %q, want BMI 17.8", out)
	}
	if _, err := run(t, "bmi", "--weight", "10"); err == nil {
		t.Error("missing height: expected error")
	}
}

func TestSchedule_JSON(t *testing.T) {
	p := writeProfile(t)
	out := mustRun(t, "schedule", "-p", p, "--today", "2026-10-17", "-f", "json")

	var got scheduleOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, out)
	}
	if got.AgeMonths != 12 || got.Today != "2026-10-17" {
		t.Errorf("age/today: got %d/%q", got.AgeMonths, got.Today)
	}
	if got.Overdue != 17 || got.Due != 4 || got.Upcoming != 5 {
		t.Errorf("summary: got %d/%d/%d, want 17/4/5", got.Overdue, got.Due, got.Upcoming)
	}
	if len(got.Entries) != 26 {
		t.Fatalf("entries: got %d, want 26", len(got.Entries))
	}
	if got.Entries[0].Status != "overdue" || got.Entries[len(got.Entries)-1].Status != "upcoming" {
		t.Errorf("entries not ordered by status: first %+v last %+v", got.Entries[0], got.Entries[len(got.Entries)-1])
	}
	for _, e := range got.Entries {
		if e.Vaccine == "hepb" && e.DoseNumber == 1 {
			t.Error("completed hepb dose 1 listed")
		}
	}
}

func TestSchedule_AgeInZoneEastOfUTC(t *testing.T) {
	p := writeProfile(t)
	out := mustRun(t, "schedule", "-p", p, "--today", "2026-10-17", "--tz", "Asia/Tokyo", "-f", "json")

	var got scheduleOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, out)
	}
	if got.AgeMonths != 12 {
		t.Errorf("age in Asia/Tokyo: got %d months, want 12", got.AgeMonths)
	}
	if got.Overdue != 17 || got.Due != 4 || got.Upcoming != 5 {
		t.Errorf("summary: got %d/%d/%d, want 17/4/5", got.Overdue, got.Due, got.Upcoming)
	}
}

func TestSchedule_StatusFilter(t *testing.T) {
	p := writeProfile(t)
	out := mustRun(t, "schedule", "-p", p, "--today", "2026-10-17", "--status", "due", "-f", "json")

	var got scheduleOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got.Entries) != 4 {
		t.Fatalf("due entries: got %d, want 4", len(got.Entries))
	}
	for _, e := range got.Entries {
		if e.Status != "due" || e.DueDate != "2026-10-17" {
			t.Errorf("entry: got %+v, want due today", e)
		}
	}

	if _, err := run(t, "schedule", "-p", p, "--status", "late"); err == nil {
		t.Error("--status late: expected error")
	}
}

func TestSchedule_Text(t *testing.T) {
	p := writeProfile(t)
	out := mustRun(t, "schedule", "-p", p, "--today", "2026-10-17")
	if !strings.HasPrefix(out, "Mia Lopez, 12 months, as of 2026-10-17: 17 overdue, 4 due, 5 upcoming") {
		t.Errorf("header: %q", strings.SplitN(out, "\n", 2)[0])
	}
	if !strings.Contains(out, "STATUS") {
		t.Error("table header missing")
	}
}

func TestSchedule_BadInputs(t *testing.T) {
	p := writeProfile(t)
	tests := [][]string{
		{"schedule", "-p", filepath.Join(t.TempDir(), "absent.yaml")},
		{"schedule", "-p", p, "--today", "17/10/2026"},
		{"schedule", "-p", p, "--tz", "Mars/Olympus"},
	}
	for _, args := range tests {
		if _, err := run(t, args...); err == nil {
			t.Errorf("growthctl %s: expected error", strings.Join(args, " "))
		}
	}
}

func TestGrowth_JSON(t *testing.T) {
	p := writeProfile(t)
	out := mustRun(t, "growth", "-p", p, "-f", "json")

	var got growthOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, out)
	}
	weights := got.Series["weight"]
	if len(weights) != 2 {
		t.Fatalf("weight points: got %d, want 2", len(weights))
	}
	if weights[0].AgeMonths != 0 || weights[1].AgeMonths != 12 {
		t.Errorf("ages: got %d,%d want 0,12", weights[0].AgeMonths, weights[1].AgeMonths)
	}
	// 9.3 kg is the female median at 12 months.
	if weights[1].Percentile != 50 || weights[1].Status != "normal" {
		t.Errorf("12 month weight: got %+v", weights[1])
	}
	if len(got.Series["height"]) != 2 {
		t.Errorf("height points: got %d, want 2", len(got.Series["height"]))
	}

	out = mustRun(t, "growth", "-p", p, "-f", "json", "--type", "height")
	got = growthOutput{}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := got.Series["weight"]; ok {
		t.Error("--type height still returned weights")
	}
}

func TestReminders(t *testing.T) {
	p := writeProfile(t)
	out := mustRun(t, "reminders", "-p", p, "-f", "json")

	var got []reminderOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, out)
	}
	// Every 8h from now (Oct 17 15:04) through the inclusive end date (Oct 22 00:00).
	if len(got) != 14 {
		t.Fatalf("reminders: got %d, want 14", len(got))
	}
	if got[0].At != "2026-10-17T15:04:00Z" || got[13].At != "2026-10-21T23:04:00Z" {
		t.Errorf("first/last: got %s / %s", got[0].At, got[13].At)
	}
	for _, r := range got {
		if r.Medication != "Amoxicillin" {
			t.Errorf("inactive medication planned: %+v", r)
		}
	}

	out = mustRun(t, "reminders", "-p", p, "-f", "json", "--limit", "3")
	got = nil
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("limited reminders: got %d, want 3", len(got))
	}
}

func TestExport(t *testing.T) {
	p := writeProfile(t)
	dir := t.TempDir()
	out := mustRun(t, "export", "-p", p, "--out", dir)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("export printed %d paths, want 3:\n%s", len(lines), out)
	}

	records, err := os.ReadFile(filepath.Join(dir, "Mia_Lopez_health_data_records.csv"))
	if err != nil {
		t.Fatalf("read records csv: %v", err)
	}
	if !strings.HasPrefix(string(records), "Date,Type,Title,Notes,Height,Weight\n") {
		t.Errorf("records csv header: %q", strings.SplitN(string(records), "\n", 2)[0])
	}
	if !strings.Contains(string(records), `"Fever, mild"`) {
		t.Errorf("records csv did not quote embedded comma:\n%s", records)
	}

	text, err := os.ReadFile(filepath.Join(dir, "Mia_Lopez_health_data_report.txt"))
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.HasPrefix(string(text), "Health Report for Mia Lopez\nGenerated on October 17, 2026\n") {
		t.Errorf("report header: %q", string(text)[:60])
	}

	if _, err := os.Stat(filepath.Join(dir, "Mia_Lopez_health_data_medications.csv")); err != nil {
		t.Errorf("medications csv: %v", err)
	}
}
