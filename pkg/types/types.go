package types

import "time"

// Gender selects the reference population for growth standards.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Valid reports whether g is one of the known genders.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// MeasurementType is the kind of anthropometric measurement.
type MeasurementType string

const (
	MeasurementHeight MeasurementType = "height" // centimetres
	MeasurementWeight MeasurementType = "weight" // kilograms
)

// Valid reports whether m is one of the known measurement types.
func (m MeasurementType) Valid() bool {
	return m == MeasurementHeight || m == MeasurementWeight
}

// Child is the subset of a child record the engines need.
type Child struct {
	ID        string
	Name      string
	BirthDate time.Time
	Gender    Gender
}

// CompletedDose records one administered vaccine dose.
// DoseNumber is 1-based within the vaccine's recommended schedule.
type CompletedDose struct {
	VaccineID  string
	DoseNumber int
	Date       time.Time
}

// HealthRecord.Type values.
const (
	RecordCheckup     = "checkup"
	RecordVaccination = "vaccination"
	RecordMeasurement = "measurement"
	RecordSymptom     = "symptom"
)

// HealthRecord is one entry in a child's health log. Height and Weight are
// zero when the record carries no measurement.
type HealthRecord struct {
	ID        string
	ChildID   string
	Type      string
	Title     string
	Notes     string
	Height    float64 // cm
	Weight    float64 // kg
	CreatedAt time.Time
}

// Medication is a prescribed medication course.
type Medication struct {
	ID        string
	ChildID   string
	Name      string
	Dosage    string
	Frequency string // free text: "every 6 hours", "twice daily", ...
	StartDate time.Time
	EndDate   *time.Time // nil = ongoing
	Notes     string
	Active    bool
	Reminders bool
}
