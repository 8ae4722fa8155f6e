package api

// HealthResponse is the payload for GET /api/v1/health.
type HealthResponse struct {
	Status       string `json:"status"`
	Today        string `json:"today"` // YYYY-MM-DD in the configured timezone
	ProfileCount int    `json:"profile_count"`
	VaccineCount int    `json:"vaccine_count"`
	TotalDoses   int    `json:"total_doses"`
}

// PercentileRequest is the body of POST /api/v1/growth/percentile.
type PercentileRequest struct {
	Value     float64 `json:"value"`
	AgeMonths float64 `json:"age_months"`
	Type      string  `json:"type"`   // height | weight
	Gender    string  `json:"gender"` // male | female
}

// PercentileResponse is the payload for POST /api/v1/growth/percentile.
type PercentileResponse struct {
	Percentile         float64 `json:"percentile"`
	Status             string  `json:"status"`
	Color              string  `json:"color"`
	ReferenceAgeMonths int     `json:"reference_age_months"`
}

// BMIRequest is the body of POST /api/v1/growth/bmi.
type BMIRequest struct {
	WeightKg float64 `json:"weight_kg"`
	HeightCm float64 `json:"height_cm"`
}

// BMIResponse is the payload for POST /api/v1/growth/bmi.
type BMIResponse struct {
	BMI float64 `json:"bmi"`
}

// ObservationJSON is one dated measurement value.
type ObservationJSON struct {
	Value float64 `json:"value"`
	Date  string  `json:"date"` // YYYY-MM-DD or RFC3339
}

// SeriesRequest is the body of POST /api/v1/growth/series.
type SeriesRequest struct {
	BirthDate    string            `json:"birth_date"`
	Gender       string            `json:"gender"`
	Type         string            `json:"type"`
	Observations []ObservationJSON `json:"observations"`
}

// PointResponse is one observation placed on the reference curve.
type PointResponse struct {
	Date       string  `json:"date"`
	Value      float64 `json:"value"`
	AgeMonths  int     `json:"age_months"`
	Percentile float64 `json:"percentile"`
	Status     string  `json:"status"`
	Color      string  `json:"color"`
}

// SeriesResponse is the payload for POST /api/v1/growth/series.
type SeriesResponse struct {
	Type   string          `json:"type"`
	Points []PointResponse `json:"points"`
}

// VaccineResponse is one catalog entry in GET /api/v1/vaccines.
type VaccineResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Disease         string `json:"disease"`
	Doses           int    `json:"doses"`
	RecommendedAges []int  `json:"recommended_ages"`
}

// CompletedDoseJSON is one administered dose.
type CompletedDoseJSON struct {
	VaccineID  string `json:"vaccine_id"`
	DoseNumber int    `json:"dose_number"`
	Date       string `json:"date,omitempty"`
}

// ScheduleRequest is the body of POST /api/v1/vaccines/schedule.
type ScheduleRequest struct {
	BirthDate string              `json:"birth_date"`
	Completed []CompletedDoseJSON `json:"completed"`
}

// EntryResponse is one outstanding dose.
type EntryResponse struct {
	VaccineID   string `json:"vaccine_id"`
	VaccineName string `json:"vaccine_name"`
	Disease     string `json:"disease"`
	DoseNumber  int    `json:"dose_number"`
	DueDate     string `json:"due_date"` // YYYY-MM-DD
	Status      string `json:"status"`
}

// SummaryResponse counts outstanding doses per status.
type SummaryResponse struct {
	Overdue  int            `json:"overdue"`
	Due      int            `json:"due"`
	Upcoming int            `json:"upcoming"`
	Next     *EntryResponse `json:"next,omitempty"`
}

// ScheduleResponse is the payload for POST /api/v1/vaccines/schedule.
type ScheduleResponse struct {
	CalculationID string          `json:"calculation_id"`
	GeneratedAt   string          `json:"generated_at"` // RFC3339
	Today         string          `json:"today"`
	Summary       SummaryResponse `json:"summary"`
	Entries       []EntryResponse `json:"entries"`
}

// MedicationRequest is the body of POST /api/v1/reminders/medication.
type MedicationRequest struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date,omitempty"`
	Active    bool   `json:"active"`
	Reminders bool   `json:"reminders"`
}

// AppointmentRequest is the body of POST /api/v1/reminders/appointment.
type AppointmentRequest struct {
	VaccineID  string `json:"vaccine_id"`
	DoseNumber int    `json:"dose_number"`
	At         string `json:"at"` // RFC3339
	Location   string `json:"location,omitempty"`
}

// ReminderResponse is one planned notification.
type ReminderResponse struct {
	ID    string `json:"id"`
	Kind  string `json:"kind"`
	RefID string `json:"ref_id"`
	At    string `json:"at"` // RFC3339
	Title string `json:"title"`
	Body  string `json:"body"`
}

// RemindersResponse is the payload for the reminder planning endpoints.
type RemindersResponse struct {
	Interval  string             `json:"interval,omitempty"`
	Reminders []ReminderResponse `json:"reminders"`
}

// MeasurementJSON is one stored height or weight reading.
type MeasurementJSON struct {
	Type  string  `json:"type"`
	Value float64 `json:"value"`
	Date  string  `json:"date"`
}

// ChildRequest is the body of PUT /api/v1/children/{id}.
type ChildRequest struct {
	Name         string              `json:"name"`
	BirthDate    string              `json:"birth_date"`
	Gender       string              `json:"gender"`
	Completed    []CompletedDoseJSON `json:"completed"`
	Measurements []MeasurementJSON   `json:"measurements"`
}

// ChildResponse is a stored profile together with its live schedule and the
// latest percentile per measurement type.
type ChildResponse struct {
	ID           string                    `json:"id"`
	Name         string                    `json:"name"`
	BirthDate    string                    `json:"birth_date"`
	Gender       string                    `json:"gender"`
	AgeMonths    int                       `json:"age_months"`
	Completed    []CompletedDoseJSON       `json:"completed"`
	Measurements []MeasurementJSON         `json:"measurements"`
	Summary      SummaryResponse           `json:"summary"`
	Schedule     []EntryResponse           `json:"schedule"`
	Growth       map[string]*PointResponse `json:"growth"`
	Hints        []Hint                    `json:"hints"`
	UpdatedAt    string                    `json:"updated_at"` // RFC3339
}

// ChildSummary is one row in GET /api/v1/children and the dashboard stream.
type ChildSummary struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	AgeMonths int             `json:"age_months"`
	Summary   SummaryResponse `json:"summary"`
}

// DashboardResponse is the payload pushed to WebSocket dashboard clients.
type DashboardResponse struct {
	Today       string         `json:"today"`
	Children    []ChildSummary `json:"children"`
	GeneratedAt string         `json:"generated_at"` // RFC3339
}

// errorResponse is a generic JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}
