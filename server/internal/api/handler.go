package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/growthmate/growthmate/pkg/growth"
	"github.com/growthmate/growthmate/pkg/reminder"
	"github.com/growthmate/growthmate/pkg/types"
	"github.com/growthmate/growthmate/pkg/vaccine"
	"github.com/growthmate/growthmate/server/internal/metrics"
	"github.com/growthmate/growthmate/server/internal/store"
)

// maxBodyBytes bounds every request body.
const maxBodyBytes = 1 << 20

// Options configures a Handler. Zero values fall back to defaults.
type Options struct {
	// Scheduler supplies "today". Default: UTC wall clock.
	Scheduler *vaccine.Scheduler

	// Metrics records request and computation counters. May be nil.
	Metrics *metrics.Registry

	// ReminderLimit caps planned reminders per medication.
	ReminderLimit int

	// AppointmentLead is how long before an appointment its reminder fires.
	AppointmentLead time.Duration

	// Now is the wall clock used for generated_at stamps and reminder
	// planning. Default: time.Now.
	Now func() time.Time
}

// Handler is the HTTP handler for all /api/v1/* endpoints.
type Handler struct {
	store   *store.Store
	sched   *vaccine.Scheduler
	metrics *metrics.Registry
	limit   int
	lead    time.Duration
	now     func() time.Time
	mux     *http.ServeMux
}

// New creates a Handler wired to the given profile store and registers all routes.
func New(st *store.Store, opts Options) http.Handler {
	h := &Handler{
		store:   st,
		sched:   opts.Scheduler,
		metrics: opts.Metrics,
		limit:   opts.ReminderLimit,
		lead:    opts.AppointmentLead,
		now:     opts.Now,
		mux:     http.NewServeMux(),
	}
	if h.sched == nil {
		h.sched = vaccine.NewScheduler(time.UTC)
	}
	if h.limit <= 0 {
		h.limit = reminder.DefaultLimit
	}
	if h.lead <= 0 {
		h.lead = reminder.DefaultAppointmentLead
	}
	if h.now == nil {
		h.now = time.Now
	}

	h.route("/api/v1/health", h.health)
	h.route("/api/v1/growth/percentile", h.percentile)
	h.route("/api/v1/growth/bmi", h.bmi)
	h.route("/api/v1/growth/series", h.series)
	h.route("/api/v1/vaccines", h.vaccines)
	h.route("/api/v1/vaccines/schedule", h.schedule)
	h.route("/api/v1/reminders/medication", h.medicationReminders)
	h.route("/api/v1/reminders/appointment", h.appointmentReminder)
	h.route("/api/v1/children", h.listChildren)
	h.route("/api/v1/children/", h.child) // subtree, extracts {id}

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// route registers fn under pattern and counts its responses.
func (h *Handler) route(pattern string, fn http.HandlerFunc) {
	h.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		fn(sw, r)
		if h.metrics != nil {
			h.metrics.ObserveRequest(pattern, sw.code)
		}
	})
}

// --- route handlers ---------------------------------------------------------

// health returns GET /api/v1/health.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, HealthResponse{
		Status:       "ok",
		Today:        formatDate(h.sched.Today()),
		ProfileCount: len(h.store.List()),
		VaccineCount: len(vaccine.Catalog()),
		TotalDoses:   vaccine.TotalDoses(),
	})
}

// percentile handles POST /api/v1/growth/percentile.
func (h *Handler) percentile(w http.ResponseWriter, r *http.Request) {
	var req PercentileRequest
	if !decodePost(w, r, &req) {
		return
	}
	typ, gender, err := parseCurve(req.Type, req.Gender)
	if err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.AgeMonths < 0 {
		jsonErr(w, http.StatusBadRequest, "age_months must not be negative")
		return
	}

	p := growth.CalculatePercentile(req.Value, req.AgeMonths, typ, gender)
	c := growth.ClassifyGrowthStatus(p)
	refAge, _ := growth.NearestCheckpointAge(req.AgeMonths, typ, gender)
	if h.metrics != nil {
		h.metrics.ObservePercentile(string(typ), string(c.Status))
	}
	jsonResp(w, http.StatusOK, PercentileResponse{
		Percentile:         p,
		Status:             string(c.Status),
		Color:              c.Color,
		ReferenceAgeMonths: refAge,
	})
}

// bmi handles POST /api/v1/growth/bmi.
func (h *Handler) bmi(w http.ResponseWriter, r *http.Request) {
	var req BMIRequest
	if !decodePost(w, r, &req) {
		return
	}
	if req.WeightKg <= 0 || req.HeightCm <= 0 {
		jsonErr(w, http.StatusBadRequest, "weight_kg and height_cm must be positive")
		return
	}
	jsonResp(w, http.StatusOK, BMIResponse{BMI: growth.BodyMassIndex(req.WeightKg, req.HeightCm)})
}

// series handles POST /api/v1/growth/series.
func (h *Handler) series(w http.ResponseWriter, r *http.Request) {
	var req SeriesRequest
	if !decodePost(w, r, &req) {
		return
	}
	typ, gender, err := parseCurve(req.Type, req.Gender)
	if err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}
	birth, err := parseDate(req.BirthDate, h.location())
	if err != nil {
		jsonErr(w, http.StatusBadRequest, "birth_date: "+err.Error())
		return
	}
	obs := make([]growth.Observation, 0, len(req.Observations))
	for i, o := range req.Observations {
		at, err := parseDate(o.Date, h.location())
		if err != nil {
			jsonErr(w, http.StatusBadRequest, fmt.Sprintf("observations[%d].date: %v", i, err))
			return
		}
		obs = append(obs, growth.Observation{Value: o.Value, At: at})
	}

	points := growth.Series(birth, gender, typ, obs)
	out := SeriesResponse{Type: string(typ), Points: make([]PointResponse, 0, len(points))}
	for _, p := range points {
		out.Points = append(out.Points, toPointResponse(p))
		if h.metrics != nil {
			h.metrics.ObservePercentile(string(typ), string(p.Status))
		}
	}
	jsonResp(w, http.StatusOK, out)
}

// vaccines returns GET /api/v1/vaccines, the recommended catalog.
func (h *Handler) vaccines(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	catalog := vaccine.Catalog()
	out := make([]VaccineResponse, 0, len(catalog))
	for _, v := range catalog {
		out = append(out, VaccineResponse{
			ID:              v.ID,
			Name:            v.Name,
			Description:     v.Description,
			Disease:         v.Disease,
			Doses:           v.Doses,
			RecommendedAges: v.RecommendedAges,
		})
	}
	jsonResp(w, http.StatusOK, out)
}

// schedule handles POST /api/v1/vaccines/schedule.
func (h *Handler) schedule(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRequest
	if !decodePost(w, r, &req) {
		return
	}
	birth, err := parseDate(req.BirthDate, h.location())
	if err != nil {
		jsonErr(w, http.StatusBadRequest, "birth_date: "+err.Error())
		return
	}
	completed, err := parseCompleted(req.Completed, h.location())
	if err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}

	today := h.sched.Today()
	entries := vaccine.ComputeSchedule(birth, completed, today)
	h.observeSchedule(entries)

	jsonResp(w, http.StatusOK, ScheduleResponse{
		CalculationID: uuid.NewString(),
		GeneratedAt:   h.now().UTC().Format(time.RFC3339),
		Today:         formatDate(today),
		Summary:       toSummaryResponse(vaccine.Summarize(entries)),
		Entries:       toEntryResponses(entries),
	})
}

// medicationReminders handles POST /api/v1/reminders/medication.
func (h *Handler) medicationReminders(w http.ResponseWriter, r *http.Request) {
	var req MedicationRequest
	if !decodePost(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		jsonErr(w, http.StatusBadRequest, "name is required")
		return
	}
	start, err := parseDate(req.StartDate, h.location())
	if err != nil {
		jsonErr(w, http.StatusBadRequest, "start_date: "+err.Error())
		return
	}
	med := types.Medication{
		ID:        req.ID,
		Name:      req.Name,
		Dosage:    req.Dosage,
		Frequency: req.Frequency,
		StartDate: start,
		Active:    req.Active,
		Reminders: req.Reminders,
	}
	if req.EndDate != "" {
		end, err := parseDate(req.EndDate, h.location())
		if err != nil {
			jsonErr(w, http.StatusBadRequest, "end_date: "+err.Error())
			return
		}
		if end.Before(start) {
			jsonErr(w, http.StatusBadRequest, "end_date is before start_date")
			return
		}
		med.EndDate = &end
	}
	if med.ID == "" {
		med.ID = uuid.NewString()
	}

	planned := reminder.PlanMedication(med, h.now(), reminder.Options{Limit: h.limit})
	if h.metrics != nil {
		h.metrics.ObserveReminders(string(reminder.KindMedication), len(planned))
	}
	jsonResp(w, http.StatusOK, RemindersResponse{
		Interval:  reminder.ParseFrequency(med.Frequency).String(),
		Reminders: toReminderResponses(planned),
	})
}

// appointmentReminder handles POST /api/v1/reminders/appointment.
func (h *Handler) appointmentReminder(w http.ResponseWriter, r *http.Request) {
	var req AppointmentRequest
	if !decodePost(w, r, &req) {
		return
	}
	if _, ok := vaccine.Lookup(req.VaccineID); !ok {
		jsonErr(w, http.StatusBadRequest, fmt.Sprintf("unknown vaccine %q", req.VaccineID))
		return
	}
	if req.DoseNumber < 1 {
		jsonErr(w, http.StatusBadRequest, "dose_number must be at least 1")
		return
	}
	at, err := time.Parse(time.RFC3339, req.At)
	if err != nil {
		jsonErr(w, http.StatusBadRequest, "at: want RFC3339 timestamp")
		return
	}

	rem := reminder.PlanAppointment(reminder.Appointment{
		VaccineID:  req.VaccineID,
		DoseNumber: req.DoseNumber,
		At:         at,
		Location:   req.Location,
	}, h.lead)
	if h.metrics != nil {
		h.metrics.ObserveReminders(string(reminder.KindAppointment), 1)
	}
	jsonResp(w, http.StatusOK, RemindersResponse{
		Reminders: toReminderResponses([]reminder.Reminder{rem}),
	})
}

// listChildren returns GET /api/v1/children, one summary per live profile.
func (h *Handler) listChildren(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, BuildDashboard(h.store, h.sched, h.now()).Children)
}

// child serves PUT, GET and DELETE on /api/v1/children/{id}.
func (h *Handler) child(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/v1/children/")
	if id == "" {
		h.listChildren(w, r)
		return
	}
	if strings.Contains(id, "/") {
		jsonErr(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		e, ok := h.store.Get(id)
		if !ok {
			jsonErr(w, http.StatusNotFound, "child not found")
			return
		}
		jsonResp(w, http.StatusOK, h.toChildResponse(e))

	case http.MethodPut:
		var req ChildRequest
		if !decode(w, r, &req) {
			return
		}
		p, err := h.toProfile(id, req)
		if err != nil {
			jsonErr(w, http.StatusBadRequest, err.Error())
			return
		}
		code := http.StatusOK
		if _, exists := h.store.Get(id); !exists {
			code = http.StatusCreated
		}
		e := h.store.Put(p)
		jsonResp(w, code, h.toChildResponse(e))

	case http.MethodDelete:
		if !h.store.Delete(id) {
			jsonErr(w, http.StatusNotFound, "child not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// --- helpers ----------------------------------------------------------------

// BuildDashboard summarises every live profile's schedule as of now.
func BuildDashboard(st *store.Store, sched *vaccine.Scheduler, now time.Time) DashboardResponse {
	today := sched.Today()
	entries := st.List()
	out := DashboardResponse{
		Today:       formatDate(today),
		Children:    make([]ChildSummary, 0, len(entries)),
		GeneratedAt: now.UTC().Format(time.RFC3339),
	}
	for _, e := range entries {
		c := e.Profile.Child
		outstanding := vaccine.ComputeSchedule(c.BirthDate, e.Profile.Completed, today)
		out.Children = append(out.Children, ChildSummary{
			ID:        c.ID,
			Name:      c.Name,
			AgeMonths: vaccine.AgeInMonths(c.BirthDate, today),
			Summary:   toSummaryResponse(vaccine.Summarize(outstanding)),
		})
	}
	return out
}

func (h *Handler) location() *time.Location {
	return h.sched.Today().Location()
}

func (h *Handler) observeSchedule(entries []vaccine.Entry) {
	if h.metrics == nil {
		return
	}
	s := vaccine.Summarize(entries)
	h.metrics.ObserveScheduleEntries(string(vaccine.StatusOverdue), s.Overdue)
	h.metrics.ObserveScheduleEntries(string(vaccine.StatusDue), s.Due)
	h.metrics.ObserveScheduleEntries(string(vaccine.StatusUpcoming), s.Upcoming)
}

func (h *Handler) toProfile(id string, req ChildRequest) (store.Profile, error) {
	loc := h.location()
	gender := types.Gender(req.Gender)
	if !gender.Valid() {
		return store.Profile{}, fmt.Errorf("gender %q: want male or female", req.Gender)
	}
	birth, err := parseDate(req.BirthDate, loc)
	if err != nil {
		return store.Profile{}, fmt.Errorf("birth_date: %w", err)
	}
	completed, err := parseCompleted(req.Completed, loc)
	if err != nil {
		return store.Profile{}, err
	}
	ms := make([]store.Measurement, 0, len(req.Measurements))
	for i, m := range req.Measurements {
		typ := types.MeasurementType(m.Type)
		if !typ.Valid() {
			return store.Profile{}, fmt.Errorf("measurements[%d].type %q: want height or weight", i, m.Type)
		}
		if m.Value <= 0 {
			return store.Profile{}, fmt.Errorf("measurements[%d].value must be positive", i)
		}
		at, err := parseDate(m.Date, loc)
		if err != nil {
			return store.Profile{}, fmt.Errorf("measurements[%d].date: %w", i, err)
		}
		ms = append(ms, store.Measurement{Type: typ, Value: m.Value, At: at})
	}
	return store.Profile{
		Child: types.Child{
			ID:        id,
			Name:      req.Name,
			BirthDate: birth,
			Gender:    gender,
		},
		Completed:    completed,
		Measurements: ms,
	}, nil
}

func (h *Handler) toChildResponse(e store.Entry) ChildResponse {
	p := e.Profile
	today := h.sched.Today()
	entries := vaccine.ComputeSchedule(p.Child.BirthDate, p.Completed, today)
	h.observeSchedule(entries)

	out := ChildResponse{
		ID:           p.Child.ID,
		Name:         p.Child.Name,
		BirthDate:    formatDate(p.Child.BirthDate),
		Gender:       string(p.Child.Gender),
		AgeMonths:    vaccine.AgeInMonths(p.Child.BirthDate, today),
		Completed:    make([]CompletedDoseJSON, 0, len(p.Completed)),
		Measurements: make([]MeasurementJSON, 0, len(p.Measurements)),
		Summary:      toSummaryResponse(vaccine.Summarize(entries)),
		Schedule:     toEntryResponses(entries),
		Growth:       make(map[string]*PointResponse),
		UpdatedAt:    e.UpdatedAt.UTC().Format(time.RFC3339),
	}
	for _, d := range p.Completed {
		cd := CompletedDoseJSON{VaccineID: d.VaccineID, DoseNumber: d.DoseNumber}
		if !d.Date.IsZero() {
			cd.Date = formatDate(d.Date)
		}
		out.Completed = append(out.Completed, cd)
	}

	byType := make(map[types.MeasurementType][]growth.Observation)
	for _, m := range p.Measurements {
		out.Measurements = append(out.Measurements, MeasurementJSON{
			Type:  string(m.Type),
			Value: m.Value,
			Date:  formatDate(m.At),
		})
		byType[m.Type] = append(byType[m.Type], growth.Observation{Value: m.Value, At: m.At})
	}
	latest := make(map[string]growth.Point, len(byType))
	for typ, obs := range byType {
		if pt, ok := growth.Latest(growth.Series(p.Child.BirthDate, p.Child.Gender, typ, obs)); ok {
			pr := toPointResponse(pt)
			out.Growth[string(typ)] = &pr
			latest[string(typ)] = pt
		}
	}
	out.Hints = computeHints(entries, latest)
	return out
}

func parseCurve(typ, gender string) (types.MeasurementType, types.Gender, error) {
	t := types.MeasurementType(typ)
	if !t.Valid() {
		return "", "", fmt.Errorf("type %q: want height or weight", typ)
	}
	g := types.Gender(gender)
	if !g.Valid() {
		return "", "", fmt.Errorf("gender %q: want male or female", gender)
	}
	return t, g, nil
}

func parseCompleted(in []CompletedDoseJSON, loc *time.Location) ([]types.CompletedDose, error) {
	out := make([]types.CompletedDose, 0, len(in))
	for i, d := range in {
		if d.VaccineID == "" {
			return nil, fmt.Errorf("completed[%d].vaccine_id is required", i)
		}
		if d.DoseNumber < 1 {
			return nil, fmt.Errorf("completed[%d].dose_number must be at least 1", i)
		}
		cd := types.CompletedDose{VaccineID: d.VaccineID, DoseNumber: d.DoseNumber}
		if d.Date != "" {
			at, err := parseDate(d.Date, loc)
			if err != nil {
				return nil, fmt.Errorf("completed[%d].date: %w", i, err)
			}
			cd.Date = at
		}
		out = append(out, cd)
	}
	return out, nil
}

var errBadDate = errors.New("want YYYY-MM-DD or RFC3339")

// parseDate accepts a calendar date (interpreted in loc) or an RFC3339 timestamp.
func parseDate(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("required")
	}
	if t, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, errBadDate
}

func formatDate(t time.Time) string { return t.Format(time.DateOnly) }

func toPointResponse(p growth.Point) PointResponse {
	return PointResponse{
		Date:       formatDate(p.At),
		Value:      p.Value,
		AgeMonths:  p.AgeMonths,
		Percentile: p.Percentile,
		Status:     string(p.Status),
		Color:      p.Color,
	}
}

func toEntryResponse(e vaccine.Entry) EntryResponse {
	return EntryResponse{
		VaccineID:   e.Vaccine.ID,
		VaccineName: e.Vaccine.Name,
		Disease:     e.Vaccine.Disease,
		DoseNumber:  e.DoseNumber,
		DueDate:     formatDate(e.DueDate),
		Status:      string(e.Status),
	}
}

func toEntryResponses(entries []vaccine.Entry) []EntryResponse {
	out := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryResponse(e))
	}
	return out
}

func toSummaryResponse(s vaccine.Summary) SummaryResponse {
	out := SummaryResponse{Overdue: s.Overdue, Due: s.Due, Upcoming: s.Upcoming}
	if s.Next != nil {
		next := toEntryResponse(*s.Next)
		out.Next = &next
	}
	return out
}

func toReminderResponses(rs []reminder.Reminder) []ReminderResponse {
	out := make([]ReminderResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, ReminderResponse{
			ID:    r.ID,
			Kind:  string(r.Kind),
			RefID: r.RefID,
			At:    r.At.UTC().Format(time.RFC3339),
			Title: r.Title,
			Body:  r.Body,
		})
	}
	return out
}

// decodePost rejects non-POST requests, then decodes the body into v.
func decodePost(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Method != http.MethodPost {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return decode(w, r, v)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		jsonErr(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}

// statusWriter remembers the status code written through it.
type statusWriter struct {
	http.ResponseWriter
	code int
}

func (s *statusWriter) WriteHeader(code int) {
	s.code = code
	s.ResponseWriter.WriteHeader(code)
}
