package metrics

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

const namespace = "growthmate"

// family describes one counter family and its label names.
type family struct {
	name   string
	help   string
	labels []string
}

var (
	httpRequests = family{"http_requests_total", "HTTP requests served, by route and status code.", []string{"route", "code"}}
	percentiles  = family{"percentile_calculations_total", "Growth percentile calculations, by measurement type and status.", []string{"type", "status"}}
	schedule     = family{"schedule_entries_total", "Vaccination schedule entries computed, by status.", []string{"status"}}
	reminders    = family{"reminders_planned_total", "Reminders planned, by kind.", []string{"kind"}}
)

// Registry holds the server's counters. The zero value is not usable; call New.
type Registry struct {
	mu       sync.Mutex
	counters map[string]map[string]float64 // family name → joined label values → count
	profiles func() int
}

// New creates an empty Registry. profiles, when non-nil, is sampled on every
// Gather to report the growthmate_profiles gauge.
func New(profiles func() int) *Registry {
	return &Registry{
		counters: make(map[string]map[string]float64),
		profiles: profiles,
	}
}

func (r *Registry) add(f family, delta float64, values ...string) {
	if len(values) != len(f.labels) {
		panic(fmt.Sprintf("metrics: %s wants %d label values, got %d", f.name, len(f.labels), len(values)))
	}
	key := strings.Join(values, "\xff")
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.counters[f.name]
	if !ok {
		m = make(map[string]float64)
		r.counters[f.name] = m
	}
	m[key] += delta
}

// ObserveRequest counts one HTTP response.
func (r *Registry) ObserveRequest(route string, code int) {
	r.add(httpRequests, 1, route, strconv.Itoa(code))
}

// ObservePercentile counts one percentile calculation.
func (r *Registry) ObservePercentile(measurementType, status string) {
	r.add(percentiles, 1, measurementType, status)
}

// ObserveScheduleEntries adds n schedule entries with the given status.
func (r *Registry) ObserveScheduleEntries(status string, n int) {
	if n <= 0 {
		return
	}
	r.add(schedule, float64(n), status)
}

// ObserveReminders adds n planned reminders of the given kind.
func (r *Registry) ObserveReminders(kind string, n int) {
	if n <= 0 {
		return
	}
	r.add(reminders, float64(n), kind)
}

// Gather snapshots every family, sorted by name with metrics sorted by label
// values.
func (r *Registry) Gather() []*dto.MetricFamily {
	r.mu.Lock()
	out := make([]*dto.MetricFamily, 0, 5)
	for _, f := range []family{httpRequests, percentiles, schedule, reminders} {
		series, ok := r.counters[f.name]
		if !ok {
			continue
		}
		out = append(out, counterFamily(f, series))
	}
	r.mu.Unlock()

	if r.profiles != nil {
		out = append(out, &dto.MetricFamily{
			Name: ptr(namespace + "_profiles"),
			Help: ptr("Child profiles currently held in the store."),
			Type: dto.MetricType_GAUGE.Enum(),
			Metric: []*dto.Metric{{
				Gauge: &dto.Gauge{Value: ptr(float64(r.profiles()))},
			}},
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].GetName() < out[j].GetName() })
	return out
}

func counterFamily(f family, series map[string]float64) *dto.MetricFamily {
	keys := make([]string, 0, len(series))
	for k := range series {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	mf := &dto.MetricFamily{
		Name:   ptr(namespace + "_" + f.name),
		Help:   ptr(f.help),
		Type:   dto.MetricType_COUNTER.Enum(),
		Metric: make([]*dto.Metric, 0, len(keys)),
	}
	for _, k := range keys {
		values := strings.Split(k, "\xff")
		pairs := make([]*dto.LabelPair, len(f.labels))
		for i, name := range f.labels {
			pairs[i] = &dto.LabelPair{Name: ptr(name), Value: ptr(values[i])}
		}
		mf.Metric = append(mf.Metric, &dto.Metric{
			Label:   pairs,
			Counter: &dto.Counter{Value: ptr(series[k])},
		})
	}
	return mf
}

// WriteText encodes all families to w in the Prometheus text format.
func (r *Registry) WriteText(w io.Writer) error {
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range r.Gather() {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("metrics: encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// Handler serves GET /metrics.
func (r *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", string(expfmt.NewFormat(expfmt.TypeTextPlain)))
		if err := r.WriteText(w); err != nil {
			slog.Error("metrics: write exposition failed", "remote", req.RemoteAddr, "err", err)
		}
	})
}

func ptr[T any](v T) *T { return &v }
