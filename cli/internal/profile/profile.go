package profile

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/growthmate/growthmate/pkg/growth"
	"github.com/growthmate/growthmate/pkg/types"
)

// Date is a calendar date or timestamp decoded from YAML.
type Date struct {
	time.Time
}

// UnmarshalYAML accepts YYYY-MM-DD (midnight UTC) or RFC3339.
func (d *Date) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: date must be a scalar", n.Line)
	}
	v := strings.TrimSpace(n.Value)
	if t, err := time.Parse(time.DateOnly, v); err == nil {
		d.Time = t
		return nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		d.Time = t
		return nil
	}
	return fmt.Errorf("line %d: date %q: want YYYY-MM-DD or RFC3339", n.Line, v)
}

type file struct {
	Child struct {
		ID        string `yaml:"id"`
		Name      string `yaml:"name"`
		BirthDate Date   `yaml:"birth_date"`
		Gender    string `yaml:"gender"`
	} `yaml:"child"`
	Completed []struct {
		Vaccine string `yaml:"vaccine"`
		Dose    int    `yaml:"dose"`
		Date    Date   `yaml:"date"`
	} `yaml:"completed"`
	Records []struct {
		ID     string  `yaml:"id"`
		Type   string  `yaml:"type"`
		Title  string  `yaml:"title"`
		Notes  string  `yaml:"notes"`
		Date   Date    `yaml:"date"`
		Height float64 `yaml:"height"`
		Weight float64 `yaml:"weight"`
	} `yaml:"records"`
	Medications []struct {
		ID        string `yaml:"id"`
		Name      string `yaml:"name"`
		Dosage    string `yaml:"dosage"`
		Frequency string `yaml:"frequency"`
		StartDate Date   `yaml:"start_date"`
		EndDate   *Date  `yaml:"end_date"`
		Notes     string `yaml:"notes"`
		Active    *bool  `yaml:"active"`
		Reminders bool   `yaml:"reminders"`
	} `yaml:"medications"`
}

// Profile is a child together with their health history.
type Profile struct {
	Child       types.Child
	Completed   []types.CompletedDose
	Records     []types.HealthRecord
	Medications []types.Medication
}

// Load reads and parses the profile at path.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("profile: read %q: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("profile %q: %w", path, err)
	}
	return p, nil
}

// Parse decodes and validates profile YAML.
func Parse(data []byte) (*Profile, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	c := f.Child
	if c.BirthDate.IsZero() {
		return nil, fmt.Errorf("child.birth_date is required")
	}
	gender := types.Gender(strings.ToLower(c.Gender))
	if !gender.Valid() {
		return nil, fmt.Errorf("child.gender %q: want male or female", c.Gender)
	}
	id := c.ID
	if id == "" {
		id = strings.ToLower(strings.Join(strings.Fields(c.Name), "-"))
	}

	p := &Profile{Child: types.Child{
		ID:        id,
		Name:      c.Name,
		BirthDate: c.BirthDate.Time,
		Gender:    gender,
	}}

	for i, d := range f.Completed {
		if d.Vaccine == "" {
			return nil, fmt.Errorf("completed[%d].vaccine is required", i)
		}
		if d.Dose < 1 {
			return nil, fmt.Errorf("completed[%d].dose must be at least 1", i)
		}
		p.Completed = append(p.Completed, types.CompletedDose{
			VaccineID:  d.Vaccine,
			DoseNumber: d.Dose,
			Date:       d.Date.Time,
		})
	}

	for i, r := range f.Records {
		if r.Date.IsZero() {
			return nil, fmt.Errorf("records[%d].date is required", i)
		}
		if r.Height < 0 || r.Weight < 0 {
			return nil, fmt.Errorf("records[%d]: height and weight must not be negative", i)
		}
		typ := r.Type
		if typ == "" {
			typ = types.RecordCheckup
		}
		id := r.ID
		if id == "" {
			id = fmt.Sprintf("%s-record-%d", p.Child.ID, i+1)
		}
		p.Records = append(p.Records, types.HealthRecord{
			ID:        id,
			ChildID:   p.Child.ID,
			Type:      typ,
			Title:     r.Title,
			Notes:     r.Notes,
			Height:    r.Height,
			Weight:    r.Weight,
			CreatedAt: r.Date.Time,
		})
	}

	for i, m := range f.Medications {
		if m.Name == "" {
			return nil, fmt.Errorf("medications[%d].name is required", i)
		}
		if m.StartDate.IsZero() {
			return nil, fmt.Errorf("medications[%d].start_date is required", i)
		}
		id := m.ID
		if id == "" {
			id = fmt.Sprintf("%s-med-%d", p.Child.ID, i+1)
		}
		med := types.Medication{
			ID:        id,
			ChildID:   p.Child.ID,
			Name:      m.Name,
			Dosage:    m.Dosage,
			Frequency: m.Frequency,
			StartDate: m.StartDate.Time,
			Notes:     m.Notes,
			Active:    m.Active == nil || *m.Active,
			Reminders: m.Reminders,
		}
		if m.EndDate != nil {
			if m.EndDate.Before(m.StartDate.Time) {
				return nil, fmt.Errorf("medications[%d].end_date is before start_date", i)
			}
			end := m.EndDate.Time
			med.EndDate = &end
		}
		p.Medications = append(p.Medications, med)
	}

	return p, nil
}

// Observations returns the dated values of typ recorded on any health
// record, oldest first.
func (p *Profile) Observations(typ types.MeasurementType) []growth.Observation {
	var out []growth.Observation
	for _, r := range p.Records {
		v := r.Height
		if typ == types.MeasurementWeight {
			v = r.Weight
		}
		if v > 0 {
			out = append(out, growth.Observation{Value: v, At: r.CreatedAt})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].At.Before(out[j].At) })
	return out
}
