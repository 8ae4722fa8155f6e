package api

import (
	"fmt"
	"sort"

	"github.com/growthmate/growthmate/pkg/growth"
	"github.com/growthmate/growthmate/pkg/vaccine"
)

// Hint is one plain-language insight about a child's profile. The dashboard
// shows these as chips on the child card; Detail is shown on click.
type Hint struct {
	// Key is a stable machine-readable identifier.
	Key string `json:"key"`
	// Level is "ok" | "info" | "warning" | "critical"
	Level string `json:"level"`
	// Title is a short label shown on the chip.
	Title string `json:"title"`
	// Detail is the full explanation.
	Detail string `json:"detail"`
	// Value is an optional number associated with the hint (count, percentile).
	Value *float64 `json:"value,omitempty"`
}

var levelRank = map[string]int{"critical": 0, "warning": 1, "info": 2, "ok": 3}

// computeHints derives hints from a child's outstanding doses and latest
// growth points. Hints are ordered critical first, then warnings, then info.
func computeHints(entries []vaccine.Entry, latest map[string]growth.Point) []Hint {
	var hints []Hint
	s := vaccine.Summarize(entries)

	// ── Vaccinations ─────────────────────────────────────────────────────────
	if s.Overdue > 0 {
		v := float64(s.Overdue)
		hints = append(hints, Hint{
			Key:   "vaccines_overdue",
			Level: "critical",
			Title: fmt.Sprintf("%d overdue %s", s.Overdue, plural(s.Overdue, "dose", "doses")),
			Detail: fmt.Sprintf(
				"%d recommended %s passed their due date. "+
					"Book a visit with your pediatrician to catch up.",
				s.Overdue, plural(s.Overdue, "dose has", "doses have"),
			),
			Value: &v,
		})
	}
	if s.Due > 0 {
		v := float64(s.Due)
		hints = append(hints, Hint{
			Key:   "vaccines_due",
			Level: "warning",
			Title: fmt.Sprintf("%d %s due", s.Due, plural(s.Due, "dose", "doses")),
			Detail: fmt.Sprintf(
				"%d %s due now or within the next month.",
				s.Due, plural(s.Due, "dose is", "doses are"),
			),
			Value: &v,
		})
	}
	if s.Next != nil && s.Overdue == 0 && s.Due == 0 {
		hints = append(hints, Hint{
			Key:   "vaccines_next",
			Level: "info",
			Title: "Next vaccination",
			Detail: fmt.Sprintf("%s dose %d is scheduled for %s.",
				s.Next.Vaccine.Name, s.Next.DoseNumber, s.Next.DueDate.Format("January 2, 2006")),
		})
	}

	// ── Growth ───────────────────────────────────────────────────────────────
	kinds := make([]string, 0, len(latest))
	for typ := range latest {
		kinds = append(kinds, typ)
	}
	sort.Strings(kinds)
	for _, typ := range kinds {
		p := latest[typ]
		if p.Status == growth.StatusNormal {
			continue
		}
		v := p.Percentile
		side := "below the 15th"
		if p.Status == growth.StatusHigh {
			side = "above the 85th"
		}
		hints = append(hints, Hint{
			Key:   "growth_" + typ,
			Level: "warning",
			Title: fmt.Sprintf("%s %s", typ, p.Status),
			Detail: fmt.Sprintf(
				"The latest %s reading (%.1f at %d months) sits at percentile %.0f, "+
					"%s percentile. A single reading is not a diagnosis; discuss the trend with your pediatrician.",
				typ, p.Value, p.AgeMonths, p.Percentile, side,
			),
			Value: &v,
		})
	}

	// ── All clear ────────────────────────────────────────────────────────────
	if len(hints) == 0 {
		hints = append(hints, Hint{
			Key:    "all_clear",
			Level:  "ok",
			Title:  "All clear",
			Detail: "Every recommended dose is recorded and growth is within the normal range.",
		})
	}

	sort.SliceStable(hints, func(i, j int) bool {
		return levelRank[hints[i].Level] < levelRank[hints[j].Level]
	})
	return hints
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
