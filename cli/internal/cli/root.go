// Package cli implements the growthctl commands.
package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/growthmate/growthmate/cli/internal/profile"
	"github.com/growthmate/growthmate/pkg/vaccine"
)

const (
	formatJSON = "json"
	formatText = "text"
)

// options holds the persistent flags shared by every subcommand.
type options struct {
	format      string
	profilePath string
	today       string
	timezone    string

	now func() time.Time // injectable for deterministic tests
}

// NewRootCmd builds the growthctl command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(time.Now)
}

func newRootCmd(now func() time.Time) *cobra.Command {
	o := &options{now: now}

	root := &cobra.Command{
		Use:          "growthctl",
		Short:        "Child growth percentiles and vaccination schedules",
		Long:         "Estimate growth percentiles against WHO reference curves and work out which vaccine doses are overdue, due or upcoming.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if o.format != formatJSON && o.format != formatText {
				return fmt.Errorf("--format %q: want json or text", o.format)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&o.format, "format", "f", formatText, "Output format: json or text")
	root.PersistentFlags().StringVarP(&o.profilePath, "profile", "p", "child.yaml", "Child profile YAML")
	root.PersistentFlags().StringVar(&o.today, "today", "", "Evaluate as of this date (YYYY-MM-DD); default is the current date")
	root.PersistentFlags().StringVar(&o.timezone, "tz", "UTC", "IANA timezone that defines today")

	root.AddCommand(
		newPercentileCmd(o),
		newBMICmd(o),
		newScheduleCmd(o),
		newGrowthCmd(o),
		newRemindersCmd(o),
		newExportCmd(o),
	)
	return root
}

// clock returns the instant commands treat as now, honouring --today and --tz.
func (o *options) clock() (time.Time, error) {
	loc, err := time.LoadLocation(o.timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("--tz %q: %w", o.timezone, err)
	}
	if o.today == "" {
		return o.now().In(loc), nil
	}
	t, err := time.ParseInLocation(time.DateOnly, o.today, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("--today %q: want YYYY-MM-DD", o.today)
	}
	return t, nil
}

func (o *options) scheduler() (*vaccine.Scheduler, error) {
	now, err := o.clock()
	if err != nil {
		return nil, err
	}
	return vaccine.NewSchedulerWithClock(func() time.Time { return now }), nil
}

func (o *options) loadProfile() (*profile.Profile, error) {
	return profile.Load(o.profilePath)
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}
