package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/growthmate/growthmate/pkg/vaccine"
)

type entryOutput struct {
	Vaccine    string `json:"vaccine"`
	Name       string `json:"name"`
	DoseNumber int    `json:"dose_number"`
	DueDate    string `json:"due_date"`
	Status     string `json:"status"`
}

type scheduleOutput struct {
	Child     string        `json:"child"`
	Today     string        `json:"today"`
	AgeMonths int           `json:"age_months"`
	Overdue   int           `json:"overdue"`
	Due       int           `json:"due"`
	Upcoming  int           `json:"upcoming"`
	Entries   []entryOutput `json:"entries"`
}

func newScheduleCmd(o *options) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:     "schedule",
		Short:   "List outstanding vaccine doses for the profile's child",
		Example: "  growthctl schedule --profile mia.yaml\n  growthctl schedule -p mia.yaml --status overdue --today 2026-10-17",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if status != "" {
				if _, err := vaccine.ParseStatus(status); err != nil {
					return fmt.Errorf("--status: %w", err)
				}
			}
			p, err := o.loadProfile()
			if err != nil {
				return err
			}
			sched, err := o.scheduler()
			if err != nil {
				return err
			}

			today := sched.Today()
			entries := sched.Schedule(p.Child.BirthDate, p.Completed)
			sum := vaccine.Summarize(entries)
			out := scheduleOutput{
				Child:     p.Child.Name,
				Today:     today.Format(time.DateOnly),
				AgeMonths: vaccine.AgeInMonths(p.Child.BirthDate, today),
				Overdue:   sum.Overdue,
				Due:       sum.Due,
				Upcoming:  sum.Upcoming,
				Entries:   make([]entryOutput, 0, len(entries)),
			}
			for _, e := range entries {
				if status != "" && string(e.Status) != status {
					continue
				}
				out.Entries = append(out.Entries, entryOutput{
					Vaccine:    e.Vaccine.ID,
					Name:       e.Vaccine.Name,
					DoseNumber: e.DoseNumber,
					DueDate:    e.DueDate.Format(time.DateOnly),
					Status:     string(e.Status),
				})
			}

			w := cmd.OutOrStdout()
			if o.format == formatJSON {
				return writeJSON(w, out)
			}
			fmt.Fprintf(w, "%s, %d months, as of %s: %d overdue, %d due, %d upcoming\n\n",
				out.Child, out.AgeMonths, out.Today, out.Overdue, out.Due, out.Upcoming)
			tw := newTable(w)
			fmt.Fprintln(tw, "STATUS\tDUE\tVACCINE\tDOSE")
			for _, e := range out.Entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", e.Status, e.DueDate, e.Name, e.DoseNumber)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&status, "status", "s", "", "Only show entries with this status (overdue|due|upcoming)")
	return cmd
}
