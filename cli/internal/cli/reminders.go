package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/growthmate/growthmate/pkg/reminder"
)

type reminderOutput struct {
	ID         string `json:"id"`
	Medication string `json:"medication"`
	At         string `json:"at"`
	Title      string `json:"title"`
	Body       string `json:"body"`
}

func newRemindersCmd(o *options) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:     "reminders",
		Short:   "Plan medication reminders for the profile's active medications",
		Example: "  growthctl reminders --profile mia.yaml --limit 10",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative")
			}
			p, err := o.loadProfile()
			if err != nil {
				return err
			}
			now, err := o.clock()
			if err != nil {
				return err
			}

			out := make([]reminderOutput, 0)
			for _, med := range p.Medications {
				for _, r := range reminder.PlanMedication(med, now, reminder.Options{Limit: limit}) {
					out = append(out, reminderOutput{
						ID:         r.ID,
						Medication: med.Name,
						At:         r.At.Format(time.RFC3339),
						Title:      r.Title,
						Body:       r.Body,
					})
				}
			}

			w := cmd.OutOrStdout()
			if o.format == formatJSON {
				return writeJSON(w, out)
			}
			tw := newTable(w)
			fmt.Fprintln(tw, "AT\tMEDICATION\tMESSAGE")
			for _, r := range out {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", r.At, r.Medication, r.Body)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", reminder.DefaultLimit, "Maximum reminders per medication")
	return cmd
}
