package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/growthmate/growthmate/pkg/growth"
	"github.com/growthmate/growthmate/pkg/types"
)

type pointOutput struct {
	Date       string  `json:"date"`
	AgeMonths  int     `json:"age_months"`
	Value      float64 `json:"value"`
	Percentile float64 `json:"percentile"`
	Status     string  `json:"status"`
}

type growthOutput struct {
	Child  string                   `json:"child"`
	Series map[string][]pointOutput `json:"series"`
}

func newGrowthCmd(o *options) *cobra.Command {
	var typ string
	cmd := &cobra.Command{
		Use:     "growth",
		Short:   "Place the profile's height and weight records on the reference curves",
		Example: "  growthctl growth --profile mia.yaml\n  growthctl growth -p mia.yaml --type weight --format json",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := []types.MeasurementType{types.MeasurementHeight, types.MeasurementWeight}
			if typ != "" {
				mt := types.MeasurementType(typ)
				if !mt.Valid() {
					return fmt.Errorf("--type %q: want height or weight", typ)
				}
				kinds = []types.MeasurementType{mt}
			}
			p, err := o.loadProfile()
			if err != nil {
				return err
			}

			out := growthOutput{Child: p.Child.Name, Series: make(map[string][]pointOutput)}
			for _, mt := range kinds {
				points := growth.Series(p.Child.BirthDate, p.Child.Gender, mt, p.Observations(mt))
				series := make([]pointOutput, 0, len(points))
				for _, pt := range points {
					series = append(series, pointOutput{
						Date:       pt.At.Format(time.DateOnly),
						AgeMonths:  pt.AgeMonths,
						Value:      pt.Value,
						Percentile: pt.Percentile,
						Status:     string(pt.Status),
					})
				}
				out.Series[string(mt)] = series
			}

			w := cmd.OutOrStdout()
			if o.format == formatJSON {
				return writeJSON(w, out)
			}
			tw := newTable(w)
			fmt.Fprintln(tw, "TYPE\tDATE\tAGE\tVALUE\tPERCENTILE\tSTATUS")
			for _, mt := range kinds {
				for _, pt := range out.Series[string(mt)] {
					fmt.Fprintf(tw, "%s\t%s\t%dm\t%.1f\t%.1f\t%s\n",
						mt, pt.Date, pt.AgeMonths, pt.Value, pt.Percentile, pt.Status)
				}
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&typ, "type", "t", "", "Only this measurement type (height|weight)")
	return cmd
}
