package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/growthmate/growthmate/pkg/growth"
	"github.com/growthmate/growthmate/pkg/types"
)

type percentileOutput struct {
	Value              float64 `json:"value"`
	AgeMonths          float64 `json:"age_months"`
	Type               string  `json:"type"`
	Gender             string  `json:"gender"`
	Percentile         float64 `json:"percentile"`
	Status             string  `json:"status"`
	Color              string  `json:"color"`
	ReferenceAgeMonths int     `json:"reference_age_months"`
}

func newPercentileCmd(o *options) *cobra.Command {
	var (
		value     float64
		ageMonths float64
		typ       string
		gender    string
	)
	cmd := &cobra.Command{
		Use:     "percentile",
		Short:   "Estimate the percentile of one measurement",
		Example: "  growthctl percentile --type height --gender male --age 12 --value 76.1\n  growthctl percentile -t weight -g female -a 6 -v 7.3 --format json",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mt := types.MeasurementType(typ)
			if !mt.Valid() {
				return fmt.Errorf("--type %q: want height or weight", typ)
			}
			g := types.Gender(gender)
			if !g.Valid() {
				return fmt.Errorf("--gender %q: want male or female", gender)
			}
			if ageMonths < 0 {
				return fmt.Errorf("--age must not be negative")
			}

			m := growth.Measurement{Value: value, AgeMonths: ageMonths, Type: mt, Gender: g}
			p := m.Percentile()
			c := growth.ClassifyGrowthStatus(p)
			ref, _ := growth.NearestCheckpointAge(ageMonths, mt, g)
			out := percentileOutput{
				Value:              value,
				AgeMonths:          ageMonths,
				Type:               typ,
				Gender:             gender,
				Percentile:         p,
				Status:             string(c.Status),
				Color:              c.Color,
				ReferenceAgeMonths: ref,
			}

			w := cmd.OutOrStdout()
			if o.format == formatJSON {
				return writeJSON(w, out)
			}
			_, err := fmt.Fprintf(w, "%s %.1f at %.0f months (%s): percentile %.1f, %s\n",
				typ, value, ageMonths, gender, p, c.Status)
			return err
		},
	}
	cmd.Flags().Float64VarP(&value, "value", "v", 0, "Measurement value (cm or kg)")
	cmd.Flags().Float64VarP(&ageMonths, "age", "a", 0, "Age in months")
	cmd.Flags().StringVarP(&typ, "type", "t", "", "height or weight")
	cmd.Flags().StringVarP(&gender, "gender", "g", "", "male or female")
	cmd.MarkFlagRequired("value")  //nolint:errcheck
	cmd.MarkFlagRequired("type")   //nolint:errcheck
	cmd.MarkFlagRequired("gender") //nolint:errcheck
	return cmd
}

func newBMICmd(o *options) *cobra.Command {
	var weight, height float64
	cmd := &cobra.Command{
		Use:     "bmi",
		Short:   "Compute body mass index",
		Example: "  growthctl bmi --weight 10 --height 75",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if weight <= 0 || height <= 0 {
				return fmt.Errorf("--weight and --height must be positive")
			}
			bmi := growth.BodyMassIndex(weight, height)
			w := cmd.OutOrStdout()
			if o.format == formatJSON {
				return writeJSON(w, map[string]float64{"bmi": bmi})
			}
			_, err := fmt.Fprintf(w, "BMI %.1f\n", bmi)
			return err
		},
	}
	cmd.Flags().Float64Var(&weight, "weight", 0, "Weight in kg")
	cmd.Flags().Float64Var(&height, "height", 0, "Height in cm")
	return cmd
}
