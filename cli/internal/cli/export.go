package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/growthmate/growthmate/pkg/report"
)

func newExportCmd(o *options) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:     "export",
		Short:   "Export the profile's health records and medications",
		Long:    "Write <name>_health_data_report.txt, <name>_health_data_records.csv and <name>_health_data_medications.csv into the output directory.",
		Example: "  growthctl export --profile mia.yaml --out ./exports",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := o.loadProfile()
			if err != nil {
				return err
			}
			now, err := o.clock()
			if err != nil {
				return err
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("export: create %q: %w", dir, err)
			}

			base := filepath.Join(dir, report.BaseName(p.Child.Name))
			e := report.Export{
				ChildName:   p.Child.Name,
				GeneratedAt: now,
				Records:     p.Records,
				Medications: p.Medications,
			}
			files := []struct {
				path  string
				write func(f *os.File) error
			}{
				{base + "_report.txt", func(f *os.File) error { return report.WriteReport(f, e) }},
				{base + "_records.csv", func(f *os.File) error { return report.WriteRecordsCSV(f, e.Records) }},
				{base + "_medications.csv", func(f *os.File) error { return report.WriteMedicationsCSV(f, e.Medications) }},
			}
			for _, file := range files {
				if err := writeFile(file.path, file.write); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), file.path)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "out", "o", ".", "Output directory")
	return cmd
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("export %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export %q: %w", path, err)
	}
	return nil
}
