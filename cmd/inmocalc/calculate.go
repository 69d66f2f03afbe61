package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/inmocalc/internal/config"
	"github.com/rgehrsitz/inmocalc/internal/domain"
	"github.com/rgehrsitz/inmocalc/internal/output"
)

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Run every calculation of a scenario file",
		Long: `Run the calculations listed in a scenario YAML file and render them.

Examples:
  inmocalc calculate scenario.yaml
  inmocalc calculate scenario.yaml --format html --output report.html
  inmocalc calculate scenario.yaml --format pdf --output report.pdf --tables tables.yaml
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}

			engine, cleanup, err := engineFor(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			outcomes, err := engine.RunAll(cmd.Context(), scenario.Calculations)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			outPath, _ := cmd.Flags().GetString("output")
			return render(cmd, format, outPath, outcomes)
		},
	}
	cmd.Flags().StringP("format", "f", "console",
		fmt.Sprintf("Output format (%s)", strings.Join(output.AvailableFormatterNames(), ", ")))
	cmd.Flags().StringP("output", "o", "", "Write the report to this file instead of stdout")
	return cmd
}

// render writes outcomes with the named formatter to outPath, or stdout when
// outPath is empty.
func render(cmd *cobra.Command, format, outPath string, outcomes []domain.CalculationOutcome) error {
	f := output.GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unsupported format %q (available: %s; aliases: %s)", format,
			strings.Join(output.AvailableFormatterNames(), ", "),
			strings.Join(output.AvailableFormatAliases(), ", "))
	}
	if outPath != "" {
		if err := output.WriteTo(f, outcomes, outPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", outPath)
		return nil
	}
	data, err := f.Format(outcomes)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}

			// Structure is fine; run the calculators for the numeric ranges.
			engine, cleanup, err := engineFor(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			if _, err := engine.RunAll(cmd.Context(), scenario.Calculations); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Scenario file %s is valid (%d calculations)\n",
				args[0], len(scenario.Calculations))
			return nil
		},
	}
}

func tablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables [output-file]",
		Short: "Write the active tax tables as YAML, e.g. to start an override file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tablesFile, _ := cmd.Flags().GetString("tables")
			tables, err := config.LoadTaxTables(tablesFile)
			if err != nil {
				return err
			}
			if err := config.WriteTaxTables(args[0], tables); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tax tables %s saved to %s\n", tables.Metadata.Version, args[0])
			return nil
		},
	}
}
