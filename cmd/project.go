package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pensionfolio/pensionfolio/internal/calculation"
	"github.com/pensionfolio/pensionfolio/internal/config"
	"github.com/pensionfolio/pensionfolio/internal/output"
)

var (
	flagInput  string
	flagFormat string
	flagSave   bool
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Run a projection for a portfolio file",
	RunE:  runProject,
}

func init() {
	projectCmd.Flags().StringVarP(&flagInput, "input", "i", "", "Portfolio YAML file (required)")
	projectCmd.Flags().StringVarP(&flagFormat, "format", "f", "console", "Output format: "+strings.Join(output.AvailableFormatterNames(), ", "))
	projectCmd.Flags().BoolVar(&flagSave, "save", false, "Write output to a timestamped file instead of stdout")
	_ = projectCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(projectCmd)
}

func runProject(cmd *cobra.Command, _ []string) error {
	logger := newLogger()

	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(flagInput)
	if err != nil {
		return fmt.Errorf("failed to load portfolio: %w", err)
	}

	formatter := output.GetFormatterByName(flagFormat)
	if formatter == nil {
		return fmt.Errorf("unknown format %q (available: %s)",
			flagFormat, strings.Join(output.AvailableFormatterNames(), ", "))
	}

	engine := calculation.NewProjectionEngine()
	engine.SetLogger(logger)

	logger.Infof("projecting %d pensions from %s",
		len(cfg.Household.Pensions), cfg.StartDate.Format("2006-01"))

	projection, err := engine.RunHousehold(cmd.Context(), calculation.HouseholdInput{
		Household: cfg.Household,
		Rates:     cfg.Rates,
		StartDate: cfg.StartDate,
		EndDate:   cfg.EffectiveEndDate(),
	})
	if err != nil {
		return fmt.Errorf("projection failed: %w", err)
	}

	if flagSave {
		filename, err := output.WriteFormatted(formatter, projection, formatExtension(formatter.Name()))
		if err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		logger.Infof("wrote %s", filename)
		return nil
	}

	data, err := formatter.Format(projection)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	_, err = os.Stdout.Write(data)
	return err
}

func formatExtension(name string) string {
	switch name {
	case "csv":
		return "csv"
	case "json":
		return "json"
	default:
		return "txt"
	}
}
