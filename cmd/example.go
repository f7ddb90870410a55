package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pensionfolio/pensionfolio/internal/config"
)

var flagExampleOut string

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Emit an example portfolio file",
	RunE:  runExample,
}

func init() {
	exampleCmd.Flags().StringVarP(&flagExampleOut, "output", "o", "", "Write to file instead of stdout")
	rootCmd.AddCommand(exampleCmd)
}

func runExample(_ *cobra.Command, _ []string) error {
	cfg := config.NewInputParser().CreateExampleConfiguration()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal example configuration: %w", err)
	}

	if flagExampleOut == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(flagExampleOut, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", flagExampleOut, err)
	}
	return nil
}
