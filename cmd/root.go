package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pensionfolio/pensionfolio/pkg/logging"
)

var (
	flagLogLevel string
	flagEnv      string
	flagQuiet    bool
)

var rootCmd = &cobra.Command{
	Use:   "pensionfolio",
	Short: "Pension portfolio projection CLI",
	Long:  "Project pension balances month by month across pessimistic, realistic and optimistic scenarios.",
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagEnv, "env", "development", "Environment (development or production)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress log output")
}

// newLogger is the shared logger construction path used by all commands.
func newLogger() *logging.Logger {
	if flagQuiet {
		return logging.NewNop()
	}
	return logging.New(flagLogLevel, flagEnv)
}
