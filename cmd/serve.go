package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pensionfolio/pensionfolio/internal/calculation"
	"github.com/pensionfolio/pensionfolio/internal/server"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the projection engine over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", ":8080", "Listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	logger := newLogger()

	engine := calculation.NewProjectionEngine()
	engine.SetLogger(logger)

	return server.New(engine, logger).ListenAndServe(flagAddr)
}
