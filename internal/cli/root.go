// Package cli wires the extraction pipeline into the proforma-extractor
// command line tool.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/autotrack/proforma-extractor/pkg/config"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "proforma-extractor",
	Short: "Extract structured data from proforma invoice PDFs",
	Long: `proforma-extractor pulls header fields and line items out of
proforma/sales invoice PDFs and emits them as JSON, CSV, or XLSX.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		opts := &slog.HandlerOptions{Level: cfg.Log.Level}
		var handler slog.Handler
		if cfg.Log.JSON {
			handler = slog.NewJSONHandler(os.Stderr, opts)
		} else {
			handler = slog.NewTextHandler(os.Stderr, opts)
		}
		logger = slog.New(handler)
		return nil
	},
}

// Execute runs the CLI and returns its exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}
