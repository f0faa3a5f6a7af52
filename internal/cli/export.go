package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/autotrack/proforma-extractor/internal/domain/export"
	"github.com/autotrack/proforma-extractor/internal/domain/extract/service"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export [file...]",
	Short: "Extract invoices and write them as CSV or XLSX",
	Long: `Extracts every given PDF and writes the combined output next to the
sources: one CSV for the whole batch, or one XLSX workbook per invoice.
Files that fail extraction are skipped with a warning.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "output format: csv or xlsx")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "csv" && exportFormat != "xlsx" {
		return fmt.Errorf("unknown format %q (want csv or xlsx)", exportFormat)
	}

	svc := service.New(logger)
	exporter := export.NewService(logger)

	var docs []*service.Document
	names := make([]string, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		result, err := svc.Extract(cmd.Context(), data, filepath.Base(path))
		if err != nil {
			return err
		}
		if !result.Success {
			logger.Warn("skipping file",
				slog.String("file", path), slog.String("error", string(result.Error)))
			continue
		}
		docs = append(docs, service.BuildDocument(result))
		names = append(names, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	}
	if len(docs) == 0 {
		return fmt.Errorf("no file produced extractable data")
	}

	switch exportFormat {
	case "xlsx":
		for i, doc := range docs {
			out, err := exporter.ExportXLSX(doc)
			if err != nil {
				return err
			}
			target := filepath.Join(cfg.Export.Dir, names[i]+".xlsx")
			if err := os.WriteFile(target, out, 0644); err != nil {
				return fmt.Errorf("write %s: %w", target, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), target)
		}
	default:
		out, err := exporter.ExportCSV(docs...)
		if err != nil {
			return err
		}
		target := filepath.Join(cfg.Export.Dir, "invoices.csv")
		if err := os.WriteFile(target, out, 0644); err != nil {
			return fmt.Errorf("write %s: %w", target, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), target)
	}
	return nil
}
