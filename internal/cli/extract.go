package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/autotrack/proforma-extractor/internal/domain/extract/service"
	"github.com/autotrack/proforma-extractor/pkg/storage"
)

var (
	extractAsDocument bool
	extractArchive    bool
)

var extractCmd = &cobra.Command{
	Use:   "extract [file...]",
	Short: "Extract invoice data from PDF files",
	Long: `Runs each file through the extraction pipeline and prints one JSON
result per file to stdout. Files that cannot be processed produce a coded
failure result instead of aborting the batch.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().BoolVar(&extractAsDocument, "document", false,
		"emit the normalized invoice document layout instead of the raw result")
	extractCmd.Flags().BoolVar(&extractArchive, "archive", false,
		"archive the source file and extracted text (see ARCHIVE_PATH)")
	rootCmd.AddCommand(extractCmd)
}

// batchEntry pairs a result with the file it came from in batch output.
type batchEntry struct {
	File      string `json:"file"`
	ArchiveID string `json:"archive_id,omitempty"`
	Result    any    `json:"result"`
}

func runExtract(cmd *cobra.Command, args []string) error {
	svc := service.New(logger)

	var archive storage.Archive
	if extractArchive || cfg.Archive.Enabled {
		var err error
		archive, err = storage.NewLocalArchive(cfg.Archive.Path)
		if err != nil {
			return fmt.Errorf("open archive: %w", err)
		}
	}

	entries := make([]batchEntry, 0, len(args))
	for _, path := range args {
		entry := batchEntry{File: path}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		result, err := svc.Extract(cmd.Context(), data, filepath.Base(path))
		if err != nil {
			return err
		}

		if archive != nil {
			stored, err := archive.Save(cmd.Context(), filepath.Base(path), data, result.RawText)
			if err != nil {
				return fmt.Errorf("archive %s: %w", path, err)
			}
			entry.ArchiveID = stored.ID.String()
		}

		if extractAsDocument {
			entry.Result = service.BuildDocument(result)
		} else {
			entry.Result = result
		}
		entries = append(entries, entry)

		logger.Info("processed file",
			slog.String("file", path), slog.Bool("success", result.Success))
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if len(entries) == 1 {
		return enc.Encode(entries[0])
	}
	return enc.Encode(entries)
}
