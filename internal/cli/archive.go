package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/autotrack/proforma-extractor/pkg/storage"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Inspect archived documents",
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived documents, newest first",
	Args:  cobra.NoArgs,
	RunE:  runArchiveList,
}

var archiveTextCmd = &cobra.Command{
	Use:   "text [id]",
	Short: "Print the raw extracted text of an archived document",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchiveText,
}

func init() {
	archiveCmd.AddCommand(archiveListCmd)
	archiveCmd.AddCommand(archiveTextCmd)
	rootCmd.AddCommand(archiveCmd)
}

func openArchive() (storage.Archive, error) {
	return storage.NewLocalArchive(cfg.Archive.Path)
}

func runArchiveList(cmd *cobra.Command, args []string) error {
	archive, err := openArchive()
	if err != nil {
		return err
	}

	entries, err := archive.List(cmd.Context())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFILE\tSIZE\tTEXT\tARCHIVED")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%d\t%t\t%s\n",
			e.ID, e.Filename, e.Size, e.HasText, e.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func runArchiveText(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid archive id %q: %w", args[0], err)
	}

	archive, err := openArchive()
	if err != nil {
		return err
	}

	text, err := archive.Text(cmd.Context(), id)
	if err != nil {
		return err
	}
	if text == "" {
		return fmt.Errorf("no extracted text stored for %s", id)
	}
	fmt.Fprint(cmd.OutOrStdout(), text)
	return nil
}
