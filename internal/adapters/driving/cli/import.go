package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [files...]",
	Short: "Import source files into the project",
	Long: `Converts each file to canonical plain text and registers it as a document.
A file that cannot be imported is reported and the rest of the batch continues.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if importService == nil {
		return errNotConfigured("import")
	}

	report := importService.Import(cmd.Context(), args)
	cmd.Println(report.String())
	for _, id := range report.DocumentIDs {
		cmd.Printf("  document %d\n", id)
	}

	if len(report.Errors) > 0 {
		return fmt.Errorf("%d of %d file(s) failed to import (supported: %s)",
			len(report.Errors), len(args), strings.Join(importService.SupportedExtensions(), ", "))
	}
	return nil
}
