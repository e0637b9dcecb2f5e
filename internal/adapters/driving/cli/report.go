package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summaries across the project",
}

var reportDocumentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "Segment and code counts per document",
	Args:  cobra.NoArgs,
	RunE:  runReportDocuments,
}

var reportCodesCmd = &cobra.Command{
	Use:   "codes [code-id...]",
	Short: "Every coded span of each code, with its text",
	Long:  `Lists each code's segments across documents with their snippets. With no ids, reports every code.`,
	RunE:  runReportCodes,
}

func init() {
	reportCmd.AddCommand(reportDocumentsCmd)
	reportCmd.AddCommand(reportCodesCmd)
	rootCmd.AddCommand(reportCmd)
}

func runReportDocuments(cmd *cobra.Command, _ []string) error {
	if reportService == nil {
		return errNotConfigured("report")
	}

	overview, err := reportService.DocumentCodingOverview(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get document overview: %w", err)
	}

	if len(overview) == 0 {
		cmd.Println("No documents imported.")
		return nil
	}

	cmd.Printf("  %-6s %-30s %9s %6s\n", "ID", "DOCUMENT", "SEGMENTS", "CODES")
	for _, o := range overview {
		cmd.Printf("  %-6d %-30s %9d %6d\n", o.Document.ID, truncate(o.Document.DisplayName, 30),
			o.SegmentCount, o.DistinctCodeCount)
	}
	return nil
}

func runReportCodes(cmd *cobra.Command, args []string) error {
	if reportService == nil || codeService == nil {
		return errNotConfigured("report")
	}

	ids := args
	if len(ids) == 0 {
		codes, err := codeService.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list codes: %w", err)
		}
		for _, c := range codes {
			ids = append(ids, c.ID)
		}
	}

	if len(ids) == 0 {
		cmd.Println("No codes defined.")
		return nil
	}

	reports, err := reportService.CodeReport(cmd.Context(), ids)
	if err != nil {
		return fmt.Errorf("failed to build code report: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, r := range reports {
		cmd.Printf("%s (%d)\n", withSwatch(out, r.Code.Label, r.Code.Color), len(r.Entries))
		for _, e := range r.Entries {
			cmd.Printf("  %s [%d, %d]\n", e.Span.DocumentName, e.Span.StartOffset, e.Span.EndOffset)
			if e.Missing {
				cmd.Printf("    %s\n", e.Snippet)
			} else {
				cmd.Printf("    %q\n", e.Snippet)
			}
			if e.Span.Memo != "" {
				cmd.Printf("    Memo: %s\n", e.Span.Memo)
			}
		}
		cmd.Println()
	}
	return nil
}
