package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mise-cli/internal/core/domain"
)

var segmentCmd = &cobra.Command{
	Use:   "segment",
	Short: "Code ranges of document text",
	Long: `Add, list, look up, and delete coded segments. Offsets count characters
(Unicode code points) of the canonical text, starting at 0.`,
}

var segmentAddCmd = &cobra.Command{
	Use:   "add [doc-id] [code-id] [start] [end]",
	Short: "Apply a code to a range of text",
	Args:  cobra.ExactArgs(4),
	RunE:  runSegmentAdd,
}

var segmentListCmd = &cobra.Command{
	Use:   "list [doc-id]",
	Short: "List a document's segments",
	Args:  cobra.ExactArgs(1),
	RunE:  runSegmentList,
}

var segmentAtCmd = &cobra.Command{
	Use:   "at [doc-id] [offset]",
	Short: "Show the segments covering an offset",
	Args:  cobra.ExactArgs(2),
	RunE:  runSegmentAt,
}

var segmentDeleteCmd = &cobra.Command{
	Use:   "delete [segment-id]",
	Short: "Delete a segment",
	Args:  cobra.ExactArgs(1),
	RunE:  runSegmentDelete,
}

var segmentMemo string

// snippetWidth caps snippets in segment listings.
const snippetWidth = 60

func init() {
	segmentAddCmd.Flags().StringVarP(&segmentMemo, "memo", "m", "", "memo for the segment")

	segmentCmd.AddCommand(segmentAddCmd)
	segmentCmd.AddCommand(segmentListCmd)
	segmentCmd.AddCommand(segmentAtCmd)
	segmentCmd.AddCommand(segmentDeleteCmd)
	rootCmd.AddCommand(segmentCmd)
}

func runSegmentAdd(cmd *cobra.Command, args []string) error {
	if segmentService == nil {
		return errNotConfigured("segment")
	}

	docID, err := parseID("document", args[0])
	if err != nil {
		return err
	}
	start, err := parseOffset("start", args[2])
	if err != nil {
		return err
	}
	end, err := parseOffset("end", args[3])
	if err != nil {
		return err
	}

	id, err := segmentService.Add(cmd.Context(), domain.NewSegment{
		DocumentID:  docID,
		CodeID:      args[1],
		StartOffset: start,
		EndOffset:   end,
		Memo:        segmentMemo,
	})
	if err != nil {
		return fmt.Errorf("failed to add segment: %w", err)
	}

	cmd.Printf("Added segment %d\n", id)
	return nil
}

func runSegmentList(cmd *cobra.Command, args []string) error {
	if segmentService == nil || documentService == nil {
		return errNotConfigured("segment")
	}

	docID, err := parseID("document", args[0])
	if err != nil {
		return err
	}

	doc, err := documentService.Get(cmd.Context(), docID)
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}
	segments, err := segmentService.ListForDocument(cmd.Context(), docID)
	if err != nil {
		return fmt.Errorf("failed to list segments: %w", err)
	}

	if len(segments) == 0 {
		cmd.Printf("No segments in document %d.\n", docID)
		return nil
	}

	cmd.Printf("Segments in %s:\n\n", doc.DisplayName)
	return printSegments(cmd, doc, segments)
}

func runSegmentAt(cmd *cobra.Command, args []string) error {
	if segmentService == nil || documentService == nil {
		return errNotConfigured("segment")
	}

	docID, err := parseID("document", args[0])
	if err != nil {
		return err
	}
	offset, err := parseOffset("lookup", args[1])
	if err != nil {
		return err
	}

	doc, err := documentService.Get(cmd.Context(), docID)
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}
	segments, err := segmentService.AtPosition(cmd.Context(), docID, offset)
	if err != nil {
		return fmt.Errorf("failed to look up segments: %w", err)
	}

	if len(segments) == 0 {
		cmd.Printf("No segments at offset %d.\n", offset)
		return nil
	}
	return printSegments(cmd, doc, segments)
}

func runSegmentDelete(cmd *cobra.Command, args []string) error {
	if segmentService == nil {
		return errNotConfigured("segment")
	}

	id, err := parseID("segment", args[0])
	if err != nil {
		return err
	}

	if err := segmentService.Delete(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to delete segment: %w", err)
	}

	cmd.Printf("Segment %d deleted.\n", id)
	return nil
}

// printSegments lists segments with their code and snippet.
func printSegments(cmd *cobra.Command, doc *domain.Document, segments []domain.Segment) error {
	out := cmd.OutOrStdout()
	labels := codeLabels(cmd)

	for i := range segments {
		seg := segments[i]
		label := labels[seg.CodeID]
		if label == "" {
			label = seg.CodeID
		}

		cmd.Printf("  %d  [%d, %d]  %s\n", seg.ID, seg.StartOffset, seg.EndOffset,
			withSwatch(out, label, seg.CodeColor))

		if reportService != nil {
			snippet, err := reportService.Snippet(cmd.Context(), *doc, seg)
			switch {
			case errors.Is(err, domain.ErrSnippetUnavailable):
				snippet = domain.SnippetPlaceholder
			case err != nil:
				return fmt.Errorf("failed to read snippet: %w", err)
			}
			cmd.Printf("      %q\n", truncate(snippet, snippetWidth))
		}
		if seg.Memo != "" {
			cmd.Printf("      Memo: %s\n", seg.Memo)
		}
	}
	return nil
}

// codeLabels maps code ids to labels. Lookup failures yield an empty map.
func codeLabels(cmd *cobra.Command) map[string]string {
	labels := make(map[string]string)
	if codeService == nil {
		return labels
	}
	codes, err := codeService.List(cmd.Context())
	if err != nil {
		return labels
	}
	for _, c := range codes {
		labels[c.ID] = c.Label
	}
	return labels
}
