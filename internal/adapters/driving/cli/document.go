package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage imported documents",
	Long:  `List, view, rename, or delete imported documents.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentShowCmd = &cobra.Command{
	Use:   "show [doc-id]",
	Short: "Show document info",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentShow,
}

var documentTextCmd = &cobra.Command{
	Use:   "text [doc-id]",
	Short: "Print the canonical text",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentText,
}

var documentRenameCmd = &cobra.Command{
	Use:   "rename [doc-id] [display-name]",
	Short: "Change a document's display name",
	Args:  cobra.ExactArgs(2),
	RunE:  runDocumentRename,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document and its segments",
	Long:  `Removes the document, every segment coded on it, and its canonical text file.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

func init() {
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentShowCmd)
	documentCmd.AddCommand(documentTextCmd)
	documentCmd.AddCommand(documentRenameCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errNotConfigured("document")
	}

	docs, err := documentService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents imported.")
		return nil
	}

	cmd.Println("Documents:")
	cmd.Println()
	for i := range docs {
		cmd.Printf("  %d  %s\n", docs[i].ID, docs[i].DisplayName)
		cmd.Printf("      Text: %s\n", docs[i].TextPath)
	}
	cmd.Println()
	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentShow(cmd *cobra.Command, args []string) error {
	if documentService == nil || segmentService == nil {
		return errNotConfigured("document")
	}

	id, err := parseID("document", args[0])
	if err != nil {
		return err
	}

	doc, err := documentService.Get(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}
	segments, err := segmentService.ListForDocument(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to list segments: %w", err)
	}

	cmd.Printf("Document: %d\n\n", doc.ID)
	cmd.Printf("  Name:      %s\n", doc.DisplayName)
	cmd.Printf("  Original:  %s\n", doc.OriginalFilename)
	cmd.Printf("  Text:      %s\n", doc.TextPath)
	cmd.Printf("  UUID:      %s\n", doc.UUID)
	cmd.Printf("  Imported:  %s\n", doc.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	cmd.Printf("  Segments:  %d\n", len(segments))
	return nil
}

func runDocumentText(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNotConfigured("document")
	}

	id, err := parseID("document", args[0])
	if err != nil {
		return err
	}

	text, err := documentService.Text(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to read document text: %w", err)
	}

	cmd.Println(text)
	return nil
}

func runDocumentRename(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNotConfigured("document")
	}

	id, err := parseID("document", args[0])
	if err != nil {
		return err
	}

	n, err := documentService.Rename(cmd.Context(), id, args[1])
	if err != nil {
		return fmt.Errorf("failed to rename document: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("document %d not found", id)
	}

	cmd.Printf("Document %d renamed.\n", id)
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNotConfigured("document")
	}

	id, err := parseID("document", args[0])
	if err != nil {
		return err
	}

	n, _, err := documentService.Delete(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("document %d not found", id)
	}

	cmd.Printf("Document %d deleted.\n", id)
	return nil
}
