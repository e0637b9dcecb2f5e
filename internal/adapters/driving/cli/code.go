package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mise-cli/internal/core/domain"
)

var codeCmd = &cobra.Command{
	Use:   "code",
	Short: "Manage the code taxonomy",
	Long: `Add, update, delete, and list codes. Codes form a tree at most two
levels deep: a child's parent must be a top-level code.`,
}

var codeAddCmd = &cobra.Command{
	Use:   "add [label]",
	Short: "Add a code",
	Args:  cobra.ExactArgs(1),
	RunE:  runCodeAdd,
}

var codeUpdateCmd = &cobra.Command{
	Use:   "update [code-id]",
	Short: "Update a code",
	Long:  `Changes only the fields given as flags. --top-level removes the parent.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCodeUpdate,
}

var codeDeleteCmd = &cobra.Command{
	Use:   "delete [code-id]",
	Short: "Delete a code and its segments",
	Long:  `Removes the code and every segment that uses it. A code with child codes cannot be deleted.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCodeDelete,
}

var codeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List codes as a tree",
	Args:  cobra.NoArgs,
	RunE:  runCodeList,
}

var codeUsageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show how often each code is applied",
	Args:  cobra.NoArgs,
	RunE:  runCodeUsage,
}

// Flags shared by add and update.
var (
	codeParent      string
	codeColor       string
	codeDescription string
	codeLabel       string
	codeTopLevel    bool
)

func init() {
	codeAddCmd.Flags().StringVar(&codeParent, "parent", "", "parent code id")
	codeAddCmd.Flags().StringVar(&codeColor, "color", "", "display color, e.g. #ff8800")
	codeAddCmd.Flags().StringVarP(&codeDescription, "description", "d", "", "description")

	codeUpdateCmd.Flags().StringVar(&codeLabel, "label", "", "new label")
	codeUpdateCmd.Flags().StringVar(&codeParent, "parent", "", "new parent code id")
	codeUpdateCmd.Flags().StringVar(&codeColor, "color", "", "new display color (empty clears)")
	codeUpdateCmd.Flags().StringVarP(&codeDescription, "description", "d", "", "new description")
	codeUpdateCmd.Flags().BoolVar(&codeTopLevel, "top-level", false, "make the code top-level")
	codeUpdateCmd.MarkFlagsMutuallyExclusive("parent", "top-level")

	codeCmd.AddCommand(codeAddCmd)
	codeCmd.AddCommand(codeUpdateCmd)
	codeCmd.AddCommand(codeDeleteCmd)
	codeCmd.AddCommand(codeListCmd)
	codeCmd.AddCommand(codeUsageCmd)
	rootCmd.AddCommand(codeCmd)
}

func runCodeAdd(cmd *cobra.Command, args []string) error {
	if codeService == nil {
		return errNotConfigured("code")
	}

	code := domain.NewCode{
		Label:       args[0],
		Description: codeDescription,
		Color:       codeColor,
	}
	if cmd.Flags().Changed("parent") {
		parent := codeParent
		code.ParentID = &parent
	}

	id, err := codeService.Add(cmd.Context(), code)
	if err != nil {
		return fmt.Errorf("failed to add code: %w", err)
	}

	cmd.Printf("Added code %s\n", id)
	return nil
}

func runCodeUpdate(cmd *cobra.Command, args []string) error {
	if codeService == nil {
		return errNotConfigured("code")
	}

	flags := cmd.Flags()
	var update domain.CodeUpdate
	if flags.Changed("label") {
		update.Label = &codeLabel
	}
	if flags.Changed("description") {
		update.Description = &codeDescription
	}
	if flags.Changed("color") {
		update.Color = &codeColor
	}
	if flags.Changed("parent") {
		update.ParentID = &codeParent
	}
	update.ClearParent = codeTopLevel

	if update.Empty() {
		return fmt.Errorf("nothing to update: set at least one of --label, --description, --color, --parent, --top-level")
	}

	n, err := codeService.Update(cmd.Context(), args[0], update)
	if err != nil {
		return fmt.Errorf("failed to update code: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("code %s not found", args[0])
	}

	cmd.Printf("Code %s updated.\n", args[0])
	return nil
}

func runCodeDelete(cmd *cobra.Command, args []string) error {
	if codeService == nil {
		return errNotConfigured("code")
	}

	if err := codeService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete code: %w", err)
	}

	cmd.Printf("Code %s deleted.\n", args[0])
	return nil
}

func runCodeList(cmd *cobra.Command, _ []string) error {
	if codeService == nil {
		return errNotConfigured("code")
	}

	codes, err := codeService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list codes: %w", err)
	}

	if len(codes) == 0 {
		cmd.Println("No codes defined.")
		return nil
	}

	out := cmd.OutOrStdout()
	children := make(map[string][]domain.Code)
	for _, c := range codes {
		if c.IsChild() {
			children[*c.ParentID] = append(children[*c.ParentID], c)
		}
	}

	cmd.Println("Codes:")
	cmd.Println()
	for _, c := range codes {
		if c.IsChild() {
			continue
		}
		cmd.Printf("  %s\n", withSwatch(out, c.Label, c.Color))
		cmd.Printf("      ID: %s\n", c.ID)
		if c.Description != "" {
			cmd.Printf("      %s\n", c.Description)
		}
		for _, child := range children[c.ID] {
			cmd.Printf("    └ %s\n", withSwatch(out, child.Label, child.Color))
			cmd.Printf("        ID: %s\n", child.ID)
		}
	}
	cmd.Println()
	cmd.Printf("Total: %d codes\n", len(codes))
	return nil
}

func runCodeUsage(cmd *cobra.Command, _ []string) error {
	if codeService == nil {
		return errNotConfigured("code")
	}

	usage, err := codeService.UsageOverview(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get code usage: %w", err)
	}

	if len(usage) == 0 {
		cmd.Println("No codes defined.")
		return nil
	}

	out := cmd.OutOrStdout()
	cmd.Printf("  %-30s %9s %10s\n", "CODE", "SEGMENTS", "DOCUMENTS")
	for _, u := range usage {
		label := u.Code.Label
		if u.Code.IsChild() {
			label = "  " + label
		}
		line := fmt.Sprintf("  %-30s %9d %10d", truncate(label, 30), u.SegmentCount, u.DocumentCount)
		cmd.Println(withSwatch(out, line, u.Code.Color))
	}
	return nil
}
