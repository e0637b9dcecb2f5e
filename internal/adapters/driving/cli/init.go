package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mise-cli/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [name] [parent-dir]",
	Short: "Create a new project",
	Long: `Creates <parent-dir>/<name>.mise with an empty store, the canonical
text directory and default metadata. parent-dir defaults to the current
directory and must already exist.`,
	Args:        cobra.RangeArgs(1, 2),
	Annotations: map[string]string{noProjectAnnotation: "true"},
	RunE:        runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	parent := "."
	if len(args) == 2 {
		parent = args[1]
	}

	root, err := project.Create(args[0], parent)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	cmd.Printf("Created project at %s\n", root)
	return nil
}
