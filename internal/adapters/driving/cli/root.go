// Package cli implements the mise command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mise-cli/internal/core/ports/driven"
	"github.com/custodia-labs/mise-cli/internal/core/ports/driving"
	"github.com/custodia-labs/mise-cli/internal/logger"
	"github.com/custodia-labs/mise-cli/internal/project"
)

// ProjectEnv names the environment variable holding the default project.
const ProjectEnv = "MISE_PROJECT"

// version is set at build time.
var version = "dev"

var (
	projectFlag string
	verboseFlag bool
)

// Services used by the commands. They are wired from the open project,
// or set directly with SetServices.
var (
	documentService driving.DocumentService
	importService   driving.ImportService
	codeService     driving.CodeService
	segmentService  driving.SegmentService
	reportService   driving.ReportService
	textStore       driven.TextStore
)

// openProject is the project opened for the running command, if any.
var openProject *project.Project

// noProjectAnnotation marks commands that run without an open project.
const noProjectAnnotation = "mise/no-project"

var rootCmd = &cobra.Command{
	Use:   "mise",
	Short: "Code qualitative research documents",
	Long: `mise keeps a project of imported documents and the codes applied to them.

Documents are imported once into canonical plain text. Segments tie a code
to a range of that text and survive every later session unchanged.`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  preRun,
	PersistentPostRunE: postRun,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&projectFlag, "project", "p", "",
		"project directory (default $"+ProjectEnv+", then the current directory)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "log progress to stderr")
}

// Execute runs the root command. The project is closed even when the
// command fails, since cobra skips post-run hooks on error.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if closeErr := closeProject(); err == nil {
		err = closeErr
	}
	return err
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
}

// Services bundles the services the commands run against.
type Services struct {
	Documents driving.DocumentService
	Imports   driving.ImportService
	Codes     driving.CodeService
	Segments  driving.SegmentService
	Reports   driving.ReportService
	Texts     driven.TextStore
}

// SetServices wires the commands to s. Commands then skip opening a project.
func SetServices(s Services) {
	documentService = s.Documents
	importService = s.Imports
	codeService = s.Codes
	segmentService = s.Segments
	reportService = s.Reports
	textStore = s.Texts
}

func servicesConfigured() bool {
	return documentService != nil && codeService != nil &&
		segmentService != nil && reportService != nil
}

func preRun(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verboseFlag)

	if !needsProject(cmd) || servicesConfigured() {
		return nil
	}

	root, err := projectRoot()
	if err != nil {
		return err
	}

	p, err := project.Open(root)
	if err != nil {
		return fmt.Errorf("opening project: %w", err)
	}
	openProject = p
	SetServices(Services{
		Documents: p.Documents,
		Imports:   p.Imports,
		Codes:     p.Codes,
		Segments:  p.Segments,
		Reports:   p.Reports,
		Texts:     p.Texts,
	})
	return nil
}

func postRun(_ *cobra.Command, _ []string) error {
	return closeProject()
}

// needsProject reports whether cmd runs against an open project.
func needsProject(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if _, skip := c.Annotations[noProjectAnnotation]; skip {
			return false
		}
		if c.Name() == "help" || c.Name() == "completion" {
			return false
		}
	}
	return true
}

func closeProject() error {
	if openProject == nil {
		return nil
	}
	err := openProject.Close()
	openProject = nil
	SetServices(Services{})
	return err
}

// projectRoot picks the project from the flag, the environment or the
// working directory, in that order.
func projectRoot() (string, error) {
	dir := projectFlag
	if dir == "" {
		dir = os.Getenv(ProjectEnv)
	}
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting working directory: %w", err)
		}
		dir = wd
	}

	root, err := project.Resolve(dir)
	if err != nil {
		return "", fmt.Errorf("no project found from %s (use --project or %s): %w",
			filepath.Clean(dir), ProjectEnv, err)
	}
	return root, nil
}

// errNotConfigured reports a service the command needs but does not have.
func errNotConfigured(name string) error {
	return errors.New(name + " service not configured")
}
