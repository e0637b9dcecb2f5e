// Package project creates and opens mise projects on disk and wires the
// core services to the project's stores.
//
// A project is a directory named <name>.mise holding:
//
//	.mise             marker file
//	project.db        SQLite store
//	texts/            canonical text files
//	meta/config.toml  project metadata
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/mise-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/mise-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/mise-cli/internal/adapters/driven/storage/texts"
	"github.com/custodia-labs/mise-cli/internal/core/domain"
	"github.com/custodia-labs/mise-cli/internal/core/ports/driven"
	"github.com/custodia-labs/mise-cli/internal/core/ports/driving"
	"github.com/custodia-labs/mise-cli/internal/core/services"
	"github.com/custodia-labs/mise-cli/internal/logger"
	"github.com/custodia-labs/mise-cli/internal/normalisers/docx"
	"github.com/custodia-labs/mise-cli/internal/normalisers/legacydoc"
	"github.com/custodia-labs/mise-cli/internal/normalisers/markdown"
	"github.com/custodia-labs/mise-cli/internal/normalisers/pdf"
)

const (
	// Suffix is appended to a project name to form its directory.
	Suffix = ".mise"

	// MarkerFileName identifies a directory as a project.
	MarkerFileName = ".mise"

	markerContent = "This is a mise project\n"
)

// Project is an open project with its services wired to its stores.
type Project struct {
	// Name is the directory name without Suffix.
	Name string

	// Root is the project directory.
	Root string

	// Metadata is the record loaded at open.
	Metadata domain.ProjectMetadata

	Documents driving.DocumentService
	Imports   driving.ImportService
	Codes     driving.CodeService
	Segments  driving.SegmentService
	Reports   driving.ReportService

	// Texts is the canonical text directory.
	Texts driven.TextStore

	store     *sqlite.Store
	closeOnce sync.Once
	closeErr  error
}

// Create makes a new, empty project named name inside parentDir and
// returns its root. A partially created project is removed on failure.
func Create(name, parentDir string) (string, error) {
	name = strings.TrimSuffix(strings.TrimSpace(name), Suffix)
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("project name %q: %w", name, domain.ErrInvalidInput)
	}

	info, err := os.Stat(parentDir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("parent directory %s does not exist: %w", parentDir, domain.ErrInvalidInput)
	}

	root := filepath.Join(parentDir, name+Suffix)
	if err := os.Mkdir(root, 0700); err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("%s: %w", root, domain.ErrProjectExists)
		}
		return "", fmt.Errorf("creating project directory: %w", err)
	}

	if err := initialise(root); err != nil {
		_ = os.RemoveAll(root)
		return "", err
	}

	logger.Info("Created project %s at %s", name, root)
	return root, nil
}

// initialise lays out a freshly created project directory.
func initialise(root string) error {
	if _, err := texts.NewStore(root); err != nil {
		return err
	}

	meta, err := file.NewMetadataStore(root)
	if err != nil {
		return err
	}
	if err := meta.Save(domain.DefaultProjectMetadata()); err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(root, MarkerFileName), []byte(markerContent), 0600); err != nil {
		return fmt.Errorf("writing project marker: %w", err)
	}

	store, err := sqlite.NewStore(root)
	if err != nil {
		return err
	}
	return store.Close()
}

// IsProject reports whether dir carries the project marker.
func IsProject(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, MarkerFileName))
	return err == nil && !info.IsDir()
}

// Open opens the project at root. It holds one store handle until Close;
// on any error the handle is released before returning.
func Open(root string) (*Project, error) {
	if !IsProject(root) {
		return nil, fmt.Errorf("%s: %w", root, domain.ErrNotAProject)
	}

	metaStore, err := file.NewMetadataStore(root)
	if err != nil {
		return nil, err
	}
	meta, err := metaStore.Load()
	if err != nil {
		return nil, err
	}
	if meta.Version > domain.MetadataVersion {
		return nil, fmt.Errorf("project version %d, newest supported %d: %w",
			meta.Version, domain.MetadataVersion, domain.ErrUnsupportedVersion)
	}

	textStore, err := texts.NewStore(root)
	if err != nil {
		return nil, err
	}

	store, err := sqlite.NewStore(root)
	if err != nil {
		return nil, err
	}

	p := &Project{
		Name:     strings.TrimSuffix(filepath.Base(root), Suffix),
		Root:     root,
		Metadata: meta,
		Texts:    textStore,
		store:    store,
	}
	p.wire(NewRegistry())

	logger.Debug("Opened project %s (metadata v%d)", p.Name, meta.Version)
	return p, nil
}

// wire builds the services over the project's stores.
func (p *Project) wire(registry driven.NormaliserRegistry) {
	docs := p.store.DocumentStore()
	codes := p.store.CodeStore()
	segments := p.store.SegmentStore()

	documents := services.NewDocumentService(docs, segments, p.Texts)
	p.Documents = documents
	p.Imports = services.NewImportService(registry, p.Texts, documents)
	p.Codes = services.NewCodeService(codes, segments)
	p.Segments = services.NewSegmentService(segments, docs, codes, p.Texts)
	p.Reports = services.NewReportService(docs, codes, segments, p.Texts)
}

// Close releases the store handle. It is safe to call more than once.
func (p *Project) Close() error {
	p.closeOnce.Do(func() {
		p.closeErr = p.store.Close()
		logger.Debug("Closed project %s", p.Name)
	})
	return p.closeErr
}

// NewRegistry returns a registry with every built-in normaliser.
func NewRegistry() *services.NormaliserRegistry {
	return services.NewNormaliserRegistry(
		markdown.New(),
		docx.New(),
		pdf.New(),
		legacydoc.New(),
	)
}

// Resolve finds the project for dir: dir itself or its nearest ancestor
// project, otherwise the single <name>.mise child of dir.
func Resolve(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}

	for d := abs; ; d = filepath.Dir(d) {
		if IsProject(d) {
			return d, nil
		}
		if filepath.Dir(d) == d {
			break
		}
	}

	matches, err := filepath.Glob(filepath.Join(abs, "*"+Suffix))
	if err == nil {
		var found []string
		for _, m := range matches {
			if IsProject(m) {
				found = append(found, m)
			}
		}
		if len(found) == 1 {
			return found[0], nil
		}
	}

	return "", fmt.Errorf("%s: %w", dir, domain.ErrNotAProject)
}
