// Package texts stores canonical document text as files in a project's
// texts/ directory. Files are write-once: the allocator never reuses a
// name that exists on disk.
package texts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/mise-cli/internal/core/domain"
	"github.com/custodia-labs/mise-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.TextStore = (*Store)(nil)

// DirName is the canonical text directory inside a project.
const DirName = "texts"

const (
	filePrefix = "doc-"
	fileSuffix = ".txt"

	// maxProbe bounds the forward search for a free name.
	maxProbe = 100000
)

// Store is a directory of canonical text files.
type Store struct {
	mu         sync.Mutex
	projectDir string
	dir        string
}

// NewStore opens the texts directory of the project at projectDir,
// creating it if needed.
func NewStore(projectDir string) (*Store, error) {
	dir := filepath.Join(projectDir, DirName)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating texts directory: %w", err)
	}
	return &Store{projectDir: projectDir, dir: dir}, nil
}

// Write allocates doc-NNNN.txt and writes text to it.
// Numbering starts after the count of existing doc-*.txt files and
// probes forward past taken names, so gaps from deletions are harmless.
func (s *Store) Write(text string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := filepath.Glob(filepath.Join(s.dir, filePrefix+"*"+fileSuffix))
	if err != nil {
		return "", fmt.Errorf("listing texts: %w", err)
	}

	n := len(existing) + 1
	for probe := 0; probe < maxProbe; probe++ {
		name := fmt.Sprintf("%s%04d%s", filePrefix, n+probe, fileSuffix)
		f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("creating text file: %w", err)
		}

		if _, err := f.WriteString(text); err != nil {
			f.Close()
			_ = os.Remove(f.Name())
			return "", fmt.Errorf("writing text file: %w", err)
		}
		if err := f.Close(); err != nil {
			_ = os.Remove(f.Name())
			return "", fmt.Errorf("closing text file: %w", err)
		}
		return DirName + "/" + name, nil
	}

	return "", fmt.Errorf("allocating text file: no free name after %d attempts", maxProbe)
}

// Read returns the text at textPath, relative to the project root.
func (s *Store) Read(textPath string) (string, error) {
	path, err := s.resolve(textPath)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("reading %s: %w", textPath, domain.ErrNotFound)
		}
		return "", fmt.Errorf("reading %s: %w", textPath, err)
	}
	return string(data), nil
}

// Remove deletes the file at textPath. A missing file is not an error.
func (s *Store) Remove(textPath string) error {
	path, err := s.resolve(textPath)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", textPath, err)
	}
	return nil
}

// Dir returns the texts directory.
func (s *Store) Dir() string {
	return s.dir
}

// resolve maps a project-relative path to a file inside the texts directory.
func (s *Store) resolve(textPath string) (string, error) {
	if textPath == "" || filepath.IsAbs(textPath) {
		return "", fmt.Errorf("text path %q: %w", textPath, domain.ErrInvalidInput)
	}

	path := filepath.Join(s.projectDir, filepath.FromSlash(textPath))
	rel, err := filepath.Rel(s.dir, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("text path %q outside %s: %w", textPath, DirName, domain.ErrInvalidInput)
	}
	return path, nil
}
