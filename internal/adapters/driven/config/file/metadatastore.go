package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/mise-cli/internal/core/domain"
	"github.com/custodia-labs/mise-cli/internal/core/ports/driven"
)

// Ensure MetadataStore implements the interface.
var _ driven.MetadataStore = (*MetadataStore)(nil)

const (
	// MetaDirName is the metadata directory inside a project.
	MetaDirName = "meta"

	// MetadataFileName is the metadata file inside MetaDirName.
	MetadataFileName = "config.toml"
)

// MetadataStore is a file-based implementation of driven.MetadataStore using TOML.
// The record lives at <project>/meta/config.toml.
type MetadataStore struct {
	mu       sync.RWMutex
	filePath string
}

// NewMetadataStore creates a metadata store for the project at projectDir.
// The meta directory is created if missing; the file is not read until Load.
func NewMetadataStore(projectDir string) (*MetadataStore, error) {
	metaDir := filepath.Join(projectDir, MetaDirName)

	// Ensure directory exists
	if err := os.MkdirAll(metaDir, 0700); err != nil {
		return nil, fmt.Errorf("creating metadata directory: %w", err)
	}

	return &MetadataStore{
		filePath: filepath.Join(metaDir, MetadataFileName),
	}, nil
}

// Load reads the metadata record. A missing file yields the defaults.
// Fields absent from the file keep their default values.
func (s *MetadataStore) Load() (domain.ProjectMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	meta := domain.DefaultProjectMetadata()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return meta, nil
		}
		return domain.ProjectMetadata{}, fmt.Errorf("reading metadata: %w", err)
	}

	if err := toml.Unmarshal(data, &meta); err != nil {
		return domain.ProjectMetadata{}, fmt.Errorf("parsing %s: %w", s.filePath, err)
	}
	return meta, nil
}

// Save writes the metadata record, replacing the file atomically.
func (s *MetadataStore) Save(meta domain.ProjectMetadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := toml.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}

	tmp := s.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("writing metadata: %w", err)
	}
	if err := os.Rename(tmp, s.filePath); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing metadata: %w", err)
	}
	return nil
}

// Path returns the metadata file path.
func (s *MetadataStore) Path() string {
	return s.filePath
}
