package driven

import "github.com/custodia-labs/mise-cli/internal/core/domain"

// MetadataStore persists the project metadata record.
// Implementations handle the file format (e.g., TOML).
type MetadataStore interface {
	// Load reads the metadata record.
	Load() (domain.ProjectMetadata, error)

	// Save writes the metadata record, replacing the previous one.
	Save(meta domain.ProjectMetadata) error

	// Path returns the metadata file path.
	Path() string
}
