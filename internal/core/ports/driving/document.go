package driving

import (
	"context"

	"github.com/custodia-labs/mise-cli/internal/core/domain"
)

// DocumentService manages the document registry.
type DocumentService interface {
	// Register records canonical text already written at textPath.
	Register(ctx context.Context, originalFilename, textPath string) (int64, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, id int64) (*domain.Document, error)

	// List returns all documents ordered by ID.
	List(ctx context.Context) ([]domain.Document, error)

	// LookupID resolves a text path back to a document ID.
	LookupID(ctx context.Context, textPath string) (int64, bool, error)

	// Text returns the document's canonical text.
	Text(ctx context.Context, id int64) (string, error)

	// Rename changes the display name. Returns 0 for a missing document.
	Rename(ctx context.Context, id int64, displayName string) (int64, error)

	// Delete removes the document and its segments, then its text file.
	// Returns rows affected and the text path that was orphaned.
	Delete(ctx context.Context, id int64) (int64, string, error)
}

// ImportService converts and registers source files.
type ImportService interface {
	// Import processes every path; one failing file never aborts the batch.
	Import(ctx context.Context, paths []string) domain.ImportReport

	// SupportedExtensions lists the extensions Import accepts.
	SupportedExtensions() []string
}
