package driven

import (
	"context"

	"github.com/custodia-labs/mise-cli/internal/core/domain"
)

// DocumentStore persists the document registry.
// Backed by SQLite for project storage.
type DocumentStore interface {
	// Register inserts a document with a fresh UUID and the current time.
	// DisplayName starts out as originalFilename.
	// Returns domain.ErrDuplicateDocument if textPath is already registered.
	Register(ctx context.Context, originalFilename, textPath string) (int64, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, id int64) (*domain.Document, error)

	// LookupID resolves a text path to its document ID.
	// The boolean is false when no document has that path.
	LookupID(ctx context.Context, textPath string) (int64, bool, error)

	// List returns all documents ordered by ID.
	List(ctx context.Context) ([]domain.Document, error)

	// Rename updates only the display name and returns rows affected.
	// A missing ID affects 0 rows and is not an error.
	Rename(ctx context.Context, id int64, displayName string) (int64, error)

	// Delete removes the document's segments and then the document,
	// atomically. It returns rows affected and the orphaned text path,
	// which is empty when the document did not exist.
	Delete(ctx context.Context, id int64) (int64, string, error)

	// CodingOverview returns every document with its segment and
	// distinct code counts, ordered by document ID.
	CodingOverview(ctx context.Context) ([]domain.DocumentCoding, error)
}
