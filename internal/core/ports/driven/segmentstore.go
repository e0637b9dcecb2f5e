package driven

import (
	"context"

	"github.com/custodia-labs/mise-cli/internal/core/domain"
)

// SegmentStore persists coded segments.
// It holds references to documents and codes but never creates them.
type SegmentStore interface {
	// Add inserts a segment and returns its ID. Offsets are stored as given.
	// Returns domain.ErrReferentialViolation if the document or code is missing.
	Add(ctx context.Context, seg domain.NewSegment) (int64, error)

	// Get retrieves a segment by ID.
	Get(ctx context.Context, id int64) (*domain.Segment, error)

	// ListForDocument returns a document's segments ordered by start offset,
	// each carrying its code's color.
	ListForDocument(ctx context.Context, documentID int64) ([]domain.Segment, error)

	// ListForCode returns every use of a code joined with its document,
	// ordered by (document ID, start offset, segment ID).
	ListForCode(ctx context.Context, codeID string) ([]domain.CodedSpan, error)

	// AtPosition returns all segments of a document whose range contains
	// offset, inclusive on both ends, ordered by (start offset, ID).
	AtPosition(ctx context.Context, documentID int64, offset int) ([]domain.Segment, error)

	// Delete removes a segment. A missing ID is a no-op.
	Delete(ctx context.Context, id int64) error
}
