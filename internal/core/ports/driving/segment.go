package driving

import (
	"context"

	"github.com/custodia-labs/mise-cli/internal/core/domain"
)

// SegmentService records and looks up coded segments.
type SegmentService interface {
	// Add validates references and offsets, then stores the segment.
	Add(ctx context.Context, seg domain.NewSegment) (int64, error)

	// Get retrieves a segment by ID.
	Get(ctx context.Context, id int64) (*domain.Segment, error)

	// ListForDocument returns a document's segments by start offset.
	ListForDocument(ctx context.Context, documentID int64) ([]domain.Segment, error)

	// ListForCode returns every use of a code across documents.
	ListForCode(ctx context.Context, codeID string) ([]domain.CodedSpan, error)

	// AtPosition returns every segment covering offset. Several segments
	// may overlap; the caller decides which one matters.
	AtPosition(ctx context.Context, documentID int64, offset int) ([]domain.Segment, error)

	// Delete removes a segment. A missing ID is a no-op.
	Delete(ctx context.Context, id int64) error
}
