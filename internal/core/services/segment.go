package services

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/custodia-labs/mise-cli/internal/core/domain"
	"github.com/custodia-labs/mise-cli/internal/core/ports/driven"
	"github.com/custodia-labs/mise-cli/internal/core/ports/driving"
	"github.com/custodia-labs/mise-cli/internal/logger"
)

// Ensure SegmentService implements the interface.
var _ driving.SegmentService = (*SegmentService)(nil)

// SegmentService records coded segments against canonical text.
// Offsets count Unicode code points.
type SegmentService struct {
	segmentStore driven.SegmentStore
	docStore     driven.DocumentStore
	codeStore    driven.CodeStore
	textStore    driven.TextStore
}

// NewSegmentService creates a new segment service.
func NewSegmentService(
	segmentStore driven.SegmentStore,
	docStore driven.DocumentStore,
	codeStore driven.CodeStore,
	textStore driven.TextStore,
) *SegmentService {
	return &SegmentService{
		segmentStore: segmentStore,
		docStore:     docStore,
		codeStore:    codeStore,
		textStore:    textStore,
	}
}

// Add checks that the document and code exist and that the range lies
// within the document's text, then stores the segment.
func (s *SegmentService) Add(ctx context.Context, seg domain.NewSegment) (int64, error) {
	doc, err := s.docStore.Get(ctx, seg.DocumentID)
	if err != nil {
		return 0, referenceError("document", seg.DocumentID, err)
	}
	if _, err := s.codeStore.Get(ctx, seg.CodeID); err != nil {
		return 0, referenceError("code", seg.CodeID, err)
	}

	text, err := s.textStore.Read(doc.TextPath)
	if errors.Is(err, domain.ErrNotFound) {
		return 0, fmt.Errorf("text of document %d (%s): %w", doc.ID, doc.TextPath, domain.ErrSnippetUnavailable)
	}
	if err != nil {
		return 0, fmt.Errorf("reading text of document %d: %w", doc.ID, err)
	}

	length := utf8.RuneCountInString(text)
	if seg.StartOffset < 0 || seg.StartOffset > seg.EndOffset || seg.EndOffset > length {
		return 0, fmt.Errorf("segment [%d, %d] in document of length %d: %w",
			seg.StartOffset, seg.EndOffset, length, domain.ErrInvalidRange)
	}

	id, err := s.segmentStore.Add(ctx, seg)
	if err != nil {
		return 0, err
	}
	logger.Debug("Added segment %d: document %d [%d, %d] code %s",
		id, seg.DocumentID, seg.StartOffset, seg.EndOffset, seg.CodeID)
	return id, nil
}

// Get retrieves a segment by ID.
func (s *SegmentService) Get(ctx context.Context, id int64) (*domain.Segment, error) {
	return s.segmentStore.Get(ctx, id)
}

// ListForDocument returns a document's segments by start offset.
func (s *SegmentService) ListForDocument(ctx context.Context, documentID int64) ([]domain.Segment, error) {
	return s.segmentStore.ListForDocument(ctx, documentID)
}

// ListForCode returns every use of a code across documents.
func (s *SegmentService) ListForCode(ctx context.Context, codeID string) ([]domain.CodedSpan, error) {
	return s.segmentStore.ListForCode(ctx, codeID)
}

// AtPosition returns every segment covering offset.
func (s *SegmentService) AtPosition(ctx context.Context, documentID int64, offset int) ([]domain.Segment, error) {
	if offset < 0 {
		return nil, nil
	}
	return s.segmentStore.AtPosition(ctx, documentID, offset)
}

// Delete removes a segment.
func (s *SegmentService) Delete(ctx context.Context, id int64) error {
	return s.segmentStore.Delete(ctx, id)
}

// referenceError maps a missing entity to domain.ErrReferentialViolation.
func referenceError(kind string, id any, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%s %v does not exist: %w", kind, id, domain.ErrReferentialViolation)
	}
	return err
}
