package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/custodia-labs/mise-cli/internal/core/domain"
	"github.com/custodia-labs/mise-cli/internal/core/ports/driven"
)

// Ensure SegmentStore implements the interface.
var _ driven.SegmentStore = (*SegmentStore)(nil)

// SegmentStore is an in-memory implementation of driven.SegmentStore.
type SegmentStore struct {
	store *Store
}

// Add inserts a segment, enforcing the same references as the SQL schema.
func (g *SegmentStore) Add(_ context.Context, seg domain.NewSegment) (int64, error) {
	s := g.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.documents[seg.DocumentID]; !ok {
		return 0, fmt.Errorf("adding segment: %w", domain.ErrReferentialViolation)
	}
	if _, ok := s.codes[seg.CodeID]; !ok {
		return 0, fmt.Errorf("adding segment: %w", domain.ErrReferentialViolation)
	}
	if seg.StartOffset < 0 || seg.EndOffset < seg.StartOffset {
		return 0, fmt.Errorf("adding segment [%d, %d]: %w",
			seg.StartOffset, seg.EndOffset, domain.ErrInvalidRange)
	}

	s.nextSegmentID++
	id := s.nextSegmentID
	s.segments[id] = domain.Segment{
		ID:          id,
		DocumentID:  seg.DocumentID,
		CodeID:      seg.CodeID,
		StartOffset: seg.StartOffset,
		EndOffset:   seg.EndOffset,
		Memo:        seg.Memo,
		CreatedAt:   s.now(),
	}
	return id, nil
}

// Get retrieves a segment by ID.
func (g *SegmentStore) Get(_ context.Context, id int64) (*domain.Segment, error) {
	s := g.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	seg, ok := s.segments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	seg.CodeColor = s.codes[seg.CodeID].Color
	return &seg, nil
}

// ListForDocument returns a document's segments by start offset.
func (g *SegmentStore) ListForDocument(_ context.Context, documentID int64) ([]domain.Segment, error) {
	s := g.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.segmentsLocked(func(seg domain.Segment) bool {
		return seg.DocumentID == documentID
	}), nil
}

// ListForCode returns every use of a code with its document.
func (g *SegmentStore) ListForCode(_ context.Context, codeID string) ([]domain.CodedSpan, error) {
	s := g.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var spans []domain.CodedSpan
	for _, seg := range s.segments {
		if seg.CodeID != codeID {
			continue
		}
		doc, ok := s.documents[seg.DocumentID]
		if !ok {
			continue
		}
		spans = append(spans, domain.CodedSpan{
			SegmentID:    seg.ID,
			DocumentID:   doc.ID,
			DocumentName: doc.DisplayName,
			TextPath:     doc.TextPath,
			StartOffset:  seg.StartOffset,
			EndOffset:    seg.EndOffset,
			Memo:         seg.Memo,
		})
	}
	sort.Slice(spans, func(i, j int) bool {
		a, b := spans[i], spans[j]
		if a.DocumentID != b.DocumentID {
			return a.DocumentID < b.DocumentID
		}
		if a.StartOffset != b.StartOffset {
			return a.StartOffset < b.StartOffset
		}
		return a.SegmentID < b.SegmentID
	})
	return spans, nil
}

// AtPosition returns every segment covering offset.
func (g *SegmentStore) AtPosition(_ context.Context, documentID int64, offset int) ([]domain.Segment, error) {
	s := g.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.segmentsLocked(func(seg domain.Segment) bool {
		return seg.DocumentID == documentID && seg.Contains(offset)
	}), nil
}

// Delete removes a segment.
func (g *SegmentStore) Delete(_ context.Context, id int64) error {
	s := g.store
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.segments, id)
	return nil
}

// segmentsLocked returns matching segments ordered by (start offset, ID)
// with their code colors filled in.
func (s *Store) segmentsLocked(keep func(domain.Segment) bool) []domain.Segment {
	var segs []domain.Segment
	for _, seg := range s.segments {
		if keep(seg) {
			seg.CodeColor = s.codes[seg.CodeID].Color
			segs = append(segs, seg)
		}
	}
	sort.Slice(segs, func(i, j int) bool {
		if segs[i].StartOffset != segs[j].StartOffset {
			return segs[i].StartOffset < segs[j].StartOffset
		}
		return segs[i].ID < segs[j].ID
	})
	return segs
}
