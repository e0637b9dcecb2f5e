package memory

import (
	"sync"
	"time"

	"github.com/custodia-labs/mise-cli/internal/core/domain"
	"github.com/custodia-labs/mise-cli/internal/core/ports/driven"
)

// Store is an in-memory project store for testing.
// Its document, code and segment views share one lock so that
// cascading deletes and overview counts stay consistent.
type Store struct {
	mu sync.RWMutex

	documents map[int64]domain.Document
	codes     map[string]domain.Code
	segments  map[int64]domain.Segment

	nextDocumentID int64
	nextSegmentID  int64

	now func() time.Time
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		documents: make(map[int64]domain.Document),
		codes:     make(map[string]domain.Code),
		segments:  make(map[int64]domain.Segment),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// DocumentStore returns a driven.DocumentStore view.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &DocumentStore{store: s}
}

// CodeStore returns a driven.CodeStore view.
func (s *Store) CodeStore() driven.CodeStore {
	return &CodeStore{store: s}
}

// SegmentStore returns a driven.SegmentStore view.
func (s *Store) SegmentStore() driven.SegmentStore {
	return &SegmentStore{store: s}
}

// deleteSegmentsLocked removes segments for which match returns true.
// Caller must hold the write lock.
func (s *Store) deleteSegmentsLocked(match func(domain.Segment) bool) {
	for id, seg := range s.segments {
		if match(seg) {
			delete(s.segments, id)
		}
	}
}
