package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/custodia-labs/mise-cli/internal/core/domain"
	"github.com/custodia-labs/mise-cli/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	store *Store
}

// Register inserts a document.
func (d *DocumentStore) Register(_ context.Context, originalFilename, textPath string) (int64, error) {
	s := d.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, doc := range s.documents {
		if doc.TextPath == textPath {
			return 0, fmt.Errorf("registering %s: %w", textPath, domain.ErrDuplicateDocument)
		}
	}

	s.nextDocumentID++
	id := s.nextDocumentID
	s.documents[id] = domain.Document{
		ID:               id,
		OriginalFilename: originalFilename,
		DisplayName:      originalFilename,
		TextPath:         textPath,
		UUID:             uuid.New().String(),
		CreatedAt:        s.now(),
	}
	return id, nil
}

// Get retrieves a document by ID.
func (d *DocumentStore) Get(_ context.Context, id int64) (*domain.Document, error) {
	s := d.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// LookupID resolves a text path to a document ID.
func (d *DocumentStore) LookupID(_ context.Context, textPath string) (int64, bool, error) {
	s := d.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, doc := range s.documents {
		if doc.TextPath == textPath {
			return id, true, nil
		}
	}
	return 0, false, nil
}

// List returns all documents ordered by ID.
func (d *DocumentStore) List(_ context.Context) ([]domain.Document, error) {
	s := d.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedDocumentsLocked(), nil
}

// Rename updates the display name.
func (d *DocumentStore) Rename(_ context.Context, id int64, displayName string) (int64, error) {
	s := d.store
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.documents[id]
	if !ok {
		return 0, nil
	}
	doc.DisplayName = displayName
	s.documents[id] = doc
	return 1, nil
}

// Delete removes a document and its segments.
func (d *DocumentStore) Delete(_ context.Context, id int64) (int64, string, error) {
	s := d.store
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.documents[id]
	if !ok {
		return 0, "", nil
	}
	s.deleteSegmentsLocked(func(seg domain.Segment) bool { return seg.DocumentID == id })
	delete(s.documents, id)
	return 1, doc.TextPath, nil
}

// CodingOverview returns per-document counts ordered by ID.
func (d *DocumentStore) CodingOverview(_ context.Context) ([]domain.DocumentCoding, error) {
	s := d.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := s.sortedDocumentsLocked()
	overview := make([]domain.DocumentCoding, 0, len(docs))
	for _, doc := range docs {
		item := domain.DocumentCoding{Document: doc}
		codes := make(map[string]struct{})
		for _, seg := range s.segments {
			if seg.DocumentID == doc.ID {
				item.SegmentCount++
				codes[seg.CodeID] = struct{}{}
			}
		}
		item.DistinctCodeCount = len(codes)
		overview = append(overview, item)
	}
	return overview, nil
}

func (s *Store) sortedDocumentsLocked() []domain.Document {
	docs := make([]domain.Document, 0, len(s.documents))
	for _, doc := range s.documents {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs
}
