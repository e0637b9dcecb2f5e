package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/mise-cli/internal/core/domain"
	"github.com/custodia-labs/mise-cli/internal/core/ports/driven"
	"github.com/custodia-labs/mise-cli/internal/core/ports/driving"
	"github.com/custodia-labs/mise-cli/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService manages the document registry and its canonical texts.
type DocumentService struct {
	docStore     driven.DocumentStore
	segmentStore driven.SegmentStore
	textStore    driven.TextStore
}

// NewDocumentService creates a new document service.
func NewDocumentService(
	docStore driven.DocumentStore,
	segmentStore driven.SegmentStore,
	textStore driven.TextStore,
) *DocumentService {
	return &DocumentService{
		docStore:     docStore,
		segmentStore: segmentStore,
		textStore:    textStore,
	}
}

// Register records a document whose canonical text is already at textPath.
func (s *DocumentService) Register(ctx context.Context, originalFilename, textPath string) (int64, error) {
	if strings.TrimSpace(originalFilename) == "" {
		return 0, fmt.Errorf("registering document: empty filename: %w", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(textPath) == "" {
		return 0, fmt.Errorf("registering document: empty text path: %w", domain.ErrInvalidInput)
	}

	id, err := s.docStore.Register(ctx, originalFilename, textPath)
	if err != nil {
		return 0, err
	}
	logger.Debug("Registered document %d (%s) at %s", id, originalFilename, textPath)
	return id, nil
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, id int64) (*domain.Document, error) {
	return s.docStore.Get(ctx, id)
}

// List returns all documents ordered by ID.
func (s *DocumentService) List(ctx context.Context) ([]domain.Document, error) {
	return s.docStore.List(ctx)
}

// LookupID resolves a text path to a document ID.
func (s *DocumentService) LookupID(ctx context.Context, textPath string) (int64, bool, error) {
	return s.docStore.LookupID(ctx, textPath)
}

// Text returns the full canonical text of a document.
func (s *DocumentService) Text(ctx context.Context, id int64) (string, error) {
	doc, err := s.docStore.Get(ctx, id)
	if err != nil {
		return "", fmt.Errorf("document %d: %w", id, err)
	}
	return s.textStore.Read(doc.TextPath)
}

// Rename changes a document's display name.
func (s *DocumentService) Rename(ctx context.Context, id int64, displayName string) (int64, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return 0, fmt.Errorf("renaming document: empty display name: %w", domain.ErrInvalidInput)
	}
	return s.docStore.Rename(ctx, id, displayName)
}

// Delete removes the document and its segments, then its text file.
// A text file that cannot be removed is left behind with a warning.
func (s *DocumentService) Delete(ctx context.Context, id int64) (int64, string, error) {
	logger.Section("Delete Document")

	segments, err := s.segmentStore.ListForDocument(ctx, id)
	if err != nil {
		return 0, "", err
	}

	n, textPath, err := s.docStore.Delete(ctx, id)
	if err != nil {
		return 0, "", err
	}
	if n == 0 {
		logger.Debug("Document %d not found, nothing deleted", id)
		return 0, "", nil
	}
	logger.Info("Deleted document %d and %d segment(s)", id, len(segments))

	if textPath != "" {
		if err := s.textStore.Remove(textPath); err != nil {
			logger.Warn("Could not remove orphaned text %s: %v", textPath, err)
		}
	}
	return n, textPath, nil
}
