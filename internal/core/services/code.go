package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/mise-cli/internal/core/domain"
	"github.com/custodia-labs/mise-cli/internal/core/ports/driven"
	"github.com/custodia-labs/mise-cli/internal/core/ports/driving"
	"github.com/custodia-labs/mise-cli/internal/logger"
)

// Ensure CodeService implements the interface.
var _ driving.CodeService = (*CodeService)(nil)

// CodeService manages the code taxonomy. It keeps the tree at most two
// levels deep: a parent must be top-level, and a code with children
// cannot itself become a child.
type CodeService struct {
	codeStore    driven.CodeStore
	segmentStore driven.SegmentStore
}

// NewCodeService creates a new code service.
func NewCodeService(codeStore driven.CodeStore, segmentStore driven.SegmentStore) *CodeService {
	return &CodeService{
		codeStore:    codeStore,
		segmentStore: segmentStore,
	}
}

// Add validates and creates a code.
func (s *CodeService) Add(ctx context.Context, code domain.NewCode) (string, error) {
	label, err := normaliseLabel(code.Label)
	if err != nil {
		return "", fmt.Errorf("adding code: %w", err)
	}
	code.Label = label
	code.Color = strings.TrimSpace(code.Color)

	if code.ParentID != nil {
		if err := s.validateParent(ctx, "", *code.ParentID); err != nil {
			return "", fmt.Errorf("adding code %q: %w", label, err)
		}
	}

	id, err := s.codeStore.Add(ctx, code)
	if err != nil {
		return "", err
	}
	logger.Debug("Added code %s (%s)", id, label)
	return id, nil
}

// Get retrieves a code by ID.
func (s *CodeService) Get(ctx context.Context, id string) (*domain.Code, error) {
	return s.codeStore.Get(ctx, id)
}

// Update applies a partial update. A missing code affects 0 rows.
func (s *CodeService) Update(ctx context.Context, id string, update domain.CodeUpdate) (int64, error) {
	if _, err := s.codeStore.Get(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	if update.Label != nil {
		label, err := normaliseLabel(*update.Label)
		if err != nil {
			return 0, fmt.Errorf("updating code: %w", err)
		}
		update.Label = &label
	}
	if update.Color != nil {
		color := strings.TrimSpace(*update.Color)
		update.Color = &color
	}
	if !update.ClearParent && update.ParentID != nil {
		if err := s.validateParent(ctx, id, *update.ParentID); err != nil {
			return 0, fmt.Errorf("updating code %s: %w", id, err)
		}
	}

	return s.codeStore.Update(ctx, id, update)
}

// Delete removes a code and every segment that uses it.
// A code with children is rejected; children are never reparented.
func (s *CodeService) Delete(ctx context.Context, id string) error {
	logger.Section("Delete Code")

	if _, err := s.codeStore.Get(ctx, id); err != nil {
		return fmt.Errorf("deleting code %s: %w", id, err)
	}

	children, err := s.codeStore.Children(ctx, id)
	if err != nil {
		return err
	}
	if len(children) > 0 {
		return fmt.Errorf("deleting code %s: %d child code(s): %w", id, len(children), domain.ErrCodeHasChildren)
	}

	spans, err := s.segmentStore.ListForCode(ctx, id)
	if err != nil {
		return err
	}

	n, err := s.codeStore.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("deleting code %s: %w", id, domain.ErrNotFound)
	}

	logger.Info("Deleted code %s and %d segment(s)", id, len(spans))
	return nil
}

// List returns codes ordered by (sort_order, label).
func (s *CodeService) List(ctx context.Context) ([]domain.Code, error) {
	return s.codeStore.List(ctx)
}

// UsageOverview returns segment and document counts per code.
func (s *CodeService) UsageOverview(ctx context.Context) ([]domain.CodeUsage, error) {
	return s.codeStore.UsageOverview(ctx)
}

// validateParent checks that parentID can parent codeID.
// codeID is empty for a code that does not exist yet.
func (s *CodeService) validateParent(ctx context.Context, codeID, parentID string) error {
	if codeID != "" && parentID == codeID {
		return fmt.Errorf("a code cannot be its own parent: %w", domain.ErrInvalidParent)
	}

	parent, err := s.codeStore.Get(ctx, parentID)
	if err != nil {
		return fmt.Errorf("parent %s: %w", parentID, err)
	}
	if parent.IsChild() {
		return fmt.Errorf("parent %q is itself a child code: %w", parent.Label, domain.ErrInvalidParent)
	}

	if codeID != "" {
		children, err := s.codeStore.Children(ctx, codeID)
		if err != nil {
			return err
		}
		if len(children) > 0 {
			return fmt.Errorf("code has %d child code(s) and cannot become a child: %w",
				len(children), domain.ErrInvalidParent)
		}
	}
	return nil
}

// normaliseLabel trims a label and rejects an empty one.
func normaliseLabel(label string) (string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return "", fmt.Errorf("empty label: %w", domain.ErrInvalidInput)
	}
	return label, nil
}
