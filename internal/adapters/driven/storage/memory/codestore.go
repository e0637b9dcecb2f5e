package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/custodia-labs/mise-cli/internal/core/domain"
	"github.com/custodia-labs/mise-cli/internal/core/ports/driven"
)

// Ensure CodeStore implements the interface.
var _ driven.CodeStore = (*CodeStore)(nil)

// CodeStore is an in-memory implementation of driven.CodeStore.
type CodeStore struct {
	store *Store
}

// Add inserts a code after the current last sort_order.
func (c *CodeStore) Add(_ context.Context, code domain.NewCode) (string, error) {
	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if code.ParentID != nil {
		if _, ok := s.codes[*code.ParentID]; !ok {
			return "", fmt.Errorf("adding code: parent: %w", domain.ErrNotFound)
		}
	}

	maxOrder := 0
	for _, existing := range s.codes {
		if existing.SortOrder > maxOrder {
			maxOrder = existing.SortOrder
		}
	}

	id := uuid.New().String()
	s.codes[id] = domain.Code{
		ID:          id,
		Label:       code.Label,
		ParentID:    copyPtr(code.ParentID),
		Description: code.Description,
		Color:       code.Color,
		SortOrder:   maxOrder + 1,
	}
	return id, nil
}

// Get retrieves a code by ID.
func (c *CodeStore) Get(_ context.Context, id string) (*domain.Code, error) {
	s := c.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	code, ok := s.codes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &code, nil
}

// Update applies a partial update.
func (c *CodeStore) Update(_ context.Context, id string, update domain.CodeUpdate) (int64, error) {
	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()

	code, ok := s.codes[id]
	if !ok {
		return 0, nil
	}
	if !update.ClearParent && update.ParentID != nil {
		if _, ok := s.codes[*update.ParentID]; !ok {
			return 0, fmt.Errorf("updating code: parent: %w", domain.ErrNotFound)
		}
	}

	if update.Label != nil {
		code.Label = *update.Label
	}
	if update.ClearParent {
		code.ParentID = nil
	} else if update.ParentID != nil {
		code.ParentID = copyPtr(update.ParentID)
	}
	if update.Description != nil {
		code.Description = *update.Description
	}
	if update.Color != nil {
		code.Color = *update.Color
	}
	s.codes[id] = code
	return 1, nil
}

// Delete removes a code and its segments.
func (c *CodeStore) Delete(_ context.Context, id string) (int64, error) {
	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.codes[id]; !ok {
		return 0, nil
	}
	for _, other := range s.codes {
		if other.ParentID != nil && *other.ParentID == id {
			return 0, fmt.Errorf("deleting code %s: %w", id, domain.ErrCodeHasChildren)
		}
	}

	s.deleteSegmentsLocked(func(seg domain.Segment) bool { return seg.CodeID == id })
	delete(s.codes, id)
	return 1, nil
}

// List returns all codes ordered by (sort_order, label).
func (c *CodeStore) List(_ context.Context) ([]domain.Code, error) {
	s := c.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedCodesLocked(func(domain.Code) bool { return true }), nil
}

// Children returns the direct children of a code.
func (c *CodeStore) Children(_ context.Context, id string) ([]domain.Code, error) {
	s := c.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedCodesLocked(func(code domain.Code) bool {
		return code.ParentID != nil && *code.ParentID == id
	}), nil
}

// UsageOverview returns per-code counts in list order.
func (c *CodeStore) UsageOverview(_ context.Context) ([]domain.CodeUsage, error) {
	s := c.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	codes := s.sortedCodesLocked(func(domain.Code) bool { return true })
	usage := make([]domain.CodeUsage, 0, len(codes))
	for _, code := range codes {
		item := domain.CodeUsage{Code: code}
		docs := make(map[int64]struct{})
		for _, seg := range s.segments {
			if seg.CodeID == code.ID {
				item.SegmentCount++
				docs[seg.DocumentID] = struct{}{}
			}
		}
		item.DocumentCount = len(docs)
		usage = append(usage, item)
	}
	return usage, nil
}

func (s *Store) sortedCodesLocked(keep func(domain.Code) bool) []domain.Code {
	var codes []domain.Code
	for _, code := range s.codes {
		if keep(code) {
			codes = append(codes, code)
		}
	}
	sort.Slice(codes, func(i, j int) bool {
		if codes[i].SortOrder != codes[j].SortOrder {
			return codes[i].SortOrder < codes[j].SortOrder
		}
		return codes[i].Label < codes[j].Label
	})
	return codes
}

func copyPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
