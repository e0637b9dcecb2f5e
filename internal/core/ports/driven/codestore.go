package driven

import (
	"context"

	"github.com/custodia-labs/mise-cli/internal/core/domain"
)

// CodeStore persists the code taxonomy.
type CodeStore interface {
	// Add inserts a code with a fresh ID and sort_order = max(existing)+1.
	Add(ctx context.Context, code domain.NewCode) (string, error)

	// Get retrieves a code by ID.
	Get(ctx context.Context, id string) (*domain.Code, error)

	// Update applies a partial update and returns rows affected.
	// A missing ID affects 0 rows and is not an error.
	Update(ctx context.Context, id string, update domain.CodeUpdate) (int64, error)

	// Delete removes the code's segments and then the code, atomically.
	// A code that is still a parent fails with domain.ErrCodeHasChildren
	// and nothing is removed. Returns rows affected.
	Delete(ctx context.Context, id string) (int64, error)

	// List returns all codes ordered by (sort_order, label).
	List(ctx context.Context) ([]domain.Code, error)

	// Children returns the codes whose parent is id, in list order.
	Children(ctx context.Context, id string) ([]domain.Code, error)

	// UsageOverview returns every code with its segment count and
	// distinct document count, in list order.
	UsageOverview(ctx context.Context) ([]domain.CodeUsage, error)
}
