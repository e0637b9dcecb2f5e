package driving

import (
	"context"

	"github.com/custodia-labs/mise-cli/internal/core/domain"
)

// CodeService manages the two-level code taxonomy.
type CodeService interface {
	// Add validates and creates a code, returning its ID.
	Add(ctx context.Context, code domain.NewCode) (string, error)

	// Get retrieves a code by ID.
	Get(ctx context.Context, id string) (*domain.Code, error)

	// Update applies a partial update. Returns 0 for a missing code.
	Update(ctx context.Context, id string, update domain.CodeUpdate) (int64, error)

	// Delete removes a code and every segment using it.
	Delete(ctx context.Context, id string) error

	// List returns codes ordered by (sort_order, label).
	List(ctx context.Context) ([]domain.Code, error)

	// UsageOverview returns segment and distinct document counts per code.
	UsageOverview(ctx context.Context) ([]domain.CodeUsage, error)
}
