package driving

import (
	"context"

	"github.com/custodia-labs/mise-cli/internal/core/domain"
)

// ReportService provides read-only aggregation views.
type ReportService interface {
	// DocumentCodingOverview returns segment and distinct code counts per document.
	DocumentCodingOverview(ctx context.Context) ([]domain.DocumentCoding, error)

	// CodeUsage returns segment and distinct document counts per code.
	CodeUsage(ctx context.Context) ([]domain.CodeUsage, error)

	// Snippet returns the text a segment covers.
	// Returns domain.ErrSnippetUnavailable if the canonical text is missing.
	Snippet(ctx context.Context, doc domain.Document, seg domain.Segment) (string, error)

	// CodeReport collects the coded spans of each code with their snippets.
	// Missing text yields domain.SnippetPlaceholder rather than an error.
	CodeReport(ctx context.Context, codeIDs []string) ([]domain.CodeReport, error)
}
