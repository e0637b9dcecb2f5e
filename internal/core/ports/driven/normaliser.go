package driven

import (
	"context"

	"github.com/custodia-labs/mise-cli/internal/core/domain"
)

// Normaliser extracts plain text from one family of source formats.
type Normaliser interface {
	// SupportedExtensions returns the lower-cased extensions handled, with dot.
	SupportedExtensions() []string

	// Normalise extracts the text of a raw document.
	// Parser failures are reported wrapped in domain.ErrExtractionFailed.
	Normalise(ctx context.Context, raw *domain.RawDocument) (string, error)
}

// Rejecter is implemented by normalisers that refuse files by path alone.
// The registry consults it before any bytes are read, so the refusal does
// not depend on the file being present or readable.
type Rejecter interface {
	Reject(path string) error
}
