// Package markdown imports Markdown files verbatim.
package markdown

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/custodia-labs/mise-cli/internal/core/domain"
	"github.com/custodia-labs/mise-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles Markdown documents.
// Markup is kept: coders annotate the text as written.
type Normaliser struct{}

// New creates a new Markdown normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedExtensions returns the extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".md", ".markdown"}
}

// Normalise returns the file content unchanged.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (string, error) {
	if raw == nil {
		return "", domain.ErrInvalidInput
	}

	if !utf8.Valid(raw.Content) {
		return "", fmt.Errorf("%w: %s: content is not valid UTF-8", domain.ErrExtractionFailed, raw.Path)
	}

	return string(raw.Content), nil
}
