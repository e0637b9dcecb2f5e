// Package legacydoc rejects binary Word 97-2003 documents with a
// conversion hint, so they surface as unsupported rather than unknown.
package legacydoc

import (
	"context"
	"fmt"

	"github.com/custodia-labs/mise-cli/internal/core/domain"
	"github.com/custodia-labs/mise-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interfaces.
var (
	_ driven.Normaliser = (*Normaliser)(nil)
	_ driven.Rejecter   = (*Normaliser)(nil)
)

// Normaliser handles .doc files by refusing them.
type Normaliser struct{}

// New creates a new legacy .doc normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedExtensions returns the extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".doc"}
}

// Reject always fails with domain.ErrFormatUnsupported. The file is not opened.
func (n *Normaliser) Reject(path string) error {
	return fmt.Errorf("%w: %s: .doc import is not implemented, convert to .docx or PDF first",
		domain.ErrFormatUnsupported, path)
}

// Normalise always fails with domain.ErrFormatUnsupported.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (string, error) {
	path := ""
	if raw != nil {
		path = raw.Path
	}
	return "", n.Reject(path)
}
