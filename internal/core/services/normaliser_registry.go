package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/mise-cli/internal/core/domain"
	"github.com/custodia-labs/mise-cli/internal/core/ports/driven"
	"github.com/custodia-labs/mise-cli/internal/logger"
)

// Ensure NormaliserRegistry implements the interface.
var _ driven.NormaliserRegistry = (*NormaliserRegistry)(nil)

// utf8BOM is stripped from the start of canonical text.
const utf8BOM = "\uFEFF"

// NormaliserRegistry dispatches source files to normalisers by extension.
type NormaliserRegistry struct {
	mu          sync.RWMutex
	byExtension map[string]driven.Normaliser
}

// NewNormaliserRegistry creates a registry holding the given normalisers.
// Later normalisers replace earlier ones for a shared extension.
func NewNormaliserRegistry(normalisers ...driven.Normaliser) *NormaliserRegistry {
	r := &NormaliserRegistry{byExtension: make(map[string]driven.Normaliser)}
	for _, n := range normalisers {
		r.Register(n)
	}
	return r
}

// Register adds a normaliser for each of its extensions.
func (r *NormaliserRegistry) Register(normaliser driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ext := range normaliser.SupportedExtensions() {
		r.byExtension[strings.ToLower(ext)] = normaliser
	}
}

// Supports reports whether ext has a normaliser. The match is case-insensitive.
func (r *NormaliserRegistry) Supports(ext string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byExtension[strings.ToLower(ext)]
	return ok
}

// SupportedExtensions returns all registered extensions, sorted.
func (r *NormaliserRegistry) SupportedExtensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exts := make([]string, 0, len(r.byExtension))
	for ext := range r.byExtension {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Canonicalise reads path and returns its canonical text.
// The extension, and any path-only refusal by the normaliser, is checked
// before the file is read.
func (r *NormaliserRegistry) Canonicalise(ctx context.Context, path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))

	r.mu.RLock()
	normaliser, ok := r.byExtension[ext]
	r.mu.RUnlock()
	if !ok {
		if ext == "" {
			return "", fmt.Errorf("%w: %s has no extension", domain.ErrFormatUnsupported, path)
		}
		return "", fmt.Errorf("%w: %s", domain.ErrFormatUnsupported, ext)
	}

	if rejecter, ok := normaliser.(driven.Rejecter); ok {
		if err := rejecter.Reject(path); err != nil {
			return "", err
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrExtractionFailed, err)
	}

	text, err := normaliser.Normalise(ctx, &domain.RawDocument{
		Path:      path,
		Extension: ext,
		Content:   content,
	})
	if err != nil {
		return "", err
	}

	logger.Debug("Canonicalised %s (%s, %d bytes)", path, ext, len(content))
	return CanonicalText(text), nil
}

// CanonicalText strips a leading byte order mark and converts CRLF and
// lone CR line endings to LF. It is idempotent.
func CanonicalText(text string) string {
	text = strings.TrimPrefix(text, utf8BOM)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
