package driven

import "context"

// NormaliserRegistry turns a source file into canonical text.
// It dispatches on file extension and normalises line endings
// so offsets are platform-independent.
type NormaliserRegistry interface {
	// Canonicalise reads the file at path and returns its canonical text.
	// Returns domain.ErrFormatUnsupported for unknown extensions.
	Canonicalise(ctx context.Context, path string) (string, error)

	// Register adds a normaliser for its extensions, replacing earlier ones.
	Register(normaliser Normaliser)

	// Supports reports whether an extension (with dot) has a normaliser.
	Supports(ext string) bool

	// SupportedExtensions returns all registered extensions, sorted.
	SupportedExtensions() []string
}
