// Package domain defines the core business entities for mise.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An imported source file and its canonical text location
//   - Code: A tag in the two-level code taxonomy
//   - Segment: A character range of a document tagged with a code
//   - RawDocument: Source bytes before canonicalisation
//
// # Offsets
//
// Segment offsets are Unicode code point positions into a document's
// canonical text. Canonical text never changes after import, so offsets
// stay valid for the lifetime of the document.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
