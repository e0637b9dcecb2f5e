package domain

// RawDocument is a source file's bytes before canonicalisation.
type RawDocument struct {
	// Path is the source file location.
	Path string

	// Extension is the lower-cased file extension including the dot (e.g. ".pdf").
	Extension string

	// Content is the raw bytes.
	Content []byte
}
