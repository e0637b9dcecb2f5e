package driven

// TextStore owns the project's canonical text directory.
// Paths it returns and accepts are relative to the project root.
type TextStore interface {
	// Write allocates a fresh file name, writes text to it and returns its path.
	// An existing file is never overwritten.
	Write(text string) (string, error)

	// Read returns the canonical text at textPath.
	// Returns domain.ErrNotFound if the file is missing.
	Read(textPath string) (string, error)

	// Remove deletes the file at textPath. A missing file is not an error.
	Remove(textPath string) error

	// Dir returns the absolute canonical text directory.
	Dir() string
}
