package domain

import "time"

// Document is an imported source file whose canonical text lives at TextPath.
// Only DisplayName may change after registration.
type Document struct {
	// ID is assigned at registration and never reused.
	ID int64

	// OriginalFilename is the source file's base name at import time.
	OriginalFilename string

	// DisplayName is the user-editable name shown in listings.
	DisplayName string

	// TextPath locates the canonical text, relative to the project root.
	// It is unique across documents.
	TextPath string

	// UUID is globally unique and immutable, for export and merge.
	UUID string

	// CreatedAt is when the document was registered.
	CreatedAt time.Time
}
