package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Canonicalisation Errors.

	// ErrFormatUnsupported indicates an unrecognised or unimplemented file extension.
	// It is permanent; retrying the same file will fail the same way.
	ErrFormatUnsupported = errors.New("format unsupported")

	// ErrExtractionFailed indicates a parser-level failure on a specific file.
	// The underlying parser error is wrapped alongside it.
	ErrExtractionFailed = errors.New("extraction failed")

	// Store Errors.

	// ErrDuplicateDocument indicates a document is already registered for a text path.
	ErrDuplicateDocument = errors.New("duplicate document")

	// ErrReferentialViolation indicates a segment references a missing document or code.
	// This is a programming-contract violation, not a recoverable user error.
	ErrReferentialViolation = errors.New("referential violation")

	// ErrSnippetUnavailable indicates the canonical text backing a segment is missing.
	ErrSnippetUnavailable = errors.New("snippet unavailable")

	// Taxonomy Errors.

	// ErrInvalidParent indicates a parent choice that would break the two-level taxonomy.
	ErrInvalidParent = errors.New("invalid parent code")

	// ErrCodeHasChildren indicates a code cannot be deleted while child codes reference it.
	ErrCodeHasChildren = errors.New("code has child codes")

	// ErrInvalidRange indicates segment offsets outside 0 <= start <= end <= len(text).
	ErrInvalidRange = errors.New("invalid segment range")

	// Project Errors.

	// ErrProjectExists indicates a project directory already exists.
	ErrProjectExists = errors.New("project already exists")

	// ErrNotAProject indicates a directory is not a mise project.
	ErrNotAProject = errors.New("not a mise project")

	// ErrUnsupportedVersion indicates project metadata newer than this build understands.
	ErrUnsupportedVersion = errors.New("unsupported project version")
)
