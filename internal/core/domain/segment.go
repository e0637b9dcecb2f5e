package domain

import "time"

// Segment associates a code with the range [StartOffset, EndOffset]
// of a document's canonical text.
type Segment struct {
	// ID is assigned at insert and never reused.
	ID int64

	// DocumentID references the coded document.
	DocumentID int64

	// CodeID references the applied code.
	CodeID string

	// StartOffset and EndOffset are code point offsets into the canonical text.
	StartOffset int
	EndOffset   int

	// Memo is an optional annotation of the annotation.
	Memo string

	// CreatedAt is when the segment was stored.
	CreatedAt time.Time

	// CodeColor is the code's display color, filled on per-document listings.
	// Empty when the code has no color or no longer exists.
	CodeColor string
}

// Contains reports whether offset lies in the segment, inclusive on both ends.
func (s Segment) Contains(offset int) bool {
	return s.StartOffset <= offset && offset <= s.EndOffset
}

// Len returns the segment length in code points.
func (s Segment) Len() int {
	return s.EndOffset - s.StartOffset
}

// NewSegment describes a segment to be stored.
type NewSegment struct {
	DocumentID  int64
	CodeID      string
	StartOffset int
	EndOffset   int
	Memo        string
}

// CodedSpan is one use of a code, joined with its document.
// It drives per-code review and reporting.
type CodedSpan struct {
	SegmentID    int64
	DocumentID   int64
	DocumentName string
	TextPath     string
	StartOffset  int
	EndOffset    int
	Memo         string
}
