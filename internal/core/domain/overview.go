package domain

// CodeUsage counts how often a code is applied.
type CodeUsage struct {
	Code Code

	// SegmentCount is the number of segments using the code.
	SegmentCount int

	// DocumentCount is the number of distinct documents the code appears in.
	DocumentCount int
}

// DocumentCoding summarises how heavily a document is coded.
type DocumentCoding struct {
	Document Document

	// SegmentCount is the number of segments in the document.
	SegmentCount int

	// DistinctCodeCount is the number of distinct codes applied to the document.
	DistinctCodeCount int
}

// SnippetPlaceholder replaces a snippet whose canonical text is missing.
const SnippetPlaceholder = "[snippet unavailable]"

// ReportEntry is one coded span with its extracted text.
type ReportEntry struct {
	Span    CodedSpan
	Snippet string

	// Missing is true when Snippet is the placeholder.
	Missing bool
}

// CodeReport collects every coded span of one code.
type CodeReport struct {
	Code    Code
	Entries []ReportEntry
}
