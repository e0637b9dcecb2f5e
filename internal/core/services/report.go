package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/mise-cli/internal/core/domain"
	"github.com/custodia-labs/mise-cli/internal/core/ports/driven"
	"github.com/custodia-labs/mise-cli/internal/core/ports/driving"
	"github.com/custodia-labs/mise-cli/internal/logger"
)

// Ensure ReportService implements the interface.
var _ driving.ReportService = (*ReportService)(nil)

// ReportService answers read-only aggregation and snippet queries.
type ReportService struct {
	docStore     driven.DocumentStore
	codeStore    driven.CodeStore
	segmentStore driven.SegmentStore
	textStore    driven.TextStore
}

// NewReportService creates a new report service.
func NewReportService(
	docStore driven.DocumentStore,
	codeStore driven.CodeStore,
	segmentStore driven.SegmentStore,
	textStore driven.TextStore,
) *ReportService {
	return &ReportService{
		docStore:     docStore,
		codeStore:    codeStore,
		segmentStore: segmentStore,
		textStore:    textStore,
	}
}

// DocumentCodingOverview returns segment and distinct code counts per document.
func (s *ReportService) DocumentCodingOverview(ctx context.Context) ([]domain.DocumentCoding, error) {
	return s.docStore.CodingOverview(ctx)
}

// CodeUsage returns segment and distinct document counts per code.
func (s *ReportService) CodeUsage(ctx context.Context) ([]domain.CodeUsage, error) {
	return s.codeStore.UsageOverview(ctx)
}

// Snippet returns exactly the code points [start, end) of the document text.
// Offsets past the end of the text are clamped.
func (s *ReportService) Snippet(_ context.Context, doc domain.Document, seg domain.Segment) (string, error) {
	return s.snippet(doc.TextPath, seg.StartOffset, seg.EndOffset)
}

// CodeReport collects every coded span of each code, with snippets.
// Each text file is read at most once per report.
func (s *ReportService) CodeReport(ctx context.Context, codeIDs []string) ([]domain.CodeReport, error) {
	logger.Section("Code Report")

	texts := make(map[string]textResult)
	reports := make([]domain.CodeReport, 0, len(codeIDs))
	for _, codeID := range codeIDs {
		code, err := s.codeStore.Get(ctx, codeID)
		if err != nil {
			return nil, fmt.Errorf("code %s: %w", codeID, err)
		}

		spans, err := s.segmentStore.ListForCode(ctx, codeID)
		if err != nil {
			return nil, err
		}

		report := domain.CodeReport{Code: *code, Entries: make([]domain.ReportEntry, 0, len(spans))}
		for _, span := range spans {
			entry := domain.ReportEntry{Span: span}

			cached, ok := texts[span.TextPath]
			if !ok {
				cached.text, cached.err = s.readText(span.TextPath)
				texts[span.TextPath] = cached
			}

			switch {
			case cached.err == nil:
				entry.Snippet = sliceRunes(cached.text, span.StartOffset, span.EndOffset)
			case errors.Is(cached.err, domain.ErrSnippetUnavailable):
				entry.Snippet = domain.SnippetPlaceholder
				entry.Missing = true
			default:
				return nil, cached.err
			}
			report.Entries = append(report.Entries, entry)
		}

		logger.Debug("Code %q: %d span(s)", code.Label, len(report.Entries))
		reports = append(reports, report)
	}
	return reports, nil
}

type textResult struct {
	text string
	err  error
}

func (s *ReportService) snippet(textPath string, start, end int) (string, error) {
	text, err := s.readText(textPath)
	if err != nil {
		return "", err
	}
	return sliceRunes(text, start, end), nil
}

// readText maps a missing text file to domain.ErrSnippetUnavailable.
func (s *ReportService) readText(textPath string) (string, error) {
	text, err := s.textStore.Read(textPath)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("%s: %w", textPath, domain.ErrSnippetUnavailable)
		}
		return "", err
	}
	return text, nil
}

// sliceRunes returns code points [start, end) of text, clamped to its bounds.
func sliceRunes(text string, start, end int) string {
	runes := []rune(text)
	if start < 0 {
		start = 0
	}
	if end > len(runes) {
		end = len(runes)
	}
	if start >= end {
		return ""
	}
	return string(runes[start:end])
}
