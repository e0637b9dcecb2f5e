package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NoInput is the input schema for tools without arguments.
type NoInput struct{}

// CodeOutput describes one code.
type CodeOutput struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	ParentID    string `json:"parent_id,omitempty"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

// ListCodesOutput is the output schema for the list_codes tool.
type ListCodesOutput struct {
	Codes []CodeOutput `json:"codes"`
	Count int          `json:"count"`
}

// CodeUsageOutput is the output schema for the code_usage tool.
type CodeUsageOutput struct {
	Usage []CodeUsageEntry `json:"usage"`
}

// CodeUsageEntry counts the uses of one code.
type CodeUsageEntry struct {
	CodeID    string `json:"code_id"`
	Label     string `json:"label"`
	Segments  int    `json:"segments"`
	Documents int    `json:"documents"`
}

// SegmentsForCodeInput is the input schema for the segments_for_code tool.
type SegmentsForCodeInput struct {
	CodeID string `json:"code_id" jsonschema:"the id of the code whose segments to list"`
}

// SegmentsForCodeOutput is the output schema for the segments_for_code tool.
type SegmentsForCodeOutput struct {
	Code     CodeOutput      `json:"code"`
	Segments []SegmentOutput `json:"segments"`
	Count    int             `json:"count"`
}

// SegmentOutput is one coded span with its text.
type SegmentOutput struct {
	SegmentID    int64  `json:"segment_id"`
	DocumentID   int64  `json:"document_id"`
	DocumentName string `json:"document_name"`
	Start        int    `json:"start"`
	End          int    `json:"end"`
	Snippet      string `json:"snippet"`
	Missing      bool   `json:"snippet_missing,omitempty"`
	Memo         string `json:"memo,omitempty"`
}

// DocumentOverviewOutput is the output schema for the document_overview tool.
type DocumentOverviewOutput struct {
	Documents []DocumentOverviewEntry `json:"documents"`
}

// DocumentOverviewEntry summarises the coding of one document.
type DocumentOverviewEntry struct {
	DocumentID int64  `json:"document_id"`
	Name       string `json:"name"`
	URI        string `json:"uri"`
	Segments   int    `json:"segments"`
	Codes      int    `json:"codes"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_codes",
		Description: "List the project's codes in display order",
	}, s.handleListCodes)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "code_usage",
		Description: "Count the segments and documents each code is applied to",
	}, s.handleCodeUsage)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "segments_for_code",
		Description: "List every text segment coded with a code, with the coded text",
	}, s.handleSegmentsForCode)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "document_overview",
		Description: "Count the segments and distinct codes in each document",
	}, s.handleDocumentOverview)
}

func (s *Server) handleListCodes(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ NoInput,
) (*mcp.CallToolResult, ListCodesOutput, error) {
	codes, err := s.ports.Codes.List(ctx)
	if err != nil {
		return nil, ListCodesOutput{}, err
	}

	output := ListCodesOutput{
		Codes: make([]CodeOutput, len(codes)),
		Count: len(codes),
	}
	for i := range codes {
		output.Codes[i] = codeOutput(codes[i].ID, codes[i].Label, codes[i].ParentID,
			codes[i].Description, codes[i].Color)
	}
	return nil, output, nil
}

func (s *Server) handleCodeUsage(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ NoInput,
) (*mcp.CallToolResult, CodeUsageOutput, error) {
	usage, err := s.ports.Reports.CodeUsage(ctx)
	if err != nil {
		return nil, CodeUsageOutput{}, err
	}

	output := CodeUsageOutput{Usage: make([]CodeUsageEntry, len(usage))}
	for i, u := range usage {
		output.Usage[i] = CodeUsageEntry{
			CodeID:    u.Code.ID,
			Label:     u.Code.Label,
			Segments:  u.SegmentCount,
			Documents: u.DocumentCount,
		}
	}
	return nil, output, nil
}

func (s *Server) handleSegmentsForCode(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SegmentsForCodeInput,
) (*mcp.CallToolResult, SegmentsForCodeOutput, error) {
	if input.CodeID == "" {
		return nil, SegmentsForCodeOutput{}, fmt.Errorf("code_id is required")
	}

	reports, err := s.ports.Reports.CodeReport(ctx, []string{input.CodeID})
	if err != nil {
		return nil, SegmentsForCodeOutput{}, err
	}
	if len(reports) == 0 {
		return nil, SegmentsForCodeOutput{}, fmt.Errorf("code %s: no report", input.CodeID)
	}

	r := reports[0]
	output := SegmentsForCodeOutput{
		Code:     codeOutput(r.Code.ID, r.Code.Label, r.Code.ParentID, r.Code.Description, r.Code.Color),
		Segments: make([]SegmentOutput, len(r.Entries)),
		Count:    len(r.Entries),
	}
	for i, e := range r.Entries {
		output.Segments[i] = SegmentOutput{
			SegmentID:    e.Span.SegmentID,
			DocumentID:   e.Span.DocumentID,
			DocumentName: e.Span.DocumentName,
			Start:        e.Span.StartOffset,
			End:          e.Span.EndOffset,
			Snippet:      e.Snippet,
			Missing:      e.Missing,
			Memo:         e.Span.Memo,
		}
	}
	return nil, output, nil
}

func (s *Server) handleDocumentOverview(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ NoInput,
) (*mcp.CallToolResult, DocumentOverviewOutput, error) {
	overview, err := s.ports.Reports.DocumentCodingOverview(ctx)
	if err != nil {
		return nil, DocumentOverviewOutput{}, err
	}

	output := DocumentOverviewOutput{Documents: make([]DocumentOverviewEntry, len(overview))}
	for i, o := range overview {
		output.Documents[i] = DocumentOverviewEntry{
			DocumentID: o.Document.ID,
			Name:       o.Document.DisplayName,
			URI:        documentURI(o.Document.ID),
			Segments:   o.SegmentCount,
			Codes:      o.DistinctCodeCount,
		}
	}
	return nil, output, nil
}

func codeOutput(id, label string, parentID *string, description, color string) CodeOutput {
	out := CodeOutput{ID: id, Label: label, Description: description, Color: color}
	if parentID != nil {
		out.ParentID = *parentID
	}
	return out
}
