// Package mcp provides a read-only MCP (Model Context Protocol) server over
// a mise project. It lets AI assistants browse codes, coded segments and
// canonical document text without changing anything.
package mcp

import "errors"

// ErrMissingReportService is returned when the report service is not provided.
var ErrMissingReportService = errors.New("mcp: report service is required")

// ErrMissingCodeService is returned when the code service is not provided.
var ErrMissingCodeService = errors.New("mcp: code service is required")
