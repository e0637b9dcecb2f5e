package mcp

import (
	"github.com/custodia-labs/mise-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Reports provides the overviews and coded spans.
	Reports driving.ReportService

	// Codes lists the taxonomy.
	Codes driving.CodeService

	// Documents serves canonical text. Without it document resources are not found.
	Documents driving.DocumentService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Reports == nil {
		return ErrMissingReportService
	}
	if p.Codes == nil {
		return ErrMissingCodeService
	}
	return nil
}
