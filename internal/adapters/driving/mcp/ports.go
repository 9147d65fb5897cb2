package mcp

import (
	"github.com/campuslabs/advisor-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Advisor answers questions and serves course lookups.
	Advisor driving.AdvisorService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Advisor == nil {
		return ErrMissingAdvisorService
	}
	return nil
}
