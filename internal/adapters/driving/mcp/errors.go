// Package mcp provides an MCP (Model Context Protocol) server adapter for
// the course advisor. It lets AI assistants ask catalog questions and look
// up courses through the advisor pipeline.
package mcp

import "errors"

// ErrMissingAdvisorService is returned when the advisor service is not provided.
var ErrMissingAdvisorService = errors.New("mcp: advisor service is required")
