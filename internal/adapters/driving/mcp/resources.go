package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for advisor resources.
const uriScheme = "advisor://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "departments",
		Name:        "departments",
		Description: "Departments present in the course catalog",
		MIMEType:    "application/json",
	}, s.handleDepartmentsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "levels",
		Name:        "levels",
		Description: "Course levels present in the catalog, ordered from First Year to Graduate",
		MIMEType:    "application/json",
	}, s.handleLevelsResource)
}

// handleDepartmentsResource returns the catalog's department vocabulary.
func (s *Server) handleDepartmentsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, s.ports.Advisor.Departments())
}

// handleLevelsResource returns the catalog's level vocabulary.
func (s *Server) handleLevelsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, s.ports.Advisor.Levels())
}

func jsonResource(uri string, value any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
