package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readRequest(uri string) *mcp.ReadResourceRequest {
	req := &mcp.ReadResourceRequest{}
	req.Params = &mcp.ReadResourceParams{URI: uri}
	return req
}

func TestServer_handleDepartmentsResource(t *testing.T) {
	server, err := NewServer(&Ports{Advisor: &mockAdvisorService{}}, "test")
	require.NoError(t, err)

	result, err := server.handleDepartmentsResource(context.Background(), readRequest(uriScheme+"departments"))

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)
	assert.Contains(t, result.Contents[0].Text, "Computer Science")
	assert.Contains(t, result.Contents[0].Text, "Statistics")
}

func TestServer_handleLevelsResource(t *testing.T) {
	server, err := NewServer(&Ports{Advisor: &mockAdvisorService{}}, "test")
	require.NoError(t, err)

	result, err := server.handleLevelsResource(context.Background(), readRequest(uriScheme+"levels"))

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Contains(t, result.Contents[0].Text, "First Year")
}
