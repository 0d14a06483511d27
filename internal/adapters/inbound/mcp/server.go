package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewDocgateMCPServer creates a new MCP server with all Docgate tools and
// resources registered. The projectPath is the root directory the resource
// handlers audit; tools take an explicit path per call.
func NewDocgateMCPServer(projectPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"docgate",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s)
	registerResources(s, projectPath)

	return s
}
