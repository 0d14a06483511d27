package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	auditconfig "github.com/docgate/docgate/internal/adapters/outbound/config"
	"github.com/docgate/docgate/internal/adapters/outbound/snapshot"
)

// registerResources registers all Docgate MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string) {
	// 1. docgate://report - fresh audit of the bound project
	s.AddResource(
		mcplib.NewResource(
			"docgate://report",
			"Audit Report",
			mcplib.WithResourceDescription("Fresh documentation audit of the project"),
			mcplib.WithMIMEType("application/json"),
		),
		handleReportResource(projectPath),
	)

	// 2. docgate://config - effective policy
	s.AddResource(
		mcplib.NewResource(
			"docgate://config",
			"Effective Config",
			mcplib.WithResourceDescription("The policy the audit runs with: defaults merged with .docgate.yaml"),
			mcplib.WithMIMEType("application/json"),
		),
		handleConfigResource(projectPath),
	)

	// 3. docgate://report/last - snapshot saved by the previous run
	s.AddResource(
		mcplib.NewResource(
			"docgate://report/last",
			"Last Saved Report",
			mcplib.WithResourceDescription("The report snapshot saved by the most recent audit run"),
			mcplib.WithMIMEType("application/json"),
		),
		handleLastReportResource(projectPath),
	)
}

func handleReportResource(projectPath string) server.ResourceHandlerFunc {
	return func(ctx context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		report, err := newAuditService().Audit(ctx, projectPath)
		if err != nil {
			return nil, fmt.Errorf("audit failed: %w", err)
		}

		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling report: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "docgate://report",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

func handleConfigResource(projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg, err := auditconfig.New().Load(projectPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}

		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling config: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "docgate://config",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

func handleLastReportResource(projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		report, err := snapshot.New().Load(projectPath)
		if err != nil {
			return nil, fmt.Errorf("loading snapshot: %w", err)
		}
		if report == nil {
			return nil, fmt.Errorf("no saved report, run an audit first")
		}

		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling report: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "docgate://report/last",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
