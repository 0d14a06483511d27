package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	auditconfig "github.com/docgate/docgate/internal/adapters/outbound/config"
	"github.com/docgate/docgate/internal/adapters/outbound/export"
	"github.com/docgate/docgate/internal/adapters/outbound/scanner"
	"github.com/docgate/docgate/internal/application"
	"github.com/docgate/docgate/internal/domain/rules"
)

// registerTools registers all Docgate MCP tools on the given server.
func registerTools(s *server.MCPServer) {
	// 1. docgate_audit
	s.AddTool(
		mcplib.NewTool("docgate_audit",
			mcplib.WithDescription("Audit a tree against its documentation policies and return the full report"),
			mcplib.WithString("path",
				mcplib.Required(),
				mcplib.Description("Root directory of the tree to audit"),
			),
			mcplib.WithBoolean("strict",
				mcplib.Description("Treat warnings as failures"),
			),
			mcplib.WithString("format",
				mcplib.Description("Output format: md or json (default: json)"),
			),
		),
		handleAuditProject(),
	)

	// 2. docgate_list_validators
	s.AddTool(
		mcplib.NewTool("docgate_list_validators",
			mcplib.WithDescription("List the registered validators in render order"),
		),
		handleListValidators(),
	)

	// 3. docgate_finding_counts
	s.AddTool(
		mcplib.NewTool("docgate_finding_counts",
			mcplib.WithDescription("Audit a tree and return per-validator counts without the findings themselves"),
			mcplib.WithString("path",
				mcplib.Required(),
				mcplib.Description("Root directory of the tree to audit"),
			),
		),
		handleFindingCounts(),
	)
}

// newAuditService creates the standard audit service wired to the real
// outbound adapters.
func newAuditService() *application.AuditService {
	return application.NewAuditService(
		scanner.New(),
		auditconfig.New(),
		rules.Default(),
		nil,
	)
}

func handleAuditProject() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		path, err := request.RequireString("path")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		cfg, err := auditconfig.New().Load(path)
		if err != nil {
			return errorResult(fmt.Sprintf("loading config: %v", err)), nil
		}
		if strict, ok := request.GetArguments()["strict"].(bool); ok && strict {
			cfg.Strict = true
		}

		report, err := newAuditService().AuditWithConfig(ctx, path, cfg)
		if err != nil {
			return errorResult(fmt.Sprintf("audit failed: %v", err)), nil
		}

		format, _ := request.GetArguments()["format"].(string)
		if format == "md" {
			return textResult(export.Markdown(report)), nil
		}
		return jsonResult(report)
	}
}

func handleListValidators() server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		names := make([]string, 0, len(rules.Default()))
		for _, v := range rules.Default() {
			names = append(names, v.Name())
		}
		return jsonResult(names)
	}
}

func handleFindingCounts() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		path, err := request.RequireString("path")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		report, err := newAuditService().Audit(ctx, path)
		if err != nil {
			return errorResult(fmt.Sprintf("audit failed: %v", err)), nil
		}

		type validatorCounts struct {
			Validator    string `json:"validator"`
			FilesChecked int    `json:"files_checked"`
			FilesSkipped int    `json:"files_skipped,omitempty"`
			Errors       int    `json:"errors"`
			Warnings     int    `json:"warnings"`
		}

		counts := make([]validatorCounts, 0, len(report.Order))
		for _, res := range report.OrderedResults() {
			counts = append(counts, validatorCounts{
				Validator:    res.Validator,
				FilesChecked: res.FilesChecked,
				FilesSkipped: res.FilesSkipped,
				Errors:       res.ErrorCount,
				Warnings:     res.WarningCount,
			})
		}

		return jsonResult(struct {
			ExitCode int               `json:"exit_code"`
			Counts   []validatorCounts `json:"counts"`
		}{ExitCode: report.ExitCode, Counts: counts})
	}
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
