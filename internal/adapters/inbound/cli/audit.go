package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	auditconfig "github.com/docgate/docgate/internal/adapters/outbound/config"
	"github.com/docgate/docgate/internal/adapters/outbound/export"
	"github.com/docgate/docgate/internal/adapters/outbound/gitinfo"
	"github.com/docgate/docgate/internal/adapters/outbound/history"
	"github.com/docgate/docgate/internal/adapters/outbound/scanner"
	"github.com/docgate/docgate/internal/adapters/outbound/snapshot"
	"github.com/docgate/docgate/internal/adapters/outbound/tui"
	"github.com/docgate/docgate/internal/application"
	"github.com/docgate/docgate/internal/domain"
	"github.com/docgate/docgate/internal/domain/rules"
	"github.com/docgate/docgate/internal/logging"
	"github.com/spf13/cobra"
)

func newAuditCmd() *cobra.Command {
	var (
		jsonOutput  bool
		ghaOutput   bool
		outputFile  string
		strict      bool
		timeout     string
		workers     int
		verbose     bool
		showHistory bool
	)

	cmd := &cobra.Command{
		Use:   "audit [path]",
		Short: "Audit a tree against its documentation policies",
		Long:  "Discover and classify every file under a tree, run the documentation validators concurrently, and report findings with remediation hints.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			loader := auditconfig.New()
			cfg, err := loader.Load(absPath)
			if err != nil {
				return err
			}
			if strict {
				cfg.Strict = true
			}
			if timeout != "" {
				cfg.Timeout = timeout
			}
			if workers > 0 {
				cfg.Workers = workers
			}

			log := logging.New(verbose)
			defer func() { _ = log.Sync() }()

			svc := application.NewAuditService(
				scanner.New(),
				loader,
				rules.Default(),
				log,
			)

			report, err := svc.AuditWithConfig(cmd.Context(), absPath, cfg)
			if err != nil {
				return err
			}

			// Attach git commit hash if available
			gi := gitinfo.New()
			if hash, err := gi.HeadCommit(absPath); err == nil {
				report.Commit = hash
			}

			_ = snapshot.New().Save(absPath, report) // best-effort

			hist := history.New()
			entry := domain.HistoryEntry{
				RunID:         report.RunID,
				Timestamp:     report.GeneratedAt.Format(time.RFC3339),
				Commit:        report.Commit,
				TotalErrors:   report.TotalErrors,
				TotalWarnings: report.TotalWarnings,
				ExitCode:      report.ExitCode,
			}
			_ = hist.Save(absPath, entry) // best-effort

			// Show history if requested
			if showHistory {
				entries, err := hist.Load(absPath)
				if err != nil {
					return fmt.Errorf("loading history: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
				return auditOutcome(report)
			}

			if outputFile != "" {
				if err := writeReportFile(outputFile, report); err != nil {
					return err
				}
			}

			switch {
			case jsonOutput:
				out, err := export.JSON(report)
				if err != nil {
					return fmt.Errorf("encoding report: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
			case ghaOutput:
				fmt.Fprint(cmd.OutOrStdout(), export.GitHubActions(report))
			default:
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
			}

			return auditOutcome(report)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")
	cmd.Flags().BoolVar(&ghaOutput, "gha", false, "Output GitHub Actions annotations")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the report to a file (.md for Markdown, otherwise JSON)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Treat warnings as failures")
	cmd.Flags().StringVar(&timeout, "timeout", "", "Audit deadline (e.g. 30s, 2m)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent validator workers")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Verbose logging to stderr")
	cmd.Flags().BoolVar(&showHistory, "history", false, "Show audit history instead of the report")

	return cmd
}

// auditOutcome converts a finished report into the error Execute returns,
// so the process exits with the report's code.
func auditOutcome(report *domain.AuditReport) error {
	switch report.ExitCode {
	case domain.ExitViolations:
		return &exitError{
			code: report.ExitCode,
			msg:  fmt.Sprintf("audit failed: %d error(s), %d warning(s)", report.TotalErrors, report.TotalWarnings),
		}
	case domain.ExitIncomplete:
		return &exitError{code: report.ExitCode, msg: "audit did not complete"}
	default:
		return nil
	}
}

func writeReportFile(dest string, report *domain.AuditReport) error {
	var content string
	if strings.EqualFold(filepath.Ext(dest), ".md") {
		content = export.Markdown(report)
	} else {
		out, err := export.JSON(report)
		if err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		content = out + "\n"
	}
	if err := os.WriteFile(dest, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
