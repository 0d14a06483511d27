// Package export renders an audit report for machine consumers: JSON for
// tooling, Markdown for docs or PR comments, GitHub Actions annotations
// for CI logs.
package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/docgate/docgate/internal/domain"
)

// JSON returns the full report as indented JSON.
func JSON(report *domain.AuditReport) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Markdown returns the report as a Markdown document. Run metadata that
// changes between runs (id, timestamps) is left out so the rendering of an
// unchanged tree is byte-identical across runs.
func Markdown(report *domain.AuditReport) string {
	var b strings.Builder
	b.WriteString("# Documentation Audit\n\n")

	if report.Incomplete {
		b.WriteString("> ⚠ Incomplete run: the deadline elapsed before every check finished.\n\n")
	}

	b.WriteString("| Validator | Checked | Errors | Warnings |\n")
	b.WriteString("|-----------|---------|--------|----------|\n")
	for _, res := range report.OrderedResults() {
		fmt.Fprintf(&b, "| %s | %d | %d | %d |\n",
			res.Validator, res.FilesChecked, res.ErrorCount, res.WarningCount)
	}
	b.WriteString("\n")

	if report.TotalErrors == 0 && report.TotalWarnings == 0 && !report.Incomplete {
		b.WriteString("✅ No findings.\n")
		return b.String()
	}

	b.WriteString("## Findings\n\n")
	for _, res := range report.OrderedResults() {
		if len(res.Findings) == 0 {
			continue
		}
		fmt.Fprintf(&b, "### %s\n\n", res.Validator)
		for _, f := range res.Findings {
			fmt.Fprintf(&b, "- **%s** %s: %s\n", f.Severity, location(f), f.Message)
			if f.Remediation != "" {
				fmt.Fprintf(&b, "  - fix: %s\n", indentContinuation(f.Remediation))
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

// GitHubActions returns one workflow annotation per finding.
func GitHubActions(report *domain.AuditReport) string {
	var b strings.Builder
	for _, res := range report.OrderedResults() {
		for _, f := range res.Findings {
			level := "notice"
			switch f.Severity {
			case domain.SeverityError:
				level = "error"
			case domain.SeverityWarning:
				level = "warning"
			}

			msg := escapeGHA(fmt.Sprintf("[%s] %s (%s)", f.Validator, f.Message, f.Remediation))
			if f.File == "" {
				fmt.Fprintf(&b, "::%s::%s\n", level, msg)
				continue
			}
			if f.Line > 0 {
				fmt.Fprintf(&b, "::%s file=%s,line=%d::%s\n", level, f.File, f.Line, msg)
			} else {
				fmt.Fprintf(&b, "::%s file=%s::%s\n", level, f.File, msg)
			}
		}
	}
	return b.String()
}

func location(f domain.Finding) string {
	if f.File == "" {
		return "(run)"
	}
	if f.Line > 0 {
		return fmt.Sprintf("`%s:%d`", f.File, f.Line)
	}
	return fmt.Sprintf("`%s`", f.File)
}

// indentContinuation keeps multi-line remediation inside its list item.
func indentContinuation(s string) string {
	return strings.ReplaceAll(s, "\n", "\n    ")
}

// escapeGHA escapes the characters the workflow-command syntax reserves:
// ::error file=app.js,line=1::Missing semicolon
func escapeGHA(msg string) string {
	replacements := []struct{ old, new string }{
		{"%", "%25"},
		{"\r", "%0D"},
		{"\n", "%0A"},
		{":", "%3A"},
		{",", "%2C"},
	}
	for _, r := range replacements {
		msg = strings.ReplaceAll(msg, r.old, r.new)
	}
	return msg
}
