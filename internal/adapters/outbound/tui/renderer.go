package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/docgate/docgate/internal/domain"
)

// ── Warm terminal palette ──
var (
	accent    = lipgloss.Color("#D97706") // amber
	fg        = lipgloss.Color("#E8E6E3") // warm light gray
	dim       = lipgloss.Color("#6B7280") // muted gray
	faint     = lipgloss.Color("#3F3F46") // very dim
	success   = lipgloss.Color("#22C55E") // green
	danger    = lipgloss.Color("#EF4444") // red
	warning   = lipgloss.Color("#F59E0B") // amber-yellow
	info      = lipgloss.Color("#8B949E") // soft blue-gray
	skipColor = lipgloss.Color("#4B5563") // dark gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	skipStyle     = lipgloss.NewStyle().Foreground(skipColor)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	nameStyle     = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderReport formats an audit report for the terminal. The output depends
// only on the report's results, never on run metadata, so an unchanged tree
// renders identically between runs.
func RenderReport(report *domain.AuditReport) string {
	var b strings.Builder

	// ── Header ──
	title := headerStyle.Render("docgate")
	subtitle := dimStyle.Render("Documentation Audit")
	verdict := verdictBadge(report)
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + verdict))
	b.WriteString("\n\n")

	if report.Incomplete {
		b.WriteString("  " + warnStyle.Render("Run incomplete: the deadline elapsed before every check finished.") + "\n\n")
	}

	// ── Validators ──
	for _, res := range report.OrderedResults() {
		if res.Validator == domain.EngineValidator {
			continue
		}
		renderValidatorRow(&b, res)
	}

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")

	// ── Findings ──
	findings := collectFindings(report)
	if len(findings) == 0 {
		b.WriteString("  " + passStyle.Render("No findings.") + "\n\n")
		return b.String()
	}

	b.WriteString("  ")
	b.WriteString(titleStyle.Render("Findings"))
	b.WriteString("  ")
	if report.TotalErrors > 0 {
		b.WriteString(errorTagStyle.Render(fmt.Sprintf("%d errors", report.TotalErrors)))
		b.WriteString("  ")
	}
	if report.TotalWarnings > 0 {
		b.WriteString(warnTagStyle.Render(fmt.Sprintf("%d warnings", report.TotalWarnings)))
	}
	b.WriteString("\n\n")

	for _, f := range findings {
		renderFinding(&b, f)
	}

	b.WriteString("\n")
	return b.String()
}

func verdictBadge(report *domain.AuditReport) string {
	switch report.ExitCode {
	case domain.ExitClean:
		return passStyle.Bold(true).Render("PASS")
	case domain.ExitIncomplete:
		return warnStyle.Bold(true).Render("INCOMPLETE")
	default:
		return failStyle.Bold(true).Render("FAIL")
	}
}

func renderValidatorRow(b *strings.Builder, res domain.ValidationResult) {
	pct := cleanPercent(res)
	bar := coloredBar(pct, 20)
	pctText := lipgloss.NewStyle().Bold(true).Foreground(barColor(pct)).Render(fmt.Sprintf("%3d%%", pct))

	counts := dimStyle.Render(fmt.Sprintf("%d files", res.FilesChecked))
	if res.FilesSkipped > 0 {
		counts += "  " + skipStyle.Render(fmt.Sprintf("%d skipped", res.FilesSkipped))
	}
	if res.ErrorCount > 0 {
		counts += "  " + errorTagStyle.Render(fmt.Sprintf("%d errors", res.ErrorCount))
	}
	if res.WarningCount > 0 {
		counts += "  " + warnTagStyle.Render(fmt.Sprintf("%d warnings", res.WarningCount))
	}

	name := nameStyle.Render(padRight(res.Validator, 18))
	fmt.Fprintf(b, "  %s %s  %s  %s\n", name, bar, pctText, counts)
}

// cleanPercent is the share of checked files a validator had nothing to say
// about. A validator that checked nothing is trivially clean.
func cleanPercent(res domain.ValidationResult) int {
	if res.FilesChecked == 0 {
		return 100
	}
	flagged := make(map[string]bool, len(res.Findings))
	for _, f := range res.Findings {
		flagged[f.File] = true
	}
	clean := res.FilesChecked - len(flagged)
	if clean < 0 {
		clean = 0
	}
	return clean * 100 / res.FilesChecked
}

func renderFinding(b *strings.Builder, f domain.Finding) {
	tag := severityTag(f.Severity)
	origin := faintStyle.Render(f.Validator)

	if f.File != "" {
		loc := f.File
		if f.Line > 0 {
			loc = fmt.Sprintf("%s:%d", f.File, f.Line)
		}
		fmt.Fprintf(b, "    %s %s  %s\n", tag, fileStyle.Render(loc), origin)
	} else {
		fmt.Fprintf(b, "    %s %s\n", tag, origin)
	}
	fmt.Fprintf(b, "         %s\n", dimStyle.Render(f.Message))
	if f.Remediation != "" {
		for _, line := range strings.Split(f.Remediation, "\n") {
			fmt.Fprintf(b, "         %s\n", faintStyle.Render(line))
		}
	}
	b.WriteString("\n")
}

func severityTag(severity domain.Severity) string {
	switch severity {
	case domain.SeverityError:
		return errorTagStyle.Render("error")
	case domain.SeverityWarning:
		return warnTagStyle.Render("warn ")
	default:
		return infoTagStyle.Render("info ")
	}
}

// collectFindings flattens the report in render order: validators first,
// the engine's own findings last.
func collectFindings(report *domain.AuditReport) []domain.Finding {
	var all []domain.Finding
	for _, res := range report.OrderedResults() {
		all = append(all, res.Findings...)
	}
	return all
}

func coloredBar(pct, width int) string {
	filled := max(0, min(pct*width/100, width))
	empty := width - filled

	color := barColor(pct)
	filledStr := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

func barColor(pct int) lipgloss.Color {
	switch {
	case pct >= 90:
		return success
	case pct >= 70:
		return lipgloss.Color("#A3E635") // lime
	case pct >= 40:
		return warning
	default:
		return danger
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// RenderHistory formats the audit run history for terminal output.
func RenderHistory(entries []domain.HistoryEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No audit history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Audit History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for i, e := range entries {
		commit := e.Commit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		if commit == "" {
			commit = "·······"
		}

		day := e.Timestamp
		if len(day) > 10 {
			day = day[:10]
		}

		line := fmt.Sprintf("  %s  %s  %s  %s",
			dimStyle.Render(day),
			faintStyle.Render(commit),
			countBadge(e.TotalErrors, "errors", failStyle),
			countBadge(e.TotalWarnings, "warnings", warnStyle),
		)

		// An error count moving toward zero is an improvement.
		if i > 0 {
			diff := e.TotalErrors - entries[i-1].TotalErrors
			if diff < 0 {
				line += "  " + passStyle.Render(fmt.Sprintf("↓%d", -diff))
			} else if diff > 0 {
				line += "  " + failStyle.Render(fmt.Sprintf("↑%d", diff))
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func countBadge(n int, unit string, style lipgloss.Style) string {
	if n == 0 {
		return passStyle.Render("0 " + unit)
	}
	return style.Render(fmt.Sprintf("%d %s", n, unit))
}
