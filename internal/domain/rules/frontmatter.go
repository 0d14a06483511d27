package rules

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/docgate/docgate/internal/domain"
)

// Frontmatter checks that every governed document declares the required
// metadata fields within a bounded header window.
type Frontmatter struct{}

func NewFrontmatter() *Frontmatter { return &Frontmatter{} }

func (*Frontmatter) Name() string { return "frontmatter" }

const defaultHeaderWindow = 15

func (v *Frontmatter) Run(ctx context.Context, files *domain.FileSet, cfg domain.AuditConfig) (domain.ValidationResult, error) {
	res := domain.ValidationResult{Validator: v.Name()}

	required := cfg.Frontmatter.Required
	if len(required) == 0 {
		return res, nil
	}

	window := cfg.Frontmatter.Window
	if window <= 0 {
		window = defaultHeaderWindow
	}

	// One compiled pattern per field. Only the header window is scanned, so
	// a "title:" inside a code block later in the document cannot satisfy
	// the check by accident.
	patterns := make([]*regexp.Regexp, len(required))
	for i, field := range required {
		re, err := regexp.Compile(`(?i)^\s*` + regexp.QuoteMeta(field) + `\s*:`)
		if err != nil {
			return res, fmt.Errorf("frontmatter field %q: %w", field, err)
		}
		patterns[i] = re
	}

	candidates := governedDocs(files, cfg)
	findings, checked, skipped := forEachFile(ctx, candidates, cfg.EffectiveWorkers(), func(f domain.FileInfo) []domain.Finding {
		lines, err := readLines(files.Root, f.Path)
		if err != nil {
			return []domain.Finding{readFailure(f.Path, err)}
		}
		if len(lines) > window {
			lines = lines[:window]
		}

		var missing []string
		for i, field := range required {
			found := false
			for _, line := range lines {
				if patterns[i].MatchString(line) {
					found = true
					break
				}
			}
			if !found {
				missing = append(missing, field)
			}
		}
		if len(missing) == 0 {
			return nil
		}

		var example strings.Builder
		example.WriteString("add the missing fields to the document header:\n---\n")
		for _, m := range missing {
			fmt.Fprintf(&example, "%s: <value>\n", m)
		}
		example.WriteString("---")

		return []domain.Finding{{
			Severity:    domain.SeverityError,
			File:        f.Path,
			Message:     fmt.Sprintf("missing frontmatter fields: %s", strings.Join(missing, ", ")),
			Remediation: example.String(),
		}}
	})

	collect(&res, findings, checked, skipped)
	return res, nil
}

// governedDocs selects the documents under metadata policy: Markdown files
// classified as documentation, minus the filename allow-list.
func governedDocs(files *domain.FileSet, cfg domain.AuditConfig) []domain.FileInfo {
	var out []domain.FileInfo
	for _, f := range files.ByCategory(domain.CategoryUserDoc, domain.CategoryTechnicalDoc) {
		if !domain.IsMarkdown(f.Path) {
			continue
		}
		if cfg.IsAllowed(path.Base(f.Path)) {
			continue
		}
		out = append(out, f)
	}
	return out
}
