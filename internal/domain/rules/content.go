package rules

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/docgate/docgate/internal/domain"
)

// Content scans file text line by line for banned references.
type Content struct{}

func NewContent() *Content { return &Content{} }

func (*Content) Name() string { return "content" }

// qualifierWords downgrades a match to a warning when the same line marks
// the reference as intentionally historical. History must stay visible,
// just not blocking.
var qualifierWords = regexp.MustCompile(`(?i)\b(deprecated|removed|historical|legacy|obsolete)\b`)

func (v *Content) Run(ctx context.Context, files *domain.FileSet, cfg domain.AuditConfig) (domain.ValidationResult, error) {
	res := domain.ValidationResult{Validator: v.Name()}

	if len(cfg.Banned) == 0 {
		return res, nil
	}

	compiled := make([]*regexp.Regexp, len(cfg.Banned))
	for i, b := range cfg.Banned {
		re, err := regexp.Compile(b.Pattern)
		if err != nil {
			return res, fmt.Errorf("banned pattern %q: %w", b.Pattern, err)
		}
		compiled[i] = re
	}

	candidates := files.ByCategory(domain.CategoryUserDoc, domain.CategoryTechnicalDoc, domain.CategoryUnclassified)
	findings, checked, skipped := forEachFile(ctx, candidates, cfg.EffectiveWorkers(), func(f domain.FileInfo) []domain.Finding {
		lines, err := readLines(files.Root, f.Path)
		if err != nil {
			return []domain.Finding{readFailure(f.Path, err)}
		}

		var out []domain.Finding
		for li, line := range lines {
			for bi, re := range compiled {
				match := re.FindString(line)
				if match == "" || isCurrent(match, cfg.Current) {
					continue
				}
				out = append(out, bannedFinding(cfg.Banned[bi], f.Path, li+1, line, match, cfg.Current))
			}
		}
		return out
	})

	collect(&res, findings, checked, skipped)
	return res, nil
}

func bannedFinding(b domain.BannedPattern, file string, line int, text, match string, current []string) domain.Finding {
	severity := domain.SeverityError
	if qualifierWords.MatchString(text) {
		severity = domain.SeverityWarning
	}

	message := fmt.Sprintf("banned reference %q", match)
	if b.Message != "" {
		message = fmt.Sprintf("%s: %q", b.Message, match)
	}

	remediation := "remove the reference or mark the line as deprecated history"
	switch {
	case b.Suggest != "":
		remediation = fmt.Sprintf("replace it with %s", b.Suggest)
	case len(current) > 0:
		remediation = fmt.Sprintf("replace it with a current reference (%s)", strings.Join(current, ", "))
	}

	return domain.Finding{
		Severity:    severity,
		File:        file,
		Line:        line,
		Message:     message,
		Remediation: remediation,
	}
}

// isCurrent guards generic banned patterns against flagging an identifier
// the allow-list declares current.
func isCurrent(match string, current []string) bool {
	for _, c := range current {
		if strings.EqualFold(c, match) {
			return true
		}
	}
	return false
}
