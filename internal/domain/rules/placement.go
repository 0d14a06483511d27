package rules

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/fatih/camelcase"

	"github.com/docgate/docgate/internal/domain"
)

// Placement checks that technical documentation lives inside the designated
// documentation subtree.
type Placement struct{}

func NewPlacement() *Placement { return &Placement{} }

func (*Placement) Name() string { return "placement" }

func (v *Placement) Run(ctx context.Context, files *domain.FileSet, cfg domain.AuditConfig) (domain.ValidationResult, error) {
	res := domain.ValidationResult{Validator: v.Name()}

	docsDir := strings.TrimSuffix(cfg.DocsDir, "/")
	if docsDir == "" {
		return res, nil
	}

	candidates := files.ByCategory(domain.CategoryTechnicalDoc)
	findings, checked, skipped := forEachFile(ctx, candidates, cfg.EffectiveWorkers(), func(f domain.FileInfo) []domain.Finding {
		base := path.Base(f.Path)
		if cfg.IsAllowed(base) {
			return nil
		}
		if strings.HasPrefix(f.Path, docsDir+"/") {
			return nil
		}
		expected := path.Join(docsDir, SuggestDocName(base))
		return []domain.Finding{{
			Severity:    domain.SeverityError,
			File:        f.Path,
			Message:     fmt.Sprintf("technical document %s lives outside %s/", f.Path, docsDir),
			Remediation: fmt.Sprintf("move it to %s", expected),
		}}
	})

	collect(&res, findings, checked, skipped)
	return res, nil
}

// SuggestDocName converts a document filename to the kebab-case form used
// under the documentation subtree.
func SuggestDocName(name string) string {
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	var words []string
	isSep := func(r rune) bool { return r == '_' || r == '-' || r == ' ' || r == '.' }
	for _, chunk := range strings.FieldsFunc(stem, isSep) {
		for _, w := range camelcase.Split(chunk) {
			words = append(words, strings.ToLower(w))
		}
	}
	if len(words) == 0 {
		return strings.ToLower(name)
	}
	return strings.Join(words, "-") + strings.ToLower(ext)
}
