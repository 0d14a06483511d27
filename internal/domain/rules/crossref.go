package rules

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/docgate/docgate/internal/domain"
	"github.com/docgate/docgate/internal/domain/docpath"
	"github.com/docgate/docgate/internal/domain/links"
)

// CrossReference verifies that every internal link in a document resolves
// to an existing file. External URLs and same-document anchors are accepted
// without filesystem resolution; the validator never touches the network.
type CrossReference struct{}

func NewCrossReference() *CrossReference { return &CrossReference{} }

func (*CrossReference) Name() string { return "cross-reference" }

func (v *CrossReference) Run(ctx context.Context, files *domain.FileSet, cfg domain.AuditConfig) (domain.ValidationResult, error) {
	res := domain.ValidationResult{Validator: v.Name()}

	var candidates []domain.FileInfo
	for _, f := range files.ByCategory(domain.CategoryUserDoc, domain.CategoryTechnicalDoc, domain.CategoryUnclassified) {
		if domain.IsMarkdown(f.Path) {
			candidates = append(candidates, f)
		}
	}

	findings, checked, skipped := forEachFile(ctx, candidates, cfg.EffectiveWorkers(), func(f domain.FileInfo) []domain.Finding {
		data, err := os.ReadFile(filepath.Join(files.Root, filepath.FromSlash(f.Path)))
		if err != nil {
			return []domain.Finding{readFailure(f.Path, err)}
		}

		sourceDir := filepath.Join(files.Root, filepath.FromSlash(path.Dir(f.Path)))
		var out []domain.Finding
		for _, l := range links.Extract(string(data)) {
			if l.Kind != links.KindInternal {
				continue
			}
			resolved, ok := docpath.Resolve(files.Root, sourceDir, l.Raw)
			if ok {
				continue
			}
			target := docpath.Display(files.Root, resolved)
			out = append(out, domain.Finding{
				Severity:    domain.SeverityError,
				File:        f.Path,
				Line:        l.Line,
				Message:     fmt.Sprintf("broken link %q: resolved target %s does not exist", l.Raw, target),
				Remediation: fmt.Sprintf("fix the link or create %s", target),
			})
		}
		return out
	})

	collect(&res, findings, checked, skipped)
	return res, nil
}
