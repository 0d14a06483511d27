package rules

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/docgate/docgate/internal/domain"
)

// forEachFile fans fn out over files on a bounded pool. Each file's findings
// land in a slot indexed by position, so the flattened output keeps set
// order regardless of scheduling. Once ctx is done no further file is
// dispatched; files never dispatched are counted as skipped.
func forEachFile(
	ctx context.Context,
	files []domain.FileInfo,
	workers int,
	fn func(domain.FileInfo) []domain.Finding,
) (findings []domain.Finding, checked, skipped int) {
	if workers < 1 {
		workers = 1
	}
	slots := make([][]domain.Finding, len(files))

	var g errgroup.Group
	g.SetLimit(workers)
	for i := range files {
		if ctx.Err() != nil {
			break
		}
		checked++
		f := files[i]
		slot := &slots[i]
		g.Go(func() error {
			*slot = fn(f)
			return nil
		})
	}
	_ = g.Wait()

	skipped = len(files) - checked
	for _, fs := range slots {
		findings = append(findings, fs...)
	}
	return findings, checked, skipped
}

// collect folds a fan-out's output into a result.
func collect(res *domain.ValidationResult, findings []domain.Finding, checked, skipped int) {
	for _, f := range findings {
		res.Add(f)
	}
	res.FilesChecked = checked
	res.FilesSkipped = skipped
}
