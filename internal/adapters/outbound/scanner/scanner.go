// Package scanner implements file discovery and classification by walking
// the filesystem.
package scanner

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/docgate/docgate/internal/domain"
	"github.com/docgate/docgate/internal/domain/classify"
)

const maxSampleSize = 16 * 1024 // 16KB cap for classification reads.

// TreeScanner implements domain.TreeScanner by walking the filesystem.
type TreeScanner struct{}

func New() *TreeScanner {
	return &TreeScanner{}
}

// Scan walks root, drops everything the ignore globs match, classifies the
// rest, and returns the files sorted by path. When ctx ends mid-walk the
// partial set gathered so far is returned together with ctx's error.
func (s *TreeScanner) Scan(ctx context.Context, root string, cfg domain.AuditConfig) (*domain.FileSet, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	set := &domain.FileSet{Root: absRoot}

	walkErr := filepath.WalkDir(absRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		rel, err := filepath.Rel(absRoot, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel != "." && ignored(rel, cfg.Ignore) {
				return filepath.SkipDir
			}
			return nil
		}
		if ignored(rel, cfg.Ignore) {
			return nil
		}

		sample := readSample(p)
		var size int64
		if info, err := d.Info(); err == nil {
			size = info.Size()
		}

		set.Files = append(set.Files, domain.FileInfo{
			Path:     rel,
			Category: classify.Classify(rel, sample, cfg),
			Size:     size,
		})
		return nil
	})

	sort.Slice(set.Files, func(i, j int) bool { return set.Files[i].Path < set.Files[j].Path })

	if walkErr != nil {
		return set, walkErr
	}
	return set, nil
}

// ignored reports whether a slash-relative path matches any ignore glob.
// Directories are also tested with a trailing slash so that "vendor/**"
// prunes the whole subtree.
func ignored(rel string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, rel+"/"); ok {
			return true
		}
	}
	return false
}

// readSample loads at most maxSampleSize bytes for classification. A file
// that cannot be read is classified from its path alone; the content
// validators surface the read failure as a finding later.
func readSample(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxSampleSize))
	if err != nil {
		return ""
	}
	return classify.Sample(data)
}
