// Package classify assigns discovered files to audit categories.
package classify

import (
	"strings"

	"github.com/docgate/docgate/internal/domain"
)

// SampleLines bounds how much of a file the classifier looks at. Large files
// are never loaded whole for classification.
const SampleLines = 30

// Sample returns the first SampleLines lines of data as a string.
func Sample(data []byte) string {
	s := string(data)
	lines := strings.SplitN(s, "\n", SampleLines+1)
	if len(lines) > SampleLines {
		lines = lines[:SampleLines]
	}
	return strings.Join(lines, "\n")
}

// Classify decides the category of one file from its root-relative path and
// a bounded content sample. The decision is deterministic: the filename
// allow-list is consulted first, then the configured rules in configuration
// order (first match wins), then the default.
func Classify(path, sample string, cfg domain.AuditConfig) domain.Category {
	base := baseName(path)

	if cfg.IsAllowed(base) {
		if domain.IsMarkdown(base) || strings.HasPrefix(strings.ToLower(base), "readme") {
			return domain.CategoryUserDoc
		}
		return domain.CategoryIgnored
	}

	loweredPath := strings.ToLower(path)
	loweredSample := strings.ToLower(sample)
	for _, rule := range cfg.Classification {
		kw := strings.ToLower(rule.Keyword)
		if strings.Contains(loweredPath, kw) || strings.Contains(loweredSample, kw) {
			return rule.Category
		}
	}

	return domain.CategoryUnclassified
}

func baseName(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}
