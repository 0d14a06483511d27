// Package docpath resolves link targets written in documents against the
// audited tree.
package docpath

import (
	"os"
	"path/filepath"
	"strings"
)

// Resolve normalizes a raw link target and checks that it exists.
// A target with a leading slash resolves against root; anything else
// resolves against sourceDir (the absolute directory of the document that
// contains the link). The returned path is the normalized absolute target,
// computed even when the file is missing so callers can report where the
// link actually pointed.
//
// Any I/O failure during the existence check reports not-found: a target the
// engine cannot stat is indistinguishable from a missing one for policy
// purposes.
func Resolve(root, sourceDir, raw string) (string, bool) {
	target := StripFragment(raw)
	if target == "" {
		return "", false
	}

	var resolved string
	if strings.HasPrefix(target, "/") {
		resolved = filepath.Join(root, filepath.FromSlash(target))
	} else {
		resolved = filepath.Join(sourceDir, filepath.FromSlash(target))
	}

	if _, err := os.Stat(resolved); err != nil {
		return resolved, false
	}
	return resolved, true
}

// StripFragment removes a trailing #fragment from a link target.
// Fragments are validated only for the existence of the target file; the
// fragment itself is not checked.
func StripFragment(raw string) string {
	if i := strings.Index(raw, "#"); i >= 0 {
		return raw[:i]
	}
	return raw
}

// Display renders a resolved absolute target relative to root for messages.
func Display(root, resolved string) string {
	rel, err := filepath.Rel(root, resolved)
	if err != nil {
		return resolved
	}
	return filepath.ToSlash(rel)
}
