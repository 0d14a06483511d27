// Package rules contains the policy validators run by the audit engine.
//
// Every validator honors the same contract: iterate the shared file set in
// its order, recover per-file failures as findings, and reserve the error
// return for implementation defects.
package rules

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/docgate/docgate/internal/domain"
)

// Default returns the standard validator set in render order.
func Default() []domain.Validator {
	return []domain.Validator{
		NewPlacement(),
		NewFrontmatter(),
		NewContent(),
		NewCrossReference(),
	}
}

// readLines loads a file under root and splits it into lines.
func readLines(root, rel string) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return nil, err
	}
	return strings.Split(string(data), "\n"), nil
}

// readFailure is the finding that stands in for an unreadable file.
// Processing always continues with the next file.
func readFailure(file string, err error) domain.Finding {
	return domain.Finding{
		Severity:    domain.SeverityError,
		File:        file,
		Message:     fmt.Sprintf("could not read %s: %v", file, err),
		Remediation: "fix the file's permissions or encoding and rerun the audit",
	}
}
