// Package snapshot persists the most recent audit report under the
// project's .docgate directory.
package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/docgate/docgate/internal/domain"
)

// Store is a file-based report snapshot keyed by project root.
type Store struct{}

// New creates a file-based snapshot store.
func New() *Store {
	return &Store{}
}

// Load reads the last saved report for root. Returns (nil, nil) when no
// snapshot exists.
func (s *Store) Load(root string) (*domain.AuditReport, error) {
	data, err := os.ReadFile(reportPath(root))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var report domain.AuditReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// Save writes the report for root, creating directories as needed.
func (s *Store) Save(root string, report *domain.AuditReport) error {
	if err := os.MkdirAll(filepath.Join(root, ".docgate"), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(reportPath(root), data, 0644)
}

func reportPath(root string) string {
	return filepath.Join(root, ".docgate", "report.json")
}
