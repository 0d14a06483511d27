// Package history records one line per audit run so trends survive
// individual report snapshots.
package history

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/docgate/docgate/internal/domain"
)

const historyFile = ".docgate/history.json"

// FileHistory implements run-history storage as a JSON file under the
// project root.
type FileHistory struct{}

func New() *FileHistory {
	return &FileHistory{}
}

// Save appends an entry to the project's run history.
func (h *FileHistory) Save(root string, entry domain.HistoryEntry) error {
	entries, err := h.Load(root)
	if err != nil {
		return err
	}

	entries = append(entries, entry)

	fp := filepath.Join(root, historyFile)
	if err := os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(fp, data, 0644)
}

// Load reads the project's run history, oldest first. A project with no
// history yields (nil, nil).
func (h *FileHistory) Load(root string) ([]domain.HistoryEntry, error) {
	data, err := os.ReadFile(filepath.Join(root, historyFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []domain.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}
