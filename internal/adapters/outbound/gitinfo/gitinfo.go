// Package gitinfo reads repository metadata for report stamping.
package gitinfo

import (
	"fmt"

	"github.com/go-git/go-git/v5"
)

// Reader resolves git metadata for an audited tree using go-git.
// No git binary is required.
type Reader struct{}

func New() *Reader {
	return &Reader{}
}

// HeadCommit returns the hash the audited tree's HEAD points at.
func (r *Reader) HeadCommit(root string) (string, error) {
	repo, err := git.PlainOpen(root)
	if err != nil {
		return "", fmt.Errorf("opening git repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}

	return head.Hash().String(), nil
}
