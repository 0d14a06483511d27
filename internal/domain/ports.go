package domain

import "context"

// TreeScanner discovers and classifies candidate files under a root,
// honoring the configured ignore globs.
type TreeScanner interface {
	Scan(ctx context.Context, root string, cfg AuditConfig) (*FileSet, error)
}

// ConfigLoader loads the audit configuration for a project root.
type ConfigLoader interface {
	Load(root string) (AuditConfig, error)
}

// Validator is one self-contained unit of policy. Implementations must not
// depend on another validator's findings, must iterate files in the set's
// order, and must recover per-file failures as findings instead of errors.
type Validator interface {
	Name() string
	Run(ctx context.Context, files *FileSet, cfg AuditConfig) (ValidationResult, error)
}
