// Package config loads the audit policy from the project-local
// .docgate.yaml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/docgate/docgate/internal/domain"
)

const fileName = ".docgate.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .docgate.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .docgate.yaml from root. A project without the file gets the
// default policy.
func (l *YAMLLoader) Load(root string) (domain.AuditConfig, error) {
	data, err := os.ReadFile(filepath.Join(root, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.AuditConfig{}, err
	}

	var cfg domain.AuditConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.AuditConfig{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	// Validate before merging so a typo in the user's raw input is caught.
	if err := cfg.Validate(); err != nil {
		return domain.AuditConfig{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}

	return mergeConfig(domain.DefaultConfig(), cfg), nil
}

// mergeConfig overlays explicit overrides on the default policy.
// Explicit (non-zero) values always win; list fields replace entirely.
func mergeConfig(base, override domain.AuditConfig) domain.AuditConfig {
	result := base

	result.Strict = override.Strict
	if override.DocsDir != "" {
		result.DocsDir = override.DocsDir
	}
	if len(override.Ignore) > 0 {
		result.Ignore = override.Ignore
	}
	if len(override.Allow) > 0 {
		result.Allow = override.Allow
	}
	if len(override.Classification) > 0 {
		result.Classification = override.Classification
	}
	if len(override.Frontmatter.Required) > 0 {
		result.Frontmatter.Required = override.Frontmatter.Required
	}
	if override.Frontmatter.Window > 0 {
		result.Frontmatter.Window = override.Frontmatter.Window
	}
	if len(override.Banned) > 0 {
		result.Banned = override.Banned
	}
	if len(override.Current) > 0 {
		result.Current = override.Current
	}
	if override.Workers > 0 {
		result.Workers = override.Workers
	}
	if override.Timeout != "" {
		result.Timeout = override.Timeout
	}

	return result
}
