package domain

import (
	"fmt"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// ClassificationRule maps a keyword to a category. Rules are evaluated in
// configuration order against the lowercased path and content sample; the
// first match wins.
type ClassificationRule struct {
	Keyword  string   `yaml:"keyword"  json:"keyword"`
	Category Category `yaml:"category" json:"category"`
}

// BannedPattern is one forbidden reference with its replacement guidance.
type BannedPattern struct {
	Pattern string `yaml:"pattern" json:"pattern"`
	Message string `yaml:"message" json:"message,omitempty"`
	Suggest string `yaml:"suggest" json:"suggest,omitempty"`
}

// FrontmatterConfig bounds the metadata header check.
type FrontmatterConfig struct {
	Required []string `yaml:"required" json:"required,omitempty"`
	Window   int      `yaml:"window"   json:"window,omitempty"`
}

// AuditConfig holds the audit policy loaded from .docgate.yaml.
// It is read-only to the engine.
type AuditConfig struct {
	Strict         bool                 `yaml:"strict"         json:"strict"`
	DocsDir        string               `yaml:"docs_dir"       json:"docs_dir,omitempty"`
	Ignore         []string             `yaml:"ignore"         json:"ignore,omitempty"`
	Allow          []string             `yaml:"allow"          json:"allow,omitempty"`
	Classification []ClassificationRule `yaml:"classification" json:"classification,omitempty"`
	Frontmatter    FrontmatterConfig    `yaml:"frontmatter"    json:"frontmatter,omitempty"`
	Banned         []BannedPattern      `yaml:"banned"         json:"banned,omitempty"`
	Current        []string             `yaml:"current"        json:"current,omitempty"`
	Workers        int                  `yaml:"workers"        json:"workers,omitempty"`
	Timeout        string               `yaml:"timeout"        json:"timeout,omitempty"`
}

// DefaultConfig returns the policy applied when no .docgate.yaml exists.
func DefaultConfig() AuditConfig {
	return AuditConfig{
		DocsDir: "docs",
		Ignore: []string{
			"vendor/**", "node_modules/**", ".git/**",
			"dist/**", "bin/**", "testdata/**",
			".docgate/**", ".docgate.yaml",
		},
		Allow: []string{
			"README.md", "README", "LICENSE", "LICENSE.md", "NOTICE",
			"CHANGELOG.md", "CONTRIBUTING.md", "CODE_OF_CONDUCT.md",
			"SECURITY.md",
		},
		Classification: []ClassificationRule{
			{Keyword: "code generated", Category: CategoryGenerated},
			{Keyword: "do not edit", Category: CategoryGenerated},
			{Keyword: "auto-generated", Category: CategoryGenerated},
			{Keyword: "architecture", Category: CategoryTechnicalDoc},
			{Keyword: "design", Category: CategoryTechnicalDoc},
			{Keyword: "runbook", Category: CategoryTechnicalDoc},
			{Keyword: "internals", Category: CategoryTechnicalDoc},
			{Keyword: "getting started", Category: CategoryUserDoc},
			{Keyword: "tutorial", Category: CategoryUserDoc},
			{Keyword: "faq", Category: CategoryUserDoc},
		},
		Frontmatter: FrontmatterConfig{Window: 15},
	}
}

// IsAllowed reports whether a filename is on the allow-list.
// Matching is case-insensitive on the base name.
func (c AuditConfig) IsAllowed(name string) bool {
	for _, a := range c.Allow {
		if strings.EqualFold(a, name) {
			return true
		}
	}
	return false
}

// EffectiveWorkers resolves the pool size (0 means available parallelism).
func (c AuditConfig) EffectiveWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// TimeoutDuration parses the configured timeout. Empty means no deadline.
func (c AuditConfig) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	return time.ParseDuration(c.Timeout)
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c AuditConfig) Validate() error {
	// 1. docs_dir must be a relative subtree
	if strings.HasPrefix(c.DocsDir, "/") || strings.Contains(c.DocsDir, "..") {
		return fmt.Errorf("docs_dir %q must be a relative path inside the root", c.DocsDir)
	}

	// 2. ignore entries must be valid globs
	for _, g := range c.Ignore {
		if !doublestar.ValidatePattern(g) {
			return fmt.Errorf("invalid glob %q in ignore", g)
		}
	}

	// 3. classification rules need a keyword and a known category
	for i, r := range c.Classification {
		if strings.TrimSpace(r.Keyword) == "" {
			return fmt.Errorf("classification[%d].keyword must not be empty", i)
		}
		if !isValidCategory(r.Category) {
			return fmt.Errorf("unknown category %q in classification[%d] (valid: user, technical, generated, ignored, unclassified)", r.Category, i)
		}
	}

	// 4. banned patterns must compile
	for i, b := range c.Banned {
		if strings.TrimSpace(b.Pattern) == "" {
			return fmt.Errorf("banned[%d].pattern must not be empty", i)
		}
		if _, err := regexp.Compile(b.Pattern); err != nil {
			return fmt.Errorf("banned[%d].pattern %q does not compile: %v", i, b.Pattern, err)
		}
	}

	// 5. frontmatter window must stay positive
	if c.Frontmatter.Window < 0 {
		return fmt.Errorf("frontmatter.window must be >= 0 (got %d)", c.Frontmatter.Window)
	}
	for i, f := range c.Frontmatter.Required {
		if strings.TrimSpace(f) == "" {
			return fmt.Errorf("frontmatter.required[%d] must not be empty", i)
		}
	}

	// 6. workers must not be negative
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0 (got %d)", c.Workers)
	}

	// 7. timeout must parse when set
	if _, err := c.TimeoutDuration(); err != nil {
		return fmt.Errorf("timeout %q does not parse: %v", c.Timeout, err)
	}

	return nil
}

func isValidCategory(cat Category) bool {
	for _, c := range ValidCategories {
		if c == cat {
			return true
		}
	}
	return false
}
