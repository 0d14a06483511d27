package rules_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docgate/docgate/internal/domain"
	"github.com/docgate/docgate/internal/domain/rules"
)

func TestFrontmatter_FlagsMissingFields(t *testing.T) {
	root := writeTree(t, map[string]string{
		"docs/guide.md": "---\ntitle: Guide\n---\n\nbody\n",
	})
	cfg := domain.DefaultConfig()
	cfg.Frontmatter.Required = []string{"title", "owner", "status"}

	fs := fileSet(root, domain.FileInfo{Path: "docs/guide.md", Category: domain.CategoryTechnicalDoc})
	res, err := rules.NewFrontmatter().Run(context.Background(), fs, cfg)
	require.NoError(t, err)

	require.Len(t, res.Findings, 1)
	f := res.Findings[0]
	assert.Equal(t, domain.SeverityError, f.Severity)
	assert.Equal(t, "frontmatter", f.Validator)
	assert.Equal(t, "missing frontmatter fields: owner, status", f.Message)
	assert.Contains(t, f.Remediation, "owner: <value>")
	assert.Contains(t, f.Remediation, "status: <value>")
	assert.NotContains(t, f.Remediation, "title: <value>")
}

func TestFrontmatter_FieldOutsideWindowDoesNotCount(t *testing.T) {
	// "owner:" lands on line 19, past the default 15-line window.
	body := "---\ntitle: Guide\n---\n" + strings.Repeat("\n", 15) + "owner: platform\n"
	root := writeTree(t, map[string]string{"docs/guide.md": body})
	cfg := domain.DefaultConfig()
	cfg.Frontmatter.Required = []string{"title", "owner"}

	fs := fileSet(root, domain.FileInfo{Path: "docs/guide.md", Category: domain.CategoryTechnicalDoc})
	res, err := rules.NewFrontmatter().Run(context.Background(), fs, cfg)
	require.NoError(t, err)

	require.Len(t, res.Findings, 1)
	assert.Equal(t, "missing frontmatter fields: owner", res.Findings[0].Message)
}

func TestFrontmatter_WiderWindowFindsLateField(t *testing.T) {
	body := "---\ntitle: Guide\n---\n" + strings.Repeat("\n", 15) + "owner: platform\n"
	root := writeTree(t, map[string]string{"docs/guide.md": body})
	cfg := domain.DefaultConfig()
	cfg.Frontmatter.Required = []string{"title", "owner"}
	cfg.Frontmatter.Window = 25

	fs := fileSet(root, domain.FileInfo{Path: "docs/guide.md", Category: domain.CategoryTechnicalDoc})
	res, err := rules.NewFrontmatter().Run(context.Background(), fs, cfg)
	require.NoError(t, err)
	assert.Empty(t, res.Findings)
}

func TestFrontmatter_FieldMatchIsCaseInsensitive(t *testing.T) {
	root := writeTree(t, map[string]string{
		"docs/guide.md": "---\n  TITLE: Guide\nOwner : platform\n---\n",
	})
	cfg := domain.DefaultConfig()
	cfg.Frontmatter.Required = []string{"title", "owner"}

	fs := fileSet(root, domain.FileInfo{Path: "docs/guide.md", Category: domain.CategoryUserDoc})
	res, err := rules.NewFrontmatter().Run(context.Background(), fs, cfg)
	require.NoError(t, err)
	assert.Empty(t, res.Findings)
}

func TestFrontmatter_AllowlistedAndNonMarkdownNotGoverned(t *testing.T) {
	root := writeTree(t, map[string]string{
		"README.md":       "# No frontmatter here\n",
		"docs/schema.txt": "plain text\n",
	})
	cfg := domain.DefaultConfig()
	cfg.Frontmatter.Required = []string{"title"}

	fs := fileSet(root,
		domain.FileInfo{Path: "README.md", Category: domain.CategoryUserDoc},
		domain.FileInfo{Path: "docs/schema.txt", Category: domain.CategoryTechnicalDoc},
	)
	res, err := rules.NewFrontmatter().Run(context.Background(), fs, cfg)
	require.NoError(t, err)
	assert.Empty(t, res.Findings)
	assert.Equal(t, 0, res.FilesChecked)
}

func TestFrontmatter_UnreadableFileBecomesFinding(t *testing.T) {
	root := writeTree(t, map[string]string{"docs/real.md": "---\ntitle: x\n---\n"})
	cfg := domain.DefaultConfig()
	cfg.Frontmatter.Required = []string{"title"}

	fs := fileSet(root,
		domain.FileInfo{Path: "docs/ghost.md", Category: domain.CategoryTechnicalDoc},
		domain.FileInfo{Path: "docs/real.md", Category: domain.CategoryTechnicalDoc},
	)
	res, err := rules.NewFrontmatter().Run(context.Background(), fs, cfg)
	require.NoError(t, err)

	require.Len(t, res.Findings, 1)
	assert.Equal(t, "docs/ghost.md", res.Findings[0].File)
	assert.Contains(t, res.Findings[0].Message, "could not read")
	assert.Equal(t, domain.SeverityError, res.Findings[0].Severity)
	assert.Equal(t, 2, res.FilesChecked)
}

func TestFrontmatter_NoRequiredFieldsIsNoOp(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Frontmatter.Required = nil

	fs := fileSet("/repo", domain.FileInfo{Path: "docs/guide.md", Category: domain.CategoryTechnicalDoc})
	res, err := rules.NewFrontmatter().Run(context.Background(), fs, cfg)
	require.NoError(t, err)
	assert.Empty(t, res.Findings)
	assert.Equal(t, 0, res.FilesChecked)
}
