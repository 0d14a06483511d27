package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditconfig "github.com/docgate/docgate/internal/adapters/outbound/config"
	"github.com/docgate/docgate/internal/domain"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".docgate.yaml"), []byte(content), 0644))
}

func TestYAMLLoader_MissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	loader := auditconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestYAMLLoader_ExplicitValuesOverrideDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
strict: true
docs_dir: documentation
frontmatter:
  required: [title, owner]
banned:
  - pattern: OldAuthService
    suggest: AuthGateway
workers: 2
timeout: 30s
`)
	loader := auditconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)

	assert.True(t, cfg.Strict)
	assert.Equal(t, "documentation", cfg.DocsDir)
	assert.Equal(t, []string{"title", "owner"}, cfg.Frontmatter.Required)
	require.Len(t, cfg.Banned, 1)
	assert.Equal(t, "OldAuthService", cfg.Banned[0].Pattern)
	assert.Equal(t, "AuthGateway", cfg.Banned[0].Suggest)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "30s", cfg.Timeout)
}

func TestYAMLLoader_UnsetFieldsKeepDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `strict: true`)
	loader := auditconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)

	def := domain.DefaultConfig()
	assert.Equal(t, def.DocsDir, cfg.DocsDir)
	assert.Equal(t, def.Ignore, cfg.Ignore)
	assert.Equal(t, def.Allow, cfg.Allow)
	assert.Equal(t, def.Classification, cfg.Classification)
	assert.Equal(t, def.Frontmatter.Window, cfg.Frontmatter.Window)
}

func TestYAMLLoader_ListOverridesReplaceEntirely(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
ignore: ["tmp/**"]
allow: ["README.md"]
`)
	loader := auditconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"tmp/**"}, cfg.Ignore)
	assert.Equal(t, []string{"README.md"}, cfg.Allow)
}

func TestYAMLLoader_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{{{invalid yaml`)
	loader := auditconfig.New()

	_, err := loader.Load(dir)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing .docgate.yaml")
}

func TestYAMLLoader_InvalidPolicyRejected(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
banned:
  - pattern: "["
`)
	loader := auditconfig.New()

	_, err := loader.Load(dir)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid .docgate.yaml")
}

func TestYAMLLoader_UnknownCategoryRejected(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
classification:
  - keyword: sketch
    category: doodle
`)
	loader := auditconfig.New()

	_, err := loader.Load(dir)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `unknown category "doodle"`)
}
