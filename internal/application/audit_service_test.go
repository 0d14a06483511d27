package application_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditconfig "github.com/docgate/docgate/internal/adapters/outbound/config"
	"github.com/docgate/docgate/internal/adapters/outbound/scanner"
	"github.com/docgate/docgate/internal/application"
	"github.com/docgate/docgate/internal/domain"
	"github.com/docgate/docgate/internal/domain/rules"
)

func newAuditService(validators ...domain.Validator) *application.AuditService {
	if len(validators) == 0 {
		validators = rules.Default()
	}
	return application.NewAuditService(scanner.New(), auditconfig.New(), validators, nil)
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		abs := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0755))
		require.NoError(t, os.WriteFile(abs, []byte(content), 0644))
	}
	return root
}

func allFindings(report *domain.AuditReport) []domain.Finding {
	var out []domain.Finding
	for _, res := range report.OrderedResults() {
		out = append(out, res.Findings...)
	}
	return out
}

func TestAuditService_CleanTreePasses(t *testing.T) {
	root := writeTree(t, map[string]string{
		"README.md":      "# Project\n\nGetting around.\n",
		"docs/design.md": "# Design\n\nSee [the readme](../README.md).\n",
	})
	svc := newAuditService()

	report, err := svc.Audit(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, domain.ExitClean, report.ExitCode)
	assert.Equal(t, 0, report.TotalErrors)
	assert.Equal(t, 0, report.TotalWarnings)
	assert.False(t, report.Incomplete)
	assert.Equal(t, []string{"placement", "frontmatter", "content", "cross-reference"}, report.Order)
	assert.NotEmpty(t, report.RunID)
	assert.Empty(t, allFindings(report))
}

func TestAuditService_ViolationsProduceExitOne(t *testing.T) {
	root := writeTree(t, map[string]string{
		"README.md":          "# Project\n",
		"internal/design.md": "# Design\n",
	})
	svc := newAuditService()

	report, err := svc.Audit(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, domain.ExitViolations, report.ExitCode)
	assert.Equal(t, 1, report.TotalErrors)

	findings := allFindings(report)
	require.Len(t, findings, 1)
	assert.Equal(t, "placement", findings[0].Validator)
	assert.Equal(t, "internal/design.md", findings[0].File)
}

func TestAuditService_RepeatedRunsAgree(t *testing.T) {
	root := writeTree(t, map[string]string{
		"README.md":          "# Project\n",
		"internal/design.md": "# Design\n\n[gone](missing.md)\n",
	})
	svc := newAuditService()

	first, err := svc.Audit(context.Background(), root)
	require.NoError(t, err)
	second, err := svc.Audit(context.Background(), root)
	require.NoError(t, err)

	// Run identity differs; everything the tree determines must not.
	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Equal(t, first.Order, second.Order)
	assert.Equal(t, first.Results, second.Results)
	assert.Equal(t, first.ExitCode, second.ExitCode)
	assert.Equal(t, first.TotalErrors, second.TotalErrors)
}

func TestAuditService_UnreadableFileYieldsOneFinding(t *testing.T) {
	root := writeTree(t, map[string]string{
		"README.md": "# Project\n",
		".docgate.yaml": `
banned:
  - pattern: OldAuthService
`,
	})
	require.NoError(t, os.MkdirAll(filepath.Join(root, "notes"), 0755))
	require.NoError(t, os.Symlink(filepath.Join(root, "missing-target"), filepath.Join(root, "notes", "archive.txt")))
	svc := newAuditService()

	report, err := svc.Audit(context.Background(), root)
	require.NoError(t, err)

	findings := allFindings(report)
	require.Len(t, findings, 1)
	f := findings[0]
	assert.Equal(t, domain.SeverityError, f.Severity)
	assert.Equal(t, "content", f.Validator)
	assert.Equal(t, "notes/archive.txt", f.File)
	assert.Contains(t, f.Message, "could not read")
	assert.Equal(t, domain.ExitViolations, report.ExitCode)
}

func TestAuditService_StrictModePromotesWarnings(t *testing.T) {
	files := map[string]string{
		"README.md":       "# Project\n",
		"docs/history.md": "# History\n\nOldBilling was removed in the 4.0 release.\n",
		".docgate.yaml": `
banned:
  - pattern: OldBilling
`,
	}

	lenient := newAuditService()
	report, err := lenient.Audit(context.Background(), writeTree(t, files))
	require.NoError(t, err)
	assert.Equal(t, 1, report.TotalWarnings)
	assert.Equal(t, 0, report.TotalErrors)
	assert.Equal(t, domain.ExitClean, report.ExitCode)

	files[".docgate.yaml"] = "strict: true\n" + files[".docgate.yaml"]
	strict := newAuditService()
	report, err = strict.Audit(context.Background(), writeTree(t, files))
	require.NoError(t, err)
	assert.Equal(t, 1, report.TotalWarnings)
	assert.Equal(t, domain.ExitViolations, report.ExitCode)
}

func TestAuditService_DeadlineYieldsIncompleteReport(t *testing.T) {
	root := writeTree(t, map[string]string{
		"README.md":      "# Project\n",
		"docs/design.md": "# Design\n",
	})
	cfg := domain.DefaultConfig()
	cfg.Timeout = "1ns"
	svc := newAuditService()

	report, err := svc.AuditWithConfig(context.Background(), root, cfg)
	require.NoError(t, err)

	assert.True(t, report.Incomplete)
	assert.Equal(t, domain.ExitIncomplete, report.ExitCode)

	engine, ok := report.Results[domain.EngineValidator]
	require.True(t, ok)
	require.Len(t, engine.Findings, 1)
	assert.Equal(t, domain.SeverityError, engine.Findings[0].Severity)
	assert.Contains(t, engine.Findings[0].Message, "audit incomplete")
	assert.Equal(t, domain.EngineValidator, report.Order[len(report.Order)-1])
}

type boomValidator struct{}

func (boomValidator) Name() string { return "boom" }

func (boomValidator) Run(context.Context, *domain.FileSet, domain.AuditConfig) (domain.ValidationResult, error) {
	panic("nil blueprint")
}

type sickValidator struct{}

func (sickValidator) Name() string { return "sick" }

func (sickValidator) Run(context.Context, *domain.FileSet, domain.AuditConfig) (domain.ValidationResult, error) {
	return domain.ValidationResult{}, errors.New("bad rule table")
}

func TestAuditService_PanickingValidatorIsFatal(t *testing.T) {
	root := writeTree(t, map[string]string{"README.md": "# Project\n"})
	svc := newAuditService(boomValidator{})

	_, err := svc.Audit(context.Background(), root)
	require.Error(t, err)

	var fault *domain.ValidatorFault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, "boom", fault.Validator)
	assert.Contains(t, err.Error(), "nil blueprint")
}

func TestAuditService_FailingValidatorIsFatal(t *testing.T) {
	root := writeTree(t, map[string]string{"README.md": "# Project\n"})
	svc := newAuditService(sickValidator{})

	_, err := svc.Audit(context.Background(), root)
	require.Error(t, err)

	var fault *domain.ValidatorFault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, "sick", fault.Validator)
}

func TestAuditService_InvalidConfigRejected(t *testing.T) {
	root := writeTree(t, map[string]string{"README.md": "# Project\n"})
	cfg := domain.DefaultConfig()
	cfg.Workers = -1
	svc := newAuditService()

	_, err := svc.AuditWithConfig(context.Background(), root, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestAuditService_MissingRootIsFatal(t *testing.T) {
	svc := newAuditService()

	_, err := svc.Audit(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "discovering files")
}
