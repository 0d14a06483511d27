package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/docgate/docgate/internal/domain"
)

// AuditService orchestrates the audit pipeline:
// load config -> discover and classify files -> run validators -> aggregate.
type AuditService struct {
	scanner    domain.TreeScanner
	configs    domain.ConfigLoader
	validators []domain.Validator
	log        *zap.Logger
}

func NewAuditService(
	scanner domain.TreeScanner,
	configs domain.ConfigLoader,
	validators []domain.Validator,
	log *zap.Logger,
) *AuditService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuditService{
		scanner:    scanner,
		configs:    configs,
		validators: validators,
		log:        log,
	}
}

// Audit loads the project configuration and runs a full audit over root.
func (s *AuditService) Audit(ctx context.Context, root string) (*domain.AuditReport, error) {
	cfg, err := s.configs.Load(root)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return s.AuditWithConfig(ctx, root, cfg)
}

// AuditWithConfig runs a full audit over root with an explicit configuration.
// A deadline (from ctx or cfg.Timeout) never fails the run: the report comes
// back marked incomplete with a synthetic finding instead, because a partial
// audit must not look like a clean pass.
func (s *AuditService) AuditWithConfig(ctx context.Context, root string, cfg domain.AuditConfig) (*domain.AuditReport, error) {
	started := time.Now()

	// 1. Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// 2. Apply the configured deadline
	if timeout, err := cfg.TimeoutDuration(); err == nil && timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	// 3. Discover and classify once; all validators share the same view
	files, err := s.scanner.Scan(ctx, root, cfg)
	scanCut := false
	if err != nil {
		if !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("discovering files: %w", err)
		}
		scanCut = true
		if files == nil {
			files = &domain.FileSet{Root: root}
		}
	}
	s.log.Debug("tree scanned",
		zap.String("root", root),
		zap.Int("files", len(files.Files)),
		zap.Bool("cut_short", scanCut))

	// 4. Run validators on a bounded pool. Results land in indexed slots so
	// aggregation order never depends on scheduling.
	results := make([]domain.ValidationResult, len(s.validators))
	var g errgroup.Group
	g.SetLimit(cfg.EffectiveWorkers())
	for i, v := range s.validators {
		g.Go(func() error {
			res, err := s.runValidator(ctx, v, files, cfg)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// 5. Aggregate
	incomplete := scanCut || ctx.Err() != nil
	order := make([]string, 0, len(s.validators)+1)
	merged := make(map[string]domain.ValidationResult, len(s.validators)+1)
	for i, v := range s.validators {
		order = append(order, v.Name())
		merged[v.Name()] = results[i]
	}
	if incomplete {
		engine := s.incompleteResult(results)
		order = append(order, engine.Validator)
		merged[engine.Validator] = engine
	}

	report := &domain.AuditReport{
		RunID:       uuid.NewString(),
		Root:        root,
		GeneratedAt: started.UTC(),
		Strict:      cfg.Strict,
		Order:       order,
		Results:     merged,
		Incomplete:  incomplete,
	}
	report.Finalize()
	report.DurationMS = time.Since(started).Milliseconds()

	s.log.Debug("audit finished",
		zap.String("run_id", report.RunID),
		zap.Int("errors", report.TotalErrors),
		zap.Int("warnings", report.TotalWarnings),
		zap.Bool("incomplete", report.Incomplete),
		zap.Int("exit_code", report.ExitCode))
	return report, nil
}

// runValidator isolates one validator run. A panic or error return is an
// implementation defect in that validator and fails the whole audit; a
// crashed validator cannot be trusted to say which files it checked.
func (s *AuditService) runValidator(ctx context.Context, v domain.Validator, files *domain.FileSet, cfg domain.AuditConfig) (res domain.ValidationResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &domain.ValidatorFault{Validator: v.Name(), Cause: r}
		}
	}()

	s.log.Debug("validator started", zap.String("validator", v.Name()))
	res, err = v.Run(ctx, files, cfg)
	if err != nil {
		return res, &domain.ValidatorFault{Validator: v.Name(), Cause: err}
	}
	return res, nil
}

// incompleteResult synthesizes the finding that marks a deadline-cut run.
func (s *AuditService) incompleteResult(results []domain.ValidationResult) domain.ValidationResult {
	unfinished := 0
	skippedFiles := 0
	for _, r := range results {
		if r.FilesSkipped > 0 {
			unfinished++
		}
		skippedFiles += r.FilesSkipped
	}

	res := domain.ValidationResult{Validator: domain.EngineValidator}
	res.Add(domain.Finding{
		Severity: domain.SeverityError,
		Message: fmt.Sprintf("audit incomplete: deadline elapsed with %d of %d validators unfinished and %d file checks unprocessed",
			unfinished, len(results), skippedFiles),
		Remediation: "raise the timeout or narrow the tree with ignore globs, then rerun",
	})
	return res
}
