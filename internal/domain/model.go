package domain

import (
	"path"
	"strings"
	"time"
)

// Severity classifies how a finding affects the audit outcome.
// Errors fail the run; warnings fail it only in strict mode; info never does.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Category is the classification of a discovered file. It decides which
// validators apply to the file.
type Category string

const (
	CategoryUserDoc      Category = "user"
	CategoryTechnicalDoc Category = "technical"
	CategoryGenerated    Category = "generated"
	CategoryIgnored      Category = "ignored"
	CategoryUnclassified Category = "unclassified"
)

// ValidCategories enumerates the categories accepted in classification rules.
var ValidCategories = []Category{
	CategoryUserDoc,
	CategoryTechnicalDoc,
	CategoryGenerated,
	CategoryIgnored,
	CategoryUnclassified,
}

// IsMarkdown reports whether the path names a Markdown document.
func IsMarkdown(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// FileInfo is one discovered file with its classification.
// Path is root-relative and slash-separated.
type FileInfo struct {
	Path     string   `json:"path"`
	Category Category `json:"category"`
	Size     int64    `json:"size"`
}

// FileSet is the classified view of a tree, built once per run and shared
// read-only by all validators. Files are sorted lexicographically by Path.
type FileSet struct {
	Root  string     `json:"root"`
	Files []FileInfo `json:"files"`
}

// ByCategory returns the files whose category is one of cats, in set order.
func (fs *FileSet) ByCategory(cats ...Category) []FileInfo {
	want := make(map[Category]bool, len(cats))
	for _, c := range cats {
		want[c] = true
	}
	var out []FileInfo
	for _, f := range fs.Files {
		if want[f.Category] {
			out = append(out, f)
		}
	}
	return out
}

// Finding is one policy violation or observation.
type Finding struct {
	Severity    Severity `json:"severity"`
	Validator   string   `json:"validator"`
	File        string   `json:"file"`
	Line        int      `json:"line,omitempty"` // 1-based; 0 means the whole file
	Message     string   `json:"message"`
	Remediation string   `json:"remediation"`
}

// ValidationResult is the output of one validator's run over the whole tree.
type ValidationResult struct {
	Validator    string    `json:"validator"`
	Findings     []Finding `json:"findings"`
	FilesChecked int       `json:"files_checked"`
	FilesSkipped int       `json:"files_skipped,omitempty"`
	ErrorCount   int       `json:"error_count"`
	WarningCount int       `json:"warning_count"`
}

// Add appends a finding and keeps the severity counts in sync.
func (r *ValidationResult) Add(f Finding) {
	f.Validator = r.Validator
	r.Findings = append(r.Findings, f)
	switch f.Severity {
	case SeverityError:
		r.ErrorCount++
	case SeverityWarning:
		r.WarningCount++
	}
}

// EngineValidator attributes findings synthesized by the orchestrator itself,
// such as the incomplete-run finding emitted when the deadline elapses.
const EngineValidator = "engine"

// Process exit codes. Incomplete is distinct from violations so callers can
// tell infrastructure failure from policy failure.
const (
	ExitClean      = 0
	ExitViolations = 1
	ExitIncomplete = 2
)

// AuditReport is the aggregate result of one audit run.
type AuditReport struct {
	RunID         string                      `json:"run_id"`
	Root          string                      `json:"root"`
	GeneratedAt   time.Time                   `json:"generated_at"`
	Commit        string                      `json:"commit,omitempty"`
	Strict        bool                        `json:"strict"`
	DurationMS    int64                       `json:"duration_ms"`
	Order         []string                    `json:"order"`
	Results       map[string]ValidationResult `json:"results"`
	TotalErrors   int                         `json:"total_errors"`
	TotalWarnings int                         `json:"total_warnings"`
	Incomplete    bool                        `json:"incomplete,omitempty"`
	ExitCode      int                         `json:"exit_code"`
}

// Finalize recomputes the totals and the exit code from the results.
// Called once by the orchestrator; the report is immutable afterwards.
func (r *AuditReport) Finalize() {
	r.TotalErrors = 0
	r.TotalWarnings = 0
	for _, res := range r.Results {
		r.TotalErrors += res.ErrorCount
		r.TotalWarnings += res.WarningCount
	}
	switch {
	case r.Incomplete:
		r.ExitCode = ExitIncomplete
	case r.TotalErrors > 0, r.Strict && r.TotalWarnings > 0:
		r.ExitCode = ExitViolations
	default:
		r.ExitCode = ExitClean
	}
}

// OrderedResults returns the results in fixed render order.
func (r *AuditReport) OrderedResults() []ValidationResult {
	out := make([]ValidationResult, 0, len(r.Order))
	for _, name := range r.Order {
		if res, ok := r.Results[name]; ok {
			out = append(out, res)
		}
	}
	return out
}

// HistoryEntry is one audit run as recorded in the project's run history.
type HistoryEntry struct {
	RunID         string `json:"run_id"`
	Timestamp     string `json:"timestamp"`
	Commit        string `json:"commit,omitempty"`
	TotalErrors   int    `json:"total_errors"`
	TotalWarnings int    `json:"total_warnings"`
	ExitCode      int    `json:"exit_code"`
}
