package domain

import "fmt"

// ValidatorFault reports an implementation defect inside a validator.
// It aborts the whole run: a crashing validator cannot be trusted to report
// which files it managed to check.
type ValidatorFault struct {
	Validator string
	Cause     any
}

func (e *ValidatorFault) Error() string {
	return fmt.Sprintf("validator %q failed: %v", e.Validator, e.Cause)
}
