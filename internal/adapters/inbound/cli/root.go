package cli

import (
	"errors"

	"github.com/docgate/docgate/internal/domain"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docgate",
		Short: "Stop merging stale docs",
		Long:  "Docgate audits a source tree against its documentation policies: where technical docs live, what frontmatter they carry, whether they reference retired systems, and whether their links still resolve.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newAuditCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

// exitError carries the exit code of a finished audit so main can
// distinguish policy failures from tool failures.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

// ExitCode maps an error returned by Execute to a process exit code.
// Completed audits carry their own code; a validator fault means the run
// never finished and gets the incomplete code; anything else is a tool
// error.
func ExitCode(err error) int {
	if err == nil {
		return domain.ExitClean
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	var fault *domain.ValidatorFault
	if errors.As(err, &fault) {
		return domain.ExitIncomplete
	}
	return 1
}
