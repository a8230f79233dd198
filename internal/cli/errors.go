package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/fleetdesk/internal/core/errs"
)

// PrintError writes err as "error [CODE]: reason".
func PrintError(w io.Writer, err error) {
	code := errs.CodeOf(err)
	reason := errs.ReasonOf(err)
	fmt.Fprintf(w, "%s %s\n", color.New(color.FgRed, color.Bold).Sprintf("error [%s]:", code), reason)
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	switch errs.CodeOf(err) {
	case errs.CodeInvalidInput:
		return 2
	case errs.CodeNotFound:
		return 3
	case errs.CodeInvalidTransition, errs.CodeResourceConflict:
		return 4
	default:
		return 1
	}
}
