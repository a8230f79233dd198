package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/fleetdesk/internal/core/errs"
)

// exactArgs is cobra.ExactArgs reporting INVALID_INPUT.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return errs.InvalidInput(fmt.Sprintf("%s accepts %d arg(s), received %d", cmd.CommandPath(), n, len(args)))
		}
		return nil
	}
}

// idArg validates a single entity ID argument.
func idArg(entityType string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := exactArgs(1)(cmd, args); err != nil {
			return err
		}
		return validateEntityID(args[0], entityType)
	}
}

// FlagError turns cobra flag parse failures into INVALID_INPUT.
func FlagError(cmd *cobra.Command, err error) error {
	return errs.InvalidInput(err.Error())
}
