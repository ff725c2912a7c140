// Command cleanbot plans a cleaning route for a robot on a grid world.
//
//	cleanbot <depth-first|uniform-cost> <world-file>
//
// The plan is printed one action per line, followed by the search statistics.
// Every failure exits with status 1; bad invocations also print the usage.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"svw.info/cleanbot/internal/domain"
)

func main() {
	os.Exit(execute(newRootCmd()))
}

// execute runs root and reports errors on its error stream. Usage goes to
// the error stream too, so standard output only ever carries a plan.
func execute(root *cobra.Command) int {
	cmd, err := root.ExecuteC()
	if err == nil {
		return 0
	}
	errOut := root.ErrOrStderr()
	fmt.Fprintln(errOut, "Error:", err)
	var ue *domain.UsageError
	if errors.As(err, &ue) && cmd != nil {
		fmt.Fprint(errOut, cmd.UsageString())
	}
	return 1
}

func usageError(cmd *cobra.Command, err error) error {
	return &domain.UsageError{Msg: err.Error(), Err: err}
}

// exactArgs is cobra.ExactArgs reporting a *domain.UsageError.
func exactArgs(n int) cobra.PositionalArgs {
	check := cobra.ExactArgs(n)
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageError(cmd, err)
		}
		return nil
	}
}
