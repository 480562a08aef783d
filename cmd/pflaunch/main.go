package main

import (
	"context"
	"errors"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/teivr/pflaunch/internal/commands"
)

func main() {
	if err := run(); err != nil {
		if code, ok := exitCode(err); ok {
			os.Exit(code)
		}

		os.Exit(1)
	}
}

func run() error {
	root := cobra.Command{
		Use:   "pflaunch",
		Short: "Launch a particle-filter inference run as a cluster batch job",

		// silence these because a failing inference run already reported
		// itself; we only want cobra output for usage errors
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(commands.Run())
	root.AddCommand(commands.Script())
	root.AddCommand(commands.Submit())

	ctx := context.Background()

	cmd, err := root.ExecuteContextC(ctx)
	if _, ok := exitCode(err); ok {
		// we have a proper exit code from the inference program
		return err
	}

	if err != nil {
		// this is copied from cobra so that for everything but a non-zero
		// exit code from the program we still want to show usage errors and
		// additional error output
		root.Println(cmd.UsageString())
		root.PrintErrln(root.ErrPrefix(), err.Error())
	}

	return err
}

func exitCode(err error) (int, bool) {
	var eerr *exec.ExitError
	if errors.As(err, &eerr) {
		return eerr.ExitCode(), true
	}
	return 0, false
}
