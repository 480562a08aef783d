package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/teivr/pflaunch/internal/config"
	"github.com/teivr/pflaunch/internal/job"
	"github.com/teivr/pflaunch/internal/pyenv"
	"github.com/teivr/pflaunch/internal/report"
	"github.com/teivr/pflaunch/internal/slurm"
)

type run struct {
	cfg config.Config
}

// Run is the node-side half of the launcher: it is what the submitted batch
// script executes once the scheduler has allocated a node.
func Run() *cobra.Command {
	r := run{cfg: config.Default()}

	cmd := cobra.Command{
		Use:   "run [flags] [-- command [args]...]",
		Short: "Run the inference program in the activated environment and report its exit status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, args)
		},
	}

	r.cfg.Flags(&cmd)

	return &cmd
}

func (r *run) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if err := r.cfg.Load(cmd.Flags(), args); err != nil {
		return err
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getwd: %w", err)
	}

	env := slurm.ReadEnv()
	if env.JobID == "" {
		// not inside an allocation, tag the run with a local id instead
		slog.Warn("no scheduler job environment found")
		id, err := job.NewID()
		if err != nil {
			return err
		}
		env.JobID = id.String()
	}

	rep := report.New(cmd.OutOrStdout())
	rep.Preamble(env, wd)

	py := pyenv.Env{
		Activate: r.cfg.Runtime.Activate,
		Python:   r.cfg.Runtime.Python,
	}

	// a missing activation artifact aborts the launch here, before the
	// program runs and before any verdict is printed
	if err := py.Check(); err != nil {
		return err
	}

	ver, err := py.Version(ctx)
	if err != nil {
		return fmt.Errorf("runtime version: %w", err)
	}
	rep.RuntimeVersion(ver)

	c := py.Command(ctx, r.cfg.Command)
	c.Stdout = cmd.OutOrStdout()
	c.Stderr = cmd.ErrOrStderr()

	j := job.New(c)
	j.MarkEnvActivated()

	if err := j.Start(); err != nil {
		rep.Error(err)
		rep.End()
		return err
	}

	j.Wait()

	// branch on the code stored when the process finished, never on a
	// value re-read after later writes
	code, ok := j.ExitCode()
	switch {
	case ok && code == 0:
		rep.Success(j.Elapsed())
	case ok:
		rep.Failure(code.Int(), j.Elapsed())
	default:
		rep.Error(j.Err())
	}
	j.MarkReported()

	rep.End()

	// propagate the program's exit code as our own
	return j.Err()
}
