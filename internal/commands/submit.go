package commands

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/teivr/pflaunch/internal/config"
)

type submit struct {
	cfg config.Config
}

// Submit renders the batch script and hands it to the scheduler.
func Submit() *cobra.Command {
	s := submit{cfg: config.Default()}

	cmd := cobra.Command{
		Use:   "submit [flags] [-- command [args]...]",
		Short: "Submit the job to the cluster scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.run(cmd, args)
		},
	}

	s.cfg.Flags(&cmd)
	s.cfg.SubmitFlags(&cmd)

	return &cmd
}

func (s *submit) run(cmd *cobra.Command, args []string) error {
	if err := s.cfg.Load(cmd.Flags(), args); err != nil {
		return err
	}

	self, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locating launcher binary: %w", err)
	}

	var buf bytes.Buffer
	if err := renderScript(&buf, &s.cfg, self); err != nil {
		return err
	}

	// sbatch reads the script from stdin; its response (the assigned job
	// id) passes straight through to our output
	sb := exec.CommandContext(cmd.Context(), s.cfg.Submit.Sbatch)
	sb.Stdin = &buf
	sb.Stdout = cmd.OutOrStdout()
	sb.Stderr = cmd.ErrOrStderr()

	if err := sb.Run(); err != nil {
		return fmt.Errorf("%s: %w", s.cfg.Submit.Sbatch, err)
	}
	return nil
}
