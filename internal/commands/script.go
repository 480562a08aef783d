package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/teivr/pflaunch/internal/config"
)

type script struct {
	cfg   config.Config
	write string
}

// Script renders the batch script that submit hands to the scheduler.
func Script() *cobra.Command {
	s := script{cfg: config.Default()}

	cmd := cobra.Command{
		Use:   "script [flags] [-- command [args]...]",
		Short: "Render the batch submission script for the job",
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.run(cmd, args)
		},
	}

	s.cfg.Flags(&cmd)
	cmd.Flags().StringVar(&s.write, "write", "", "write the script to this file instead of stdout")

	return &cmd
}

func (s *script) run(cmd *cobra.Command, args []string) error {
	if err := s.cfg.Load(cmd.Flags(), args); err != nil {
		return err
	}

	self, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locating launcher binary: %w", err)
	}

	w := cmd.OutOrStdout()
	if s.write != "" {
		f, err := os.OpenFile(s.write, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o755)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	return renderScript(w, &s.cfg, self)
}

// renderScript writes the full batch script: the #SBATCH directive header
// the scheduler reads at submission time, then a re-invocation of this
// binary as the node-side payload.
func renderScript(w io.Writer, cfg *config.Config, self string) error {
	if err := cfg.Job.Validate(); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "#!/bin/bash"); err != nil {
		return err
	}
	if err := cfg.Job.Render(w); err != nil {
		return err
	}

	payload := []string{
		self, "run",
		"--venv", cfg.Runtime.Activate,
		"--python", cfg.Runtime.Python,
		"--",
	}
	payload = append(payload, cfg.Command...)

	_, err := fmt.Fprintf(w, "\n%s\n", shellquote.Join(payload...))
	return err
}
