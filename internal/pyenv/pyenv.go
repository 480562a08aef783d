// Package pyenv wraps commands so they run inside a pre-built Python
// virtualenv. The environment is activated by sourcing its activation
// artifact in a shell around the child process; nothing is installed or
// modified here.
package pyenv

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"
)

// Env describes the runtime environment for the inference program.
type Env struct {
	// Activate is the path to the activation artifact, usually relative to
	// the job's working directory (e.g. "venv/bin/activate").
	Activate string

	// Python is the interpreter name used for version reporting.
	Python string
}

// Check verifies that the activation artifact exists. A missing artifact is
// fatal to the launch: nothing after environment setup may run.
func (e *Env) Check() error {
	info, err := os.Stat(e.Activate)
	if err != nil {
		return fmt.Errorf("activation artifact %q: %w", e.Activate, err)
	}
	if info.IsDir() {
		return fmt.Errorf("activation artifact %q: is a directory", e.Activate)
	}
	return nil
}

// Command wraps argv so it runs with the activation artifact sourced. The
// child replaces the wrapping shell via exec, so the returned command's exit
// code is the program's own (or the shell's 127 if the program is missing).
func (e *Env) Command(ctx context.Context, argv []string) *exec.Cmd {
	script := fmt.Sprintf(". %s && exec %s",
		shellquote.Join(e.Activate),
		shellquote.Join(argv...),
	)
	return exec.CommandContext(ctx, "bash", "-c", script)
}

// Version reports the runtime's version string from inside the activated
// environment.
func (e *Env) Version(ctx context.Context) (string, error) {
	cmd := e.Command(ctx, []string{e.Python, "--version"})
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%s --version: %w", e.Python, err)
	}
	return strings.TrimSpace(string(out)), nil
}
