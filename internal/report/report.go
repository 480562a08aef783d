// Package report owns every human-readable line the launcher writes about a
// run. The lines land in the scheduler's captured output stream, so their
// wording is part of the tool's observable behavior and lives in one place.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/teivr/pflaunch/internal/slurm"
)

const timeFormat = time.UnixDate

// Reporter writes the diagnostic preamble and the terminal verdict for one
// run.
type Reporter struct {
	w   io.Writer
	now func() time.Time
}

// New returns a Reporter writing to w.
func New(w io.Writer) *Reporter {
	return &Reporter{w: w, now: time.Now}
}

// Preamble prints the job identity, allocated nodes, start timestamp and
// working directory. It runs before any work, environment activation
// included, so a job that dies during setup still identifies itself in the
// log.
func (r *Reporter) Preamble(env slurm.Env, workdir string) {
	fmt.Fprintf(r.w, "Job ID: %s\n", env.JobID)
	fmt.Fprintf(r.w, "Node: %s\n", env.NodeList)
	fmt.Fprintf(r.w, "Start time: %s\n", r.now().Format(timeFormat))
	fmt.Fprintf(r.w, "Working directory: %s\n", workdir)
}

// RuntimeVersion prints the activated runtime's version string.
func (r *Reporter) RuntimeVersion(v string) {
	fmt.Fprintf(r.w, "Runtime: %s\n", v)
}

// Success prints the success verdict.
func (r *Reporter) Success(elapsed time.Duration) {
	fmt.Fprintln(r.w, "Job completed successfully!")
	fmt.Fprintf(r.w, "Elapsed: %s\n", elapsed.Round(time.Millisecond))
}

// Failure prints the failure verdict with the exit code that was stored when
// the program finished.
func (r *Reporter) Failure(code int, elapsed time.Duration) {
	fmt.Fprintf(r.w, "Job failed with exit code %d\n", code)
	fmt.Fprintf(r.w, "Elapsed: %s\n", elapsed.Round(time.Millisecond))
}

// Error prints the failure verdict for a program that terminated without an
// exit code, e.g. one that never started or was killed by a signal.
func (r *Reporter) Error(err error) {
	fmt.Fprintf(r.w, "Job failed: %v\n", err)
}

// End prints the end timestamp. It is the final line of every run that
// regains control from the external program.
func (r *Reporter) End() {
	fmt.Fprintf(r.w, "End time: %s\n", r.now().Format(timeFormat))
}
