package job

import (
	"errors"
	"os/exec"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
)

// Job runs one external program and remembers how it went. The command is
// executed exactly once; the exit code is stored the instant the process
// finishes and is never re-derived afterwards.
type Job struct {
	cmd *exec.Cmd

	startOnce sync.Once
	startErr  error

	status atomic.Uint32

	done chan struct{}

	startedAt time.Time

	// these values are only safe to read after done has closed
	endedAt  time.Time
	cmdErr   error
	exitCode *ExitCode
}

// New creates, but does not start, a job around a prepared command. The
// command's stdout and stderr should already be wired up by the caller; the
// job does no redirection of its own.
func New(cmd *exec.Cmd) *Job {
	j := Job{
		cmd:  cmd,
		done: make(chan struct{}),
	}
	j.setStatus(StatusNotStarted)
	return &j
}

// ErrAlreadyStarted is returned when trying to start a job that has already
// been started
var ErrAlreadyStarted = errors.New("already started")

// Start the job process. If Start() is called more than once
// ErrAlreadyStarted will be returned.
func (j *Job) Start() error {
	var started bool
	j.startOnce.Do(func() {
		j.startedAt = time.Now()
		if j.startErr = j.cmd.Start(); j.startErr != nil {
			j.setStatus(StatusFailed)
			close(j.done)
			return
		}
		j.setStatus(StatusRunning)
		started = true
		go j.wait()
	})
	if j.startErr != nil {
		return j.startErr
	}
	if !started {
		return ErrAlreadyStarted
	}
	return nil
}

func (j *Job) wait() {
	defer close(j.done)

	j.cmdErr = j.cmd.Wait()
	j.endedAt = time.Now()

	var ec ExitCode

	if j.cmdErr == nil {
		j.exitCode = &ec
		j.setStatus(StatusSucceeded)
		return
	}

	j.setStatus(StatusFailed)

	var eerr *exec.ExitError
	if errors.As(j.cmdErr, &eerr) {
		ec = ExitCode(eerr.ExitCode())
		if ec < 0 {
			// a signaled child has no exit code of its own; store the
			// 128+signal value the shell would report for it
			if ws, ok := eerr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
				ec = ExitCode(128 + int(ws.Signal()))
			}
		}
		j.exitCode = &ec
	}
}

// Wait blocks until the job completes. Wall-clock enforcement belongs to the
// surrounding scheduler, so there is no timeout here.
func (j *Job) Wait() {
	<-j.done
}

// MarkEnvActivated records that the runtime environment was verified before
// the job started.
func (j *Job) MarkEnvActivated() {
	j.setStatus(StatusEnvActivated)
}

// MarkReported records that the verdict was written out. It is the terminal
// state in all non-aborted runs.
func (j *Job) MarkReported() {
	j.setStatus(StatusReported)
}

// setStatus sets the job status. status can only move to higher values:
// not_started -> env_activated -> running -> succeeded|failed -> reported
func (j *Job) setStatus(st Status) {
	for {
		cur := j.Status()
		if st <= cur {
			return
		}

		if j.status.CompareAndSwap(uint32(cur), uint32(st)) { //nolint:gosec,nolintlint
			return
		}
	}
}

// Status returns the job's status
func (j *Job) Status() Status {
	return Status(j.status.Load())
}

// IsRunning returns whether or not the job process is still running
func (j *Job) IsRunning() bool {
	select {
	case <-j.done:
		return false
	default:
		return true
	}
}

// Err returns the error from running the command, nil while the job is still
// running. For a non-zero exit this is the *exec.ExitError from the process.
func (j *Job) Err() error {
	if j.IsRunning() {
		return nil
	}
	if j.startErr != nil {
		return j.startErr
	}
	return j.cmdErr
}

// ExitCode returns the exit code stored when the process finished. ok is
// false while the job is running, if it never started, or if it terminated
// without producing an exit code.
func (j *Job) ExitCode() (ExitCode, bool) {
	if j.IsRunning() || j.exitCode == nil {
		return 0, false
	}
	return *j.exitCode, true
}

// Elapsed returns the wall-clock time the process took. It is zero until the
// job completes.
func (j *Job) Elapsed() time.Duration {
	if j.IsRunning() || j.endedAt.IsZero() {
		return 0
	}
	return j.endedAt.Sub(j.startedAt)
}
