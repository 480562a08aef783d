package job

// ExitCode represents the exit code stored when the job's process finished
type ExitCode int

// Int returns the exit code as an int
func (c ExitCode) Int() int {
	return int(c)
}

//go:generate stringer -type=Status -trimprefix=Status

// Status is the enum representing the state of the launch
type Status int

// Status only ever moves forward through these values. Succeeded and Failed
// are mutually exclusive, so the ordering between them is never exercised.
const (
	StatusUnspecified  Status = iota
	StatusNotStarted          // the job has been built but nothing has run
	StatusEnvActivated        // the runtime environment was found and wired in
	StatusRunning             // the external program has been started
	StatusSucceeded           // the program exited zero
	StatusFailed              // the program exited non-zero or never ran
	StatusReported            // the verdict has been written to the output stream
)
