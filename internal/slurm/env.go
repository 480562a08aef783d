package slurm

import "os"

// Env holds the scheduler-supplied runtime variables. They are read once,
// for the diagnostic preamble only, and are empty when running outside an
// allocation.
type Env struct {
	JobID    string
	NodeList string
}

// ReadEnv reads the slurm job environment.
func ReadEnv() Env {
	return Env{
		JobID:    os.Getenv("SLURM_JOB_ID"),
		NodeList: os.Getenv("SLURM_JOB_NODELIST"),
	}
}
