package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/teivr/pflaunch/internal/slurm"
)

// Runtime describes the pre-built environment the inference program runs in.
type Runtime struct {
	Activate string `yaml:"activate"`
	Python   string `yaml:"python"`
}

// Submit holds the submission-side settings.
type Submit struct {
	Sbatch string `yaml:"sbatch"`
}

// Config is the full configuration for a launch. Values come from defaults,
// an optional yaml job file, and cli flags, in increasing order of
// precedence.
type Config struct {
	Job     slurm.Directives `yaml:"job"`
	Runtime Runtime          `yaml:"runtime"`
	Command []string         `yaml:"command"`
	Submit  Submit           `yaml:"submit"`

	file string
}

// Default returns the stock configuration for the covid particle-filter
// fit: one task, 4 cpus, 24G, 24 hours.
func Default() Config {
	return Config{
		Job: slurm.Directives{
			JobName:  "tiv-covid-pf",
			Output:   "slurm-%j.out",
			Error:    "slurm-%j.err",
			NTasks:   1,
			CPUs:     4,
			Memory:   24 * slurm.Gibibyte,
			Walltime: slurm.Walltime(24 * time.Hour),
		},
		Runtime: Runtime{
			Activate: "venv/bin/activate",
			Python:   "python",
		},
		Command: []string{"./run_inference.py"},
		Submit: Submit{
			Sbatch: "sbatch",
		},
	}
}

// Flags registers the flags shared by all subcommands.
func (c *Config) Flags(cmd *cobra.Command) {
	f := cmd.Flags()

	f.StringVar(&c.file, "job-file", "", "yaml job description file")

	f.StringVar(&c.Job.JobName, "job-name", c.Job.JobName, "job name passed to the scheduler")
	f.StringVar(&c.Job.Output, "output", c.Job.Output, "stdout log pattern, %j expands to the job id")
	f.StringVar(&c.Job.Error, "error", c.Job.Error, "stderr log pattern, %j expands to the job id")
	f.IntVar(&c.Job.NTasks, "ntasks", c.Job.NTasks, "number of tasks to request")
	f.IntVar(&c.Job.CPUs, "cpus-per-task", c.Job.CPUs, "cpus to request per task")
	f.Var(&c.Job.Memory, "mem", "memory to request, e.g. 24G")
	f.Var(&c.Job.Walltime, "time", "wall-clock limit in HH:MM:SS")
	f.StringSliceVar(&c.Job.MailType, "mail-type", nil, "scheduler mail events, e.g. END,FAIL")
	f.StringVar(&c.Job.MailUser, "mail-user", "", "recipient for scheduler mail notifications")

	f.StringVar(&c.Runtime.Activate, "venv", c.Runtime.Activate, "path to the virtualenv activation artifact")
	f.StringVar(&c.Runtime.Python, "python", c.Runtime.Python, "interpreter used for version reporting")
}

// SubmitFlags registers the flags only the submit subcommand uses.
func (c *Config) SubmitFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&c.Submit.Sbatch, "sbatch", c.Submit.Sbatch, "sbatch executable")
}

// Load merges the yaml job file, if one was given, and the positional
// command argv into the config. Flags set explicitly on the command line win
// over the file; the file wins over defaults.
func (c *Config) Load(flags *pflag.FlagSet, args []string) error {
	if c.file != "" {
		fc := *c

		data, err := os.ReadFile(c.file)
		if err != nil {
			return fmt.Errorf("job file: %w", err)
		}

		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("job file %s: %w", c.file, err)
		}

		c.applyFile(flags, &fc)
	}

	if len(args) > 0 {
		c.Command = args
	}
	if len(c.Command) == 0 {
		return errors.New("no command to run")
	}

	return nil
}

// applyFile copies file values over the config for every field whose flag
// was not set on the command line.
func (c *Config) applyFile(flags *pflag.FlagSet, fc *Config) {
	set := flags.Changed

	if !set("job-name") {
		c.Job.JobName = fc.Job.JobName
	}
	if !set("output") {
		c.Job.Output = fc.Job.Output
	}
	if !set("error") {
		c.Job.Error = fc.Job.Error
	}
	if !set("ntasks") {
		c.Job.NTasks = fc.Job.NTasks
	}
	if !set("cpus-per-task") {
		c.Job.CPUs = fc.Job.CPUs
	}
	if !set("mem") {
		c.Job.Memory = fc.Job.Memory
	}
	if !set("time") {
		c.Job.Walltime = fc.Job.Walltime
	}
	if !set("mail-type") {
		c.Job.MailType = fc.Job.MailType
	}
	if !set("mail-user") {
		c.Job.MailUser = fc.Job.MailUser
	}
	if !set("venv") {
		c.Runtime.Activate = fc.Runtime.Activate
	}
	if !set("python") {
		c.Runtime.Python = fc.Runtime.Python
	}
	if !set("sbatch") {
		c.Submit.Sbatch = fc.Submit.Sbatch
	}

	c.Command = fc.Command
}
