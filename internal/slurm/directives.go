package slurm

import (
	"fmt"
	"io"
	"strings"
)

// Directives is the flat resource-request record consumed by the scheduler
// at submission time. It is written once into the batch script header and
// never touched again for the lifetime of the job.
type Directives struct {
	JobName  string   `yaml:"job-name"`
	Output   string   `yaml:"output"` // log path pattern, %j expands to the job id
	Error    string   `yaml:"error"`
	NTasks   int      `yaml:"ntasks"`
	CPUs     int      `yaml:"cpus-per-task"`
	Memory   Memory   `yaml:"mem"`
	Walltime Walltime `yaml:"time"`

	// Mail directives are emitted only when both fields are set.
	MailType []string `yaml:"mail-type"`
	MailUser string   `yaml:"mail-user"`
}

func (d *Directives) Validate() error {
	if d.JobName == "" {
		return fmt.Errorf("job-name is required")
	}
	if d.NTasks < 1 {
		return fmt.Errorf("ntasks must be at least 1, got %d", d.NTasks)
	}
	if d.CPUs < 1 {
		return fmt.Errorf("cpus-per-task must be at least 1, got %d", d.CPUs)
	}
	if d.Memory == 0 {
		return fmt.Errorf("mem is required")
	}
	if d.Walltime <= 0 {
		return fmt.Errorf("time is required")
	}
	if len(d.MailType) > 0 && d.MailUser == "" {
		return fmt.Errorf("mail-type set without mail-user")
	}
	return nil
}

// Render writes the #SBATCH header lines. The scheduler parses these from
// the submitted script; the launcher itself never reads them back.
func (d *Directives) Render(w io.Writer) error {
	lines := []string{
		fmt.Sprintf("--job-name=%s", d.JobName),
		fmt.Sprintf("--output=%s", d.Output),
		fmt.Sprintf("--error=%s", d.Error),
		fmt.Sprintf("--ntasks=%d", d.NTasks),
		fmt.Sprintf("--cpus-per-task=%d", d.CPUs),
		fmt.Sprintf("--mem=%s", d.Memory),
		fmt.Sprintf("--time=%s", d.Walltime),
	}

	if len(d.MailType) > 0 && d.MailUser != "" {
		lines = append(lines,
			fmt.Sprintf("--mail-type=%s", strings.Join(d.MailType, ",")),
			fmt.Sprintf("--mail-user=%s", d.MailUser),
		)
	}

	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "#SBATCH %s\n", l); err != nil {
			return err
		}
	}
	return nil
}
