package slurm

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Walltime is a wall-clock limit in slurm's HH:MM:SS form. The hours field
// is not capped at 24.
type Walltime time.Duration

// ParseWalltime parses "HH:MM:SS" (or "MM:SS") into a Walltime.
func ParseWalltime(s string) (Walltime, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid walltime %q: want HH:MM:SS", s)
	}

	fields := make([]int64, 0, 3)
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid walltime %q: want HH:MM:SS", s)
		}
		fields = append(fields, int64(n))
	}
	for len(fields) < 3 {
		fields = append([]int64{0}, fields...)
	}

	h, m, sec := fields[0], fields[1], fields[2]
	if m > 59 || sec > 59 {
		return 0, fmt.Errorf("invalid walltime %q: want HH:MM:SS", s)
	}
	// the hours field is uncapped, but the total still has to fit in a
	// Duration
	if h > math.MaxInt64/int64(time.Hour) {
		return 0, fmt.Errorf("invalid walltime %q: too large", s)
	}

	total := time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(sec)*time.Second

	return Walltime(total), nil
}

func (w Walltime) Duration() time.Duration {
	return time.Duration(w)
}

func (w Walltime) String() string {
	d := time.Duration(w)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// Set implements pflag.Value
func (w *Walltime) Set(s string) error {
	v, err := ParseWalltime(s)
	if err != nil {
		return err
	}
	*w = v
	return nil
}

// Type implements pflag.Value
func (Walltime) Type() string {
	return "walltime"
}

// UnmarshalYAML implements yaml.Unmarshaler
func (w *Walltime) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	return w.Set(s)
}

// MarshalYAML implements yaml.Marshaler
func (w Walltime) MarshalYAML() (any, error) {
	return w.String(), nil
}
