package slurm

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Memory is a memory request in bytes, rendered in slurm's suffix form
// ("24G", "512M"). Slurm treats these as binary units.
type Memory uint64

const (
	Kibibyte Memory = 1 << (10 * (iota + 1))
	Mebibyte
	Gibibyte
	Tebibyte
)

var memorySuffixes = []struct {
	suffix string
	unit   Memory
}{
	{"T", Tebibyte},
	{"G", Gibibyte},
	{"M", Mebibyte},
	{"K", Kibibyte},
}

// ParseMemory parses a slurm memory quantity. A bare number is megabytes,
// matching sbatch's default unit for --mem.
func ParseMemory(s string) (Memory, error) {
	unit := Mebibyte
	num := strings.ToUpper(strings.TrimSpace(s))

	for _, m := range memorySuffixes {
		if v, ok := strings.CutSuffix(num, m.suffix); ok {
			unit = m.unit
			num = v
			break
		}
	}

	n, err := strconv.ParseUint(num, 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid memory quantity %q", s)
	}
	if n > math.MaxUint64/uint64(unit) {
		return 0, fmt.Errorf("invalid memory quantity %q: too large", s)
	}

	return Memory(n) * unit, nil
}

func (m Memory) String() string {
	for _, s := range memorySuffixes {
		if m >= s.unit && m%s.unit == 0 {
			return fmt.Sprintf("%d%s", uint64(m/s.unit), s.suffix)
		}
	}
	return fmt.Sprintf("%dM", uint64(m/Mebibyte))
}

// Set implements pflag.Value
func (m *Memory) Set(s string) error {
	v, err := ParseMemory(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Type implements pflag.Value
func (Memory) Type() string {
	return "memory"
}

// UnmarshalYAML implements yaml.Unmarshaler
func (m *Memory) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	return m.Set(s)
}

// MarshalYAML implements yaml.Marshaler
func (m Memory) MarshalYAML() (any, error) {
	return m.String(), nil
}
