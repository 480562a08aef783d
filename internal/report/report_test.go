package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teivr/pflaunch/internal/slurm"
)

func fixedClock() func() time.Time {
	t := time.Date(2026, time.March, 14, 9, 26, 53, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Hour)
		return t
	}
}

func newTestReporter(buf *bytes.Buffer) *Reporter {
	r := New(buf)
	r.now = fixedClock()
	return r
}

func TestReporter(t *testing.T) {
	t.Parallel()

	env := slurm.Env{JobID: "432192", NodeList: "spartan-bm012"}

	t.Run("preamble", func(t *testing.T) {
		t.Parallel()
		assert := assert.New(t)

		var buf bytes.Buffer
		newTestReporter(&buf).Preamble(env, "/data/tiv")

		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		require.Len(t, lines, 4)
		assert.Equal("Job ID: 432192", lines[0])
		assert.Equal("Node: spartan-bm012", lines[1])
		assert.Contains(lines[2], "Start time: ")
		assert.Equal("Working directory: /data/tiv", lines[3])
	})

	t.Run("success-run", func(t *testing.T) {
		t.Parallel()
		assert := assert.New(t)

		var buf bytes.Buffer
		r := newTestReporter(&buf)

		r.Preamble(env, "/data/tiv")
		r.RuntimeVersion("Python 3.11.2")
		r.Success(90 * time.Minute)
		r.End()

		out := buf.String()
		assert.Equal(1, strings.Count(out, "Job completed successfully!"))
		assert.NotContains(out, "Job failed")
		assert.Contains(out, "Runtime: Python 3.11.2\n")
		assert.Contains(out, "Elapsed: 1h30m0s\n")

		// the end timestamp is the final line
		assert.True(strings.HasSuffix(out, "End time: Sat Mar 14 11:26:53 UTC 2026\n"))
	})

	t.Run("failure-run", func(t *testing.T) {
		t.Parallel()
		assert := assert.New(t)

		var buf bytes.Buffer
		r := newTestReporter(&buf)

		r.Preamble(env, "/data/tiv")
		r.Failure(137, 3*time.Second)
		r.End()

		out := buf.String()
		assert.Contains(out, "Job failed with exit code 137\n")
		assert.NotContains(out, "Job completed successfully!")
		assert.True(strings.HasSuffix(out, "End time: Sat Mar 14 11:26:53 UTC 2026\n"))
	})

	t.Run("verdict-precedes-end-time", func(t *testing.T) {
		t.Parallel()
		assert := assert.New(t)

		var buf bytes.Buffer
		r := newTestReporter(&buf)

		r.Success(time.Second)
		r.End()

		out := buf.String()
		assert.Less(
			strings.Index(out, "Job completed successfully!"),
			strings.Index(out, "End time: "),
		)
	})
}
