package matcher

import (
	"fmt"
	"io"
)

// tracer writes diagnostic lines about match attempts. A nil tracer is
// disabled.
type tracer struct {
	out io.Writer
}

func newTracer(w io.Writer) *tracer {
	if w == nil {
		return nil
	}
	return &tracer{out: w}
}

// Log prints a formatted message if tracing is enabled.
func (t *tracer) Log(format string, args ...interface{}) {
	if t != nil {
		fmt.Fprintf(t.out, "[yagrep] "+format+"\n", args...)
	}
}

// Enabled returns whether tracing is enabled.
func (t *tracer) Enabled() bool {
	return t != nil
}
