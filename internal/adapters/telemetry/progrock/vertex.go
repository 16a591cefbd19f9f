package progrock

import (
	"fmt"
	"io"
	"sync"

	"github.com/vito/progrock"
	"go.trai.ch/kiln/internal/core/domain"
)

// Vertex implements ports.Vertex for one pipeline stage.
type Vertex struct {
	stage string
	rec   *progrock.VertexRecorder
	done  sync.Once
}

// Stdout receives the stage's tool output.
func (v *Vertex) Stdout() io.Writer { return v.rec.Stdout() }

// Stderr receives the stage's tool diagnostics.
func (v *Vertex) Stderr() io.Writer { return v.rec.Stderr() }

// Log writes msg to the stage output. Warnings and errors go to stderr.
func (v *Vertex) Log(level domain.LogLevel, msg string) {
	w := v.rec.Stdout()
	if level >= domain.LogLevelWarn {
		w = v.rec.Stderr()
	}
	_, _ = fmt.Fprintf(w, "%s [%s] %s\n", v.stage, level, msg)
}

// Complete finishes the stage. Only the first call is recorded.
func (v *Vertex) Complete(err error) {
	v.done.Do(func() {
		v.rec.Done(err)
	})
}

// Cached marks the stage as up to date.
func (v *Vertex) Cached() {
	v.rec.Cached()
}
