package pipeline

import (
	"context"
	"errors"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

// Report lists the stages that ran and the stages whose gate was closed.
type Report struct {
	Executed []string
	Skipped  []string
}

// Run executes stages in order and stops at the first failure.
// Every stage is recorded as a telemetry vertex; skipped stages are marked cached.
func Run(ctx context.Context, tel ports.Telemetry, stages []Stage) (Report, error) {
	var report Report
	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		name := stage.Name()
		var opts []ports.VertexOption
		if step, ok := stage.(*Step); ok && step.Internal {
			opts = append(opts, ports.WithInternal())
		}
		stageCtx, vertex := tel.Record(ctx, name, opts...)

		stale, err := stage.IsStale(stageCtx)
		if err != nil {
			vertex.Log(domain.LogLevelError, "checking outputs: "+err.Error())
			vertex.Complete(err)
			return report, stageError(name, err)
		}
		if !stale {
			vertex.Log(domain.LogLevelInfo, "up to date")
			vertex.Cached()
			vertex.Complete(nil)
			report.Skipped = append(report.Skipped, name)
			continue
		}

		err = stage.Run(stageCtx)
		if err != nil {
			vertex.Log(domain.LogLevelError, err.Error())
		}
		vertex.Complete(err)
		if err != nil {
			return report, stageError(name, err)
		}
		report.Executed = append(report.Executed, name)
	}
	return report, nil
}

func stageError(name string, err error) error {
	return zerr.With(errors.Join(domain.ErrStageFailed, err), "stage", name)
}
