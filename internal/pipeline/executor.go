package pipeline

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/cimode/internal/metrics"
)

// Executor runs pipelines sequentially: exactly one step at a time, each
// traced before it runs, halting on the first non-tolerated failure.
type Executor struct {
	runner   Runner
	recorder metrics.Recorder
}

// NewExecutor constructs an Executor around the given Runner.
func NewExecutor(runner Runner) *Executor {
	return &Executor{runner: runner, recorder: metrics.NoopRecorder{}}
}

// WithRecorder injects a metrics recorder (default is the no-op recorder).
func (e *Executor) WithRecorder(rec metrics.Recorder) *Executor {
	if rec != nil {
		e.recorder = rec
	}
	return e
}

// Run executes the pipeline's steps in order, recording timing and
// classification per step. It returns the run report and the fatal error
// that aborted the pipeline, if any. A tolerated step failure is recorded
// as a warning and never surfaces through the error return.
func (e *Executor) Run(ctx context.Context, p *Pipeline) (*Report, error) {
	report := newReport(p.Mode)
	defer func() {
		report.finish()
		e.recorder.ObserveRunDuration(p.Mode, report.Duration())
		e.recorder.IncRunOutcome(p.Mode, string(report.Outcome))
	}()

	for _, st := range p.Steps {
		select {
		case <-ctx.Done():
			se := newCanceledStepError(st.Name, ctx.Err())
			report.recordError(st.Name, se)
			e.recorder.IncStepResult(p.Mode, st.Name, metrics.ResultCanceled)
			return report, se
		default:
		}

		if st.external() {
			slog.Info("Running command", "step", st.Name, "cmd", st.Command.String())
		} else {
			slog.Info("Running step", "step", st.Name)
		}

		t0 := time.Now()
		var err error
		if st.external() {
			err = e.runner.Run(ctx, st.Command)
		} else {
			err = st.Fn(ctx)
		}
		dur := time.Since(t0)
		report.StepDurations[st.Name] = dur
		e.recorder.ObserveStepDuration(p.Mode, st.Name, dur)

		switch {
		case err == nil:
			e.recorder.IncStepResult(p.Mode, st.Name, metrics.ResultSuccess)
		case ctx.Err() != nil:
			se := newCanceledStepError(st.Name, err)
			report.recordError(st.Name, se)
			e.recorder.IncStepResult(p.Mode, st.Name, metrics.ResultCanceled)
			return report, se
		case st.Tolerated:
			se := newToleratedStepError(st.Name, err)
			slog.Warn("Step failed (tolerated)", "step", st.Name, "error", err)
			report.recordWarning(st.Name, se)
			e.recorder.IncStepResult(p.Mode, st.Name, metrics.ResultTolerated)
		default:
			se := newFatalStepError(st.Name, err)
			slog.Error("Step failed", "step", st.Name, "error", err)
			report.recordError(st.Name, se)
			e.recorder.IncStepResult(p.Mode, st.Name, metrics.ResultFatal)
			return report, se
		}
	}
	return report, nil
}
