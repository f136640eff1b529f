package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/cimode/internal/config"
	"git.home.luguber.info/inful/cimode/internal/metrics"
	"git.home.luguber.info/inful/cimode/internal/mode"
	"git.home.luguber.info/inful/cimode/internal/pipeline"
)

type runOptions struct {
	dir             string
	reportPath      string
	metricsTextfile string

	// runner overrides the default ExecRunner (tests only).
	runner pipeline.Runner
}

// runPipeline dispatches the flag snapshot to a pipeline, executes it,
// and returns the process exit code. Report and metrics persistence
// failures are logged but never mask the pipeline's own status.
func runPipeline(ctx context.Context, table *mode.Table, flags config.Flags, opts runOptions) (int, error) {
	p, err := table.Dispatch(flags)
	if err != nil {
		return 1, err
	}
	slog.Info("Selected build mode", "mode", p.Mode, "generation", table.Generation, "steps", len(p.Steps))

	runner := opts.runner
	if runner == nil {
		runner = &pipeline.ExecRunner{Dir: opts.dir}
	}
	executor := pipeline.NewExecutor(runner)

	var prometheus *metrics.PrometheusRecorder
	if opts.metricsTextfile != "" {
		prometheus = metrics.NewPrometheusRecorder(prom.NewRegistry())
		executor.WithRecorder(prometheus)
	}

	report, runErr := executor.Run(ctx, p)

	if opts.reportPath != "" {
		if err := report.WriteFile(opts.reportPath); err != nil {
			slog.Warn("Failed to write run report", "path", opts.reportPath, "error", err)
		}
	}
	if prometheus != nil {
		if err := prometheus.WriteTextfile(opts.metricsTextfile); err != nil {
			slog.Warn("Failed to write metrics textfile", "path", opts.metricsTextfile, "error", err)
		}
	}

	slog.Info("Pipeline finished",
		"run_id", report.RunID,
		"mode", report.Mode,
		"outcome", report.Outcome,
		"duration", report.Duration())
	return pipeline.ExitStatus(runErr), runErr
}

// showPipeline prints the selected pipeline without executing anything.
func showPipeline(w io.Writer, table *mode.Table, flags config.Flags) error {
	p, err := table.Dispatch(flags)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "mode: %s (generation %s)\n", p.Mode, table.Generation)
	for _, st := range p.Steps {
		suffix := ""
		if st.Tolerated {
			suffix = "  [tolerated]"
		}
		if st.Fn != nil {
			fmt.Fprintf(w, "  %-12s (builtin)%s\n", st.Name, suffix)
			continue
		}
		fmt.Fprintf(w, "  %-12s %s%s\n", st.Name, st.Command.String(), suffix)
	}
	return nil
}
