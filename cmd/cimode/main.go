// Command cimode is a build-mode dispatcher for CI pipelines. It reads a
// small set of environment toggles, selects exactly one build pipeline
// from a versioned mode table, executes the pipeline's external commands
// sequentially with fail-fast semantics, and exits with a status
// reflecting the first non-tolerated failure.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/cimode/internal/config"
	"git.home.luguber.info/inful/cimode/internal/mode"
	"git.home.luguber.info/inful/cimode/internal/version"
)

var CLI struct {
	Verbose bool   `short:"v" help:"Enable verbose logging"`
	Schema  string `help:"Built-in mode table generation (v1 or v2)" default:"v2"`
	Modes   string `help:"Load the mode table from a YAML file instead of a built-in generation"`

	Run struct {
		Dir             string `help:"Working directory for external commands"`
		Report          string `help:"Write a JSON run report to this file"`
		MetricsTextfile string `help:"Write Prometheus metrics in textfile-collector format to this file"`
	} `cmd:"" default:"1" help:"Select the build mode from the environment and execute it"`

	Show struct{} `cmd:"" help:"Print the pipeline that would run, without executing"`

	Version struct{} `cmd:"" help:"Print version information"`
}

func main() {
	ctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	switch ctx.Command() {
	case "run":
		table, flags, err := loadDispatch()
		if err != nil {
			slog.Error("Dispatch setup failed", "error", err)
			os.Exit(1)
		}
		runCtx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		code, err := runPipeline(runCtx, table, flags, runOptions{
			dir:             CLI.Run.Dir,
			reportPath:      CLI.Run.Report,
			metricsTextfile: CLI.Run.MetricsTextfile,
		})
		if err != nil {
			slog.Error("Pipeline failed", "error", err)
		}
		cancel()
		os.Exit(code)
	case "show":
		table, flags, err := loadDispatch()
		if err != nil {
			slog.Error("Dispatch setup failed", "error", err)
			os.Exit(1)
		}
		if err := showPipeline(os.Stdout, table, flags); err != nil {
			slog.Error("Show failed", "error", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("cimode %s (commit %s, built %s)\n", version.Version, version.GitCommit, version.BuildTime)
	}
}

// loadDispatch loads the flag snapshot and resolves the mode table from
// either the --modes file or the selected built-in generation.
func loadDispatch() (*mode.Table, config.Flags, error) {
	flags, err := config.Load()
	if err != nil {
		return nil, config.Flags{}, err
	}
	if CLI.Modes != "" {
		table, err := mode.LoadTable(CLI.Modes)
		if err != nil {
			return nil, config.Flags{}, err
		}
		return table, flags, nil
	}
	table, err := mode.BuiltinTable(mode.Generation(CLI.Schema))
	if err != nil {
		return nil, config.Flags{}, err
	}
	return table, flags, nil
}
