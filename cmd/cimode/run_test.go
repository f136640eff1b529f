package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/cimode/internal/config"
	"git.home.luguber.info/inful/cimode/internal/mode"
	"git.home.luguber.info/inful/cimode/internal/pipeline"
)

type captureRunner struct {
	calls []pipeline.Command
	fail  map[string]error
}

func (c *captureRunner) Run(_ context.Context, cmd pipeline.Command) error {
	c.calls = append(c.calls, cmd)
	if err, ok := c.fail[cmd.Program]; ok {
		return err
	}
	return nil
}

func v2Table(t *testing.T) *mode.Table {
	t.Helper()
	table, err := mode.BuiltinTable(mode.GenerationV2)
	require.NoError(t, err)
	return table
}

func TestRunPipelineLintEndToEnd(t *testing.T) {
	runner := &captureRunner{}
	code, err := runPipeline(context.Background(), v2Table(t), config.Flags{Clippy: "yes"}, runOptions{runner: runner})
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, "cargo clippy --all -- -D warnings", runner.calls[0].String())
}

func TestRunPipelineDefaultEndToEnd(t *testing.T) {
	runner := &captureRunner{}
	code, err := runPipeline(context.Background(), v2Table(t), config.Flags{}, runOptions{runner: runner})
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	var got []string
	for _, c := range runner.calls {
		got = append(got, c.String())
	}
	assert.Equal(t, []string{
		"cargo build --all",
		"cargo test --all --tests",
		"cargo build --benches --all",
	}, got)
}

func TestRunPipelinePropagatesExitStatus(t *testing.T) {
	runner := &captureRunner{fail: map[string]error{
		"cargo": &pipeline.CommandError{Command: pipeline.Command{Program: "cargo"}, ExitCode: 101},
	}}
	code, err := runPipeline(context.Background(), v2Table(t), config.Flags{}, runOptions{runner: runner})
	require.Error(t, err)
	assert.Equal(t, 101, code)
	// First failing command aborts the remainder.
	require.Len(t, runner.calls, 1)
}

func TestRunPipelineWritesReportAndMetrics(t *testing.T) {
	dir := t.TempDir()
	reportPath := filepath.Join(dir, "report.json")
	metricsPath := filepath.Join(dir, "cimode.prom")

	runner := &captureRunner{}
	code, err := runPipeline(context.Background(), v2Table(t), config.Flags{Clippy: "yes"}, runOptions{
		runner:          runner,
		reportPath:      reportPath,
		metricsTextfile: metricsPath,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.FileExists(t, reportPath)
	assert.FileExists(t, metricsPath)
}

func TestShowPipeline(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, showPipeline(&out, v2Table(t), config.Flags{Docs: "yes"}))

	s := out.String()
	assert.Contains(t, s, "mode: docs")
	assert.Contains(t, s, "cargo doc --all --no-deps")
	assert.Contains(t, s, "mdbook build book")
	assert.Contains(t, s, "[tolerated]")
}
