package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

func TestNoopRecorderIsSafe(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveStepDuration("default", "build", time.Second)
	r.ObserveRunDuration("default", time.Second)
	r.IncStepResult("default", "build", ResultSuccess)
	r.IncRunOutcome("default", "success")
}

func TestPrometheusRecorderNilSafe(t *testing.T) {
	var p *PrometheusRecorder
	p.ObserveStepDuration("default", "build", time.Second)
	p.IncRunOutcome("default", "success")
	if err := p.WriteTextfile("/nonexistent/metrics.prom"); err != nil {
		t.Fatalf("nil recorder write should be a no-op, got %v", err)
	}
}

func TestPrometheusRecorderTextfile(t *testing.T) {
	reg := prom.NewRegistry()
	p := NewPrometheusRecorder(reg)

	p.ObserveStepDuration("default", "build", 2*time.Second)
	p.IncStepResult("default", "build", ResultSuccess)
	p.ObserveRunDuration("default", 3*time.Second)
	p.IncRunOutcome("default", "success")

	path := filepath.Join(t.TempDir(), "cimode.prom")
	if err := p.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	out := string(data)
	for _, want := range []string{
		"cimode_step_duration_seconds",
		"cimode_step_results_total",
		"cimode_run_outcomes_total",
		`mode="default"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("textfile missing %q", want)
		}
	}
}
