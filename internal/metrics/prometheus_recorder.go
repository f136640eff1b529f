package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry     *prom.Registry
	stepDuration *prom.HistogramVec
	runDuration  *prom.HistogramVec
	stepResults  *prom.CounterVec
	runOutcome   *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on the
// given registry (a fresh one when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}
	pr.stepDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: "cimode",
		Name:      "step_duration_seconds",
		Help:      "Duration of individual pipeline steps",
		Buckets:   prom.DefBuckets,
	}, []string{"mode", "step"})
	pr.runDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: "cimode",
		Name:      "run_duration_seconds",
		Help:      "Total pipeline run duration",
		Buckets:   prom.DefBuckets,
	}, []string{"mode"})
	pr.stepResults = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "cimode",
		Name:      "step_results_total",
		Help:      "Step result counts by outcome",
	}, []string{"mode", "step", "result"})
	pr.runOutcome = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "cimode",
		Name:      "run_outcomes_total",
		Help:      "Pipeline run outcomes by final status",
	}, []string{"mode", "outcome"})
	reg.MustRegister(pr.stepDuration, pr.runDuration, pr.stepResults, pr.runOutcome)
	return pr
}

func (p *PrometheusRecorder) ObserveStepDuration(mode, step string, d time.Duration) {
	if p == nil || p.stepDuration == nil {
		return
	}
	p.stepDuration.WithLabelValues(mode, step).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRunDuration(mode string, d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.WithLabelValues(mode).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStepResult(mode, step string, result ResultLabel) {
	if p == nil || p.stepResults == nil {
		return
	}
	p.stepResults.WithLabelValues(mode, step, string(result)).Inc()
}

func (p *PrometheusRecorder) IncRunOutcome(mode, outcome string) {
	if p == nil || p.runOutcome == nil {
		return
	}
	p.runOutcome.WithLabelValues(mode, outcome).Inc()
}

// WriteTextfile renders the registry in the Prometheus text exposition
// format, suitable for the node-exporter textfile collector. The write is
// atomic (temp file + rename) so a concurrently scraping exporter never
// observes a partial file.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if p == nil || p.registry == nil {
		return nil
	}
	families, err := p.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create metrics textfile: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := expfmt.NewEncoder(tmp, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, fam := range families {
		if err := enc.Encode(fam); err != nil {
			tmp.Close()
			return fmt.Errorf("encode metrics: %w", err)
		}
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
