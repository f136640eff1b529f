// Package metrics provides observability hooks for dispatcher runs.
//
// The package follows the Null Object pattern: components receive a
// Recorder through dependency injection and default to NoopRecorder, so
// metrics collection never requires nil checks in the execution path.
// A one-shot CLI has no scrape endpoint, so the Prometheus recorder is
// exported through a textfile (node-exporter textfile collector format)
// instead of an HTTP listener.
package metrics

import "time"

// ResultLabel enumerates step result categories for counters.
type ResultLabel string

const (
	ResultSuccess   ResultLabel = "success"
	ResultTolerated ResultLabel = "tolerated"
	ResultFatal     ResultLabel = "fatal"
	ResultCanceled  ResultLabel = "canceled"
)

// Recorder defines observability hooks for pipeline and step metrics.
// All methods must be safe for zero-value receivers when using the
// NoopRecorder (allowing optional injection).
type Recorder interface {
	ObserveStepDuration(mode, step string, d time.Duration)
	ObserveRunDuration(mode string, d time.Duration)
	IncStepResult(mode, step string, result ResultLabel)
	IncRunOutcome(mode, outcome string)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are
// not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStepDuration(string, string, time.Duration) {}
func (NoopRecorder) ObserveRunDuration(string, time.Duration)          {}
func (NoopRecorder) IncStepResult(string, string, ResultLabel)         {}
func (NoopRecorder) IncRunOutcome(string, string)                      {}
