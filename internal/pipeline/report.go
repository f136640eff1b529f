package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// Outcome is the typed enumeration of final run result states.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeFailed   Outcome = "failed"
	OutcomeCanceled Outcome = "canceled"
)

// Report captures what one dispatcher invocation did: which pipeline ran,
// per-step timing and classification, and the derived overall outcome.
// A tolerated step failure is a warning and leaves the outcome at success.
type Report struct {
	RunID          string
	Mode           string
	Start          time.Time
	End            time.Time
	StepDurations  map[string]time.Duration
	StepErrorKinds map[string]StepErrorKind
	Errors         []error
	Warnings       []error
	Outcome        Outcome
}

func newReport(mode string) *Report {
	return &Report{
		RunID:          uuid.NewString(),
		Mode:           mode,
		Start:          time.Now(),
		StepDurations:  make(map[string]time.Duration),
		StepErrorKinds: make(map[string]StepErrorKind),
	}
}

func (r *Report) recordError(step string, se *StepError) {
	r.StepErrorKinds[step] = se.Kind
	r.Errors = append(r.Errors, se)
}

func (r *Report) recordWarning(step string, se *StepError) {
	r.StepErrorKinds[step] = se.Kind
	r.Warnings = append(r.Warnings, se)
}

// finish stamps the end time and derives the overall outcome.
func (r *Report) finish() {
	r.End = time.Now()
	r.Outcome = OutcomeSuccess
	for _, kind := range r.StepErrorKinds {
		switch kind {
		case StepErrorCanceled:
			r.Outcome = OutcomeCanceled
			return
		case StepErrorFatal:
			r.Outcome = OutcomeFailed
		}
	}
}

// Duration returns the total wall-clock time of the run.
func (r *Report) Duration() time.Duration { return r.End.Sub(r.Start) }

// reportSerializable is the stable JSON mirror of Report (errors as
// strings, durations in milliseconds).
type reportSerializable struct {
	SchemaVersion  int               `json:"schema_version"`
	RunID          string            `json:"run_id"`
	Mode           string            `json:"mode"`
	Start          time.Time         `json:"start"`
	End            time.Time         `json:"end"`
	DurationMs     int64             `json:"duration_ms"`
	StepDurations  map[string]int64  `json:"step_durations_ms"`
	StepErrorKinds map[string]string `json:"step_error_kinds,omitempty"`
	Errors         []string          `json:"errors,omitempty"`
	Warnings       []string          `json:"warnings,omitempty"`
	Outcome        Outcome           `json:"outcome"`
}

const reportSchemaVersion = 1

func (r *Report) serializable() reportSerializable {
	s := reportSerializable{
		SchemaVersion: reportSchemaVersion,
		RunID:         r.RunID,
		Mode:          r.Mode,
		Start:         r.Start,
		End:           r.End,
		DurationMs:    r.Duration().Milliseconds(),
		StepDurations: make(map[string]int64, len(r.StepDurations)),
		Outcome:       r.Outcome,
	}
	for step, d := range r.StepDurations {
		s.StepDurations[step] = d.Milliseconds()
	}
	if len(r.StepErrorKinds) > 0 {
		s.StepErrorKinds = make(map[string]string, len(r.StepErrorKinds))
		for step, kind := range r.StepErrorKinds {
			s.StepErrorKinds[step] = string(kind)
		}
	}
	for _, err := range r.Errors {
		s.Errors = append(s.Errors, err.Error())
	}
	for _, err := range r.Warnings {
		s.Warnings = append(s.Warnings, err.Error())
	}
	return s
}

// WriteFile persists the report as indented JSON.
func (r *Report) WriteFile(path string) error {
	data, err := json.MarshalIndent(r.serializable(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
