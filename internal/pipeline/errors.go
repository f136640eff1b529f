package pipeline

import (
	"errors"
	"fmt"
)

// ErrToolMissing indicates the external program for a step is not present
// in the execution environment.
var ErrToolMissing = errors.New("tool not found")

// StepErrorKind enumerates structured step error categories.
type StepErrorKind string

const (
	StepErrorFatal     StepErrorKind = "fatal"     // Pipeline must abort.
	StepErrorTolerated StepErrorKind = "tolerated" // Recorded; pipeline continues.
	StepErrorCanceled  StepErrorKind = "canceled"  // Context cancellation.
)

// StepError is a structured error carrying category and underlying cause.
type StepError struct {
	Kind StepErrorKind
	Step string
	Err  error
}

func (e *StepError) Error() string { return fmt.Sprintf("%s step %s: %v", e.Kind, e.Step, e.Err) }
func (e *StepError) Unwrap() error { return e.Err }

func newFatalStepError(step string, err error) *StepError {
	return &StepError{Kind: StepErrorFatal, Step: step, Err: err}
}
func newToleratedStepError(step string, err error) *StepError {
	return &StepError{Kind: StepErrorTolerated, Step: step, Err: err}
}
func newCanceledStepError(step string, err error) *StepError {
	return &StepError{Kind: StepErrorCanceled, Step: step, Err: err}
}

// CommandError reports a nonzero exit from an external command.
type CommandError struct {
	Command  Command
	ExitCode int
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %q exited with status %d", e.Command.String(), e.ExitCode)
}

// ExitStatus extracts the process exit code the dispatcher should
// propagate for err: the failing command's status when known, 1 for any
// other fatal error, 0 for nil.
func ExitStatus(err error) int {
	if err == nil {
		return 0
	}
	var ce *CommandError
	if errors.As(err, &ce) && ce.ExitCode > 0 {
		return ce.ExitCode
	}
	return 1
}
