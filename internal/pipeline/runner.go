package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Runner executes external commands. The production implementation shells
// out through os/exec; tests inject a fake to capture command sequences
// without spawning processes.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// ExecRunner runs commands as child processes with inherited stdio, so
// the aggregated output of whichever tools ran is the user-visible log.
type ExecRunner struct {
	Dir    string    // working directory for every command; empty means inherit
	Stdout io.Writer // defaults to os.Stdout
	Stderr io.Writer // defaults to os.Stderr
}

func (r *ExecRunner) Run(ctx context.Context, cmd Command) error {
	if _, err := exec.LookPath(cmd.Program); err != nil {
		return fmt.Errorf("%w: %s", ErrToolMissing, cmd.Program)
	}

	c := exec.CommandContext(ctx, cmd.Program, cmd.Args...)
	c.Dir = r.Dir
	c.Stdin = os.Stdin
	c.Stdout = r.Stdout
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}
	c.Stderr = r.Stderr
	if c.Stderr == nil {
		c.Stderr = os.Stderr
	}

	if err := c.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &CommandError{Command: cmd, ExitCode: exitErr.ExitCode()}
		}
		return fmt.Errorf("run %q: %w", cmd.String(), err)
	}
	return nil
}
