// Package pipeline models one CI build mode as an ordered sequence of
// steps and executes it sequentially with fail-fast semantics. A step is
// either an external command or an in-process action; a step may be
// marked tolerated, in which case its failure is recorded as a warning
// and does not abort the remainder of the pipeline.
package pipeline

import (
	"context"
	"strings"
)

// Command describes one external process invocation.
type Command struct {
	Program string   `yaml:"program" json:"program"`
	Args    []string `yaml:"args" json:"args,omitempty"`
}

// String renders the command the way a shell trace (`set -x`) would.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Program
	}
	return c.Program + " " + strings.Join(c.Args, " ")
}

// Step is a discrete unit of work in a pipeline. Exactly one of Command
// or Fn is set: Command-backed steps shell out through the Runner,
// Fn-backed steps run in-process (e.g. copying a rendered book into the
// documentation output tree).
type Step struct {
	Name      string
	Command   Command
	Fn        func(ctx context.Context) error
	Tolerated bool
}

// external reports whether the step shells out to an external program.
func (s Step) external() bool { return s.Fn == nil }

// Pipeline is an ordered sequence of steps representing one CI build mode.
type Pipeline struct {
	Mode  string
	Steps []Step
}
