package mode

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/cimode/internal/config"
	"git.home.luguber.info/inful/cimode/internal/pipeline"
)

// Placeholder tokens recognized in command argument templates.
const (
	placeholderBuildArgs = "${build_args}"
	placeholderJobID     = "${travis_job_id}"
)

// When values gate a command spec on the CI toolchain identifier.
const (
	WhenAlways    = ""
	WhenStable    = "stable"
	WhenNonStable = "non-stable"
)

// CommandSpec is one command template within a mode. Either Program or
// Builtin is set: Program templates shell out, Builtin templates run an
// in-process action (currently only copy_tree).
type CommandSpec struct {
	Step      string   `yaml:"step"`
	Program   string   `yaml:"program,omitempty"`
	Builtin   string   `yaml:"builtin,omitempty"`
	Args      []string `yaml:"args,omitempty"`
	Tolerated bool     `yaml:"tolerated,omitempty"`
	When      string   `yaml:"when,omitempty"`
}

// Selector binds one environment flag value to a mode. Selectors are
// evaluated in order; the first match wins, so conflicting flags resolve
// silently by priority rather than by error.
type Selector struct {
	Flag   string `yaml:"flag"`
	Equals string `yaml:"equals"`
	Mode   Mode   `yaml:"mode"`
}

// Table is one versioned mode-selection schema: an ordered selector list
// plus the command sequences for every mode it can select.
type Table struct {
	Generation Generation             `yaml:"generation"`
	Selectors  []Selector             `yaml:"selectors"`
	Modes      map[Mode][]CommandSpec `yaml:"modes"`
}

// Validate checks internal consistency of the table.
func (t *Table) Validate() error {
	if t.Generation == "" {
		return fmt.Errorf("mode table: generation is required")
	}
	if len(t.Modes[ModeDefault]) == 0 {
		return fmt.Errorf("mode table %s: default mode is required", t.Generation)
	}
	for _, sel := range t.Selectors {
		if sel.Flag == "" || sel.Equals == "" {
			return fmt.Errorf("mode table %s: selector for mode %s needs flag and equals", t.Generation, sel.Mode)
		}
		if len(t.Modes[sel.Mode]) == 0 {
			return fmt.Errorf("mode table %s: selector references unknown mode %s", t.Generation, sel.Mode)
		}
	}
	for m, specs := range t.Modes {
		for _, spec := range specs {
			if spec.Step == "" {
				return fmt.Errorf("mode table %s: mode %s has a step without a name", t.Generation, m)
			}
			if (spec.Program == "") == (spec.Builtin == "") {
				return fmt.Errorf("mode table %s: step %s/%s must set exactly one of program or builtin", t.Generation, m, spec.Step)
			}
			if spec.Builtin != "" {
				if _, ok := builtins[spec.Builtin]; !ok {
					return fmt.Errorf("mode table %s: step %s/%s references unknown builtin %q", t.Generation, m, spec.Step, spec.Builtin)
				}
			}
			switch spec.When {
			case WhenAlways, WhenStable, WhenNonStable:
			default:
				return fmt.Errorf("mode table %s: step %s/%s has invalid when %q", t.Generation, m, spec.Step, spec.When)
			}
		}
	}
	return nil
}

// Select walks the selector list in priority order and returns the first
// matching mode, falling back to the default pipeline when nothing
// matches.
func (t *Table) Select(f config.Flags) Mode {
	for _, sel := range t.Selectors {
		if f.Get(sel.Flag) == sel.Equals {
			return sel.Mode
		}
	}
	return ModeDefault
}

// Pipeline instantiates the command sequence for mode m against the flag
// snapshot: toolchain-gated specs are filtered and placeholder arguments
// are expanded.
func (t *Table) Pipeline(m Mode, f config.Flags) (*pipeline.Pipeline, error) {
	specs, ok := t.Modes[m]
	if !ok {
		return nil, fmt.Errorf("mode table %s: no pipeline for mode %s", t.Generation, m)
	}
	p := &pipeline.Pipeline{Mode: string(m)}
	for _, spec := range specs {
		if !spec.applies(f) {
			continue
		}
		args, err := expandArgs(spec.Args, f)
		if err != nil {
			return nil, fmt.Errorf("mode %s step %s: %w", m, spec.Step, err)
		}
		step := pipeline.Step{Name: spec.Step, Tolerated: spec.Tolerated}
		if spec.Builtin != "" {
			fn, err := builtins[spec.Builtin](args)
			if err != nil {
				return nil, fmt.Errorf("mode %s step %s: %w", m, spec.Step, err)
			}
			step.Fn = fn
		} else {
			step.Command = pipeline.Command{Program: spec.Program, Args: args}
		}
		p.Steps = append(p.Steps, step)
	}
	return p, nil
}

// Dispatch selects the mode for the flag snapshot and instantiates its
// pipeline in one call.
func (t *Table) Dispatch(f config.Flags) (*pipeline.Pipeline, error) {
	return t.Pipeline(t.Select(f), f)
}

func (spec CommandSpec) applies(f config.Flags) bool {
	switch spec.When {
	case WhenStable:
		return f.StableToolchain()
	case WhenNonStable:
		return !f.StableToolchain()
	}
	return true
}

// expandArgs substitutes placeholder tokens. ${build_args} splices zero
// or more derived tokens in place; ${travis_job_id} substitutes the job
// identifier verbatim.
func expandArgs(args []string, f config.Flags) ([]string, error) {
	var out []string
	for _, arg := range args {
		switch arg {
		case placeholderBuildArgs:
			out = append(out, f.BuildArgs()...)
		case placeholderJobID:
			out = append(out, f.TravisJobID)
		default:
			if len(arg) > 1 && arg[0] == '$' {
				return nil, fmt.Errorf("unknown placeholder %q", arg)
			}
			out = append(out, arg)
		}
	}
	return out, nil
}

// LoadTable reads a mode table from a YAML file, for schema generations
// newer than the built-in ones.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mode table: %w", err)
	}
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse mode table %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}
