// Package mode maps the environment flag snapshot to exactly one build
// pipeline. The flag→mode priority list and the per-mode command
// sequences are data (a versioned Table), not branch logic: the two
// historical CI configuration generations are both shipped as built-in
// tables, and future generations can be loaded from a YAML file without
// code changes.
package mode

// Mode identifies one of the build pipelines.
type Mode string

const (
	ModeLint     Mode = "lint"
	ModeDocs     Mode = "docs"
	ModeCoverage Mode = "coverage"
	ModeBench    Mode = "bench"
	ModeFmt      Mode = "fmt"
	ModeDefault  Mode = "default"
)

// Generation identifies a versioned mode-table schema.
type Generation string

const (
	// GenerationV1 is the legacy schema: a BENCHMARK branch ahead of
	// RUSTFMT, format checking via `--write-mode diff`, and a default
	// pipeline that builds with --release and always tests with --tests.
	GenerationV1 Generation = "v1"

	// GenerationV2 is the current schema: RUSTFMT is the fourth branch
	// (no BENCHMARK mode), format checking via `-- --check`, and a
	// default pipeline whose test step runs the full suite only on the
	// stable toolchain.
	GenerationV2 Generation = "v2"
)

// DefaultGeneration is used when no schema is selected explicitly.
const DefaultGeneration = GenerationV2
