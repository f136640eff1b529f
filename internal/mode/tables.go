package mode

import (
	"fmt"

	"git.home.luguber.info/inful/cimode/internal/config"
)

// BuiltinTable returns the built-in table for a schema generation.
func BuiltinTable(gen Generation) (*Table, error) {
	switch gen {
	case GenerationV1:
		return v1Table(), nil
	case GenerationV2, "":
		return v2Table(), nil
	}
	return nil, fmt.Errorf("unknown schema generation %q (builtin: %s, %s)", gen, GenerationV1, GenerationV2)
}

// Shared pipelines: lint, docs and coverage are identical across the two
// built-in generations.

func lintSpecs() []CommandSpec {
	return []CommandSpec{
		{Step: "clippy", Program: "cargo", Args: []string{"clippy", "--all", "--", "-D", "warnings"}},
	}
}

func docsSpecs() []CommandSpec {
	return []CommandSpec{
		{Step: "clean", Program: "cargo", Args: []string{"clean"}},
		{Step: "doc", Program: "cargo", Args: []string{"doc", "--all", "--no-deps", placeholderBuildArgs}},
		{Step: "book", Program: "mdbook", Args: []string{"build", "book"}},
		{Step: "copy_book", Builtin: "copy_tree", Args: []string{"book/book", "target/doc/book"}},
		// The upload step's exit status never changes the pipeline outcome.
		{Step: "doc_upload", Program: "travis-cargo", Args: []string{"doc-upload"}, Tolerated: true},
	}
}

func coverageSpecs() []CommandSpec {
	return []CommandSpec{
		{Step: "tarpaulin", Program: "cargo", Args: []string{
			"tarpaulin", "--all", "--ciserver", "travis-ci", "--coveralls", placeholderJobID,
		}},
	}
}

// v1Table is the legacy generation: BENCHMARK selects a bench pipeline
// ahead of RUSTFMT, the format checker runs in diff mode, and the default
// pipeline builds with --release and always tests with --tests.
func v1Table() *Table {
	return &Table{
		Generation: GenerationV1,
		Selectors: []Selector{
			{Flag: config.EnvClippy, Equals: "yes", Mode: ModeLint},
			{Flag: config.EnvDocs, Equals: "yes", Mode: ModeDocs},
			{Flag: config.EnvCoverage, Equals: "yes", Mode: ModeCoverage},
			{Flag: config.EnvBenchmark, Equals: "yes", Mode: ModeBench},
			{Flag: config.EnvRustfmt, Equals: "yes", Mode: ModeFmt},
		},
		Modes: map[Mode][]CommandSpec{
			ModeLint:     lintSpecs(),
			ModeDocs:     docsSpecs(),
			ModeCoverage: coverageSpecs(),
			ModeBench: {
				{Step: "bench", Program: "cargo", Args: []string{"bench", "--all", placeholderBuildArgs}},
			},
			ModeFmt: {
				{Step: "fmt", Program: "cargo", Args: []string{"fmt", "--all", "--", "--write-mode", "diff"}},
			},
			ModeDefault: {
				{Step: "build", Program: "cargo", Args: []string{"build", "--all", "--release", placeholderBuildArgs}},
				{Step: "test", Program: "cargo", Args: []string{"test", "--all", "--tests", placeholderBuildArgs}},
				{Step: "bench_build", Program: "cargo", Args: []string{"build", "--benches", "--all", placeholderBuildArgs}},
			},
		},
	}
}

// v2Table is the current generation: RUSTFMT is the fourth branch, the
// format checker runs in check mode, and the default pipeline runs the
// full test suite only on the stable toolchain.
func v2Table() *Table {
	return &Table{
		Generation: GenerationV2,
		Selectors: []Selector{
			{Flag: config.EnvClippy, Equals: "yes", Mode: ModeLint},
			{Flag: config.EnvDocs, Equals: "yes", Mode: ModeDocs},
			{Flag: config.EnvCoverage, Equals: "yes", Mode: ModeCoverage},
			{Flag: config.EnvRustfmt, Equals: "yes", Mode: ModeFmt},
		},
		Modes: map[Mode][]CommandSpec{
			ModeLint:     lintSpecs(),
			ModeDocs:     docsSpecs(),
			ModeCoverage: coverageSpecs(),
			ModeFmt: {
				{Step: "fmt", Program: "cargo", Args: []string{"fmt", "--all", "--", "--check"}},
			},
			ModeDefault: {
				{Step: "build", Program: "cargo", Args: []string{"build", "--all", placeholderBuildArgs}},
				{Step: "test", Program: "cargo", Args: []string{"test", "--all", placeholderBuildArgs}, When: WhenStable},
				{Step: "test", Program: "cargo", Args: []string{"test", "--all", "--tests", placeholderBuildArgs}, When: WhenNonStable},
				{Step: "bench_build", Program: "cargo", Args: []string{"build", "--benches", "--all", placeholderBuildArgs}},
			},
		},
	}
}
