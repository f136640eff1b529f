// Package config captures the CI environment toggles that drive mode
// selection. The environment is read exactly once, into an immutable
// snapshot, so the dispatcher itself never touches process globals and
// tests can construct synthetic configurations directly.
package config

import (
	"os"
)

// Environment variable names recognized by the dispatcher.
const (
	EnvHTMLReports = "HTML_REPORTS"
	EnvClippy      = "CLIPPY"
	EnvDocs        = "DOCS"
	EnvCoverage    = "COVERAGE"
	EnvBenchmark   = "BENCHMARK"
	EnvRustfmt     = "RUSTFMT"
	EnvTravisJobID = "TRAVIS_JOB_ID"
	EnvRustVersion = "TRAVIS_RUST_VERSION"
)

// Flags is a one-shot snapshot of the recognized environment toggles.
// Absent variables are empty strings, never an error.
type Flags struct {
	HTMLReports string `yaml:"html_reports"`
	Clippy      string `yaml:"clippy"`
	Docs        string `yaml:"docs"`
	Coverage    string `yaml:"coverage"`
	Benchmark   string `yaml:"benchmark"`
	Rustfmt     string `yaml:"rustfmt"`
	TravisJobID string `yaml:"travis_job_id"`
	RustVersion string `yaml:"travis_rust_version"`
}

// FlagsFromEnv reads the recognized variables from the process environment.
func FlagsFromEnv() Flags {
	return Flags{
		HTMLReports: os.Getenv(EnvHTMLReports),
		Clippy:      os.Getenv(EnvClippy),
		Docs:        os.Getenv(EnvDocs),
		Coverage:    os.Getenv(EnvCoverage),
		Benchmark:   os.Getenv(EnvBenchmark),
		Rustfmt:     os.Getenv(EnvRustfmt),
		TravisJobID: os.Getenv(EnvTravisJobID),
		RustVersion: os.Getenv(EnvRustVersion),
	}
}

// Get returns the snapshot value for the given environment variable name.
// Unrecognized names yield the empty string, matching the semantics of an
// absent variable.
func (f Flags) Get(name string) string {
	switch name {
	case EnvHTMLReports:
		return f.HTMLReports
	case EnvClippy:
		return f.Clippy
	case EnvDocs:
		return f.Docs
	case EnvCoverage:
		return f.Coverage
	case EnvBenchmark:
		return f.Benchmark
	case EnvRustfmt:
		return f.Rustfmt
	case EnvTravisJobID:
		return f.TravisJobID
	case EnvRustVersion:
		return f.RustVersion
	}
	return ""
}

// BuildArgs derives the extra build/test/bench arguments from HTML_REPORTS.
// Computed once per invocation and reused verbatim by every command that
// declares the placeholder.
func (f Flags) BuildArgs() []string {
	if f.HTMLReports == "no" {
		return []string{"--no-default-features"}
	}
	return nil
}

// StableToolchain reports whether the CI toolchain identifier selects the
// full test suite in the default pipeline.
func (f Flags) StableToolchain() bool {
	return f.RustVersion == "stable"
}

// Load loads optional .env files into the process environment (without
// overriding variables that are already set) and then snapshots the flags.
func Load() (Flags, error) {
	if err := loadEnvFiles(); err != nil {
		return Flags{}, err
	}
	return FlagsFromEnv(), nil
}
