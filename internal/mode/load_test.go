package mode

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/cimode/internal/config"
)

const customTableYAML = `generation: v3
selectors:
  - flag: CLIPPY
    equals: "yes"
    mode: lint
  - flag: RUSTFMT
    equals: "yes"
    mode: fmt
modes:
  lint:
    - step: clippy
      program: cargo
      args: ["clippy", "--workspace", "--", "-D", "warnings"]
  fmt:
    - step: fmt
      program: cargo
      args: ["fmt", "--all", "--", "--check"]
  default:
    - step: build
      program: cargo
      args: ["build", "--workspace", "${build_args}"]
    - step: test
      program: cargo
      args: ["test", "--workspace", "${build_args}"]
`

func TestLoadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "modes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(customTableYAML), 0o644))

	tab, err := LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, Generation("v3"), tab.Generation)

	p, err := tab.Dispatch(config.Flags{HTMLReports: "no"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"cargo build --workspace --no-default-features",
		"cargo test --workspace --no-default-features",
	}, commandStrings(t, p))
}

func TestLoadTableMissingFile(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadTableInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "modes.yaml")
	require.NoError(t, os.WriteFile(path, []byte("selectors: []\nmodes: {}\n"), 0o644))
	_, err := LoadTable(path)
	require.Error(t, err)
}
