package pipeline

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportOutcomeDerivation(t *testing.T) {
	r := newReport("docs")
	r.StepDurations["doc"] = time.Second
	r.recordWarning("doc_upload", newToleratedStepError("doc_upload", errors.New("403")))
	r.finish()
	assert.Equal(t, OutcomeSuccess, r.Outcome)

	r = newReport("default")
	r.recordError("build", newFatalStepError("build", errors.New("boom")))
	r.finish()
	assert.Equal(t, OutcomeFailed, r.Outcome)

	r = newReport("default")
	r.recordError("build", newCanceledStepError("build", errors.New("ctx")))
	r.finish()
	assert.Equal(t, OutcomeCanceled, r.Outcome)
}

func TestReportWriteFile(t *testing.T) {
	r := newReport("lint")
	r.StepDurations["clippy"] = 1500 * time.Millisecond
	r.finish()

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, r.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "lint", got["mode"])
	assert.Equal(t, "success", got["outcome"])
	assert.Equal(t, float64(reportSchemaVersion), got["schema_version"])

	steps, ok := got["step_durations_ms"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1500), steps["clippy"])
}
