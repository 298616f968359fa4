package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/probelab/verity/internal/config"
	"github.com/probelab/verity/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const failingSuite = `suite: totals
tests:
  - id: row_counts
    description: row counts match
    checks:
      - description: count matches
        expected: 1
        actual: 2
`

func TestRunSuites_HaltErrorSurfaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "totals.yaml")
	require.NoError(t, os.WriteFile(path, []byte(failingSuite), 0o600))

	err := runSuites(context.Background(), &config.Config{}, []string{path})
	require.Error(t, err)

	// The fail-fast halt cause is wrapped into the CLI error, not dropped.
	var assertion *runner.AssertionError
	require.ErrorAs(t, err, &assertion)
	assert.Equal(t, "count matches", assertion.Description)
	assert.Contains(t, err.Error(), "1 of 1 test(s) failed")
}

func TestRunSuites_AllPassing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "totals.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`suite: totals
tests:
  - id: row_counts
    checks:
      - description: count matches
        expected: 1
        actual: 1
`), 0o600))

	require.NoError(t, runSuites(context.Background(), &config.Config{}, []string{path}))
}
