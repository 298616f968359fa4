package suite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/probelab/verity/pkg/runner"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSuite = `suite: totals
tests:
  - id: row_counts
    description: row counts match
    checks:
      - description: count matches
        expected:
          rows: 3
        actual:
          rows: 3
  - id: ignored_paths
    description: volatile fields are ignored
    checks:
      - description: payload matches outside meta
        expected:
          rows: 3
          meta:
            updated: 1
        actual:
          rows: 3
          meta:
            updated: 2
        ignore:
          - meta.updated
`

func writeSuite(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_ValidSuite(t *testing.T) {
	t.Parallel()

	path := writeSuite(t, t.TempDir(), "totals.yaml", validSuite)

	s, err := NewLoader(logrus.New()).Load(path)
	require.NoError(t, err)

	assert.Equal(t, "totals", s.Suite)
	require.Len(t, s.Tests, 2)
	assert.Equal(t, "row_counts", s.Tests[0].ID)
	require.Len(t, s.Tests[1].Checks, 1)
	assert.Equal(t, []string{"meta.updated"}, s.Tests[1].Checks[0].Ignore)
}

func TestLoad_ValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing suite name",
			content: "tests:\n  - id: a\n    checks:\n      - description: d\n        expected: 1\n        actual: 1\n",
		},
		{
			name:    "no tests",
			content: "suite: empty\n",
		},
		{
			name:    "missing test id",
			content: "suite: s\ntests:\n  - description: no id\n",
		},
		{
			name:    "missing check description",
			content: "suite: s\ntests:\n  - id: a\n    checks:\n      - expected: 1\n        actual: 1\n",
		},
		{
			name:    "missing check values",
			content: "suite: s\ntests:\n  - id: a\n    checks:\n      - description: d\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSuite(t, t.TempDir(), "bad.yaml", tt.content)

			_, err := NewLoader(logrus.New()).Load(path)
			require.Error(t, err)
		})
	}
}

func TestLoadDir_SortedByFileName(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSuite(t, dir, "b.yaml", "suite: beta\ntests:\n  - id: b1\n    checks:\n      - description: d\n        expected: 1\n        actual: 1\n")
	writeSuite(t, dir, "a.yaml", "suite: alpha\ntests:\n  - id: a1\n    checks:\n      - description: d\n        expected: 1\n        actual: 1\n")
	writeSuite(t, dir, "ignored.txt", "not yaml")

	suites, err := NewLoader(logrus.New()).LoadDir(dir)
	require.NoError(t, err)

	require.Len(t, suites, 2)
	assert.Equal(t, "alpha", suites[0].Suite)
	assert.Equal(t, "beta", suites[1].Suite)
}

func TestRegister_RunsChecks(t *testing.T) {
	t.Parallel()

	path := writeSuite(t, t.TempDir(), "totals.yaml", validSuite)

	s, err := NewLoader(logrus.New()).Load(path)
	require.NoError(t, err)

	g := runner.NewGroup(&runner.Config{})
	require.NoError(t, Register(g, s))

	rep, err := g.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, rep.AllPassed)
	require.Len(t, rep.Tests, 2)
	assert.Equal(t, 1, rep.Tests[0].ExpectationsMet)
	assert.Equal(t, 1, rep.Tests[1].ExpectationsMet)
}

func TestRegister_DuplicateIDAcrossSuites(t *testing.T) {
	t.Parallel()

	g := runner.NewGroup(&runner.Config{})

	s := &Suite{
		Suite: "one",
		Tests: []*TestCase{{ID: "dup", Checks: []*Check{{Description: "d", Expected: 1, Actual: 1}}}},
	}

	require.NoError(t, Register(g, s))
	require.Error(t, Register(g, &Suite{Suite: "two", Tests: s.Tests}))
}
