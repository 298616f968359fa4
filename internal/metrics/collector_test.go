package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/probelab/verity/pkg/runner"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_RecordRun(t *testing.T) {
	c := NewCollector(logrus.New())
	require.NoError(t, c.Start(context.Background()))

	rep := &runner.Report{
		AllPassed: false,
		TimeTaken: 30 * time.Millisecond,
		Tests: []*runner.Result{
			{
				ID:              "a",
				Passed:          true,
				Time:            10 * time.Millisecond,
				ExpectationsMet: 2,
			},
			{
				ID:     "b",
				Passed: false,
				Time:   20 * time.Millisecond,
				Error:  "expectation failed",
				Expectations: []*runner.Expectation{
					{Description: "d", Expected: 1, Got: 2, Met: false, Phase: "test"},
				},
			},
		},
	}

	c.RecordRun(rep)

	metrics := c.GetTestMetrics()
	require.Len(t, metrics, 2)
	assert.Equal(t, "a", metrics[0].ID)
	assert.True(t, metrics[0].Passed)
	assert.Empty(t, metrics[0].FailedExpectations)
	assert.Equal(t, "b", metrics[1].ID)
	require.Len(t, metrics[1].FailedExpectations, 1)
	assert.Equal(t, "d", metrics[1].FailedExpectations[0].Description)
}

func TestCollector_GetSummary(t *testing.T) {
	c := NewCollector(logrus.New())
	require.NoError(t, c.Start(context.Background()))

	c.RecordTestResult(&TestResultMetric{ID: "a", Passed: true, Duration: 10 * time.Millisecond, ExpectationsMet: 2})
	c.RecordTestResult(&TestResultMetric{ID: "b", Passed: true, Duration: 10 * time.Millisecond, ExpectationsMet: 1})
	c.RecordTestResult(&TestResultMetric{ID: "c", Passed: false, Duration: 10 * time.Millisecond})

	summary := c.GetSummary()
	assert.Equal(t, 3, summary.TotalTests)
	assert.Equal(t, 2, summary.PassedTests)
	assert.Equal(t, 1, summary.FailedTests)
	assert.Equal(t, 3, summary.ExpectationsMet)
	assert.Equal(t, 30*time.Millisecond, summary.TotalDuration)
	assert.InDelta(t, 66.7, summary.PassRate, 0.1)
}

func TestCollector_EmptySummary(t *testing.T) {
	c := NewCollector(logrus.New())

	summary := c.GetSummary()
	assert.Equal(t, 0, summary.TotalTests)
	assert.Equal(t, 0.0, summary.PassRate)
}
