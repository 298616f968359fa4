package runner

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_JSONShape(t *testing.T) {
	rep := &Report{
		AllPassed: false,
		TimeTaken: 30 * time.Millisecond,
		Tests: []*Result{
			{
				ID:              "a",
				Description:     "passing test",
				Passed:          true,
				Time:            10 * time.Millisecond,
				ExpectationsMet: 1,
				Expectations: []*Expectation{
					{Description: "d", Expected: 1, Got: 1, Met: true, Phase: PhaseTest},
				},
			},
			{
				ID:     "b",
				Passed: false,
				Time:   20 * time.Millisecond,
				Error:  "expectation failed",
			},
		},
	}

	data, err := json.Marshal(rep)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, false, decoded["allPassed"])
	assert.EqualValues(t, (30 * time.Millisecond).Nanoseconds(), decoded["timeTaken"])

	tests, ok := decoded["tests"].([]interface{})
	require.True(t, ok)
	require.Len(t, tests, 2)

	passed, ok := tests[0].(map[string]interface{})
	require.True(t, ok)

	for _, key := range []string{"id", "description", "passed", "time", "expectationsMet", "expectations"} {
		assert.Contains(t, passed, key)
	}

	// A passing result carries no error field at all.
	assert.NotContains(t, passed, "error")
	assert.Equal(t, true, passed["passed"])
	assert.EqualValues(t, (10 * time.Millisecond).Nanoseconds(), passed["time"])
	assert.EqualValues(t, 1, passed["expectationsMet"])

	exps, ok := passed["expectations"].([]interface{})
	require.True(t, ok)
	require.Len(t, exps, 1)

	exp, ok := exps[0].(map[string]interface{})
	require.True(t, ok)

	for _, key := range []string{"description", "expected", "got", "met", "phase"} {
		assert.Contains(t, exp, key)
	}

	assert.Equal(t, true, exp["met"])
	assert.Equal(t, PhaseTest, exp["phase"])

	failed, ok := tests[1].(map[string]interface{})
	require.True(t, ok)

	assert.Equal(t, false, failed["passed"])
	assert.Equal(t, "expectation failed", failed["error"])
}
