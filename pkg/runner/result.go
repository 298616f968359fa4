package runner

import (
	"time"
)

// Expectation is one recorded comparison. Records are append-only within a
// run; a passing comparison is only appended while keep-successful-logs is
// on for the test, and comparisons made during a suppressed setup phase are
// never appended at all.
type Expectation struct {
	Description string      `json:"description"`
	Expected    interface{} `json:"expected"`
	Got         interface{} `json:"got"`
	Met         bool        `json:"met"`
	Phase       string      `json:"phase"`
}

// Result holds the outcome of a single test. One Result is created per
// registration and reset at the start of every run that executes it.
// A passing result serializes without an error field.
type Result struct {
	ID              string         `json:"id"`
	Description     string         `json:"description"`
	Passed          bool           `json:"passed"`
	Time            time.Duration  `json:"time"`
	Error           string         `json:"error,omitempty"`
	ExpectationsMet int            `json:"expectationsMet"`
	Expectations    []*Expectation `json:"expectations"`

	err      error
	cleanups []CleanupFunc
}

// Err returns the terminal error recorded for the test, nil when it passed.
func (r *Result) Err() error {
	return r.err
}

func (r *Result) reset() {
	r.Passed = true
	r.Time = 0
	r.Error = ""
	r.ExpectationsMet = 0
	r.Expectations = nil
	r.err = nil
	r.cleanups = nil
}

// Report aggregates the results of one Run invocation. Tests holds only the
// results that actually executed, in execution order.
type Report struct {
	AllPassed bool          `json:"allPassed"`
	TimeTaken time.Duration `json:"timeTaken"`
	Tests     []*Result     `json:"tests"`
}
