package runner

import (
	"context"
	"runtime"
	"time"

	"github.com/probelab/verity/pkg/match"
	"github.com/sirupsen/logrus"
)

// Phase labels forced by the engine. Bodies may set any other label via
// T.Phase; these three are applied automatically around the built-in stages.
const (
	PhaseSetup   = "setup"
	PhaseTest    = "test"
	PhaseCleanup = "cleanup"
)

// Body is a test case body. It runs on its own goroutine but strictly
// sequentially with every other body and cleanup in the group. The context
// is the one handed to Run; the engine enforces no timeout of its own, so a
// body that never returns stalls the run.
type Body func(ctx context.Context, t *T)

// SetupFunc runs immediately when passed to T.Setup, under the "setup" phase.
type SetupFunc func(t *SetupT)

// CleanupFunc is queued by T.Cleanup and invoked after the body finishes,
// under the "cleanup" phase.
type CleanupFunc func(t *CleanupT)

// testCore is the per-test state shared by all three context types. It closes
// over the test's Result and the run-scoped state so that nothing leaks onto
// the group across runs.
type testCore struct {
	group    *Group
	res      *Result
	state    *runState
	keepLogs bool
}

// T is the full test context handed to a body.
type T struct {
	core *testCore
}

// SetupT is the restricted context handed to setup callbacks: no nested
// setup, no phase override, no cleanup registration.
type SetupT struct {
	core *testCore
}

// CleanupT is the restricted context handed to cleanup callbacks: outcome
// reporting only.
type CleanupT struct {
	core *testCore
}

// pass marks the result passed with the elapsed time since test start. It is
// a no-op once the test has failed and has no effect on control flow.
func (c *testCore) pass() {
	if !c.res.Passed {
		return
	}

	c.res.Time = time.Since(c.state.testStart)
}

// recordFailure applies the first-failure-wins rule: the first call records
// the error, elapsed time and run-wide failure flag, later calls are no-ops.
// It reports whether this call was the one that recorded the failure.
func (c *testCore) recordFailure(err error) bool {
	if !c.res.Passed {
		return false
	}

	c.res.Passed = false
	c.res.err = err
	c.res.Error = err.Error()
	c.res.Time = time.Since(c.state.testStart)
	c.state.failed = true

	c.group.log.WithError(err).WithFields(logrus.Fields{
		"id":    c.res.ID,
		"phase": c.state.phase,
	}).Debug("test failed")

	return true
}

// fail routes every failure kind through one path. When silent is false, or
// the group runs without FailSilently, the current callback is unwound via
// runtime.Goexit; the per-callback wrapper contains the unwind. A repeat
// call after a recorded failure neither overwrites the error nor unwinds.
func (c *testCore) fail(err error, silent bool) {
	if !c.recordFailure(err) {
		return
	}

	if !silent || !c.group.opts.FailSilently {
		runtime.Goexit()
	}
}

// expect compares actual against expected and records the outcome.
func (c *testCore) expect(description string, actual, expected interface{}, ignorePaths []string) {
	suppress := c.state.phase == PhaseSetup && !c.group.opts.SetupExpectations

	matched := match.KindOf(expected) == match.KindOf(actual) &&
		match.Matches(expected, actual, ignorePaths)

	if matched {
		c.res.ExpectationsMet++

		if c.keepLogs && !suppress {
			c.res.Expectations = append(c.res.Expectations, &Expectation{
				Description: description,
				Expected:    expected,
				Got:         actual,
				Met:         true,
				Phase:       c.state.phase,
			})
		}

		return
	}

	if !suppress {
		c.res.Expectations = append(c.res.Expectations, &Expectation{
			Description: description,
			Expected:    expected,
			Got:         actual,
			Met:         false,
			Phase:       c.state.phase,
		})
	}

	c.fail(&AssertionError{
		Description: description,
		Phase:       c.state.phase,
		Expected:    expected,
		Actual:      actual,
	}, false)
}

// Expect compares actual against expected with the structural equality
// engine. ignorePaths lists dotted key chains excluded from object
// comparison. A mismatch fails the test and unwinds the current callback.
func (t *T) Expect(description string, actual, expected interface{}, ignorePaths ...string) {
	t.core.expect(description, actual, expected, ignorePaths)
}

// Pass marks the test passed with the elapsed time. It does not return from
// the body.
func (t *T) Pass() {
	t.core.pass()
}

// Fail records err as the test's terminal failure and unwinds the body.
// Once a test has failed, further calls are no-ops.
func (t *T) Fail(err error) {
	t.core.fail(err, false)
}

// FailSilently records err like Fail but, when the group was built with
// Options.FailSilently, returns control to the body instead of unwinding.
func (t *T) FailSilently(err error) {
	t.core.fail(err, true)
}

// Phase sets the free-text phase label attached to subsequent expectation
// records and failure messages. Callable any number of times.
func (t *T) Phase(name string) {
	t.core.state.phase = name
}

// Setup runs fn immediately under the "setup" phase, restoring the "test"
// phase on success. A failure inside fn unwinds through the body per the
// group failure policy.
func (t *T) Setup(fn SetupFunc) {
	c := t.core

	c.state.phase = PhaseSetup
	fn(&SetupT{core: c})
	c.state.phase = PhaseTest
}

// Cleanup queues fn to run after the body finishes, pass or fail. Queued
// callbacks run in registration order under the "cleanup" phase.
func (t *T) Cleanup(fn CleanupFunc) {
	t.core.res.cleanups = append(t.core.res.cleanups, fn)
}

// KeepSuccessfulLogs controls whether subsequent passing Expect calls append
// a record. The flag resets to true at every test start and does not touch
// records already appended.
func (t *T) KeepSuccessfulLogs(flag bool) {
	t.core.keepLogs = flag
}

// Expect behaves as T.Expect, evaluated under the current setup phase.
func (t *SetupT) Expect(description string, actual, expected interface{}, ignorePaths ...string) {
	t.core.expect(description, actual, expected, ignorePaths)
}

// Pass behaves as T.Pass.
func (t *SetupT) Pass() {
	t.core.pass()
}

// Fail behaves as T.Fail; the unwind propagates through the body.
func (t *SetupT) Fail(err error) {
	t.core.fail(err, false)
}

// FailSilently behaves as T.FailSilently.
func (t *SetupT) FailSilently(err error) {
	t.core.fail(err, true)
}

// KeepSuccessfulLogs behaves as T.KeepSuccessfulLogs.
func (t *SetupT) KeepSuccessfulLogs(flag bool) {
	t.core.keepLogs = flag
}

// Pass behaves as T.Pass.
func (t *CleanupT) Pass() {
	t.core.pass()
}

// Fail marks the test failed from within a cleanup callback. The unwind is
// contained by the cleanup wrapper and never halts the run.
func (t *CleanupT) Fail(err error) {
	t.core.fail(err, false)
}

// FailSilently behaves as T.FailSilently.
func (t *CleanupT) FailSilently(err error) {
	t.core.fail(err, true)
}
