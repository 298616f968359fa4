// Package runner provides in-process test orchestration: registration of
// named test cases with setup/cleanup phases and inline expectations, and
// strictly sequential execution producing a structured report.
package runner

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Options configures a group's execution policy. The zero value disables
// everything.
type Options struct {
	// Output enables human-readable progress and result printing through the
	// configured Printer.
	Output bool
	// SetupExpectations keeps expectation records made during the setup
	// phase. When off, setup-phase comparisons never append a record, pass
	// or fail, though their effect on the test outcome still applies.
	SetupExpectations bool
	// FailSilently keeps the run going after a failed test instead of
	// halting. When off, the first failure skips that test's cleanups and no
	// further tests execute.
	FailSilently bool
}

// Printer receives progress and result notifications when Options.Output is
// on. Output formatting lives outside the engine; see internal/output for
// the standard implementation.
type Printer interface {
	TestStarted(id, description string)
	TestFinished(res *Result)
	RunFinished(rep *Report)
}

// Config carries the collaborators for a group.
type Config struct {
	Logger  logrus.FieldLogger
	Options Options
	Printer Printer
}

// Group owns a registry of test definitions and runs them sequentially.
// A group's registry is append-only; registered tests live for the lifetime
// of the group.
type Group struct {
	log     logrus.FieldLogger
	opts    Options
	printer Printer

	mu      sync.Mutex
	defs    []*definition
	results map[string]*Result
	running bool
}

// definition is an immutable registered test case.
type definition struct {
	id          string
	description string
	body        Body
}

// runState is scoped to a single Run invocation and passed by reference to
// the context constructors, so overlapping state can never leak across runs.
type runState struct {
	phase     string
	testStart time.Time
	runStart  time.Time
	executed  []*Result
	failed    bool
}

// outcome is the explicit per-test result inspected by the run loop in place
// of an escaping panic.
type outcome struct {
	failed bool
	err    error
	halt   bool
}

// NewGroup creates a test group.
func NewGroup(cfg *Config) *Group {
	log := cfg.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	return &Group{
		log:     log.WithField("component", "runner"),
		opts:    cfg.Options,
		printer: cfg.Printer,
		results: make(map[string]*Result),
	}
}

// Register adds a test case. The id must be non-empty and unique within the
// group; a duplicate fails with *DuplicateIDError and leaves the existing
// registration untouched. A Result entry is created in its default state.
func (g *Group) Register(id, description string, body Body) error {
	if id == "" {
		return errEmptyID
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.results[id]; exists {
		return &DuplicateIDError{ID: id}
	}

	g.defs = append(g.defs, &definition{id: id, description: description, body: body})
	g.results[id] = &Result{ID: id, Description: description, Passed: true}

	g.log.WithField("id", id).Debug("test registered")

	return nil
}

// IDs returns the registered test ids in registration order.
func (g *Group) IDs() []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ids := make([]string, 0, len(g.defs))
	for _, def := range g.defs {
		ids = append(ids, def.id)
	}

	return ids
}

// Run executes the requested tests in order and returns the aggregate
// report. With no ids, every registered test runs in registration order.
// An id with no registration fails with *UnknownIDError, checked at the
// point that test would execute. A second Run while one is in flight is
// rejected with ErrRunInProgress.
//
// Under Options.FailSilently the run always completes and no test error
// escapes; otherwise the first failure halts the loop, skips that test's
// cleanups, and Run returns the partial report together with the failure.
func (g *Group) Run(ctx context.Context, ids ...string) (*Report, error) {
	g.mu.Lock()
	if g.running {
		g.mu.Unlock()
		return nil, ErrRunInProgress
	}

	g.running = true

	if len(ids) == 0 {
		ids = make([]string, 0, len(g.defs))
		for _, def := range g.defs {
			ids = append(ids, def.id)
		}
	}

	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		g.running = false
		g.mu.Unlock()
	}()

	st := &runState{runStart: time.Now()}

	g.log.WithField("tests", len(ids)).Info("starting run")

	for _, id := range ids {
		def := g.lookup(id)
		if def == nil {
			return nil, &UnknownIDError{ID: id}
		}

		res := g.result(id)
		res.reset()

		st.phase = PhaseTest
		st.testStart = time.Now()
		st.executed = append(st.executed, res)

		if g.opts.Output && g.printer != nil {
			g.printer.TestStarted(def.id, def.description)
		}

		core := &testCore{group: g, res: res, state: st, keepLogs: true}

		out := g.runBody(ctx, def, core)
		if out.halt {
			// Fail-fast: cleanups are skipped and the loop stops here.
			rep := g.buildReport(st)

			g.log.WithFields(logrus.Fields{
				"id":       id,
				"executed": len(st.executed),
			}).Error("run halted on failure")

			if g.opts.Output && g.printer != nil {
				g.printer.TestFinished(res)
				g.printer.RunFinished(rep)
			}

			return rep, out.err
		}

		g.runCleanups(core)

		if g.opts.Output && g.printer != nil {
			g.printer.TestFinished(res)
		}
	}

	rep := g.buildReport(st)

	g.log.WithFields(logrus.Fields{
		"tests":     len(rep.Tests),
		"allPassed": rep.AllPassed,
		"duration":  rep.TimeTaken,
	}).Info("run complete")

	if g.opts.Output && g.printer != nil {
		g.printer.RunFinished(rep)
	}

	return rep, nil
}

// runBody invokes the body on a fresh goroutine and waits for it. The
// goroutine exists only to contain the Goexit unwind of the fail path and to
// recover stray panics; execution stays strictly sequential.
func (g *Group) runBody(ctx context.Context, def *definition, core *testCore) outcome {
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				core.recordFailure(toError(r))
			}
		}()

		def.body(ctx, &T{core: core})
	}()

	<-done

	res := core.res

	if res.Passed {
		core.pass()
		return outcome{}
	}

	return outcome{
		failed: true,
		err:    res.err,
		halt:   !g.opts.FailSilently,
	}
}

// runCleanups drains the test's cleanup queue in registration order under
// the "cleanup" phase. Each callback runs on its own goroutine so that a
// fail-path unwind or a panic stays contained; a panic is logged and
// swallowed, never surfacing to the result or the run outcome.
func (g *Group) runCleanups(core *testCore) {
	cleanups := core.res.cleanups
	core.res.cleanups = nil

	for _, fn := range cleanups {
		core.state.phase = PhaseCleanup

		done := make(chan struct{})

		go func() {
			defer close(done)
			defer func() {
				if r := recover(); r != nil {
					g.log.WithError(toError(r)).WithField("id", core.res.ID).Warn("cleanup callback failed")
				}
			}()

			fn(&CleanupT{core: core})
		}()

		<-done
	}
}

func (g *Group) buildReport(st *runState) *Report {
	rep := &Report{
		AllPassed: !st.failed,
		TimeTaken: time.Since(st.runStart),
		Tests:     st.executed,
	}

	for _, res := range st.executed {
		if !res.Passed {
			rep.AllPassed = false
		}
	}

	return rep
}

func (g *Group) lookup(id string) *definition {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, def := range g.defs {
		if def.id == id {
			return def
		}
	}

	return nil
}

func (g *Group) result(id string) *Result {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.results[id]
}

func toError(r interface{}) error {
	if err, ok := r.(error); ok {
		return err
	}

	return fmt.Errorf("%v", r) //nolint:err113 // recovered panic value, no sentinel applies
}
