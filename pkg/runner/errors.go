package runner

import (
	"errors"
	"fmt"

	"github.com/probelab/verity/pkg/match"
)

// ErrRunInProgress is returned when Run is called while another run on the
// same group is still in flight.
var ErrRunInProgress = errors.New("a run is already in progress on this group")

var errEmptyID = errors.New("test id must not be empty")

// DuplicateIDError is returned by Register when the id is already taken.
// The existing registration is left untouched.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("test %q is already registered", e.ID)
}

// UnknownIDError is returned by Run when a requested id has no registration.
// The check happens per test at the point it would execute, not up front.
type UnknownIDError struct {
	ID string
}

func (e *UnknownIDError) Error() string {
	return fmt.Sprintf("test %q is not registered", e.ID)
}

// AssertionError describes a failed expectation. The message embeds both
// values (JSON for composite kinds) and their kinds.
type AssertionError struct {
	Description string
	Phase       string
	Expected    interface{}
	Actual      interface{}
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("expectation %q failed during %s: expected %s (%s), got %s (%s)",
		e.Description, e.Phase,
		match.Format(e.Expected), match.KindOf(e.Expected),
		match.Format(e.Actual), match.KindOf(e.Actual))
}
