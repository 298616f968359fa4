package suite

import (
	"context"
	"fmt"

	"github.com/probelab/verity/pkg/runner"
)

// Register turns every test case of a suite into a registered body on the
// group. Check evaluation order follows the declaration order.
func Register(g *runner.Group, s *Suite) error {
	for _, tc := range s.Tests {
		checks := tc.Checks

		err := g.Register(tc.ID, tc.Description, func(_ context.Context, t *runner.T) {
			for _, check := range checks {
				t.Expect(check.Description, check.Actual, check.Expected, check.Ignore...)
			}
		})
		if err != nil {
			return fmt.Errorf("registering test %s from suite %s: %w", tc.ID, s.Suite, err)
		}
	}

	return nil
}

// RegisterAll registers a list of suites in order.
func RegisterAll(g *runner.Group, suites []*Suite) error {
	for _, s := range suites {
		if err := Register(g, s); err != nil {
			return err
		}
	}

	return nil
}
