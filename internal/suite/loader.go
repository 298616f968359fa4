// Package suite provides declarative test suite loading and registration.
// Suite files specify what to check (expected/actual value pairs with
// optional ignore paths) as opposed to how checks execute (see pkg/runner).
package suite

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

const loadWorkers = 4

var (
	errSuiteNameRequired        = errors.New("suite name is required")
	errNoTestsDefined           = errors.New("suite defines no tests")
	errTestIDRequired           = errors.New("test id is required")
	errCheckDescriptionRequired = errors.New("check description is required")
	errCheckValuesRequired      = errors.New("check must define both expected and actual")
)

// Suite is one declarative suite file.
type Suite struct {
	Suite string      `yaml:"suite"`
	Tests []*TestCase `yaml:"tests"`
}

// TestCase declares a single test with its ordered checks.
type TestCase struct {
	ID          string   `yaml:"id"`
	Description string   `yaml:"description"`
	Checks      []*Check `yaml:"checks"`
}

// Check declares a single expectation: actual compared against expected,
// with optional dotted paths excluded from object comparison.
type Check struct {
	Description string      `yaml:"description"`
	Expected    interface{} `yaml:"expected"`
	Actual      interface{} `yaml:"actual"`
	Ignore      []string    `yaml:"ignore,omitempty"`
}

// Loader loads suite definition files.
type Loader struct {
	log logrus.FieldLogger
}

// NewLoader creates a new suite loader.
func NewLoader(log logrus.FieldLogger) *Loader {
	return &Loader{
		log: log.WithField("component", "suite_loader"),
	}
}

// Load reads and validates a single suite file.
func (l *Loader) Load(path string) (*Suite, error) {
	l.log.WithField("path", path).Debug("loading suite")

	data, err := os.ReadFile(path) //nolint:gosec // G304: Reading suite files from caller-supplied paths
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}

	if err := l.validate(&s); err != nil {
		return nil, fmt.Errorf("validating suite %s: %w", path, err)
	}

	return &s, nil
}

// LoadDir loads every .yaml suite in a directory with a bounded worker pool.
// Suites are returned sorted by file name for a stable registration order.
func (l *Loader) LoadDir(dir string) ([]*Suite, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var (
		names  = make([]string, 0, len(entries))
		mu     sync.Mutex
		byName = make(map[string]*Suite)
	)

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		names = append(names, entry.Name())
	}

	g := new(errgroup.Group)
	g.SetLimit(loadWorkers)

	for _, name := range names {
		name := name
		g.Go(func() error {
			s, err := l.Load(filepath.Join(dir, name))
			if err != nil {
				return err
			}

			mu.Lock()
			byName[name] = s
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(names)

	suites := make([]*Suite, 0, len(names))
	for _, name := range names {
		suites = append(suites, byName[name])
	}

	l.log.WithFields(logrus.Fields{
		"dir":    dir,
		"suites": len(suites),
	}).Debug("loaded suites")

	return suites, nil
}

// LoadPaths loads files and directories alike, preserving argument order.
func (l *Loader) LoadPaths(paths []string) ([]*Suite, error) {
	suites := make([]*Suite, 0, len(paths))

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("inspecting %s: %w", path, err)
		}

		if info.IsDir() {
			loaded, err := l.LoadDir(path)
			if err != nil {
				return nil, err
			}

			suites = append(suites, loaded...)

			continue
		}

		s, err := l.Load(path)
		if err != nil {
			return nil, err
		}

		suites = append(suites, s)
	}

	return suites, nil
}

// validate ensures the suite definition is complete.
func (l *Loader) validate(s *Suite) error {
	if s.Suite == "" {
		return errSuiteNameRequired
	}

	if len(s.Tests) == 0 {
		return errNoTestsDefined
	}

	for i, tc := range s.Tests {
		if tc.ID == "" {
			return fmt.Errorf("%w at index %d", errTestIDRequired, i)
		}

		if len(tc.Checks) == 0 {
			l.log.WithField("test", tc.ID).Warn("no checks defined for test")
		}

		for j, check := range tc.Checks {
			if check.Description == "" {
				return fmt.Errorf("%w: test %s, check %d", errCheckDescriptionRequired, tc.ID, j)
			}

			if check.Expected == nil && check.Actual == nil {
				return fmt.Errorf("%w: test %s, check %q", errCheckValuesRequired, tc.ID, check.Description)
			}
		}
	}

	return nil
}
