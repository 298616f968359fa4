// Package metrics provides run metrics collection and aggregation.
package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/probelab/verity/pkg/runner"
	"github.com/sirupsen/logrus"
)

// FailedExpectationDetail captures details about a single failed expectation.
type FailedExpectationDetail struct {
	Description string
	Expected    interface{}
	Got         interface{}
	Phase       string
}

// TestResultMetric captures metrics about a single executed test.
type TestResultMetric struct {
	ID                 string
	Passed             bool
	Duration           time.Duration
	ExpectationsMet    int
	ExpectationsLogged int
	ErrorMessage       string // empty if passed
	FailedExpectations []FailedExpectationDetail
	Timestamp          time.Time
}

// SummaryMetric provides aggregate statistics across all recorded runs.
type SummaryMetric struct {
	TotalDuration   time.Duration
	TotalTests      int
	PassedTests     int
	FailedTests     int
	ExpectationsMet int
	PassRate        float64 // percentage
}

// Collector interface for metrics collection.
type Collector interface {
	Start(ctx context.Context) error
	Stop() error
	RecordRun(rep *runner.Report)
	RecordTestResult(metric *TestResultMetric)
	GetTestMetrics() []TestResultMetric
	GetSummary() SummaryMetric
}

// collector implements Collector interface.
type collector struct {
	log         logrus.FieldLogger
	mu          sync.RWMutex
	testMetrics []TestResultMetric
	startTime   time.Time
}

// NewCollector creates a new metrics collector.
func NewCollector(log logrus.FieldLogger) Collector {
	return &collector{
		log:         log.WithField("component", "metrics_collector"),
		testMetrics: make([]TestResultMetric, 0, 50), // capacity hint
	}
}

func (c *collector) Start(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startTime = time.Now()

	c.log.Debug("metrics collector started")

	return nil
}

func (c *collector) Stop() error {
	c.log.Debug("metrics collector stopped")

	return nil
}

// RecordRun appends one test metric per executed result in the report.
func (c *collector) RecordRun(rep *runner.Report) {
	for _, res := range rep.Tests {
		failed := make([]FailedExpectationDetail, 0)

		for _, exp := range res.Expectations {
			if !exp.Met {
				failed = append(failed, FailedExpectationDetail{
					Description: exp.Description,
					Expected:    exp.Expected,
					Got:         exp.Got,
					Phase:       exp.Phase,
				})
			}
		}

		c.RecordTestResult(&TestResultMetric{
			ID:                 res.ID,
			Passed:             res.Passed,
			Duration:           res.Time,
			ExpectationsMet:    res.ExpectationsMet,
			ExpectationsLogged: len(res.Expectations),
			ErrorMessage:       res.Error,
			FailedExpectations: failed,
			Timestamp:          time.Now(),
		})
	}
}

func (c *collector) RecordTestResult(metric *TestResultMetric) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.testMetrics = append(c.testMetrics, *metric)
}

func (c *collector) GetTestMetrics() []TestResultMetric {
	c.mu.RLock()
	defer c.mu.RUnlock()
	// Return copy to avoid race conditions
	result := make([]TestResultMetric, len(c.testMetrics))
	copy(result, c.testMetrics)

	return result
}

func (c *collector) GetSummary() SummaryMetric {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var (
		totalDuration   time.Duration
		passed          = 0
		failed          = 0
		expectationsMet = 0
	)

	for _, tm := range c.testMetrics {
		if tm.Passed {
			passed++
		} else {
			failed++
		}

		totalDuration += tm.Duration
		expectationsMet += tm.ExpectationsMet
	}

	passRate := 0.0
	if passed+failed > 0 {
		passRate = float64(passed) / float64(passed+failed) * 100.0
	}

	return SummaryMetric{
		TotalDuration:   totalDuration,
		TotalTests:      len(c.testMetrics),
		PassedTests:     passed,
		FailedTests:     failed,
		ExpectationsMet: expectationsMet,
		PassRate:        passRate,
	}
}

// Compile-time interface compliance check
var _ Collector = (*collector)(nil)
