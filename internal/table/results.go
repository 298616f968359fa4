package table

import (
	"fmt"
	"strings"

	"github.com/probelab/verity/internal/format"
	"github.com/probelab/verity/internal/metrics"
	"github.com/sirupsen/logrus"
)

// ResultsFormatter formats test results as a table.
type ResultsFormatter struct {
	log      logrus.FieldLogger
	renderer *Renderer
	colors   *ColorHelper
}

// NewResultsFormatter creates a new results table formatter.
func NewResultsFormatter(log logrus.FieldLogger, renderer *Renderer) *ResultsFormatter {
	return &ResultsFormatter{
		log:      log.WithField("component", "table.results_formatter"),
		renderer: renderer,
		colors:   NewColorHelper(),
	}
}

// Format converts test result metrics into a formatted table string with failure details.
func (f *ResultsFormatter) Format(testMetrics []metrics.TestResultMetric) string {
	if len(testMetrics) == 0 {
		return "No tests executed"
	}

	var (
		headers     = []string{"Test", "Status", "Expectations", "Duration", "Details"}
		rows        = make([][]string, 0, len(testMetrics))
		failedTests = make([]metrics.TestResultMetric, 0)
	)

	for _, metric := range testMetrics {
		var (
			status  = f.colors.FormatStatus(metric.Passed)
			details string
		)

		if !metric.Passed {
			failedTests = append(failedTests, metric)

			if metric.ErrorMessage != "" {
				// Truncate long error messages
				errMsg := metric.ErrorMessage
				if len(errMsg) > 50 {
					errMsg = errMsg[:47] + "..."
				}

				details = f.colors.Muted(errMsg)
			}
		}

		rows = append(rows, []string{
			metric.ID,
			status,
			f.colors.FormatExpectations(metric.ExpectationsMet, metric.ExpectationsMet+len(metric.FailedExpectations)),
			format.Duration(metric.Duration),
			details,
		})
	}

	output := "\n" + f.colors.Header("▸ Test Results") + "\n\n" + f.renderer.RenderToString(headers, rows)

	// Add detailed failure section if there are any failures
	if len(failedTests) > 0 {
		output += f.formatFailureDetails(failedTests)
	}

	return output
}

// formatFailureDetails creates a detailed section showing all failed expectations
func (f *ResultsFormatter) formatFailureDetails(failedTests []metrics.TestResultMetric) string {
	var builder strings.Builder

	builder.WriteString("\n\n" + f.colors.Header("▸ Failed Test Details") + "\n\n")

	for i, test := range failedTests {
		if i > 0 {
			builder.WriteString("\n")
		}

		builder.WriteString(fmt.Sprintf("%s (%s)\n", test.ID, format.Duration(test.Duration)))

		if len(test.FailedExpectations) == 0 {
			// No expectation details, show the terminal error
			if test.ErrorMessage != "" {
				builder.WriteString(fmt.Sprintf("  %s: %s\n", f.colors.Failure("Error"), test.ErrorMessage))
			} else {
				builder.WriteString(fmt.Sprintf("  %s: Test failed (no details available)\n", f.colors.Failure("Error")))
			}

			continue
		}

		for _, fe := range test.FailedExpectations {
			builder.WriteString(fmt.Sprintf("  %s %s [%s]\n", f.colors.Failure("✗"), fe.Description, fe.Phase))
			builder.WriteString(fmt.Sprintf("    expected: %v\n", fe.Expected))
			builder.WriteString(fmt.Sprintf("    got:      %v\n", fe.Got))
		}
	}

	return builder.String()
}
