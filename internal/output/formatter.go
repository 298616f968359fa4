// Package output provides human-friendly progress and result printing for
// test runs.
package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/probelab/verity/internal/format"
	"github.com/probelab/verity/internal/metrics"
	"github.com/probelab/verity/internal/table"
	"github.com/probelab/verity/pkg/runner"
	"github.com/sirupsen/logrus"
)

// Formatter provides clean, human-friendly output. It implements
// runner.Printer for inline progress and renders result/summary tables from
// the metrics collector.
type Formatter struct {
	log     logrus.FieldLogger
	writer  io.Writer
	verbose bool

	// Table formatting components
	metrics          metrics.Collector
	resultsFormatter *table.ResultsFormatter
	summaryFormatter *table.SummaryFormatter

	// Colors
	green *color.Color
	red   *color.Color
	blue  *color.Color
	gray  *color.Color
}

// NewFormatter creates a new output formatter
func NewFormatter(
	log logrus.FieldLogger,
	writer io.Writer,
	verbose bool,
	metricsCollector metrics.Collector,
) *Formatter {
	renderer := table.NewRenderer(log)

	return &Formatter{
		log:              log.WithField("component", "output_formatter"),
		writer:           writer,
		verbose:          verbose,
		metrics:          metricsCollector,
		resultsFormatter: table.NewResultsFormatter(log, renderer),
		summaryFormatter: table.NewSummaryFormatter(log, renderer),
		green:            color.New(color.FgGreen),
		red:              color.New(color.FgRed),
		blue:             color.New(color.FgBlue),
		gray:             color.New(color.FgHiBlack),
	}
}

// TestStarted prints the test header when a test begins executing.
func (f *Formatter) TestStarted(id, description string) {
	f.blue.Fprintf(f.writer, "\n▸ %s", id)

	if description != "" {
		f.gray.Fprintf(f.writer, " - %s", description)
	}

	fmt.Fprintln(f.writer)
}

// TestFinished prints the per-test outcome line.
func (f *Formatter) TestFinished(res *runner.Result) {
	if res.Passed {
		f.green.Fprintf(f.writer, "  ✓ passed")
	} else {
		f.red.Fprintf(f.writer, "  ✗ failed")

		if res.Error != "" {
			f.red.Fprintf(f.writer, ": %s", res.Error)
		}
	}

	f.gray.Fprintf(f.writer, " (%s)\n", format.Duration(res.Time))

	if !f.verbose {
		return
	}

	for _, exp := range res.Expectations {
		marker := f.green.Sprint("✓")
		if !exp.Met {
			marker = f.red.Sprint("✗")
		}

		fmt.Fprintf(f.writer, "    %s %s [%s]\n", marker, exp.Description, exp.Phase)
	}
}

// RunFinished prints the aggregate run outcome line.
func (f *Formatter) RunFinished(rep *runner.Report) {
	if rep.AllPassed {
		f.green.Fprintf(f.writer, "\nall %d test(s) passed", len(rep.Tests))
	} else {
		f.red.Fprintf(f.writer, "\nrun failed")
	}

	f.gray.Fprintf(f.writer, " (%s)\n", format.Duration(rep.TimeTaken))
}

// PrintResults prints a table of test results
func (f *Formatter) PrintResults() {
	testMetrics := f.metrics.GetTestMetrics()
	fmt.Fprintln(f.writer, f.resultsFormatter.Format(testMetrics))
}

// PrintSummary prints a summary table with aggregate statistics
func (f *Formatter) PrintSummary() {
	summary := f.metrics.GetSummary()
	fmt.Fprintln(f.writer, f.summaryFormatter.Format(summary))
}

// Compile-time interface compliance check
var _ runner.Printer = (*Formatter)(nil)
