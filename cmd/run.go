package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/probelab/verity/internal/config"
	"github.com/probelab/verity/internal/metrics"
	"github.com/probelab/verity/internal/output"
	"github.com/probelab/verity/internal/suite"
	"github.com/probelab/verity/pkg/interactive"
	"github.com/probelab/verity/pkg/runner"
	"github.com/spf13/cobra"
)

var (
	runFailSilently      bool
	runSetupExpectations bool
	runInteractive       bool
	runJSON              bool
	runVerbose           bool
)

var runCmd = &cobra.Command{
	Use:   "run [suite files or directories...]",
	Short: "Run test suites",
	Long: `Run the tests declared in one or more suite files.

Suites load in argument order; within a directory, files load in name order.
Tests execute strictly sequentially. Without --fail-silently the first
failing test halts the run and skips the remaining tests.

Examples:
  verity run suites/
  verity run suites/totals.yaml suites/shapes.yaml --fail-silently
  verity run suites/ --interactive`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		// Flags override env configuration when set
		if cmd.Flags().Changed("fail-silently") {
			cfg.FailSilently = runFailSilently
		}
		if cmd.Flags().Changed("setup-expectations") {
			cfg.SetupExpectations = runSetupExpectations
		}
		if cmd.Flags().Changed("verbose") {
			cfg.Verbose = runVerbose
		}

		return runSuites(cmd.Context(), cfg, args)
	},
}

func runSuites(ctx context.Context, cfg *config.Config, paths []string) error {
	loader := suite.NewLoader(Logger)

	suites, err := loader.LoadPaths(paths)
	if err != nil {
		return fmt.Errorf("loading suites: %w", err)
	}

	collector := metrics.NewCollector(Logger)
	if err := collector.Start(ctx); err != nil {
		return fmt.Errorf("starting metrics collector: %w", err)
	}

	defer func() {
		if err := collector.Stop(); err != nil {
			Logger.WithError(err).Warn("failed to stop metrics collector")
		}
	}()

	formatter := output.NewFormatter(Logger, os.Stdout, cfg.Verbose, collector)

	group := runner.NewGroup(&runner.Config{
		Logger: Logger,
		Options: runner.Options{
			Output:            !runJSON,
			SetupExpectations: cfg.SetupExpectations,
			FailSilently:      cfg.FailSilently,
		},
		Printer: formatter,
	})

	if err := suite.RegisterAll(group, suites); err != nil {
		return err
	}

	ids := group.IDs()
	if runInteractive {
		ids, err = interactive.SelectTests(ids)
		if err != nil {
			return fmt.Errorf("selecting tests: %w", err)
		}
	}

	rep, runErr := group.Run(ctx, ids...)
	if rep == nil {
		return runErr
	}

	if runErr != nil {
		Logger.WithError(runErr).Debug("run halted on failure")
	}

	collector.RecordRun(rep)

	if runJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
	} else {
		formatter.PrintResults()
		formatter.PrintSummary()
	}

	if !rep.AllPassed {
		if runErr != nil {
			return fmt.Errorf("%d of %d test(s) failed: %w", failedCount(rep), len(rep.Tests), runErr)
		}

		return fmt.Errorf("%d of %d test(s) failed", failedCount(rep), len(rep.Tests)) //nolint:err113 // exit status message for the CLI
	}

	return nil
}

func failedCount(rep *runner.Report) int {
	failed := 0

	for _, res := range rep.Tests {
		if !res.Passed {
			failed++
		}
	}

	return failed
}

func init() {
	runCmd.Flags().BoolVar(&runFailSilently, "fail-silently", false, "keep running after a failed test")
	runCmd.Flags().BoolVar(&runSetupExpectations, "setup-expectations", false, "record expectations made during setup")
	runCmd.Flags().BoolVarP(&runInteractive, "interactive", "i", false, "pick the tests to run interactively")
	runCmd.Flags().BoolVar(&runJSON, "json", false, "print the run report as JSON")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "print every expectation record")

	rootCmd.AddCommand(runCmd)
}
