package cmd

import (
	"fmt"
	"os"

	"github.com/probelab/verity/internal/suite"
	"github.com/probelab/verity/internal/table"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [suite files or directories...]",
	Short: "List the tests declared in suite files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		loader := suite.NewLoader(Logger)

		suites, err := loader.LoadPaths(args)
		if err != nil {
			return fmt.Errorf("loading suites: %w", err)
		}

		var (
			headers = []string{"Suite", "Test", "Description", "Checks"}
			rows    = make([][]string, 0)
		)

		for _, s := range suites {
			for _, tc := range s.Tests {
				rows = append(rows, []string{
					s.Suite,
					tc.ID,
					tc.Description,
					fmt.Sprintf("%d", len(tc.Checks)),
				})
			}
		}

		renderer := table.NewRenderer(Logger)
		renderer.RenderToWriter(os.Stdout, headers, rows)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
