package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pharmaguard/pharmaguard/internal/analysis"
)

func newScenariosCmd() *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "Run the bundled verification scenarios",
		Long: `Runs the bundled sample VCFs through the full pipeline and checks
each drug's risk label against the expected outcome.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			defer logger.Sync()

			pipeline := analysis.New()
			pipeline.SetLogger(logger)
			results, err := pipeline.RunScenarios(cmd.Context(), workers)
			if err != nil {
				return err
			}

			failed := 0
			for _, res := range results {
				status := "PASS"
				if !res.Passed() {
					status = "FAIL"
					failed++
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-4s %s (%d drugs)\n",
					status, res.Scenario.Name, len(res.Scenario.Drugs))
				if res.Err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "     error: %v\n", res.Err)
				}
				for _, m := range res.Mismatches {
					fmt.Fprintf(cmd.OutOrStdout(), "     %s\n", m)
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d scenarios failed", failed, len(results))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "All %d scenarios passed\n", len(results))
			return nil
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 0, "Worker pool size (0 = number of CPUs)")

	return cmd
}
