package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-matcher/internal/observability"
	"github.com/jonathan/talent-matcher/internal/recommend"
	"github.com/jonathan/talent-matcher/internal/types"
)

var (
	similarJob   string
	similarLimit int
)

var similarCmd = &cobra.Command{
	Use:   "similar",
	Short: "List jobs similar to a job",
	RunE:  runSimilar,
}

func init() {
	similarCmd.Flags().StringVar(&similarJob, "job", "", "Reference job ID (required)")
	similarCmd.Flags().IntVar(&similarLimit, "limit", recommend.DefaultLimit, "Maximum number of jobs")

	_ = similarCmd.MarkFlagRequired("job")
	rootCmd.AddCommand(similarCmd)
}

func runSimilar(cmd *cobra.Command, _ []string) error {
	if similarLimit < 1 {
		return errors.New("--limit must be at least 1")
	}

	rt, err := openRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	similar, err := rt.service.SimilarJobs(cmd.Context(), similarJob, similarLimit)
	if err != nil {
		return err
	}
	if verbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintSimilar(similar)
		return nil
	}
	if similar == nil {
		similar = []types.SimilarJob{}
	}
	return writeJSON(cmd.OutOrStdout(), similar)
}
