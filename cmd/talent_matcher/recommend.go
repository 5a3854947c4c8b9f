package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-matcher/internal/observability"
	"github.com/jonathan/talent-matcher/internal/recommend"
)

var (
	recommendCandidate string
	recommendJob       string
	recommendLimit     int
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend jobs for a candidate or candidates for a job",
	Long: `With --candidate, print the candidate's job bundle: matched, trending, new jobs and companies hiring.
With --job, print the job's candidate bundle: matched, active seekers and recent applicants.`,
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().StringVar(&recommendCandidate, "candidate", "", "Candidate ID")
	recommendCmd.Flags().StringVar(&recommendJob, "job", "", "Job ID")
	recommendCmd.Flags().IntVar(&recommendLimit, "limit", recommend.DefaultLimit, "Maximum entries per bucket")

	recommendCmd.MarkFlagsMutuallyExclusive("candidate", "job")
	recommendCmd.MarkFlagsOneRequired("candidate", "job")
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	if recommendLimit < 1 {
		return errors.New("--limit must be at least 1")
	}

	rt, err := openRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	printer := observability.NewPrinter(cmd.OutOrStdout())
	if recommendCandidate != "" {
		bundle, err := rt.service.RecommendJobsFor(cmd.Context(), recommendCandidate, recommendLimit)
		if err != nil {
			return err
		}
		if verbose {
			printer.PrintJobBundle(bundle)
			return nil
		}
		return writeJSON(cmd.OutOrStdout(), bundle)
	}

	bundle, err := rt.service.RecommendCandidatesFor(cmd.Context(), recommendJob, recommendLimit)
	if err != nil {
		return err
	}
	if verbose {
		printer.PrintCandidateBundle(bundle)
		return nil
	}
	return writeJSON(cmd.OutOrStdout(), bundle)
}
