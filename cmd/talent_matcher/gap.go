package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/talent-matcher/internal/observability"
)

var (
	gapCandidate string
	gapJob       string
)

var gapCmd = &cobra.Command{
	Use:   "gap",
	Short: "Report matched and missing skills for a candidate/job pair",
	Long:  `Partition the job's required and preferred skills into matched and missing, and suggest how to learn the missing required ones.`,
	RunE:  runGap,
}

func init() {
	gapCmd.Flags().StringVar(&gapCandidate, "candidate", "", "Candidate ID (required)")
	gapCmd.Flags().StringVar(&gapJob, "job", "", "Job ID (required)")

	_ = gapCmd.MarkFlagRequired("candidate")
	_ = gapCmd.MarkFlagRequired("job")
	rootCmd.AddCommand(gapCmd)
}

func runGap(cmd *cobra.Command, _ []string) error {
	rt, err := openRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	report, err := rt.service.AnalyzeGapByID(cmd.Context(), gapCandidate, gapJob)
	if err != nil {
		return err
	}
	if verbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintGap(report)
		return nil
	}
	return writeJSON(cmd.OutOrStdout(), report)
}
