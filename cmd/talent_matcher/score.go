package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-matcher/internal/matcher"
	"github.com/jonathan/talent-matcher/internal/observability"
	"github.com/jonathan/talent-matcher/internal/types"
)

var (
	scoreCandidate string
	scoreJob       string
	scoreExplain   bool
)

// scoreOutput is the JSON shape printed by the score command.
type scoreOutput struct {
	CandidateID string                `json:"candidate_id"`
	JobID       string                `json:"job_id"`
	Score       int                   `json:"score"`
	Breakdown   *types.ScoreBreakdown `json:"breakdown,omitempty"`
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one candidate against one job",
	Long:  `Compute the 0-100 match score between a candidate and a job. --explain adds the per-component breakdown.`,
	Example: `  talent_matcher score --dataset dataset.json --candidate <uuid> --job <uuid>
  talent_matcher score --candidate <uuid> --job <uuid> --explain`,
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().StringVar(&scoreCandidate, "candidate", "", "Candidate ID (required)")
	scoreCmd.Flags().StringVar(&scoreJob, "job", "", "Job ID (required)")
	scoreCmd.Flags().BoolVar(&scoreExplain, "explain", false, "Include the score breakdown")

	_ = scoreCmd.MarkFlagRequired("candidate")
	_ = scoreCmd.MarkFlagRequired("job")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	rt, err := openRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()
	ctx := cmd.Context()

	if verbose {
		breakdown, err := rt.service.ExplainByID(ctx, scoreCandidate, scoreJob)
		if err != nil {
			return err
		}
		candidate, job, err := loadSignals(cmd, rt, scoreCandidate, scoreJob)
		if err != nil {
			return err
		}
		observability.NewPrinter(cmd.OutOrStdout()).PrintScore(candidate, job, breakdown)
		return nil
	}

	score, err := rt.service.ScoreByID(ctx, scoreCandidate, scoreJob)
	if err != nil {
		return err
	}
	out := scoreOutput{CandidateID: scoreCandidate, JobID: scoreJob, Score: score}
	if scoreExplain {
		breakdown, err := rt.service.ExplainByID(ctx, scoreCandidate, scoreJob)
		if err != nil {
			return err
		}
		out.Breakdown = &breakdown
	}
	return writeJSON(cmd.OutOrStdout(), out)
}

// loadSignals fetches both signals for the human-readable printers.
func loadSignals(cmd *cobra.Command, rt *runtime, candidateID, jobID string) (*types.CandidateSignal, *types.JobSignal, error) {
	cid, err := matcher.ParseID("candidate_id", candidateID)
	if err != nil {
		return nil, nil, err
	}
	jid, err := matcher.ParseID("job_id", jobID)
	if err != nil {
		return nil, nil, err
	}
	candidate, err := rt.source.CandidateSignal(cmd.Context(), cid)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load candidate: %w", err)
	}
	job, err := rt.source.JobSignal(cmd.Context(), jid)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load job: %w", err)
	}
	return candidate, job, nil
}
