package matcher

import (
	"context"

	"github.com/google/uuid"

	"github.com/jonathan/talent-matcher/internal/types"
)

// Kinds reported in NotFoundError.
const (
	KindCandidate = "candidate"
	KindJob       = "job"
)

// JobFilter narrows the active job pool. Zero values mean no restriction.
type JobFilter struct {
	CategoryIDs []string
	Limit       int
}

// CandidateFilter narrows the candidate pool. Zero values mean no restriction.
type CandidateFilter struct {
	CategoryIDs []string
	Limit       int
}

// DataSource supplies read-only snapshots of candidates and jobs. Lookups of unknown ids
// return a *NotFoundError.
type DataSource interface {
	CandidateSignal(ctx context.Context, id uuid.UUID) (*types.CandidateSignal, error)
	JobSignal(ctx context.Context, id uuid.UUID) (*types.JobSignal, error)
	ActiveJobs(ctx context.Context, filter JobFilter) ([]types.JobSignal, error)
	Candidates(ctx context.Context, filter CandidateFilter) ([]types.CandidateSignal, error)
	AppliedJobIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	SavedJobIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	ApplicantIDs(ctx context.Context, jobID uuid.UUID) ([]uuid.UUID, error)
}
