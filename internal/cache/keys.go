package cache

import (
	"time"

	"github.com/google/uuid"
)

// TTLs sets the lifetime of each cached value family.
type TTLs struct {
	Score   time.Duration `mapstructure:"score"`
	Bundle  time.Duration `mapstructure:"bundle"`
	Similar time.Duration `mapstructure:"similar"`
}

// DefaultTTLs returns the standard lifetimes: scores and similarity lists for an hour,
// recommendation bundles for half an hour.
func DefaultTTLs() TTLs {
	return TTLs{
		Score:   time.Hour,
		Bundle:  30 * time.Minute,
		Similar: time.Hour,
	}
}

// ScoreKey is the cache key of one candidate/job match score.
func ScoreKey(candidateID, jobID uuid.UUID) string {
	return "match:" + candidateID.String() + ":" + jobID.String()
}

// CandidateBundleKey is the cache key of a candidate-facing recommendation bundle.
func CandidateBundleKey(candidateID uuid.UUID) string {
	return "reco:candidate:" + candidateID.String()
}

// JobBundleKey is the cache key of an employer-facing recommendation bundle.
func JobBundleKey(jobID uuid.UUID) string {
	return "reco:job:" + jobID.String()
}

// SimilarKey is the cache key of the similar-jobs list of a job.
func SimilarKey(jobID uuid.UUID) string {
	return "similar:" + jobID.String()
}

// CandidateTag groups every entry derived from a candidate.
func CandidateTag(candidateID uuid.UUID) string {
	return "candidate:" + candidateID.String()
}

// JobTag groups every entry derived from a job.
func JobTag(jobID uuid.UUID) string {
	return "job:" + jobID.String()
}
