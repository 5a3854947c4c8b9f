package types

import (
	"time"

	"github.com/google/uuid"
)

// Match reasons attached to recommended jobs.
const (
	ReasonStrongSkillMatch = "strong skill match"
	ReasonRemoteFriendly   = "remote friendly"
	ReasonRecentlyPosted   = "recently posted"
	ReasonFewApplicants    = "few applicants"
)

// ScoredJob is a job annotated with its match score for one candidate.
type ScoredJob struct {
	Job     JobSignal `json:"job"`
	Score   int       `json:"score"`
	Reasons []string  `json:"reasons,omitempty"`
	Saved   bool      `json:"saved,omitempty"`
}

// TrendingJob is a job ranked by recency and popularity.
type TrendingJob struct {
	Job           JobSignal `json:"job"`
	TrendingScore float64   `json:"trending_score"`
}

// CompanyHiring summarizes a verified company with recent open positions.
type CompanyHiring struct {
	CompanyID      uuid.UUID `json:"company_id"`
	CompanyName    string    `json:"company_name"`
	OpenPositions  int       `json:"open_positions"`
	LatestPostedAt time.Time `json:"latest_posted_at"`
}

// JobBundle is the candidate-facing recommendation bundle.
type JobBundle struct {
	CandidateID     uuid.UUID       `json:"candidate_id"`
	Matched         []ScoredJob     `json:"matched"`
	Trending        []TrendingJob   `json:"trending"`
	NewJobs         []JobSignal     `json:"new_jobs"`
	CompaniesHiring []CompanyHiring `json:"companies_hiring"`
	GeneratedAt     time.Time       `json:"generated_at"`
}

// ScoredCandidate is a candidate annotated with its match score for one job.
type ScoredCandidate struct {
	Candidate CandidateSignal `json:"candidate"`
	Score     int             `json:"score"`
}

// CandidateBundle is the employer-facing recommendation bundle.
type CandidateBundle struct {
	JobID            uuid.UUID         `json:"job_id"`
	Matched          []ScoredCandidate `json:"matched"`
	ActiveSeekers    []CandidateSignal `json:"active_seekers"`
	RecentApplicants []CandidateSignal `json:"recent_applicants"`
	GeneratedAt      time.Time         `json:"generated_at"`
}

// SimilarJob is a job ranked by similarity to a reference job.
type SimilarJob struct {
	Job             JobSignal `json:"job"`
	SimilarityScore int       `json:"similarity_score"`
}
