package types

import (
	"time"

	"github.com/google/uuid"
)

// MatchScore is a cached compatibility score between a candidate and a job.
type MatchScore struct {
	CandidateID uuid.UUID `json:"candidate_id"`
	JobID       uuid.UUID `json:"job_id"`
	Value       int       `json:"value"`
	ComputedAt  time.Time `json:"computed_at"`
}

// ScoreBreakdown lists the component sub-scores behind a match score.
type ScoreBreakdown struct {
	Skills     int  `json:"skills"`
	Experience int  `json:"experience"`
	Education  int  `json:"education"`
	Location   int  `json:"location"`
	JobType    int  `json:"job_type"`
	Salary     int  `json:"salary"`
	Total      int  `json:"total"`
	NoProfile  bool `json:"no_profile,omitempty"`
}

// LearningRecommendation suggests how to close one missing required skill.
type LearningRecommendation struct {
	Skill         string   `json:"skill"`
	EstimatedTime string   `json:"estimated_time"`
	BuildsOn      []string `json:"builds_on,omitempty"`
}

// GapReport compares a candidate's skills with a job's requirements.
type GapReport struct {
	MatchedRequired         []string                 `json:"matched_required"`
	MissingRequired         []string                 `json:"missing_required"`
	MatchedPreferred        []string                 `json:"matched_preferred"`
	MissingPreferred        []string                 `json:"missing_preferred"`
	ExtraSkills             []string                 `json:"extra_skills"`
	RequiredMatchPct        float64                  `json:"required_match_pct"`
	PreferredMatchPct       float64                  `json:"preferred_match_pct"`
	OverallMatchPct         float64                  `json:"overall_match_pct"`
	LearningRecommendations []LearningRecommendation `json:"learning_recommendations"`
}
