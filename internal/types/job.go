package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ExperienceLevel is the seniority band advertised on a job.
type ExperienceLevel string

// Experience levels, ordered by seniority.
const (
	LevelEntry     ExperienceLevel = "entry"
	LevelJunior    ExperienceLevel = "junior"
	LevelMid       ExperienceLevel = "mid"
	LevelSenior    ExperienceLevel = "senior"
	LevelLead      ExperienceLevel = "lead"
	LevelExecutive ExperienceLevel = "executive"
)

// JobSignal is the read-only view of a job posting used for matching.
type JobSignal struct {
	ID                uuid.UUID       `json:"id"`
	Title             string          `json:"title,omitempty"`
	CompanyID         uuid.UUID       `json:"company_id"`
	CompanyName       string          `json:"company_name,omitempty"`
	CompanyVerified   bool            `json:"company_verified,omitempty"`
	RequiredSkills    []string        `json:"required_skills,omitempty"`
	PreferredSkills   []string        `json:"preferred_skills,omitempty"`
	MinExperience     *int            `json:"min_experience,omitempty" validate:"omitempty,gte=0"`
	MaxExperience     *int            `json:"max_experience,omitempty" validate:"omitempty,gte=0"`
	ExperienceLevel   ExperienceLevel `json:"experience_level,omitempty" validate:"omitempty,oneof=entry junior mid senior lead executive"`
	RequiredEducation string          `json:"required_education,omitempty"`
	Location          string          `json:"location,omitempty"`
	IsRemote          bool            `json:"is_remote,omitempty"`
	JobType           string          `json:"job_type,omitempty"`
	SalaryMin         *float64        `json:"salary_min,omitempty" validate:"omitempty,gte=0"`
	SalaryMax         *float64        `json:"salary_max,omitempty" validate:"omitempty,gte=0"`
	CategoryID        string          `json:"category_id,omitempty"`
	ApplicationsCount int             `json:"applications_count" validate:"gte=0"`
	ViewsCount        int             `json:"views_count" validate:"gte=0"`
	CreatedAt         time.Time       `json:"created_at"`
	IsActive          bool            `json:"is_active"`
}

// Validate validates the JobSignal using the validator.
func (j *JobSignal) Validate() error {
	validate := validator.New()
	if err := validate.Struct(j); err != nil {
		return err
	}
	if j.MinExperience != nil && j.MaxExperience != nil && *j.MinExperience > *j.MaxExperience {
		return fmt.Errorf("min_experience %d exceeds max_experience %d", *j.MinExperience, *j.MaxExperience)
	}
	if j.SalaryMin != nil && j.SalaryMax != nil && *j.SalaryMin > *j.SalaryMax {
		return fmt.Errorf("salary_min %.0f exceeds salary_max %.0f", *j.SalaryMin, *j.SalaryMax)
	}
	return nil
}

// RemoteFriendly reports whether the job can be done remotely.
func (j *JobSignal) RemoteFriendly() bool {
	return j.IsRemote || strings.Contains(strings.ToLower(j.JobType), "remote")
}

// DaysOld returns whole days elapsed since the job was posted.
func (j *JobSignal) DaysOld(now time.Time) int {
	if j.CreatedAt.IsZero() || now.Before(j.CreatedAt) {
		return 0
	}
	return int(now.Sub(j.CreatedAt).Hours() / 24)
}

// Int returns a pointer to v. Convenience for optional integer fields.
func Int(v int) *int { return &v }

// Float returns a pointer to v. Convenience for optional salary fields.
func Float(v float64) *float64 { return &v }
