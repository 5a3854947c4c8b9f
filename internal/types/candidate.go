// Package types provides type definitions for the signals, reports and bundles exchanged
// between the matching engine and the surrounding application.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// SkillEntry is a single skill as stored on a candidate profile.
// Profiles may carry a bare name or a name with a proficiency level.
type SkillEntry struct {
	Name  string `json:"name"`
	Level string `json:"level,omitempty"`
}

// SkillList accepts either ["go", "sql"] or [{"name": "go", "level": "expert"}] on decode.
type SkillList []SkillEntry

// UnmarshalJSON unwraps string and {name, level} entries into SkillEntry values.
func (s *SkillList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = nil
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("skills must be an array: %w", err)
	}

	out := make(SkillList, 0, len(raw))
	for i, item := range raw {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || bytes.Equal(item, []byte("null")) {
			continue
		}
		if item[0] == '"' {
			var name string
			if err := json.Unmarshal(item, &name); err != nil {
				return fmt.Errorf("skills[%d]: %w", i, err)
			}
			out = append(out, SkillEntry{Name: name})
			continue
		}
		var entry SkillEntry
		if err := json.Unmarshal(item, &entry); err != nil {
			return fmt.Errorf("skills[%d]: %w", i, err)
		}
		out = append(out, entry)
	}

	*s = out
	return nil
}

// Names returns the raw skill names in declaration order.
func (s SkillList) Names() []string {
	names := make([]string, 0, len(s))
	for _, e := range s {
		names = append(names, e.Name)
	}
	return names
}

// SkillsFromNames builds a SkillList from plain names.
func SkillsFromNames(names ...string) SkillList {
	out := make(SkillList, 0, len(names))
	for _, n := range names {
		out = append(out, SkillEntry{Name: n})
	}
	return out
}

// EducationEntry is one completed (or in-progress) degree.
type EducationEntry struct {
	Degree string `json:"degree"`
	Field  string `json:"field,omitempty"`
	Year   *int   `json:"year,omitempty" validate:"omitempty,gte=1900,lte=2100"`
}

// ApplicationRef records a past application by a candidate.
type ApplicationRef struct {
	JobID      uuid.UUID `json:"job_id"`
	CategoryID string    `json:"category_id,omitempty"`
	AppliedAt  time.Time `json:"applied_at"`
}

// CandidateSignal is the read-only view of a job seeker used for matching.
type CandidateSignal struct {
	ID                  uuid.UUID        `json:"id"`
	Name                string           `json:"name,omitempty"`
	Skills              SkillList        `json:"skills,omitempty"`
	ExperienceYears     int              `json:"experience_years" validate:"gte=0,lte=80"`
	Education           []EducationEntry `json:"education,omitempty" validate:"dive"`
	PreferredJobTypes   []string         `json:"preferred_job_types,omitempty"`
	PreferredCategories []string         `json:"preferred_categories,omitempty"`
	ExpectedSalaryMin   *float64         `json:"expected_salary_min,omitempty" validate:"omitempty,gte=0"`
	ExpectedSalaryMax   *float64         `json:"expected_salary_max,omitempty" validate:"omitempty,gte=0"`
	Location            string           `json:"location,omitempty"`
	City                string           `json:"city,omitempty"`
	Country             string           `json:"country,omitempty"`
	LastActiveAt        *time.Time       `json:"last_active_at,omitempty"`
	Applications        []ApplicationRef `json:"applications,omitempty"`
}

// HasProfile reports whether the candidate carries any matching signal at all.
// A candidate without a profile scores 0 against every job.
func (c *CandidateSignal) HasProfile() bool {
	if c == nil {
		return false
	}
	return len(c.Skills) > 0 ||
		c.ExperienceYears > 0 ||
		len(c.Education) > 0 ||
		len(c.PreferredJobTypes) > 0 ||
		len(c.PreferredCategories) > 0 ||
		c.ExpectedSalaryMin != nil ||
		c.ExpectedSalaryMax != nil ||
		c.Location != "" || c.City != "" || c.Country != ""
}

// Validate validates the CandidateSignal using the validator.
func (c *CandidateSignal) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.ExpectedSalaryMin != nil && c.ExpectedSalaryMax != nil && *c.ExpectedSalaryMin > *c.ExpectedSalaryMax {
		return fmt.Errorf("expected_salary_min %.0f exceeds expected_salary_max %.0f", *c.ExpectedSalaryMin, *c.ExpectedSalaryMax)
	}
	return nil
}
