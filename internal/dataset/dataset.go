// Package dataset serves candidates and jobs from a JSON fixture file. It backs the offline
// CLI commands and tests where no database is available.
package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/talent-matcher/internal/matcher"
	"github.com/jonathan/talent-matcher/internal/schemas"
	"github.com/jonathan/talent-matcher/internal/types"
)

// jobRecord lets fixtures omit is_active; jobs are active unless marked otherwise.
type jobRecord struct {
	types.JobSignal
	IsActive *bool `json:"is_active,omitempty"`
}

// File is the on-disk form of a dataset.
type File struct {
	Candidates []types.CandidateSignal   `json:"candidates"`
	Jobs       []jobRecord               `json:"jobs"`
	SavedJobs  map[uuid.UUID][]uuid.UUID `json:"saved_jobs,omitempty"`
}

// Dataset is an immutable, in-memory matcher.DataSource.
type Dataset struct {
	candidates []types.CandidateSignal
	jobs       []types.JobSignal
	candByID   map[uuid.UUID]int
	jobByID    map[uuid.UUID]int
	saved      map[uuid.UUID][]uuid.UUID
}

var _ matcher.DataSource = (*Dataset)(nil)

// Load reads and validates a dataset file.
func Load(path string) (*Dataset, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to read file", Cause: err}
	}
	return Parse(path, content)
}

// Parse builds a Dataset from JSON content. name is only used in error messages.
func Parse(name string, content []byte) (*Dataset, error) {
	if err := schemas.Validate(schemas.DatasetSchema, content); err != nil {
		return nil, &LoadError{Path: name, Message: "schema validation failed", Cause: err}
	}

	var f File
	if err := json.Unmarshal(content, &f); err != nil {
		return nil, &LoadError{Path: name, Message: "failed to unmarshal JSON", Cause: err}
	}

	d := &Dataset{
		candidates: make([]types.CandidateSignal, 0, len(f.Candidates)),
		jobs:       make([]types.JobSignal, 0, len(f.Jobs)),
		candByID:   make(map[uuid.UUID]int, len(f.Candidates)),
		jobByID:    make(map[uuid.UUID]int, len(f.Jobs)),
		saved:      f.SavedJobs,
	}

	for i, c := range f.Candidates {
		if err := c.Validate(); err != nil {
			return nil, &LoadError{Path: name, Message: fmt.Sprintf("candidates[%d] invalid", i), Cause: err}
		}
		if _, dup := d.candByID[c.ID]; dup {
			return nil, &LoadError{Path: name, Message: fmt.Sprintf("duplicate candidate %s", c.ID)}
		}
		d.candByID[c.ID] = len(d.candidates)
		d.candidates = append(d.candidates, c)
	}

	for i, rec := range f.Jobs {
		job := rec.JobSignal
		job.IsActive = rec.IsActive == nil || *rec.IsActive
		if err := job.Validate(); err != nil {
			return nil, &LoadError{Path: name, Message: fmt.Sprintf("jobs[%d] invalid", i), Cause: err}
		}
		if _, dup := d.jobByID[job.ID]; dup {
			return nil, &LoadError{Path: name, Message: fmt.Sprintf("duplicate job %s", job.ID)}
		}
		d.jobByID[job.ID] = len(d.jobs)
		d.jobs = append(d.jobs, job)
	}

	return d, nil
}

// Len returns the number of candidates and jobs.
func (d *Dataset) Len() (candidates, jobs int) {
	return len(d.candidates), len(d.jobs)
}

// CandidateSignal implements matcher.DataSource.
func (d *Dataset) CandidateSignal(_ context.Context, id uuid.UUID) (*types.CandidateSignal, error) {
	i, ok := d.candByID[id]
	if !ok {
		return nil, &matcher.NotFoundError{Kind: matcher.KindCandidate, ID: id}
	}
	c := d.candidates[i]
	return &c, nil
}

// JobSignal implements matcher.DataSource.
func (d *Dataset) JobSignal(_ context.Context, id uuid.UUID) (*types.JobSignal, error) {
	i, ok := d.jobByID[id]
	if !ok {
		return nil, &matcher.NotFoundError{Kind: matcher.KindJob, ID: id}
	}
	j := d.jobs[i]
	return &j, nil
}

// ActiveJobs implements matcher.DataSource. Jobs are returned newest first.
func (d *Dataset) ActiveJobs(_ context.Context, filter matcher.JobFilter) ([]types.JobSignal, error) {
	out := make([]types.JobSignal, 0, len(d.jobs))
	for _, j := range d.jobs {
		if !j.IsActive || !inCategories(filter.CategoryIDs, j.CategoryID) {
			continue
		}
		out = append(out, j)
	}
	slices.SortStableFunc(out, func(a, b types.JobSignal) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return limited(out, filter.Limit), nil
}

// Candidates implements matcher.DataSource. Candidates keep their file order.
func (d *Dataset) Candidates(_ context.Context, filter matcher.CandidateFilter) ([]types.CandidateSignal, error) {
	out := make([]types.CandidateSignal, 0, len(d.candidates))
	for _, c := range d.candidates {
		if len(filter.CategoryIDs) > 0 && !slices.ContainsFunc(c.PreferredCategories, func(cat string) bool {
			return inCategories(filter.CategoryIDs, cat)
		}) {
			continue
		}
		out = append(out, c)
	}
	return limited(out, filter.Limit), nil
}

// AppliedJobIDs implements matcher.DataSource.
func (d *Dataset) AppliedJobIDs(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	i, ok := d.candByID[userID]
	if !ok {
		return []uuid.UUID{}, nil
	}
	apps := d.candidates[i].Applications
	ids := make([]uuid.UUID, 0, len(apps))
	for _, a := range apps {
		ids = append(ids, a.JobID)
	}
	return ids, nil
}

// SavedJobIDs implements matcher.DataSource.
func (d *Dataset) SavedJobIDs(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return slices.Clone(d.saved[userID]), nil
}

// ApplicantIDs implements matcher.DataSource.
func (d *Dataset) ApplicantIDs(_ context.Context, jobID uuid.UUID) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0)
	for _, c := range d.candidates {
		if slices.ContainsFunc(c.Applications, func(a types.ApplicationRef) bool { return a.JobID == jobID }) {
			ids = append(ids, c.ID)
		}
	}
	return ids, nil
}

func inCategories(filter []string, category string) bool {
	if len(filter) == 0 {
		return true
	}
	return slices.ContainsFunc(filter, func(f string) bool { return strings.EqualFold(f, category) })
}

func limited[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
