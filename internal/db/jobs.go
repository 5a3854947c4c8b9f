package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/talent-matcher/internal/matcher"
	"github.com/jonathan/talent-matcher/internal/types"
)

// -----------------------------------------------------------------------------
// Job Methods
// -----------------------------------------------------------------------------

const jobColumns = `j.id, COALESCE(j.company_id, '00000000-0000-0000-0000-000000000000'::uuid),
	COALESCE(c.name, ''), COALESCE(c.is_verified, FALSE), j.title,
	j.required_skills, j.preferred_skills, j.min_experience, j.max_experience,
	j.experience_level, j.required_education, j.location, j.is_remote, j.job_type,
	j.salary_min, j.salary_max, j.category_id, j.applications_count, j.views_count,
	j.created_at, j.is_active`

const jobFrom = ` FROM jobs j LEFT JOIN companies c ON c.id = j.company_id`

func scanJob(row pgx.Row) (*types.JobSignal, error) {
	var j types.JobSignal
	var level string
	err := row.Scan(&j.ID, &j.CompanyID, &j.CompanyName, &j.CompanyVerified, &j.Title,
		&j.RequiredSkills, &j.PreferredSkills, &j.MinExperience, &j.MaxExperience,
		&level, &j.RequiredEducation, &j.Location, &j.IsRemote, &j.JobType,
		&j.SalaryMin, &j.SalaryMax, &j.CategoryID, &j.ApplicationsCount, &j.ViewsCount,
		&j.CreatedAt, &j.IsActive)
	if err != nil {
		return nil, err
	}
	j.ExperienceLevel = types.ExperienceLevel(level)
	return &j, nil
}

// JobSignal retrieves one job with its company details.
func (db *DB) JobSignal(ctx context.Context, id uuid.UUID) (*types.JobSignal, error) {
	job, err := scanJob(db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+jobFrom+` WHERE j.id = $1`, id))
	if err != nil {
		return nil, notFound(err, matcher.KindJob, id)
	}
	return job, nil
}

// ActiveJobs lists active jobs, newest first.
func (db *DB) ActiveJobs(ctx context.Context, filter matcher.JobFilter) ([]types.JobSignal, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+jobColumns+jobFrom+`
		 WHERE j.is_active
		   AND (cardinality($1::text[]) = 0 OR j.category_id = ANY($1))
		 ORDER BY j.created_at DESC, j.id
		 LIMIT $2`,
		categoriesArg(filter.CategoryIDs), limitArg(filter.Limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list active jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]types.JobSignal, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list active jobs: %w", err)
	}
	return jobs, nil
}

// ApplicantIDs lists the users who applied to the job.
func (db *DB) ApplicantIDs(ctx context.Context, jobID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT user_id FROM applications WHERE job_id = $1 ORDER BY applied_at DESC, user_id`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applicants: %w", err)
	}
	ids, err := collectIDs(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list applicants: %w", err)
	}
	return ids, nil
}
