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
// Candidate Methods
// -----------------------------------------------------------------------------

const candidateColumns = `user_id, name, skills, experience_years, education,
	preferred_job_types, preferred_categories, expected_salary_min, expected_salary_max,
	location, city, country, last_active_at`

func scanCandidate(row pgx.Row) (*types.CandidateSignal, error) {
	var c types.CandidateSignal
	err := row.Scan(&c.ID, &c.Name, &c.Skills, &c.ExperienceYears, &c.Education,
		&c.PreferredJobTypes, &c.PreferredCategories, &c.ExpectedSalaryMin, &c.ExpectedSalaryMax,
		&c.Location, &c.City, &c.Country, &c.LastActiveAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CandidateSignal retrieves one candidate profile with its application history.
func (db *DB) CandidateSignal(ctx context.Context, id uuid.UUID) (*types.CandidateSignal, error) {
	c, err := scanCandidate(db.pool.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidate_profiles WHERE user_id = $1`, id))
	if err != nil {
		return nil, notFound(err, matcher.KindCandidate, id)
	}

	apps, err := db.applicationsByUser(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	c.Applications = apps[id]
	return c, nil
}

// Candidates lists candidate profiles, most recently active first.
func (db *DB) Candidates(ctx context.Context, filter matcher.CandidateFilter) ([]types.CandidateSignal, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+candidateColumns+` FROM candidate_profiles
		 WHERE cardinality($1::text[]) = 0 OR preferred_categories && $1
		 ORDER BY last_active_at DESC NULLS LAST, user_id
		 LIMIT $2`,
		categoriesArg(filter.CategoryIDs), limitArg(filter.Limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	candidates := make([]types.CandidateSignal, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, *c)
		ids = append(ids, c.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	apps, err := db.applicationsByUser(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range candidates {
		candidates[i].Applications = apps[candidates[i].ID]
	}
	return candidates, nil
}

// AppliedJobIDs lists the jobs the user applied to.
func (db *DB) AppliedJobIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT job_id FROM applications WHERE user_id = $1 ORDER BY applied_at DESC, job_id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applied jobs: %w", err)
	}
	ids, err := collectIDs(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list applied jobs: %w", err)
	}
	return ids, nil
}

// SavedJobIDs lists the jobs the user saved.
func (db *DB) SavedJobIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT job_id FROM saved_jobs WHERE user_id = $1 ORDER BY saved_at DESC, job_id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved jobs: %w", err)
	}
	ids, err := collectIDs(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved jobs: %w", err)
	}
	return ids, nil
}

// applicationsByUser loads application history, with each job's category, for many users.
func (db *DB) applicationsByUser(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]types.ApplicationRef, error) {
	out := make(map[uuid.UUID][]types.ApplicationRef, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	rows, err := db.pool.Query(ctx,
		`SELECT a.user_id, a.job_id, j.category_id, a.applied_at
		 FROM applications a JOIN jobs j ON j.id = a.job_id
		 WHERE a.user_id = ANY($1)
		 ORDER BY a.applied_at DESC`,
		userIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load applications: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID uuid.UUID
		var app types.ApplicationRef
		if err := rows.Scan(&userID, &app.JobID, &app.CategoryID, &app.AppliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		out[userID] = append(out[userID], app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load applications: %w", err)
	}
	return out, nil
}
