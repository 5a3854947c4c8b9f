package matcher

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-matcher/internal/cache"
	"github.com/jonathan/talent-matcher/internal/ranking"
	"github.com/jonathan/talent-matcher/internal/types"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

// memSource is an in-memory DataSource that counts pool loads.
type memSource struct {
	mu         sync.Mutex
	candidates map[uuid.UUID]types.CandidateSignal
	jobs       map[uuid.UUID]types.JobSignal
	applied    map[uuid.UUID][]uuid.UUID
	saved      map[uuid.UUID][]uuid.UUID
	poolLoads  int
	failPools  error
}

func newMemSource() *memSource {
	return &memSource{
		candidates: make(map[uuid.UUID]types.CandidateSignal),
		jobs:       make(map[uuid.UUID]types.JobSignal),
		applied:    make(map[uuid.UUID][]uuid.UUID),
		saved:      make(map[uuid.UUID][]uuid.UUID),
	}
}

func (m *memSource) putCandidate(c types.CandidateSignal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.candidates[c.ID] = c
}

func (m *memSource) putJob(j types.JobSignal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[j.ID] = j
}

func (m *memSource) CandidateSignal(_ context.Context, id uuid.UUID) (*types.CandidateSignal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.candidates[id]
	if !ok {
		return nil, &NotFoundError{Kind: KindCandidate, ID: id}
	}
	return &c, nil
}

func (m *memSource) JobSignal(_ context.Context, id uuid.UUID) (*types.JobSignal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return nil, &NotFoundError{Kind: KindJob, ID: id}
	}
	return &j, nil
}

func (m *memSource) ActiveJobs(_ context.Context, filter JobFilter) ([]types.JobSignal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.poolLoads++
	if m.failPools != nil {
		return nil, m.failPools
	}
	var out []types.JobSignal
	for _, j := range m.jobs {
		if j.IsActive {
			out = append(out, j)
		}
	}
	slices.SortFunc(out, func(a, b types.JobSignal) int { return b.CreatedAt.Compare(a.CreatedAt) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *memSource) Candidates(_ context.Context, _ CandidateFilter) ([]types.CandidateSignal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.poolLoads++
	var out []types.CandidateSignal
	for _, c := range m.candidates {
		out = append(out, c)
	}
	return out, nil
}

func (m *memSource) AppliedJobIDs(_ context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	return m.applied[id], nil
}

func (m *memSource) SavedJobIDs(_ context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	return m.saved[id], nil
}

func (m *memSource) ApplicantIDs(_ context.Context, jobID uuid.UUID) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for cid, jobs := range m.applied {
		if slices.Contains(jobs, jobID) {
			out = append(out, cid)
		}
	}
	return out, nil
}

type fixture struct {
	source    *memSource
	svc       *Service
	candidate types.CandidateSignal
	backend   types.JobSignal
	design    types.JobSignal
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	src := newMemSource()

	candidate := types.CandidateSignal{
		ID:                  uuid.New(),
		Skills:              types.SkillsFromNames("go", "postgresql", "docker"),
		ExperienceYears:     4,
		PreferredCategories: []string{"backend"},
		LastActiveAt:        ptrTime(testNow.Add(-24 * time.Hour)),
	}
	backend := types.JobSignal{
		ID:              uuid.New(),
		Title:           "Backend Engineer",
		RequiredSkills:  []string{"golang", "postgres"},
		PreferredSkills: []string{"kubernetes"},
		ExperienceLevel: types.LevelMid,
		IsRemote:        true,
		CategoryID:      "backend",
		CreatedAt:       testNow.Add(-24 * time.Hour),
		IsActive:        true,
	}
	design := types.JobSignal{
		ID:             uuid.New(),
		Title:          "Product Designer",
		RequiredSkills: []string{"figma", "sketch"},
		CategoryID:     "design",
		Location:       "Paris",
		CreatedAt:      testNow.Add(-48 * time.Hour),
		IsActive:       true,
	}
	src.putCandidate(candidate)
	src.putJob(backend)
	src.putJob(design)

	svc, err := New(src,
		WithCache(cache.New(cache.NewMemoryStore(0), nil), cache.DefaultTTLs()),
		WithClock(func() time.Time { return testNow }),
	)
	require.NoError(t, err)
	return &fixture{source: src, svc: svc, candidate: candidate, backend: backend, design: design}
}

func ptrTime(t time.Time) *time.Time { return &t }

func TestNew_RejectsBadWeights(t *testing.T) {
	w := ranking.DefaultWeights()
	w.Skills = 0.9

	_, err := New(newMemSource(), WithWeights(w))
	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "weights", invalid.Field)
}

func TestNew_RejectsBadThreshold(t *testing.T) {
	_, err := New(newMemSource(), WithThreshold(101))
	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
}

func TestScore_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Score(ctx, nil, &f.backend)
	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "candidate", invalid.Field)

	bad := f.candidate
	bad.ExperienceYears = -1
	_, err = f.svc.Score(ctx, &bad, &f.backend)
	require.ErrorAs(t, err, &invalid)

	badJob := f.backend
	badJob.ApplicationsCount = -3
	_, err = f.svc.Score(ctx, &f.candidate, &badJob)
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "job", invalid.Field)
}

func TestScore_InlineSignalsBypassCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	stored := f.svc.Engine().Score(&f.candidate, &f.backend)

	fake := f.candidate
	fake.Skills = types.SkillsFromNames("cobol")
	fake.ExperienceYears = 0
	inline, err := f.svc.Score(ctx, &fake, &f.backend)
	require.NoError(t, err)
	require.NotEqual(t, stored, inline)

	byID, err := f.svc.ScoreByID(ctx, f.candidate.ID.String(), f.backend.ID.String())
	require.NoError(t, err)
	assert.Equal(t, stored, byID, "inline signals must not populate the score cache")

	again, err := f.svc.Score(ctx, &fake, &f.backend)
	require.NoError(t, err)
	assert.Equal(t, inline, again)

	genuine, err := f.svc.Score(ctx, &f.candidate, &f.backend)
	require.NoError(t, err)
	assert.Equal(t, stored, genuine)

	assert.Zero(t, f.svc.CacheStats().Hits)
	assert.Equal(t, int64(1), f.svc.CacheStats().Misses)
}

func TestScoreByID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	score, err := f.svc.ScoreByID(ctx, f.candidate.ID.String(), f.backend.ID.String())
	require.NoError(t, err)
	assert.Equal(t, f.svc.Engine().Score(&f.candidate, &f.backend), score)

	t.Run("malformed id", func(t *testing.T) {
		_, err := f.svc.ScoreByID(ctx, "not-a-uuid", f.backend.ID.String())
		var invalid *InvalidInputError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "candidate_id", invalid.Field)
	})

	t.Run("nil id", func(t *testing.T) {
		_, err := f.svc.ScoreByID(ctx, f.candidate.ID.String(), uuid.Nil.String())
		var invalid *InvalidInputError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "job_id", invalid.Field)
	})

	t.Run("unknown job", func(t *testing.T) {
		_, err := f.svc.ScoreByID(ctx, f.candidate.ID.String(), uuid.NewString())
		var notFound *NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, KindJob, notFound.Kind)
	})
}

func TestInvalidateCandidate_ForcesRecompute(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cid := f.candidate.ID.String()

	before := make(map[uuid.UUID]int)
	for _, job := range []types.JobSignal{f.backend, f.design} {
		s, err := f.svc.ScoreByID(ctx, cid, job.ID.String())
		require.NoError(t, err)
		before[job.ID] = s
	}

	// The profile changes without telling the engine: cached scores stay.
	changed := f.candidate
	changed.Skills = types.SkillsFromNames("figma", "sketch")
	f.source.putCandidate(changed)

	for _, job := range []types.JobSignal{f.backend, f.design} {
		s, err := f.svc.ScoreByID(ctx, cid, job.ID.String())
		require.NoError(t, err)
		assert.Equal(t, before[job.ID], s)
	}

	require.NoError(t, f.svc.InvalidateCandidate(ctx, cid))
	require.NoError(t, f.svc.InvalidateCandidate(ctx, cid))

	for _, job := range []types.JobSignal{f.backend, f.design} {
		s, err := f.svc.ScoreByID(ctx, cid, job.ID.String())
		require.NoError(t, err)
		assert.Equal(t, f.svc.Engine().Score(&changed, &job), s)
	}
	assert.NotEqual(t, before[f.design.ID], f.svc.Engine().Score(&changed, &f.design))
}

func TestInvalidateJob_ForcesRecompute(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.ScoreByID(ctx, f.candidate.ID.String(), f.backend.ID.String())
	require.NoError(t, err)

	changed := f.backend
	changed.RequiredSkills = []string{"cobol"}
	f.source.putJob(changed)
	require.NoError(t, f.svc.InvalidateJob(ctx, f.backend.ID.String()))

	second, err := f.svc.ScoreByID(ctx, f.candidate.ID.String(), f.backend.ID.String())
	require.NoError(t, err)
	assert.Less(t, second, first)
}

func TestInvalidate_MalformedID(t *testing.T) {
	f := newFixture(t)
	var invalid *InvalidInputError
	require.ErrorAs(t, f.svc.InvalidateCandidate(context.Background(), "x"), &invalid)
	require.ErrorAs(t, f.svc.InvalidateJob(context.Background(), ""), &invalid)
}

func TestRecommendJobsFor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bundle, err := f.svc.RecommendJobsFor(ctx, f.candidate.ID.String(), 10)
	require.NoError(t, err)

	require.NotEmpty(t, bundle.Matched)
	assert.Equal(t, f.backend.ID, bundle.Matched[0].Job.ID)
	assert.Contains(t, bundle.Matched[0].Reasons, types.ReasonRemoteFriendly)
	require.Len(t, bundle.NewJobs, 1, "new jobs follow the candidate's preferred categories")
	assert.Equal(t, f.backend.ID, bundle.NewJobs[0].ID)
	assert.Equal(t, testNow, bundle.GeneratedAt)

	loads := f.source.poolLoads
	again, err := f.svc.RecommendJobsFor(ctx, f.candidate.ID.String(), 1)
	require.NoError(t, err)
	assert.Equal(t, loads, f.source.poolLoads, "bundle served from cache")
	assert.LessOrEqual(t, len(again.Matched), 1)
	assert.LessOrEqual(t, len(again.Trending), 1)

	require.NoError(t, f.svc.InvalidateCandidate(ctx, f.candidate.ID.String()))
	_, err = f.svc.RecommendJobsFor(ctx, f.candidate.ID.String(), 10)
	require.NoError(t, err)
	assert.Greater(t, f.source.poolLoads, loads)
}

func TestRecommendJobsFor_LimitAboveBundleSize(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		clone := f.backend
		clone.ID = uuid.New()
		f.source.putJob(clone)
	}
	svc, err := New(f.source,
		WithCache(cache.New(cache.NewMemoryStore(0), nil), cache.DefaultTTLs()),
		WithClock(func() time.Time { return testNow }),
		WithBundleSize(5),
	)
	require.NoError(t, err)

	small, err := svc.RecommendJobsFor(ctx, f.candidate.ID.String(), 5)
	require.NoError(t, err)
	assert.Len(t, small.Matched, 5)

	loads := f.source.poolLoads
	large, err := svc.RecommendJobsFor(ctx, f.candidate.ID.String(), 10)
	require.NoError(t, err)
	assert.Len(t, large.Matched, 10, "limit is honoured past the cached bundle size")
	assert.Greater(t, f.source.poolLoads, loads, "large limits bypass the cache")

	again, err := svc.RecommendJobsFor(ctx, f.candidate.ID.String(), 5)
	require.NoError(t, err)
	assert.Len(t, again.Matched, 5, "cached bundle keeps its size")

	similar, err := svc.SimilarJobs(ctx, f.backend.ID.String(), 10)
	require.NoError(t, err)
	assert.Len(t, similar, 10)
}

func TestRecommendJobsFor_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.RecommendJobsFor(ctx, uuid.NewString(), 10)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)

	f.source.failPools = errors.New("db down")
	_, err = f.svc.RecommendJobsFor(ctx, f.candidate.ID.String(), 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

func TestRecommendCandidatesFor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bundle, err := f.svc.RecommendCandidatesFor(ctx, f.backend.ID.String(), 10)
	require.NoError(t, err)

	require.Len(t, bundle.Matched, 1)
	assert.Equal(t, f.candidate.ID, bundle.Matched[0].Candidate.ID)
	require.Len(t, bundle.ActiveSeekers, 1)
	assert.Empty(t, bundle.RecentApplicants)
	assert.Equal(t, f.backend.ID, bundle.JobID)
}

func TestSimilarJobs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sibling := types.JobSignal{
		ID:              uuid.New(),
		RequiredSkills:  []string{"go"},
		ExperienceLevel: types.LevelMid,
		CategoryID:      "backend",
		CreatedAt:       testNow.Add(-time.Hour),
		IsActive:        true,
	}
	f.source.putJob(sibling)

	similar, err := f.svc.SimilarJobs(ctx, f.backend.ID.String(), 10)
	require.NoError(t, err)
	require.NotEmpty(t, similar)
	assert.Equal(t, sibling.ID, similar[0].Job.ID)
	for _, s := range similar {
		assert.NotEqual(t, f.backend.ID, s.Job.ID)
		assert.LessOrEqual(t, s.SimilarityScore, 100)
	}
}

func TestExplainAndGap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	breakdown, err := f.svc.ExplainByID(ctx, f.candidate.ID.String(), f.backend.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 100, breakdown.Experience)
	assert.Equal(t, 100, breakdown.Location)

	direct, err := f.svc.Explain(&f.candidate, &f.backend)
	require.NoError(t, err)
	assert.Equal(t, breakdown, direct)

	gap, err := f.svc.AnalyzeGapByID(ctx, f.candidate.ID.String(), f.backend.ID.String())
	require.NoError(t, err)
	assert.Len(t, gap.MatchedRequired, 2)
	assert.Equal(t, []string{"kubernetes"}, gap.MissingPreferred)

	_, err = f.svc.AnalyzeGap(nil, &f.backend)
	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
}

func TestAnalyzeResume(t *testing.T) {
	f := newFixture(t)

	analysis := f.svc.AnalyzeResume("Jane Doe\nEmail: jane.doe@example.com\n")
	assert.Equal(t, "jane.doe@example.com", analysis.Resume.Contact.Email)
	assert.Equal(t, 40, analysis.Quality.SectionScores[types.SectionContact])

	parsed := f.svc.Extract("")
	assert.Equal(t, 0, f.svc.AnalyzeQuality(parsed).OverallScore)
}

func TestService_WithoutCache(t *testing.T) {
	f := newFixture(t)
	svc, err := New(f.source)
	require.NoError(t, err)

	s, err := svc.ScoreByID(context.Background(), f.candidate.ID.String(), f.backend.ID.String())
	require.NoError(t, err)
	assert.Equal(t, svc.Engine().Score(&f.candidate, &f.backend), s)
	require.NoError(t, svc.InvalidateJob(context.Background(), f.backend.ID.String()))
	assert.Equal(t, cache.Stats{}, svc.CacheStats())
}
