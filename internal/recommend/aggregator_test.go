package recommend

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-matcher/internal/ranking"
	"github.com/jonathan/talent-matcher/internal/types"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func daysAgo(d float64) time.Time {
	return testNow.Add(-time.Duration(d * 24 * float64(time.Hour)))
}

// fixedScorer returns a preset score per job id, or per candidate id when no job entry exists.
type fixedScorer struct {
	byJob       map[uuid.UUID]int
	byCandidate map[uuid.UUID]int
	calls       atomic.Int32
}

func (f *fixedScorer) Score(_ context.Context, c *types.CandidateSignal, j *types.JobSignal) (int, error) {
	f.calls.Add(1)
	if s, ok := f.byJob[j.ID]; ok {
		return s, nil
	}
	return f.byCandidate[c.ID], nil
}

func newTestAggregator(s Scorer, opts ...Option) *Aggregator {
	opts = append([]Option{WithClock(func() time.Time { return testNow })}, opts...)
	return NewAggregator(s, opts...)
}

func TestRecommendJobs_Matched(t *testing.T) {
	strong := types.JobSignal{ID: uuid.New(), IsRemote: true, CreatedAt: daysAgo(1), ApplicationsCount: 2}
	medium := types.JobSignal{ID: uuid.New(), CreatedAt: daysAgo(10), ApplicationsCount: 50}
	weak := types.JobSignal{ID: uuid.New(), CreatedAt: daysAgo(1)}
	applied := types.JobSignal{ID: uuid.New(), CreatedAt: daysAgo(1)}

	scorer := &fixedScorer{byJob: map[uuid.UUID]int{
		strong.ID: 85, medium.ID: 55, weak.ID: 29, applied.ID: 99,
	}}
	agg := newTestAggregator(scorer)

	bundle, err := agg.RecommendJobs(context.Background(), &types.CandidateSignal{ID: uuid.New()}, JobPool{
		Jobs:       []types.JobSignal{weak, medium, applied, strong},
		AppliedIDs: []uuid.UUID{applied.ID},
		SavedIDs:   []uuid.UUID{medium.ID},
	}, 10)
	require.NoError(t, err)

	require.Len(t, bundle.Matched, 2)
	assert.Equal(t, strong.ID, bundle.Matched[0].Job.ID)
	assert.Equal(t, 85, bundle.Matched[0].Score)
	assert.Equal(t, []string{
		types.ReasonStrongSkillMatch, types.ReasonRemoteFriendly, types.ReasonRecentlyPosted, types.ReasonFewApplicants,
	}, bundle.Matched[0].Reasons)
	assert.False(t, bundle.Matched[0].Saved)

	assert.Equal(t, medium.ID, bundle.Matched[1].Job.ID)
	assert.Empty(t, bundle.Matched[1].Reasons)
	assert.True(t, bundle.Matched[1].Saved)

	assert.Equal(t, int32(3), scorer.calls.Load(), "applied jobs are not scored")
	assert.Equal(t, testNow, bundle.GeneratedAt)
}

func TestRecommendJobs_TieBreak(t *testing.T) {
	idA := uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	idB := uuid.MustParse("00000000-0000-0000-0000-00000000000b")
	older := types.JobSignal{ID: uuid.New(), CreatedAt: daysAgo(5)}
	newerB := types.JobSignal{ID: idB, CreatedAt: daysAgo(1)}
	newerA := types.JobSignal{ID: idA, CreatedAt: daysAgo(1)}

	scorer := &fixedScorer{byJob: map[uuid.UUID]int{older.ID: 60, idA: 60, idB: 60}}
	bundle, err := newTestAggregator(scorer).RecommendJobs(context.Background(), &types.CandidateSignal{}, JobPool{
		Jobs: []types.JobSignal{older, newerB, newerA},
	}, 10)
	require.NoError(t, err)

	require.Len(t, bundle.Matched, 3)
	assert.Equal(t, idA, bundle.Matched[0].Job.ID)
	assert.Equal(t, idB, bundle.Matched[1].Job.ID)
	assert.Equal(t, older.ID, bundle.Matched[2].Job.ID)
}

func TestRecommendJobs_Limit(t *testing.T) {
	var jobs []types.JobSignal
	scores := make(map[uuid.UUID]int)
	for i := range 6 {
		j := types.JobSignal{ID: uuid.New(), CreatedAt: daysAgo(float64(i) / 10)}
		jobs = append(jobs, j)
		scores[j.ID] = 50 + i
	}

	bundle, err := newTestAggregator(&fixedScorer{byJob: scores}).RecommendJobs(context.Background(), &types.CandidateSignal{}, JobPool{Jobs: jobs}, 4)
	require.NoError(t, err)

	assert.Len(t, bundle.Matched, 4)
	assert.Equal(t, 55, bundle.Matched[0].Score)
	assert.Len(t, bundle.Trending, 4)
	assert.Len(t, bundle.NewJobs, 4)
}

func TestTrendingScore(t *testing.T) {
	job := &types.JobSignal{ApplicationsCount: 10, ViewsCount: 500, CreatedAt: daysAgo(2)}
	assert.InDelta(t, 25+15+16, TrendingScore(job, testNow), 1e-9)

	saturated := &types.JobSignal{ApplicationsCount: 1000, ViewsCount: 100000, CreatedAt: testNow}
	assert.InDelta(t, 100, TrendingScore(saturated, testNow), 1e-9)

	stale := &types.JobSignal{CreatedAt: daysAgo(12)}
	assert.InDelta(t, 0, TrendingScore(stale, testNow), 1e-9)
}

func TestRecommendJobs_Trending(t *testing.T) {
	hot := types.JobSignal{ID: uuid.New(), ApplicationsCount: 40, ViewsCount: 2000, CreatedAt: daysAgo(4)}
	fresh := types.JobSignal{ID: uuid.New(), CreatedAt: daysAgo(0.5)}
	old := types.JobSignal{ID: uuid.New(), ApplicationsCount: 40, CreatedAt: daysAgo(20)}
	applied := types.JobSignal{ID: uuid.New(), ApplicationsCount: 40, CreatedAt: daysAgo(1)}

	bundle, err := newTestAggregator(&fixedScorer{}).RecommendJobs(context.Background(), &types.CandidateSignal{}, JobPool{
		Jobs:       []types.JobSignal{fresh, old, hot, applied},
		AppliedIDs: []uuid.UUID{applied.ID},
	}, 10)
	require.NoError(t, err)

	require.Len(t, bundle.Trending, 2)
	assert.Equal(t, hot.ID, bundle.Trending[0].Job.ID)
	assert.Equal(t, fresh.ID, bundle.Trending[1].Job.ID)
	assert.Greater(t, bundle.Trending[0].TrendingScore, bundle.Trending[1].TrendingScore)
}

func TestRecommendJobs_NewJobs(t *testing.T) {
	backend := types.JobSignal{ID: uuid.New(), CategoryID: "backend", CreatedAt: daysAgo(1)}
	backendNewest := types.JobSignal{ID: uuid.New(), CategoryID: "backend", CreatedAt: daysAgo(0.1)}
	design := types.JobSignal{ID: uuid.New(), CategoryID: "design", CreatedAt: daysAgo(1)}
	tooOld := types.JobSignal{ID: uuid.New(), CategoryID: "backend", CreatedAt: daysAgo(4)}
	pool := JobPool{Jobs: []types.JobSignal{backend, design, tooOld, backendNewest}}
	agg := newTestAggregator(&fixedScorer{})

	t.Run("preferred categories filter", func(t *testing.T) {
		bundle, err := agg.RecommendJobs(context.Background(), &types.CandidateSignal{PreferredCategories: []string{"Backend"}}, pool, 10)
		require.NoError(t, err)
		require.Len(t, bundle.NewJobs, 2)
		assert.Equal(t, backendNewest.ID, bundle.NewJobs[0].ID)
		assert.Equal(t, backend.ID, bundle.NewJobs[1].ID)
	})

	t.Run("no preferences keeps every category", func(t *testing.T) {
		bundle, err := agg.RecommendJobs(context.Background(), &types.CandidateSignal{}, pool, 10)
		require.NoError(t, err)
		assert.Len(t, bundle.NewJobs, 3)
	})
}

func TestRecommendJobs_CompaniesHiring(t *testing.T) {
	acme, globex, shady, stale := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	jobs := []types.JobSignal{
		{ID: uuid.New(), CompanyID: acme, CompanyName: "Acme", CompanyVerified: true, IsActive: true, CreatedAt: daysAgo(2)},
		{ID: uuid.New(), CompanyID: acme, CompanyName: "Acme", CompanyVerified: true, IsActive: true, CreatedAt: daysAgo(5)},
		{ID: uuid.New(), CompanyID: acme, CompanyName: "Acme", CompanyVerified: true, IsActive: true, CreatedAt: daysAgo(45)},
		{ID: uuid.New(), CompanyID: globex, CompanyName: "Globex", CompanyVerified: true, IsActive: true, CreatedAt: daysAgo(1)},
		{ID: uuid.New(), CompanyID: globex, CompanyName: "Globex", CompanyVerified: true, IsActive: false, CreatedAt: daysAgo(1)},
		{ID: uuid.New(), CompanyID: shady, CompanyName: "Shady", CompanyVerified: false, IsActive: true, CreatedAt: daysAgo(1)},
		{ID: uuid.New(), CompanyID: stale, CompanyName: "Stale", CompanyVerified: true, IsActive: true, CreatedAt: daysAgo(40)},
		{ID: uuid.New(), CompanyID: stale, CompanyName: "Stale", CompanyVerified: true, IsActive: true, CreatedAt: daysAgo(60)},
	}

	bundle, err := newTestAggregator(&fixedScorer{}).RecommendJobs(context.Background(), &types.CandidateSignal{}, JobPool{Jobs: jobs}, 10)
	require.NoError(t, err)

	// Stale has no posting inside the window; Acme's 45-day-old posting still counts.
	require.Len(t, bundle.CompaniesHiring, 2)
	assert.Equal(t, types.CompanyHiring{CompanyID: acme, CompanyName: "Acme", OpenPositions: 3, LatestPostedAt: daysAgo(2)}, bundle.CompaniesHiring[0])
	assert.Equal(t, globex, bundle.CompaniesHiring[1].CompanyID)
	assert.Equal(t, 1, bundle.CompaniesHiring[1].OpenPositions)
}

func TestRecommendJobs_EmptyPool(t *testing.T) {
	bundle, err := newTestAggregator(&fixedScorer{}).RecommendJobs(context.Background(), &types.CandidateSignal{}, JobPool{}, 0)
	require.NoError(t, err)

	assert.NotNil(t, bundle.Matched)
	assert.NotNil(t, bundle.Trending)
	assert.NotNil(t, bundle.NewJobs)
	assert.NotNil(t, bundle.CompaniesHiring)
	assert.Empty(t, bundle.Matched)
}

func TestRecommendJobs_NilCandidate(t *testing.T) {
	_, err := newTestAggregator(&fixedScorer{}).RecommendJobs(context.Background(), nil, JobPool{}, 10)
	assert.Error(t, err)
}

func TestRecommendJobs_ScorerError(t *testing.T) {
	boom := errors.New("boom")
	scorer := ScorerFunc(func(context.Context, *types.CandidateSignal, *types.JobSignal) (int, error) {
		return 0, boom
	})

	_, err := newTestAggregator(scorer).RecommendJobs(context.Background(), &types.CandidateSignal{}, JobPool{
		Jobs: []types.JobSignal{{ID: uuid.New()}},
	}, 10)
	require.ErrorIs(t, err, boom)
}

func TestRecommendJobs_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestAggregator(&fixedScorer{}).RecommendJobs(ctx, &types.CandidateSignal{}, JobPool{
		Jobs: []types.JobSignal{{ID: uuid.New()}, {ID: uuid.New()}},
	}, 10)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRecommendJobs_MaxPoolSize(t *testing.T) {
	jobs := make([]types.JobSignal, 20)
	for i := range jobs {
		jobs[i] = types.JobSignal{ID: uuid.New()}
	}
	scorer := &fixedScorer{}

	_, err := newTestAggregator(scorer, WithMaxPoolSize(5), WithWorkers(2)).RecommendJobs(context.Background(), &types.CandidateSignal{}, JobPool{Jobs: jobs}, 10)
	require.NoError(t, err)
	assert.Equal(t, int32(5), scorer.calls.Load())
}

func TestRecommendJobs_WithEngineScorer(t *testing.T) {
	candidate := &types.CandidateSignal{
		ID:              uuid.New(),
		Skills:          types.SkillsFromNames("go", "postgresql"),
		ExperienceYears: 4,
	}
	job := types.JobSignal{
		ID:              uuid.New(),
		RequiredSkills:  []string{"golang", "postgres"},
		ExperienceLevel: types.LevelMid,
		IsRemote:        true,
		CreatedAt:       daysAgo(1),
	}

	engine := ranking.NewDefaultEngine()
	bundle, err := newTestAggregator(EngineScorer(engine)).RecommendJobs(context.Background(), candidate, JobPool{Jobs: []types.JobSignal{job}}, 10)
	require.NoError(t, err)

	require.Len(t, bundle.Matched, 1)
	assert.Equal(t, engine.Score(candidate, &job), bundle.Matched[0].Score)
}
