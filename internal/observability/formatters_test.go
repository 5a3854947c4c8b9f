package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/talent-matcher/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintScore(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	candidate := &types.CandidateSignal{ID: uuid.New(), Name: "Jane Doe"}
	job := &types.JobSignal{ID: uuid.New(), Title: "Backend Engineer", CompanyName: "Acme"}
	p.PrintScore(candidate, job, types.ScoreBreakdown{
		Skills: 100, Experience: 100, Education: 80, Location: 100, JobType: 100, Salary: 50, Total: 90,
	})
	output := buf.String()

	assert.Contains(t, output, "MATCH SCORE")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "Backend Engineer @ Acme")
	assert.Contains(t, output, "Total:       90 / 100")
	assert.Contains(t, output, strings.Repeat("█", 16)+strings.Repeat("░", 4))
}

func TestPrintScore_NoProfile(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintScore(nil, nil, types.ScoreBreakdown{NoProfile: true})

	assert.Contains(t, buf.String(), "no profile data")
}

func TestPrintGap(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintGap(types.GapReport{
		MatchedRequired:   []string{"go"},
		MissingRequired:   []string{"kubernetes"},
		MissingPreferred:  []string{"redis"},
		RequiredMatchPct:  50,
		PreferredMatchPct: 0,
		OverallMatchPct:   35,
		LearningRecommendations: []types.LearningRecommendation{
			{Skill: "kubernetes", EstimatedTime: "4-8 weeks", BuildsOn: []string{"docker"}},
		},
	})
	output := buf.String()

	assert.Contains(t, output, "SKILL GAP")
	assert.Contains(t, output, " 50.0%")
	assert.Contains(t, output, "Missing required")
	assert.Contains(t, output, "kubernetes (4-8 weeks) builds on docker")
}

func TestPrintQuality(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintQuality(&types.ResumeAnalysis{
		Resume: &types.ParsedResume{Skills: []string{"go", "sql"}},
		Quality: &types.QualityReport{
			OverallScore:  83,
			SectionScores: map[string]int{"contact": 100, "skills": 100, "experience": 100, "education": 75, "summary": 40},
			Suggestions:   []string{"Expand your professional summary"},
			IsComplete:    true,
		},
	})
	output := buf.String()

	assert.Contains(t, output, "RESUME QUALITY")
	assert.Contains(t, output, "Overall: 83 / 100 (complete)")
	assert.Contains(t, output, "Skills found: 2")
	assert.Contains(t, output, "Expand your professional summary")
}

func TestPrintQuality_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintQuality(nil)
	p.PrintQuality(&types.ResumeAnalysis{})

	assert.Empty(t, buf.String())
}

func TestPrintJobBundle(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	backend := types.JobSignal{ID: uuid.New(), Title: "Backend Engineer", CompanyName: "Acme"}
	p.PrintJobBundle(&types.JobBundle{
		Matched: []types.ScoredJob{
			{Job: backend, Score: 90, Reasons: []string{types.ReasonStrongSkillMatch}, Saved: true},
		},
		Trending:        []types.TrendingJob{{Job: backend, TrendingScore: 42.5}},
		CompaniesHiring: []types.CompanyHiring{{CompanyName: "Acme", OpenPositions: 2, LatestPostedAt: time.Now()}},
	})
	output := buf.String()

	assert.Contains(t, output, "JOB RECOMMENDATIONS")
	assert.Contains(t, output, " 90  Backend Engineer @ Acme [saved]")
	assert.Contains(t, output, "strong skill match")
	assert.Contains(t, output, "42.5")
	assert.Contains(t, output, "Acme (2 open)")
	assert.NotContains(t, output, "New:")
}

func TestPrintJobBundle_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintJobBundle(&types.JobBundle{})

	assert.Contains(t, buf.String(), "No recommendations.")
}

func TestPrintCandidateBundle(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	anon := uuid.New()
	p.PrintCandidateBundle(&types.CandidateBundle{
		Matched:          []types.ScoredCandidate{{Candidate: types.CandidateSignal{Name: "Jane"}, Score: 88}},
		RecentApplicants: []types.CandidateSignal{{ID: anon}},
	})
	output := buf.String()

	assert.Contains(t, output, "CANDIDATE RECOMMENDATIONS")
	assert.Contains(t, output, " 88  Jane")
	assert.Contains(t, output, anon.String())
}

func TestPrintSimilar(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSimilar([]types.SimilarJob{{Job: types.JobSignal{Title: "Go Developer"}, SimilarityScore: 75}})
	assert.Contains(t, buf.String(), " 75  Go Developer")

	buf.Reset()
	p.PrintSimilar(nil)
	assert.Contains(t, buf.String(), "No similar jobs.")
}

func TestPrintBox_ClipsLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("T", strings.Repeat("é", 100))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), line)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestBar(t *testing.T) {
	assert.Equal(t, strings.Repeat("░", 20), bar(0))
	assert.Equal(t, strings.Repeat("█", 20), bar(100))
	assert.Equal(t, strings.Repeat("█", 20), bar(150))
	assert.Equal(t, strings.Repeat("░", 20), bar(-5))
}
