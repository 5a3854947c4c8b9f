package mcpserver

import (
	"context"
	"errors"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/jonathan/talent-matcher/internal/matcher"
	"github.com/jonathan/talent-matcher/internal/recommend"
	"github.com/jonathan/talent-matcher/internal/types"
)

type tools struct {
	svc    *matcher.Service
	logger *zap.Logger
}

// PairInput identifies a stored candidate and job.
type PairInput struct {
	CandidateID string `json:"candidate_id" jsonschema:"Candidate UUID"`
	JobID       string `json:"job_id" jsonschema:"Job UUID"`
}

// JobInput identifies a stored job.
type JobInput struct {
	JobID string `json:"job_id" jsonschema:"Job UUID"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum entries per list, default 10"`
}

// CandidateInput identifies a stored candidate.
type CandidateInput struct {
	CandidateID string `json:"candidate_id" jsonschema:"Candidate UUID"`
	Limit       int    `json:"limit,omitempty" jsonschema:"Maximum entries per list, default 10"`
}

// ResumeInput carries resume text.
type ResumeInput struct {
	Text string `json:"text" jsonschema:"Plain text or HTML resume"`
}

// MatchScoreOutput is the result of match_score.
type MatchScoreOutput struct {
	CandidateID string               `json:"candidate_id"`
	JobID       string               `json:"job_id"`
	Score       int                  `json:"score" jsonschema:"Weighted match score 0-100"`
	Breakdown   types.ScoreBreakdown `json:"breakdown"`
}

// JobSummary is a compact view of a job for tool output.
type JobSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	Location    string `json:"location,omitempty"`
	Remote      bool   `json:"remote"`
	CategoryID  string `json:"category_id,omitempty"`
	PostedAt    string `json:"posted_at,omitempty"`
	Score       int    `json:"score,omitempty"`
}

// CandidateSummary is a compact view of a candidate for tool output.
type CandidateSummary struct {
	ID              string   `json:"id"`
	Name            string   `json:"name,omitempty"`
	Skills          []string `json:"skills"`
	ExperienceYears int      `json:"experience_years"`
	Score           int      `json:"score,omitempty"`
}

// SimilarJobsOutput is the result of similar_jobs.
type SimilarJobsOutput struct {
	JobID   string       `json:"job_id"`
	Similar []JobSummary `json:"similar" jsonschema:"Jobs ordered by similarity, score in the score field"`
}

// JobRecommendationsOutput is the result of recommend_jobs.
type JobRecommendationsOutput struct {
	CandidateID     string       `json:"candidate_id"`
	Matched         []JobSummary `json:"matched"`
	Trending        []JobSummary `json:"trending"`
	NewJobs         []JobSummary `json:"new_jobs"`
	CompaniesHiring []string     `json:"companies_hiring"`
}

// CandidateRecommendationsOutput is the result of recommend_candidates.
type CandidateRecommendationsOutput struct {
	JobID            string             `json:"job_id"`
	Matched          []CandidateSummary `json:"matched"`
	ActiveSeekers    []CandidateSummary `json:"active_seekers"`
	RecentApplicants []CandidateSummary `json:"recent_applicants"`
}

func (t *tools) register(server *mcp.Server) {
	readOnly := &mcp.ToolAnnotations{ReadOnlyHint: true}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "match_score",
		Description: "Score how well a stored candidate matches a stored job (0-100) with the per-component breakdown: skills, experience, education, location, job type, salary.",
		Annotations: readOnly,
	}, t.matchScore)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "skill_gap",
		Description: "Compare a stored candidate's skills with a stored job's required and preferred skills. Returns matched and missing skills, match percentages and learning recommendations.",
		Annotations: readOnly,
	}, t.skillGap)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "parse_resume",
		Description: "Extract contact details, skills, education, experience, summary, languages and certifications from resume text, and score how complete the resume is.",
		Annotations: readOnly,
	}, t.parseResume)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "similar_jobs",
		Description: "List active jobs most similar to a stored job by category, location, job type, level, salary and skills.",
		Annotations: readOnly,
	}, t.similarJobs)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "recommend_jobs",
		Description: "Recommend jobs for a stored candidate: best matches, trending jobs, new jobs in preferred categories and companies hiring.",
		Annotations: readOnly,
	}, t.recommendJobs)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "recommend_candidates",
		Description: "Recommend candidates for a stored job: best matches, active seekers in the job's category and recent applicants to similar jobs.",
		Annotations: readOnly,
	}, t.recommendCandidates)
}

func (t *tools) matchScore(ctx context.Context, _ *mcp.CallToolRequest, in PairInput) (*mcp.CallToolResult, MatchScoreOutput, error) {
	score, err := t.svc.ScoreByID(ctx, in.CandidateID, in.JobID)
	if err != nil {
		return nil, MatchScoreOutput{}, t.fail("match_score", err)
	}
	breakdown, err := t.svc.ExplainByID(ctx, in.CandidateID, in.JobID)
	if err != nil {
		return nil, MatchScoreOutput{}, t.fail("match_score", err)
	}

	out := MatchScoreOutput{CandidateID: in.CandidateID, JobID: in.JobID, Score: score, Breakdown: breakdown}
	return textResult("match score %d/100 (skills %d, experience %d, education %d, location %d, job type %d, salary %d)",
		score, breakdown.Skills, breakdown.Experience, breakdown.Education, breakdown.Location, breakdown.JobType, breakdown.Salary), out, nil
}

func (t *tools) skillGap(ctx context.Context, _ *mcp.CallToolRequest, in PairInput) (*mcp.CallToolResult, types.GapReport, error) {
	report, err := t.svc.AnalyzeGapByID(ctx, in.CandidateID, in.JobID)
	if err != nil {
		return nil, types.GapReport{}, t.fail("skill_gap", err)
	}
	return jsonResult(report), report, nil
}

func (t *tools) parseResume(_ context.Context, _ *mcp.CallToolRequest, in ResumeInput) (*mcp.CallToolResult, types.ResumeAnalysis, error) {
	if in.Text == "" {
		return nil, types.ResumeAnalysis{}, errors.New("text is required")
	}
	analysis := t.svc.AnalyzeResume(in.Text)
	return jsonResult(analysis), *analysis, nil
}

func (t *tools) similarJobs(ctx context.Context, _ *mcp.CallToolRequest, in JobInput) (*mcp.CallToolResult, SimilarJobsOutput, error) {
	similar, err := t.svc.SimilarJobs(ctx, in.JobID, limitOrDefault(in.Limit))
	if err != nil {
		return nil, SimilarJobsOutput{}, t.fail("similar_jobs", err)
	}

	out := SimilarJobsOutput{JobID: in.JobID, Similar: make([]JobSummary, 0, len(similar))}
	for _, s := range similar {
		out.Similar = append(out.Similar, jobSummary(s.Job, s.SimilarityScore))
	}
	return textResult("%d similar job(s)", len(out.Similar)), out, nil
}

func (t *tools) recommendJobs(ctx context.Context, _ *mcp.CallToolRequest, in CandidateInput) (*mcp.CallToolResult, JobRecommendationsOutput, error) {
	bundle, err := t.svc.RecommendJobsFor(ctx, in.CandidateID, limitOrDefault(in.Limit))
	if err != nil {
		return nil, JobRecommendationsOutput{}, t.fail("recommend_jobs", err)
	}

	out := JobRecommendationsOutput{
		CandidateID:     in.CandidateID,
		Matched:         make([]JobSummary, 0, len(bundle.Matched)),
		Trending:        make([]JobSummary, 0, len(bundle.Trending)),
		NewJobs:         make([]JobSummary, 0, len(bundle.NewJobs)),
		CompaniesHiring: make([]string, 0, len(bundle.CompaniesHiring)),
	}
	for _, m := range bundle.Matched {
		out.Matched = append(out.Matched, jobSummary(m.Job, m.Score))
	}
	for _, tr := range bundle.Trending {
		out.Trending = append(out.Trending, jobSummary(tr.Job, 0))
	}
	for _, j := range bundle.NewJobs {
		out.NewJobs = append(out.NewJobs, jobSummary(j, 0))
	}
	for _, c := range bundle.CompaniesHiring {
		out.CompaniesHiring = append(out.CompaniesHiring, c.CompanyName)
	}
	return textResult("%d matched, %d trending, %d new job(s)", len(out.Matched), len(out.Trending), len(out.NewJobs)), out, nil
}

func (t *tools) recommendCandidates(ctx context.Context, _ *mcp.CallToolRequest, in JobInput) (*mcp.CallToolResult, CandidateRecommendationsOutput, error) {
	bundle, err := t.svc.RecommendCandidatesFor(ctx, in.JobID, limitOrDefault(in.Limit))
	if err != nil {
		return nil, CandidateRecommendationsOutput{}, t.fail("recommend_candidates", err)
	}

	out := CandidateRecommendationsOutput{
		JobID:            in.JobID,
		Matched:          make([]CandidateSummary, 0, len(bundle.Matched)),
		ActiveSeekers:    make([]CandidateSummary, 0, len(bundle.ActiveSeekers)),
		RecentApplicants: make([]CandidateSummary, 0, len(bundle.RecentApplicants)),
	}
	for _, m := range bundle.Matched {
		out.Matched = append(out.Matched, candidateSummary(m.Candidate, m.Score))
	}
	for _, c := range bundle.ActiveSeekers {
		out.ActiveSeekers = append(out.ActiveSeekers, candidateSummary(c, 0))
	}
	for _, c := range bundle.RecentApplicants {
		out.RecentApplicants = append(out.RecentApplicants, candidateSummary(c, 0))
	}
	return textResult("%d matched, %d active seeker(s), %d recent applicant(s)",
		len(out.Matched), len(out.ActiveSeekers), len(out.RecentApplicants)), out, nil
}

// fail logs unexpected failures. Caller mistakes are returned as-is.
func (t *tools) fail(tool string, err error) error {
	var (
		invalid  *matcher.InvalidInputError
		notFound *matcher.NotFoundError
	)
	if !errors.As(err, &invalid) && !errors.As(err, &notFound) {
		t.logger.Error("tool failed", zap.String("tool", tool), zap.Error(err))
	}
	return err
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return recommend.DefaultLimit
	}
	return limit
}

func jobSummary(j types.JobSignal, score int) JobSummary {
	s := JobSummary{
		ID:          j.ID.String(),
		Title:       j.Title,
		CompanyName: j.CompanyName,
		Location:    j.Location,
		Remote:      j.RemoteFriendly(),
		CategoryID:  j.CategoryID,
		Score:       score,
	}
	if !j.CreatedAt.IsZero() {
		s.PostedAt = j.CreatedAt.Format(time.RFC3339)
	}
	return s
}

func candidateSummary(c types.CandidateSignal, score int) CandidateSummary {
	return CandidateSummary{
		ID:              c.ID.String(),
		Name:            c.Name,
		Skills:          c.Skills.Names(),
		ExperienceYears: c.ExperienceYears,
		Score:           score,
	}
}
