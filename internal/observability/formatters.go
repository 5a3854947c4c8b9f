// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/talent-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// clip shortens s to at most n runes, marking the cut with "...".
func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// bar renders a 0-100 score as a 20-cell gauge.
func bar(score int) string {
	score = max(0, min(100, score))
	filled := score / 5
	return strings.Repeat("█", filled) + strings.Repeat("░", 20-filled)
}

// writeList writes up to limit items, then a count of the rest.
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	for _, item := range items[:min(len(items), limit)] {
		sb.WriteString(fmt.Sprintf("  • %s\n", item))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

func jobLabel(j types.JobSignal) string {
	label := j.Title
	if label == "" {
		label = j.ID.String()
	}
	if j.CompanyName != "" {
		label += " @ " + j.CompanyName
	}
	return label
}

func candidateLabel(c types.CandidateSignal) string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID.String()
}

// PrintScore outputs the component breakdown behind a match score.
func (p *Printer) PrintScore(candidate *types.CandidateSignal, job *types.JobSignal, b types.ScoreBreakdown) {
	var sb strings.Builder
	if candidate != nil {
		sb.WriteString(fmt.Sprintf("Candidate:  %s\n", candidateLabel(*candidate)))
	}
	if job != nil {
		sb.WriteString(fmt.Sprintf("Job:        %s\n", jobLabel(*job)))
	}
	sb.WriteString("\n")

	if b.NoProfile {
		sb.WriteString("Candidate has no profile data; score is 0.\n")
	}
	rows := []struct {
		name  string
		value int
	}{
		{"Skills", b.Skills},
		{"Experience", b.Experience},
		{"Education", b.Education},
		{"Location", b.Location},
		{"Job type", b.JobType},
		{"Salary", b.Salary},
	}
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%-11s %3d  %s\n", r.name, r.value, bar(r.value)))
	}
	sb.WriteString(fmt.Sprintf("\nTotal:      %3d / 100", b.Total))

	p.printBox("MATCH SCORE", sb.String())
}

// PrintGap outputs matched and missing skills with learning recommendations.
func (p *Printer) PrintGap(report types.GapReport) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Required:  %5.1f%%\n", report.RequiredMatchPct))
	sb.WriteString(fmt.Sprintf("Preferred: %5.1f%%\n", report.PreferredMatchPct))
	sb.WriteString(fmt.Sprintf("Overall:   %5.1f%%\n\n", report.OverallMatchPct))

	writeList(&sb, "Matched required", report.MatchedRequired, maxItemsToShow)
	writeList(&sb, "Missing required", report.MissingRequired, maxItemsToShow)
	writeList(&sb, "Missing preferred", report.MissingPreferred, 3)

	if len(report.LearningRecommendations) > 0 {
		sb.WriteString("Learning plan:\n")
		for _, rec := range report.LearningRecommendations[:min(len(report.LearningRecommendations), maxItemsToShow)] {
			line := fmt.Sprintf("  • %s (%s)", rec.Skill, rec.EstimatedTime)
			if len(rec.BuildsOn) > 0 {
				line += " builds on " + strings.Join(rec.BuildsOn, ", ")
			}
			sb.WriteString(line + "\n")
		}
	}

	p.printBox("SKILL GAP", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintQuality outputs the section scores and suggestions of a resume analysis.
func (p *Printer) PrintQuality(analysis *types.ResumeAnalysis) {
	if analysis == nil || analysis.Quality == nil {
		return
	}
	q := analysis.Quality

	var sb strings.Builder
	status := "incomplete"
	if q.IsComplete {
		status = "complete"
	}
	sb.WriteString(fmt.Sprintf("Overall: %d / 100 (%s)\n\n", q.OverallScore, status))
	for _, section := range []string{
		types.SectionContact, types.SectionSkills, types.SectionExperience,
		types.SectionEducation, types.SectionSummary,
	} {
		score := q.SectionScores[section]
		sb.WriteString(fmt.Sprintf("%-11s %3d  %s\n", section, score, bar(score)))
	}
	if r := analysis.Resume; r != nil && len(r.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("\nSkills found: %d\n", len(r.Skills)))
	}
	if len(q.Suggestions) > 0 {
		sb.WriteString("\n")
		writeList(&sb, "Suggestions", q.Suggestions, maxItemsToShow)
	}

	p.printBox("RESUME QUALITY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobBundle outputs the candidate-facing recommendation bundle.
func (p *Printer) PrintJobBundle(bundle *types.JobBundle) {
	if bundle == nil {
		return
	}

	var sb strings.Builder
	matched := make([]string, 0, len(bundle.Matched))
	for _, m := range bundle.Matched {
		line := fmt.Sprintf("%3d  %s", m.Score, jobLabel(m.Job))
		if m.Saved {
			line += " [saved]"
		}
		matched = append(matched, line)
		if len(m.Reasons) > 0 {
			matched = append(matched, "       "+strings.Join(m.Reasons, ", "))
		}
	}
	writeList(&sb, "Matched", matched, 2*maxItemsToShow)

	trending := make([]string, 0, len(bundle.Trending))
	for _, t := range bundle.Trending {
		trending = append(trending, fmt.Sprintf("%6.1f  %s", t.TrendingScore, jobLabel(t.Job)))
	}
	writeList(&sb, "Trending", trending, maxItemsToShow)

	newJobs := make([]string, 0, len(bundle.NewJobs))
	for _, j := range bundle.NewJobs {
		newJobs = append(newJobs, jobLabel(j))
	}
	writeList(&sb, "New", newJobs, maxItemsToShow)

	hiring := make([]string, 0, len(bundle.CompaniesHiring))
	for _, c := range bundle.CompaniesHiring {
		hiring = append(hiring, fmt.Sprintf("%s (%d open)", c.CompanyName, c.OpenPositions))
	}
	writeList(&sb, "Companies hiring", hiring, maxItemsToShow)

	if sb.Len() == 0 {
		sb.WriteString("No recommendations.")
	}
	p.printBox("JOB RECOMMENDATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCandidateBundle outputs the employer-facing recommendation bundle.
func (p *Printer) PrintCandidateBundle(bundle *types.CandidateBundle) {
	if bundle == nil {
		return
	}

	var sb strings.Builder
	matched := make([]string, 0, len(bundle.Matched))
	for _, m := range bundle.Matched {
		matched = append(matched, fmt.Sprintf("%3d  %s", m.Score, candidateLabel(m.Candidate)))
	}
	writeList(&sb, "Matched", matched, maxItemsToShow)

	writeList(&sb, "Active seekers", labels(bundle.ActiveSeekers), maxItemsToShow)
	writeList(&sb, "Recent applicants", labels(bundle.RecentApplicants), maxItemsToShow)

	if sb.Len() == 0 {
		sb.WriteString("No recommendations.")
	}
	p.printBox("CANDIDATE RECOMMENDATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSimilar outputs jobs ranked by similarity.
func (p *Printer) PrintSimilar(similar []types.SimilarJob) {
	var sb strings.Builder
	if len(similar) == 0 {
		sb.WriteString("No similar jobs.")
	}
	for _, s := range similar {
		sb.WriteString(fmt.Sprintf("%3d  %s\n", s.SimilarityScore, jobLabel(s.Job)))
	}
	p.printBox("SIMILAR JOBS", strings.TrimSuffix(sb.String(), "\n"))
}

func labels(candidates []types.CandidateSignal) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, candidateLabel(c))
	}
	return out
}
