package ranking

import (
	"slices"
	"strings"

	"github.com/jonathan/talent-matcher/internal/types"
)

const (
	exactJobTypeScore      = 100
	equivalentJobTypeScore = 80
	mismatchedJobTypeScore = 30
)

// jobTypeGroups lists spellings of the same employment arrangement.
var jobTypeGroups = [][]string{
	{"full-time", "full time", "fulltime", "permanent"},
	{"part-time", "part time", "parttime"},
	{"contract", "contractor", "freelance", "temporary", "temp"},
	{"internship", "intern", "trainee"},
	{"remote", "work from home", "distributed"},
}

func normalizeJobType(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, "_", "-")
}

func jobTypeGroup(jobType string) int {
	for i, group := range jobTypeGroups {
		if slices.Contains(group, jobType) {
			return i
		}
	}
	return -1
}

func scoreJobType(candidate *types.CandidateSignal, job *types.JobSignal) int {
	prefs := make([]string, 0, len(candidate.PreferredJobTypes))
	for _, p := range candidate.PreferredJobTypes {
		if n := normalizeJobType(p); n != "" {
			prefs = append(prefs, n)
		}
	}
	jobType := normalizeJobType(job.JobType)
	if len(prefs) == 0 || jobType == "" {
		return NeutralJobTypeScore
	}

	if slices.Contains(prefs, jobType) {
		return exactJobTypeScore
	}
	if group := jobTypeGroup(jobType); group >= 0 {
		for _, p := range prefs {
			if jobTypeGroup(p) == group {
				return equivalentJobTypeScore
			}
		}
	}
	return mismatchedJobTypeScore
}
