package ranking

import (
	"strings"

	"github.com/jonathan/talent-matcher/internal/types"
)

const educationDeficitPenalty = 25

// degreeKeywords is tried in order; the first keyword contained in the text sets the ordinal.
var degreeKeywords = []struct {
	keyword string
	ordinal int
}{
	{"doctorate", 6},
	{"doctoral", 6},
	{"phd", 6},
	{"ph.d", 6},
	{"doctor", 6},
	{"postgraduate", 5},
	{"post-graduate", 5},
	{"master", 4},
	{"mba", 4},
	{"msc", 4},
	{"m.sc", 4},
	{"m.s.", 4},
	{"bachelor", 3},
	{"bsc", 3},
	{"b.sc", 3},
	{"b.s.", 3},
	{"b.a.", 3},
	{"undergraduate", 3},
	{"associate", 2},
	{"high school", 1},
	{"secondary", 1},
}

// degreeOrdinal maps free text to the ordinal scale high school=1 .. doctorate=6, or 0 when
// no keyword matches.
func degreeOrdinal(text string) int {
	lower := strings.ToLower(text)
	if strings.TrimSpace(lower) == "" {
		return 0
	}
	for _, k := range degreeKeywords {
		if strings.Contains(lower, k.keyword) {
			return k.ordinal
		}
	}
	return 0
}

// highestDegree returns the best ordinal across the candidate's education entries.
func highestDegree(entries []types.EducationEntry) int {
	best := 0
	for _, e := range entries {
		best = max(best, degreeOrdinal(e.Degree))
	}
	return best
}

func scoreEducation(candidate *types.CandidateSignal, job *types.JobSignal) int {
	if strings.TrimSpace(job.RequiredEducation) == "" {
		return NeutralEducationScore
	}

	required := degreeOrdinal(job.RequiredEducation)
	have := highestDegree(candidate.Education)
	if have >= required {
		return 100
	}
	return max(0, 100-educationDeficitPenalty*(required-have))
}
