package ranking

import (
	"math"

	"github.com/jonathan/talent-matcher/internal/types"
)

const (
	overlappingSalaryScore = 100
	// underAskingSalaryScore is deliberately below a perfect match.
	underAskingSalaryScore = 90
)

// salaryRange fills a missing bound from the other one. ok is false when both are absent.
func salaryRange(lo, hi *float64) (minV, maxV float64, ok bool) {
	switch {
	case lo == nil && hi == nil:
		return 0, 0, false
	case lo == nil:
		return *hi, *hi, true
	case hi == nil:
		return *lo, *lo, true
	default:
		return *lo, *hi, true
	}
}

func scoreSalary(candidate *types.CandidateSignal, job *types.JobSignal) int {
	wantMin, wantMax, ok := salaryRange(candidate.ExpectedSalaryMin, candidate.ExpectedSalaryMax)
	if !ok {
		return NeutralSalaryScore
	}
	offerMin, offerMax, ok := salaryRange(job.SalaryMin, job.SalaryMax)
	if !ok {
		return NeutralSalaryScore
	}

	switch {
	case wantMin > offerMax:
		if offerMax <= 0 {
			return 0
		}
		gap := (wantMin - offerMax) / offerMax
		return clamp(int(math.Round(100*(1-gap))), 0, 100)
	case wantMax < offerMin:
		return underAskingSalaryScore
	default:
		return overlappingSalaryScore
	}
}
