package ranking

import (
	"strings"

	"github.com/jonathan/talent-matcher/internal/types"
)

// Location tiers, tried in order.
const (
	remoteLocationScore  = 100
	cityLocationScore    = 100
	generalLocationScore = 90
	countryLocationScore = 70
	noLocationMatchScore = 40
)

func scoreLocation(candidate *types.CandidateSignal, job *types.JobSignal) int {
	if job.RemoteFriendly() {
		return remoteLocationScore
	}

	jobLocation := strings.ToLower(strings.TrimSpace(job.Location))
	if jobLocation == "" {
		return noLocationMatchScore
	}

	tiers := []struct {
		value string
		score int
	}{
		{candidate.City, cityLocationScore},
		{candidate.Location, generalLocationScore},
		{candidate.Country, countryLocationScore},
	}
	for _, tier := range tiers {
		if locationOverlaps(jobLocation, tier.value) {
			return tier.score
		}
	}
	return noLocationMatchScore
}

// locationOverlaps reports whether either location string contains the other.
func locationOverlaps(jobLocation, candidateValue string) bool {
	v := strings.ToLower(strings.TrimSpace(candidateValue))
	if v == "" {
		return false
	}
	return strings.Contains(jobLocation, v) || strings.Contains(v, jobLocation)
}
