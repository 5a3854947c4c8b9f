package recommend

import (
	"cmp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// compareRanked orders by score descending, then newest first, then id ascending.
func compareRanked[S cmp.Ordered](scoreA, scoreB S, createdA, createdB time.Time, idA, idB uuid.UUID) int {
	if c := cmp.Compare(scoreB, scoreA); c != 0 {
		return c
	}
	if c := createdB.Compare(createdA); c != 0 {
		return c
	}
	return strings.Compare(idA.String(), idB.String())
}

func idSet(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func sameFold(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	return a != "" && strings.EqualFold(a, b)
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if sameFold(item, s) {
			return true
		}
	}
	return false
}
