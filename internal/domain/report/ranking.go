package report

import (
	"sort"

	"github.com/google/uuid"
)

// RankBySales sorts entries by sales count descending and assigns dense
// 1-based ranks. The sort is stable so ties keep their input order. The
// input slice is returned reordered in place.
func RankBySales(entries []LeaderboardEntry) []LeaderboardEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Sales > entries[j].Sales
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// TopK returns the first k ranked entries with ranks reassigned 1..k,
// independent of the full list. The result is a copy.
func TopK(ranked []LeaderboardEntry, k int) []LeaderboardEntry {
	if k > len(ranked) {
		k = len(ranked)
	}
	top := make([]LeaderboardEntry, k)
	copy(top, ranked[:k])
	for i := range top {
		top[i].Rank = i + 1
	}
	return top
}

// RankOf locates a user's rank in a ranked list, or 0 when absent.
func RankOf(ranked []LeaderboardEntry, userID uuid.UUID) int {
	for _, e := range ranked {
		if e.UserID == userID {
			return e.Rank
		}
	}
	return 0
}
