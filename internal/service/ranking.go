package service

import (
	"sort"

	"github.com/noah-isme/greatday-recap-api/internal/models"
)

// RankTopN totally orders aggregate rows and returns at most n of them.
// Order: descending total minutes, then descending count, then
// ascending employee id, which makes the result deterministic even for
// identical totals. The input slice is left untouched.
func RankTopN(rows []models.AggregateRow, n int) []models.AggregateRow {
	sorted := make([]models.AggregateRow, len(rows))
	copy(sorted, rows)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].TotalMinutes != sorted[j].TotalMinutes {
			return sorted[i].TotalMinutes > sorted[j].TotalMinutes
		}
		if sorted[i].Count != sorted[j].Count {
			return sorted[i].Count > sorted[j].Count
		}
		return sorted[i].EmpID < sorted[j].EmpID
	})

	if n < 0 {
		n = 0
	}
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
