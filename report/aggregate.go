package report

import "github.com/algojj/ci-dashboard/models"

// CountStatuses tallies how many records carry each status key.
func CountStatuses(records []models.StatusRecord) map[string]int {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.StatusKey]++
	}
	return counts
}
