// Package report turns listed repositories and their latest workflow runs
// into the sorted status records the dashboard displays.
package report

import (
	"fmt"

	"github.com/algojj/ci-dashboard/models"
)

// Classify maps a workflow run, or its absence, to a status key, a human
// label and a display icon. A run still in flight may carry a stale
// conclusion from a previous attempt, so lifecycle status is checked
// before the conclusion.
func Classify(run *models.WorkflowRun) (key, label, icon string) {
	if run == nil {
		return models.StatusNoCI, "Sin CI", "⚠️"
	}

	switch run.Status {
	case "in_progress", "queued", "waiting":
		return models.StatusRunning, "Running", "🔄"
	}

	switch run.Conclusion {
	case "success":
		return models.StatusSuccess, "Passing", "✅"
	case "failure":
		return models.StatusFailure, "Failing", "❌"
	case "cancelled":
		return models.StatusCancelled, "Cancelled", "⏹️"
	}

	label = run.Conclusion
	if label == "" {
		label = run.Status
	}
	if label == "" {
		label = "Unknown"
	}
	return models.StatusUnknown, label, "❓"
}

// FormatDuration renders a whole-second duration as "45s", "2m 5s" or
// "2h 3m". Negative inputs clamp to zero.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	m, s := seconds/60, seconds%60
	if m < 60 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	h, m := m/60, m%60
	return fmt.Sprintf("%dh %dm", h, m)
}

// truncate shortens a string to at most n runes, with no ellipsis marker.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
