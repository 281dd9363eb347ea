package dashboard

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/algojj/ci-dashboard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderAllGreen(t *testing.T) {
	records := []models.StatusRecord{
		{Name: "charlie", StatusKey: models.StatusRunning, StatusLabel: "Running", StatusIcon: "🔄", RunURL: "https://example.com/run/3"},
		{Name: "bravo", StatusKey: models.StatusNoCI, StatusLabel: "Sin CI", StatusIcon: "⚠️"},
		{Name: "alpha", StatusKey: models.StatusSuccess, StatusLabel: "Passing", StatusIcon: "✅", RunURL: "https://example.com/run/1"},
	}
	counts := map[string]int{
		models.StatusRunning: 1,
		models.StatusNoCI:    1,
		models.StatusSuccess: 1,
	}

	doc, err := Render("testorg", records, counts, "2024-05-10 09:00:00")
	require.NoError(t, err)

	assert.Contains(t, doc, "ALL GREEN")
	assert.Contains(t, doc, "#4caf50")
	assert.Contains(t, doc, "3 repos")
	assert.Contains(t, doc, "✅ 1 passing")
	assert.Contains(t, doc, "❌ 0 failing")
	assert.Contains(t, doc, "🔄 1 running")
	assert.Contains(t, doc, "⚠️ 1 sin CI")
	// No residual bucket chip when cancelled+unknown is zero.
	assert.NotContains(t, doc, " other</span>")
	assert.Contains(t, doc, "Last updated: 2024-05-10 09:00:00")
	assert.Contains(t, doc, `<tr class="status-no_ci">`)
}

func TestRenderFailing(t *testing.T) {
	records := []models.StatusRecord{
		{Name: "alpha", StatusKey: models.StatusFailure, StatusLabel: "Failing", StatusIcon: "❌",
			RunURL: "https://example.com/run/1", Branch: "main", CommitMsg: "Break things", Workflow: "CI"},
		{Name: "bravo", StatusKey: models.StatusCancelled, StatusLabel: "Cancelled", StatusIcon: "⏹️",
			RunURL: "https://example.com/run/2"},
		{Name: "charlie", StatusKey: models.StatusUnknown, StatusLabel: "action_required", StatusIcon: "❓",
			RunURL: "https://example.com/run/3"},
		{Name: "delta", StatusKey: models.StatusSuccess, StatusLabel: "Passing", StatusIcon: "✅"},
	}
	counts := map[string]int{
		models.StatusFailure:   1,
		models.StatusCancelled: 1,
		models.StatusUnknown:   1,
		models.StatusSuccess:   1,
	}

	doc, err := Render("testorg", records, counts, "2024-05-10 09:00:00")
	require.NoError(t, err)

	assert.Contains(t, doc, "1 FAILING")
	assert.Contains(t, doc, "#f44336")
	// Cancelled and unknown fold into the residual chip.
	assert.Contains(t, doc, "⏹️ 2 other")
	assert.Contains(t, doc, `<tr class="status-failure">`)

	// Copy control only for failure/cancelled rows that have a run URL:
	// the failing and cancelled rows here, not the unknown one.
	assert.Equal(t, 2, strings.Count(doc, "data-copy="))
	assert.Contains(t, doc, "El pipeline")
	assert.Contains(t, doc, "testorg/alpha")
}

func TestRenderCopyTextOnlyWithRunURL(t *testing.T) {
	records := []models.StatusRecord{
		{Name: "alpha", StatusKey: models.StatusFailure, StatusLabel: "Failing", StatusIcon: "❌"},
	}
	counts := map[string]int{models.StatusFailure: 1}

	doc, err := Render("testorg", records, counts, "2024-05-10 09:00:00")
	require.NoError(t, err)

	// Failing but without a run URL: nothing to point at, no copy button.
	assert.NotContains(t, doc, "data-copy=")
}

func TestRenderEscapesCopyText(t *testing.T) {
	records := []models.StatusRecord{
		{Name: "alpha", StatusKey: models.StatusFailure, StatusLabel: "Failing", StatusIcon: "❌",
			RunURL:    "https://example.com/run/1",
			Branch:    "main",
			CommitMsg: `He said "hi" <script>alert(1)</script>`,
			Workflow:  "CI"},
	}
	counts := map[string]int{models.StatusFailure: 1}

	doc, err := Render("testorg", records, counts, "2024-05-10 09:00:00")
	require.NoError(t, err)

	// Raw quotes and angle brackets must not survive into the attribute.
	assert.NotContains(t, doc, `"hi" <script>`)
	assert.Contains(t, doc, "&#34;")
	assert.Contains(t, doc, "&lt;script&gt;")
}

func TestNewSnapshot(t *testing.T) {
	records := []models.StatusRecord{
		{Name: "alpha", StatusKey: models.StatusSuccess},
		{Name: "bravo", StatusKey: models.StatusNoCI},
	}
	counts := map[string]int{models.StatusSuccess: 1, models.StatusNoCI: 1}

	snap := NewSnapshot(records, counts, "2024-05-10 09:00:00")
	assert.Equal(t, "2024-05-10 09:00:00", snap.Timestamp)
	assert.Equal(t, 2, snap.Total)
	assert.Equal(t, counts, snap.Counts)
	assert.Equal(t, records, snap.Repos)
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dashboard")
	snap := NewSnapshot([]models.StatusRecord{{Name: "alpha", StatusKey: models.StatusSuccess}},
		map[string]int{models.StatusSuccess: 1}, "2024-05-10 09:00:00")

	err := WriteFiles(dir, "<!DOCTYPE html><html></html>", snap)
	require.NoError(t, err)

	htmlData, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(htmlData), "<!DOCTYPE html>"))

	jsonData, err := os.ReadFile(filepath.Join(dir, "status.json"))
	require.NoError(t, err)

	var decoded models.Snapshot
	require.NoError(t, json.Unmarshal(jsonData, &decoded))
	assert.Equal(t, snap.Timestamp, decoded.Timestamp)
	assert.Equal(t, snap.Total, decoded.Total)
	assert.Equal(t, snap.Counts, decoded.Counts)
	require.Len(t, decoded.Repos, 1)
	assert.Equal(t, "alpha", decoded.Repos[0].Name)
}
