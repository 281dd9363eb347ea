// Package dashboard renders the status board as a self-contained HTML
// document and a parallel JSON snapshot.
package dashboard

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/algojj/ci-dashboard/models"
)

type row struct {
	models.StatusRecord
	// CopyText is the incident summary offered for clipboard copy; empty
	// for records that get no copy control.
	CopyText string
}

type pageData struct {
	Org          string
	Timestamp    string
	Health       string
	HealthColor  template.CSS
	HealthBG     template.CSS
	HealthBorder template.CSS
	Total        int
	Passing      int
	Failing      int
	Running      int
	NoCI         int
	Other        int
	Rows         []row
}

// Render produces the complete dashboard page for the given pre-sorted
// records. It is a pure function of its inputs.
func Render(org string, records []models.StatusRecord, counts map[string]int, timestamp string) (string, error) {
	total := len(records)
	failing := counts[models.StatusFailure]
	passing := counts[models.StatusSuccess]
	running := counts[models.StatusRunning]
	noCI := counts[models.StatusNoCI]

	data := pageData{
		Org:       org,
		Timestamp: timestamp,
		Total:     total,
		Passing:   passing,
		Failing:   failing,
		Running:   running,
		NoCI:      noCI,
		// Cancelled and unknown are folded into a single residual bucket
		// in the summary strip; the table rows still distinguish them.
		Other: total - failing - passing - running - noCI,
	}

	if failing == 0 {
		data.Health = "ALL GREEN"
		data.HealthColor, data.HealthBG, data.HealthBorder = "#4caf50", "#4caf5022", "#4caf5044"
	} else {
		data.Health = fmt.Sprintf("%d FAILING", failing)
		data.HealthColor, data.HealthBG, data.HealthBorder = "#f44336", "#f4433622", "#f4433644"
	}

	data.Rows = make([]row, 0, len(records))
	for _, r := range records {
		data.Rows = append(data.Rows, row{
			StatusRecord: r,
			CopyText:     copyText(org, r),
		})
	}

	var buf strings.Builder
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render dashboard: %w", err)
	}
	return buf.String(), nil
}

// copyText builds the natural-language incident summary for records worth
// escalating: failed or cancelled runs that have a run URL to point at.
func copyText(org string, r models.StatusRecord) string {
	if r.RunURL == "" {
		return ""
	}
	if r.StatusKey != models.StatusFailure && r.StatusKey != models.StatusCancelled {
		return ""
	}
	return fmt.Sprintf(
		`El pipeline "%s" fallo en el repo %s/%s, branch: %s, commit: "%s" (%s). Run: %s — Por favor revisa los logs del workflow y decime que paso.`,
		r.Workflow, org, r.Name, r.Branch, r.CommitMsg, r.CommitDate, r.RunURL)
}

var pageTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>CI Status — {{.Org}}</title>
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, monospace;
    background: #0d1117;
    color: #c9d1d9;
    min-height: 100vh;
}
.header {
    background: #161b22;
    border-bottom: 1px solid #30363d;
    padding: 20px 24px;
}
.header-top {
    display: flex;
    justify-content: space-between;
    align-items: center;
    flex-wrap: wrap;
    gap: 12px;
}
.title {
    font-size: 24px;
    font-weight: 700;
    color: #f0f6fc;
}
.title span { color: #58a6ff; }
.health-badge {
    font-size: 14px;
    font-weight: 700;
    padding: 6px 16px;
    border-radius: 20px;
    background: {{.HealthBG}};
    color: {{.HealthColor}};
    border: 1px solid {{.HealthBorder}};
}
.stats {
    display: flex;
    gap: 16px;
    margin-top: 12px;
    flex-wrap: wrap;
}
.stat {
    font-size: 13px;
    padding: 4px 12px;
    border-radius: 12px;
    background: #21262d;
    border: 1px solid #30363d;
}
.stat-total { color: #8b949e; }
.stat-pass { color: #3fb950; }
.stat-fail { color: #f85149; }
.stat-run { color: #d29922; }
.stat-noci { color: #8b949e; }
.timestamp {
    font-size: 12px;
    color: #8b949e;
    margin-top: 8px;
}
.container {
    padding: 16px 24px;
    overflow-x: auto;
}
table {
    width: 100%;
    border-collapse: collapse;
    font-size: 14px;
}
th {
    text-align: left;
    padding: 10px 12px;
    background: #161b22;
    border-bottom: 2px solid #30363d;
    color: #8b949e;
    font-weight: 600;
    font-size: 12px;
    text-transform: uppercase;
    letter-spacing: 0.5px;
    position: sticky;
    top: 0;
    z-index: 1;
}
td {
    padding: 10px 12px;
    border-bottom: 1px solid #21262d;
    vertical-align: middle;
}
tr:hover { background: #161b2288; }
.status-cell {
    white-space: nowrap;
    font-weight: 600;
    min-width: 110px;
}
.status-icon { font-size: 16px; }
.status-failure .status-cell { color: #f85149; }
.status-success .status-cell { color: #3fb950; }
.status-running .status-cell { color: #d29922; }
.status-no_ci .status-cell { color: #8b949e; }
.status-cancelled .status-cell { color: #8b949e; }
.status-failure { background: #f8514908; }
.repo-link {
    color: #58a6ff;
    text-decoration: none;
    font-weight: 600;
}
.repo-link:hover { text-decoration: underline; }
.run-link {
    color: #8b949e;
    text-decoration: none;
    font-size: 12px;
    padding: 3px 8px;
    border: 1px solid #30363d;
    border-radius: 6px;
    white-space: nowrap;
}
.run-link:hover { background: #21262d; color: #58a6ff; border-color: #58a6ff; }
.branch-cell {
    color: #7ee787;
    font-family: monospace;
    font-size: 12px;
}
.commit-cell { max-width: 300px; }
.commit-msg {
    color: #c9d1d9;
    font-size: 13px;
    display: -webkit-box;
    -webkit-line-clamp: 1;
    -webkit-box-orient: vertical;
    overflow: hidden;
}
.commit-date { color: #8b949e; font-size: 11px; }
.duration-cell {
    color: #8b949e;
    font-family: monospace;
    font-size: 12px;
    white-space: nowrap;
}
.action-cell { white-space: nowrap; display: flex; align-items: center; gap: 6px; }
.copy-btn {
    background: none;
    border: 1px solid #30363d;
    border-radius: 6px;
    padding: 3px 6px;
    cursor: pointer;
    font-size: 14px;
    color: #8b949e;
    transition: all 0.2s;
    line-height: 1;
}
.copy-btn:hover { background: #21262d; border-color: #58a6ff; }
.copy-btn.copied { border-color: #3fb950; }
@media (max-width: 768px) {
    .header { padding: 16px; }
    .container { padding: 12px; }
    .branch-cell, .duration-cell { display: none; }
    .commit-cell { max-width: 160px; }
    table { font-size: 13px; }
    td, th { padding: 8px 6px; }
    .stats { gap: 8px; }
    .stat { font-size: 12px; padding: 3px 8px; }
}
@media (max-width: 480px) {
    .commit-cell { display: none; }
    .title { font-size: 18px; }
}
</style>
</head>
<body>
<div class="header">
    <div class="header-top">
        <div class="title">⚡ <span>{{.Org}}</span> CI Status</div>
        <div class="health-badge">{{.Health}}</div>
    </div>
    <div class="stats">
        <span class="stat stat-total">{{.Total}} repos</span>
        <span class="stat stat-pass">✅ {{.Passing}} passing</span>
        <span class="stat stat-fail">❌ {{.Failing}} failing</span>
        <span class="stat stat-run">🔄 {{.Running}} running</span>
        <span class="stat stat-noci">⚠️ {{.NoCI}} sin CI</span>
        {{if gt .Other 0}}<span class="stat stat-noci">⏹️ {{.Other}} other</span>{{end}}
    </div>
    <div class="timestamp">Last updated: {{.Timestamp}} (Argentina) — Refreshes every 15 min (Mon-Fri 8am-9pm ART)</div>
</div>
<div class="container">
<table>
<thead>
    <tr>
        <th>Status</th>
        <th>Repository</th>
        <th>Branch</th>
        <th>Last Commit</th>
        <th>Duration</th>
        <th>Actions</th>
    </tr>
</thead>
<tbody>
{{range .Rows}}
    <tr class="status-{{.StatusKey}}">
        <td class="status-cell"><span class="status-icon">{{.StatusIcon}}</span> {{.StatusLabel}}</td>
        <td><a href="{{.URL}}" target="_blank" class="repo-link">{{.Name}}</a>{{if .Private}}  🔒{{end}}</td>
        <td class="branch-cell">{{if .RunURL}}{{.Branch}}{{end}}</td>
        <td class="commit-cell">{{if .RunURL}}<span class="commit-msg">{{.CommitMsg}}</span><br><span class="commit-date">{{.CommitDate}}</span>{{end}}</td>
        <td class="duration-cell">{{if .RunURL}}{{.Duration}}{{end}}</td>
        <td class="action-cell">{{if .RunURL}}<a href="{{.RunURL}}" target="_blank" class="run-link">View Run</a>{{end}} {{if .CopyText}}<button class="copy-btn" data-copy="{{.CopyText}}" title="Copy incident summary">📋</button>{{end}}</td>
    </tr>
{{end}}
</tbody>
</table>
</div>
<script>
document.querySelectorAll('.copy-btn').forEach(function(btn) {
    btn.addEventListener('click', function() {
        var text = this.getAttribute('data-copy');
        navigator.clipboard.writeText(text).then(function() {
            btn.textContent = '✅';
            btn.classList.add('copied');
            setTimeout(function() { btn.textContent = '📋'; btn.classList.remove('copied'); }, 2000);
        });
    });
});
</script>
</body>
</html>
`))
