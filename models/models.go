// Package models defines the core data structures used throughout the application.
package models

import "time"

// Status keys form a closed set; every repository is classified into
// exactly one of them on each generation cycle.
const (
	StatusFailure   = "failure"
	StatusRunning   = "running"
	StatusCancelled = "cancelled"
	StatusNoCI      = "no_ci"
	StatusUnknown   = "unknown"
	StatusSuccess   = "success"
)

// StatusPriority orders status keys for display: attention-worthy states
// surface first. Keys missing from the map sort last.
var StatusPriority = map[string]int{
	StatusFailure:   0,
	StatusRunning:   1,
	StatusCancelled: 2,
	StatusNoCI:      3,
	StatusUnknown:   4,
	StatusSuccess:   5,
}

// Repository represents a GitHub repository as listed from the organization.
type Repository struct {
	Name    string `json:"name"`
	URL     string `json:"html_url"`
	Private bool   `json:"private"`
}

// WorkflowRun is the most recent workflow execution of a repository.
type WorkflowRun struct {
	Status        string
	Conclusion    string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	URL           string
	Name          string
	DisplayTitle  string
	HeadBranch    string
	CommitMessage string
}

// StatusRecord is the per-repository unit of display data: repository
// metadata combined with the classification of its latest run. Run-derived
// fields stay empty when the repository has no retrievable run.
type StatusRecord struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Private     bool   `json:"private"`
	StatusKey   string `json:"status_key"`
	StatusLabel string `json:"status_label"`
	StatusIcon  string `json:"status_icon"`

	RunURL     string `json:"run_url,omitempty"`
	RunName    string `json:"run_name,omitempty"`
	Branch     string `json:"branch,omitempty"`
	CommitMsg  string `json:"commit_msg,omitempty"`
	CommitDate string `json:"commit_date,omitempty"`
	Duration   string `json:"duration,omitempty"`
	Workflow   string `json:"workflow,omitempty"`
}

// Snapshot is the machine-readable mirror of a generated dashboard.
type Snapshot struct {
	Timestamp string         `json:"timestamp"`
	Total     int            `json:"total"`
	Counts    map[string]int `json:"counts"`
	Repos     []StatusRecord `json:"repos"`
}
