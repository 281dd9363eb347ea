package report

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/algojj/ci-dashboard/github"
	"github.com/algojj/ci-dashboard/logger"
	"github.com/algojj/ci-dashboard/models"
)

const commitMsgMaxLen = 80

// RunSource abstracts the workflow-run lookup so tests can substitute
// deterministic fixtures for the real API.
type RunSource interface {
	LatestRun(ctx context.Context, org, repo string) (*models.WorkflowRun, error)
}

// Builder assembles one StatusRecord per repository.
type Builder struct {
	runs RunSource
	loc  *time.Location
}

// NewBuilder creates a Builder that formats commit dates in a fixed zone
// offset by tzOffsetHours from UTC.
func NewBuilder(runs RunSource, tzOffsetHours int) *Builder {
	return &Builder{
		runs: runs,
		loc:  time.FixedZone("dashboard", tzOffsetHours*3600),
	}
}

// Build fetches the latest run for every repository, classifies it and
// returns the records sorted for display: failing first, then running,
// cancelled, without CI, unknown and finally passing; ties break on the
// repository name. Every repository yields exactly one record. A failed
// run fetch degrades that repository to the no-CI path; only rate
// limiting aborts the batch.
func (b *Builder) Build(ctx context.Context, org string, repos []models.Repository) ([]models.StatusRecord, error) {
	records := make([]models.StatusRecord, 0, len(repos))

	for _, repo := range repos {
		logger.Info("Checking repository", zap.String("repo", repo.Name))

		run, err := b.runs.LatestRun(ctx, org, repo.Name)
		if err != nil {
			if errors.Is(err, github.ErrRateLimited) {
				return nil, err
			}
			run = nil
		}

		key, label, icon := Classify(run)
		record := models.StatusRecord{
			Name:        repo.Name,
			URL:         repo.URL,
			Private:     repo.Private,
			StatusKey:   key,
			StatusLabel: label,
			StatusIcon:  icon,
		}

		if run != nil {
			commitMsg := run.DisplayTitle
			if commitMsg == "" {
				commitMsg = run.CommitMessage
			}
			runName := run.Name
			if runName == "" {
				runName = run.DisplayTitle
			}

			durationSecs := int(run.UpdatedAt.Sub(run.CreatedAt).Seconds())

			record.RunURL = run.URL
			record.RunName = runName
			record.Branch = run.HeadBranch
			record.CommitMsg = truncate(commitMsg, commitMsgMaxLen)
			record.CommitDate = run.CreatedAt.In(b.loc).Format("2006-01-02 15:04")
			record.Duration = FormatDuration(durationSecs)
			record.Workflow = run.Name
		}

		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		ri, rj := priorityRank(records[i].StatusKey), priorityRank(records[j].StatusKey)
		if ri != rj {
			return ri < rj
		}
		return records[i].Name < records[j].Name
	})

	return records, nil
}

func priorityRank(key string) int {
	if rank, ok := models.StatusPriority[key]; ok {
		return rank
	}
	return 99
}
