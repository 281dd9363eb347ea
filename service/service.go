package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/algojj/ci-dashboard/config"
	"github.com/algojj/ci-dashboard/dashboard"
	"github.com/algojj/ci-dashboard/github"
	"github.com/algojj/ci-dashboard/logger"
	"github.com/algojj/ci-dashboard/models"
	"github.com/algojj/ci-dashboard/report"
)

// RepoSource abstracts the repository listing for testability.
type RepoSource interface {
	ListOrgRepos(ctx context.Context, org string) ([]models.Repository, error)
}

// Service drives one dashboard generation cycle: list, build, aggregate,
// render, write.
type Service struct {
	cfg     *config.Config
	repos   RepoSource
	builder *report.Builder
}

// NewService creates a service backed by the real GitHub API.
func NewService(cfg *config.Config) (*Service, error) {
	client, err := github.NewClient(cfg.APIBaseURL, cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize GitHub client: %w", err)
	}

	logger.Info("Service initialized",
		zap.String("org", cfg.Org),
		zap.String("output_dir", cfg.OutputDir))

	return &Service{
		cfg:     cfg,
		repos:   client,
		builder: report.NewBuilder(client, cfg.TZOffsetHours),
	}, nil
}

// Run generates the dashboard once and writes both artifacts. Per-repo
// fetch failures degrade to partial data; only rate limiting (or a write
// failure) makes it return an error.
func (s *Service) Run(ctx context.Context) error {
	logger.Info("Fetching repositories", zap.String("org", s.cfg.Org))
	repos, err := s.repos.ListOrgRepos(ctx, s.cfg.Org)
	if err != nil {
		return fmt.Errorf("failed to list repositories for %s: %w", s.cfg.Org, err)
	}
	logger.Info("Found repositories", zap.Int("count", len(repos)))

	records, err := s.builder.Build(ctx, s.cfg.Org, repos)
	if err != nil {
		return fmt.Errorf("failed to build report for %s: %w", s.cfg.Org, err)
	}

	counts := report.CountStatuses(records)

	loc := time.FixedZone("dashboard", s.cfg.TZOffsetHours*3600)
	timestamp := time.Now().In(loc).Format("2006-01-02 15:04:05")

	htmlDoc, err := dashboard.Render(s.cfg.Org, records, counts, timestamp)
	if err != nil {
		return err
	}

	snap := dashboard.NewSnapshot(records, counts, timestamp)
	if err := dashboard.WriteFiles(s.cfg.OutputDir, htmlDoc, snap); err != nil {
		return err
	}

	logger.Info("Dashboard generated",
		zap.Int("repos", len(records)),
		zap.String("output_dir", s.cfg.OutputDir))

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		logger.Info("Status count", zap.String("status", k), zap.Int("count", counts[k]))
	}

	return nil
}
