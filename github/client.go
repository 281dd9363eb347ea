package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/algojj/ci-dashboard/logger"
	"github.com/algojj/ci-dashboard/models"
)

// ErrRateLimited is returned when the API rejects a request because the
// organization-wide rate limit is exhausted. Callers treat it as fatal for
// the whole generation cycle rather than degrading per repository.
var ErrRateLimited = errors.New("github: rate limited")

const listPageSize = 100

// Client represents a GitHub API client
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
}

// workflowRunResponse is the wire shape of a run from the Actions API;
// it is converted to models.WorkflowRun at this boundary.
type workflowRunResponse struct {
	Status       string    `json:"status"`
	Conclusion   string    `json:"conclusion"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	HTMLURL      string    `json:"html_url"`
	Name         string    `json:"name"`
	DisplayTitle string    `json:"display_title"`
	HeadBranch   string    `json:"head_branch"`
	HeadCommit   struct {
		Message string `json:"message"`
	} `json:"head_commit"`
}

func (w workflowRunResponse) toModel() *models.WorkflowRun {
	return &models.WorkflowRun{
		Status:        w.Status,
		Conclusion:    w.Conclusion,
		CreatedAt:     w.CreatedAt,
		UpdatedAt:     w.UpdatedAt,
		URL:           w.HTMLURL,
		Name:          w.Name,
		DisplayTitle:  w.DisplayTitle,
		HeadBranch:    w.HeadBranch,
		CommitMessage: w.HeadCommit.Message,
	}
}

type workflowRunsResponse struct {
	TotalCount   int                   `json:"total_count"`
	WorkflowRuns []workflowRunResponse `json:"workflow_runs"`
}

// NewClient builds a client against the given API base URL. The token is
// installed as a static oauth2 transport so individual requests do not
// carry credentials themselves.
func NewClient(baseURL, token string) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL %q: %w", baseURL, err)
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{Source: ts},
		Timeout:   30 * time.Second,
	}

	logger.Info("Initializing GitHub client", zap.String("base_url", parsed.String()))
	return &Client{
		httpClient: httpClient,
		baseURL:    parsed,
	}, nil
}

// endpoint appends elem to the base URL path, so a base like
// https://ghe.internal/api/v3 keeps its prefix.
func (c *Client) endpoint(elem string) *url.URL {
	u := *c.baseURL
	u.Path = path.Join(u.Path, elem)
	return &u
}

// ListOrgRepos enumerates every repository (public and private) of the
// organization. Pages are requested until one comes back empty. A page
// that fails ends the listing; whatever was gathered so far is returned,
// so a flaky API yields a partial but usable report.
func (c *Client) ListOrgRepos(ctx context.Context, org string) ([]models.Repository, error) {
	var repos []models.Repository
	page := 1

	for {
		reqURL := c.endpoint(fmt.Sprintf("orgs/%s/repos", org))
		q := reqURL.Query()
		q.Set("per_page", strconv.Itoa(listPageSize))
		q.Set("page", strconv.Itoa(page))
		q.Set("type", "all")
		reqURL.RawQuery = q.Encode()

		logger.Debug("Fetching repository page",
			zap.String("org", org),
			zap.Int("page", page))

		status, body, err := c.get(ctx, reqURL.String())
		if err != nil {
			if errors.Is(err, ErrRateLimited) {
				return nil, err
			}
			logger.Error("Failed to list repositories, keeping partial results",
				zap.Error(err),
				zap.String("org", org),
				zap.Int("page", page))
			break
		}
		if status != http.StatusOK {
			logger.Error("Failed to list repositories, keeping partial results",
				zap.Int("status_code", status),
				zap.String("org", org),
				zap.Int("page", page))
			break
		}

		var pageRepos []models.Repository
		if err := json.Unmarshal(body, &pageRepos); err != nil {
			logger.Error("Failed to decode repository page, keeping partial results",
				zap.Error(err),
				zap.String("org", org),
				zap.Int("page", page))
			break
		}

		if len(pageRepos) == 0 {
			break
		}
		repos = append(repos, pageRepos...)
		page++
	}

	logger.Info("Listed organization repositories",
		zap.String("org", org),
		zap.Int("count", len(repos)))
	return repos, nil
}

// LatestRun returns the most recent workflow run of a repository, or nil
// when the repository has none or the call fails. Only rate limiting is
// surfaced as an error.
func (c *Client) LatestRun(ctx context.Context, org, repo string) (*models.WorkflowRun, error) {
	reqURL := c.endpoint(fmt.Sprintf("repos/%s/%s/actions/runs", org, repo))
	q := reqURL.Query()
	q.Set("per_page", "1")
	reqURL.RawQuery = q.Encode()

	status, body, err := c.get(ctx, reqURL.String())
	if err != nil {
		if errors.Is(err, ErrRateLimited) {
			return nil, err
		}
		logger.Warn("Failed to fetch workflow runs",
			zap.Error(err),
			zap.String("org", org),
			zap.String("repo", repo))
		return nil, nil
	}
	if status != http.StatusOK {
		logger.Warn("Failed to fetch workflow runs",
			zap.Int("status_code", status),
			zap.String("org", org),
			zap.String("repo", repo))
		return nil, nil
	}

	var runs workflowRunsResponse
	if err := json.Unmarshal(body, &runs); err != nil {
		logger.Warn("Failed to decode workflow runs response",
			zap.Error(err),
			zap.String("org", org),
			zap.String("repo", repo))
		return nil, nil
	}

	if len(runs.WorkflowRuns) == 0 {
		return nil, nil
	}
	return runs.WorkflowRuns[0].toModel(), nil
}

// get performs one GET round trip and returns the status code and full
// body. Rate-limited responses are detected here so every call site gets
// the same fail-fast behavior.
func (c *Client) get(ctx context.Context, rawURL string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode == http.StatusForbidden && strings.Contains(strings.ToLower(string(body)), "rate limit") {
		logger.Error("Rate limited by GitHub API",
			zap.String("remaining", resp.Header.Get("X-RateLimit-Remaining")),
			zap.String("reset", resp.Header.Get("X-RateLimit-Reset")))
		return resp.StatusCode, body, ErrRateLimited
	}

	return resp.StatusCode, body, nil
}
