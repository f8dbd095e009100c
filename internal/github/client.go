package github

import (
	"context"
	"fmt"
	"sync"
	"time"

	gh "github.com/google/go-github/v62/github"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"issueflow/internal/tracker"
)

// Config holds the connection settings for the GitHub data source.
type Config struct {
	Token string
	Owner string
	Repo  string

	// PageSize is the per-page item count for list calls (max 100).
	PageSize int
	// EventConcurrency bounds the parallel per-issue event fetches.
	EventConcurrency int
	// WithEvents controls whether per-issue timelines are fetched at all.
	// Fetching them costs one API call per issue.
	WithEvents bool
}

// Client fetches issues and their event histories from a single repository.
type Client struct {
	cfg Config
	api *gh.Client
}

// NewClient creates a GitHub client for the configured repository. An empty
// token yields an unauthenticated client, which works for public repositories
// at a much lower rate limit.
func NewClient(cfg Config) *Client {
	if cfg.PageSize <= 0 || cfg.PageSize > 100 {
		cfg.PageSize = 100
	}
	if cfg.EventConcurrency <= 0 {
		cfg.EventConcurrency = 4
	}

	api := gh.NewClient(nil)
	if cfg.Token != "" {
		api = api.WithAuthToken(cfg.Token)
	}
	return &Client{cfg: cfg, api: api}
}

// FetchIssues retrieves all issues (open and closed) from the repository,
// skipping pull requests, and normalizes them into the canonical issue shape.
// When event fetching is enabled, each issue's timeline is loaded with bounded
// concurrency.
func (c *Client) FetchIssues(ctx context.Context) ([]tracker.Issue, error) {
	start := time.Now()

	opts := &gh.IssueListByRepoOptions{
		State:       "all",
		ListOptions: gh.ListOptions{PerPage: c.cfg.PageSize},
	}

	var raw []*gh.Issue
	for {
		page, resp, err := c.api.Issues.ListByRepo(ctx, c.cfg.Owner, c.cfg.Repo, opts)
		if err != nil {
			return nil, fmt.Errorf("listing issues for %s/%s: %w", c.cfg.Owner, c.cfg.Repo, err)
		}
		for _, issue := range page {
			if issue.IsPullRequest() {
				continue
			}
			raw = append(raw, issue)
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	log.Info().
		Str("repo", c.cfg.Owner+"/"+c.cfg.Repo).
		Int("count", len(raw)).
		Dur("elapsed", time.Since(start)).
		Msg("Fetched issue list")

	issues := make([]tracker.Issue, len(raw))
	for i, item := range raw {
		issues[i] = MapIssue(item, nil)
	}

	if !c.cfg.WithEvents {
		return issues, nil
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.EventConcurrency)

	for i, item := range raw {
		i, item := i, item
		g.Go(func() error {
			events, err := c.fetchEvents(gctx, item.GetNumber())
			if err != nil {
				return err
			}
			mu.Lock()
			issues[i].Events = events
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetching issue events: %w", err)
	}

	log.Info().
		Int("issues", len(issues)).
		Dur("elapsed", time.Since(start)).
		Msg("Fetched issue histories")
	return issues, nil
}

// fetchEvents pages through one issue's event history.
func (c *Client) fetchEvents(ctx context.Context, number int) ([]tracker.Event, error) {
	opts := &gh.ListOptions{PerPage: c.cfg.PageSize}

	var events []tracker.Event
	for {
		page, resp, err := c.api.Issues.ListIssueEvents(ctx, c.cfg.Owner, c.cfg.Repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("listing events for #%d: %w", number, err)
		}
		for _, ev := range page {
			events = append(events, MapEvent(ev))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return events, nil
}
