// Package ghclient fetches public GitHub activity through the REST API.
package ghclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/go-github/v56/github"
	"github.com/huangsam/gitwrapped/internal/contract"
	"golang.org/x/oauth2"
)

const (
	userAgent      = "gitwrapped"
	requestTimeout = 30 * time.Second
)

// Options configures a Client.
type Options struct {
	Token         string // optional; requests are unauthenticated when empty
	APIURL        string // must end with a slash
	MaxPages      int
	LanguageRepos int
	Workers       int
}

// Client wraps the GitHub API client with paging and concurrency limits.
type Client struct {
	gh            *github.Client
	maxPages      int
	languageRepos int
	workers       int
}

var _ contract.ActivityFetcher = &Client{}

// NewClient creates a new GitHub API client.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	httpClient := &http.Client{Timeout: requestTimeout}
	if opts.Token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: opts.Token},
		)
		httpClient = oauth2.NewClient(ctx, ts)
		httpClient.Timeout = requestTimeout
	}

	gh := github.NewClient(httpClient)
	gh.UserAgent = userAgent
	if opts.APIURL != "" {
		baseURL, err := url.Parse(opts.APIURL)
		if err != nil {
			return nil, fmt.Errorf("invalid api url %q: %w", opts.APIURL, err)
		}
		gh.BaseURL = baseURL
	}

	return &Client{
		gh:            gh,
		maxPages:      max(opts.MaxPages, 1),
		languageRepos: max(opts.LanguageRepos, 0),
		workers:       max(opts.Workers, 1),
	}, nil
}

// NewClientFromConfig creates a client from validated configuration.
func NewClientFromConfig(ctx context.Context, cfg *contract.Config) (*Client, error) {
	return NewClient(ctx, Options{
		Token:         cfg.Token,
		APIURL:        cfg.APIURL,
		MaxPages:      cfg.MaxPages,
		LanguageRepos: cfg.LanguageRepos,
		Workers:       cfg.Workers,
	})
}
