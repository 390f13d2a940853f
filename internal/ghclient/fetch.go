package ghclient

import (
	"context"
	"sync"
	"time"

	"github.com/google/go-github/v56/github"
	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/huangsam/gitwrapped/schema"
	"golang.org/x/sync/errgroup"
)

// FetchUser returns the public profile of a user.
func (c *Client) FetchUser(ctx context.Context, username string) (schema.Profile, error) {
	user, _, err := c.gh.Users.Get(ctx, username)
	if err != nil {
		return schema.Profile{}, translateError(err)
	}
	return toProfile(user), nil
}

// FetchRepositories returns the user's repositories, most recently pushed first.
func (c *Client) FetchRepositories(ctx context.Context, username string) ([]schema.Repository, error) {
	repos, err := paginate(ctx, c.maxPages, func(ctx context.Context, page int) ([]*github.Repository, error) {
		opts := &github.RepositoryListOptions{
			Sort:        "pushed",
			ListOptions: github.ListOptions{PerPage: contract.PerPage, Page: page},
		}
		repos, _, err := c.gh.Repositories.List(ctx, username, opts)
		return repos, err
	})
	if err != nil {
		return nil, err
	}

	out := make([]schema.Repository, len(repos))
	for i, r := range repos {
		out[i] = toRepository(r)
	}
	return out, nil
}

// FetchEvents returns the user's recent public events, newest first.
func (c *Client) FetchEvents(ctx context.Context, username string) ([]schema.Event, error) {
	events, err := paginate(ctx, c.maxPages, func(ctx context.Context, page int) ([]*github.Event, error) {
		opts := &github.ListOptions{PerPage: contract.PerPage, Page: page}
		events, _, err := c.gh.Activity.ListEventsPerformedByUser(ctx, username, true, opts)
		return events, err
	})
	if err != nil {
		return nil, err
	}

	out := make([]schema.Event, len(events))
	for i, e := range events {
		out[i] = toEvent(e)
	}
	return out, nil
}

// FetchLanguages returns language byte counts for one repository. It is
// best-effort: any failure yields an empty map.
func (c *Client) FetchLanguages(ctx context.Context, owner, repo string) map[string]int {
	langs, _, err := c.gh.Repositories.ListLanguages(ctx, owner, repo)
	if err != nil || langs == nil {
		return map[string]int{}
	}
	return langs
}

// FetchSnapshot fetches the profile, repositories and events in parallel, then
// language bytes for the most recently pushed repositories.
func (c *Client) FetchSnapshot(ctx context.Context, username string) (*schema.ActivitySnapshot, error) {
	if err := contract.ValidateUsername(username); err != nil {
		return nil, err
	}

	snap := &schema.ActivitySnapshot{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		profile, err := c.FetchUser(gctx, username)
		snap.Profile = profile
		return err
	})
	g.Go(func() error {
		repos, err := c.FetchRepositories(gctx, username)
		snap.Repositories = repos
		return err
	})
	g.Go(func() error {
		events, err := c.FetchEvents(gctx, username)
		snap.Events = events
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap.Languages = c.fetchLanguageMap(ctx, username, snap.Repositories)
	snap.FetchedAt = time.Now()
	return snap, nil
}

// fetchLanguageMap fetches languages for the first languageRepos repositories
// with at most workers requests in flight.
func (c *Client) fetchLanguageMap(ctx context.Context, username string, repos []schema.Repository) schema.LanguageByteMap {
	repos = repos[:min(len(repos), c.languageRepos)]
	result := make(schema.LanguageByteMap, len(repos))

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(c.workers)
	for _, repo := range repos {
		g.Go(func() error {
			owner, name := schema.SplitFullName(repo.FullName)
			if owner == "" {
				owner, name = username, repo.Name
			}
			langs := c.FetchLanguages(ctx, owner, name)

			mu.Lock()
			result[repo.Name] = langs
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return result
}

// paginate calls fetch for pages 1..maxPages, stopping early on a short page.
func paginate[T any](ctx context.Context, maxPages int, fetch func(context.Context, int) ([]T, error)) ([]T, error) {
	var all []T
	for page := 1; page <= maxPages; page++ {
		items, err := fetch(ctx, page)
		if err != nil {
			return nil, translateError(err)
		}
		all = append(all, items...)
		if len(items) < contract.PerPage {
			break
		}
	}
	return all, nil
}
