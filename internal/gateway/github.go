// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"net/http"
	"time"

	"emperror.dev/errors"
	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/naka-gawa/github-repo-search/internal/domain"
)

// API selects which GitHub API a Lister talks to.
type API string

const (
	REST    API = "rest"
	GraphQL API = "graphql"
)

const perPage = 100

// Lister enumerates the authenticated user's repositories per relation.
// Each method drains every page before returning.
type Lister interface {
	ListMaintained(ctx context.Context) ([]domain.Repository, error)
	ListStarred(ctx context.Context) ([]domain.Repository, error)
	ListWatched(ctx context.Context) ([]domain.Repository, error)
}

// New creates a Lister for the given API authenticated with token.
func New(api API, token string, logger logrus.FieldLogger) (Lister, error) {
	httpClient, err := newHTTPClient(token)
	if err != nil {
		return nil, err
	}
	switch api {
	case REST, "":
		return &RESTGateway{client: github.NewClient(httpClient), logger: logger}, nil
	case GraphQL:
		return &GraphQLGateway{client: githubv4.NewClient(httpClient), logger: logger}, nil
	}
	return nil, errors.Errorf("unknown GitHub API %q", api)
}

// newHTTPClient returns a client that authenticates with token and waits out
// secondary rate limits instead of failing.
func newHTTPClient(token string) (*http.Client, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create rate limit waiter")
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}, nil
}

// RESTGateway is the Lister backed by the GitHub REST API.
type RESTGateway struct {
	client *github.Client
	logger logrus.FieldLogger
}

func (g *RESTGateway) ListMaintained(ctx context.Context) ([]domain.Repository, error) {
	opts := &github.RepositoryListByAuthenticatedUserOptions{ListOptions: github.ListOptions{PerPage: perPage}}
	var repos []domain.Repository
	for {
		page, resp, err := g.client.Repositories.ListByAuthenticatedUser(ctx, opts)
		if err != nil {
			return nil, errors.Wrap(err, "failed to list maintained repositories")
		}
		for _, r := range page {
			repos = append(repos, toDomain(r))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		g.logger.Debug("  Fetching next page of maintained repositories...")
	}
	return repos, nil
}

func (g *RESTGateway) ListStarred(ctx context.Context) ([]domain.Repository, error) {
	opts := &github.ActivityListStarredOptions{ListOptions: github.ListOptions{PerPage: perPage}}
	var repos []domain.Repository
	for {
		page, resp, err := g.client.Activity.ListStarred(ctx, "", opts)
		if err != nil {
			return nil, errors.Wrap(err, "failed to list starred repositories")
		}
		for _, s := range page {
			repos = append(repos, toDomain(s.GetRepository()))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		g.logger.Debug("  Fetching next page of starred repositories...")
	}
	return repos, nil
}

func (g *RESTGateway) ListWatched(ctx context.Context) ([]domain.Repository, error) {
	opts := &github.ListOptions{PerPage: perPage}
	var repos []domain.Repository
	for {
		page, resp, err := g.client.Activity.ListWatched(ctx, "", opts)
		if err != nil {
			return nil, errors.Wrap(err, "failed to list watched repositories")
		}
		for _, r := range page {
			repos = append(repos, toDomain(r))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		g.logger.Debug("  Fetching next page of watched repositories...")
	}
	return repos, nil
}

func toDomain(r *github.Repository) domain.Repository {
	return domain.Repository{
		FullName:    r.GetFullName(),
		Description: r.GetDescription(),
		HTMLURL:     r.GetHTMLURL(),
	}
}
