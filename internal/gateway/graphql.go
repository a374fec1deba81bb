package gateway

import (
	"context"

	"emperror.dev/errors"
	"github.com/shurcooL/githubv4"
	"github.com/sirupsen/logrus"

	"github.com/naka-gawa/github-repo-search/internal/domain"
)

// GraphQLGateway is the Lister backed by the GitHub GraphQL API.
// It requests only the fields a domain.Repository needs.
type GraphQLGateway struct {
	client *githubv4.Client
	logger logrus.FieldLogger
}

type repositoryNode struct {
	NameWithOwner string
	Description   string
	URL           string
}

type repositoryConnection struct {
	PageInfo struct {
		HasNextPage bool
		EndCursor   githubv4.String
	}
	Nodes []repositoryNode
}

type maintainedQuery struct {
	Viewer struct {
		Repositories repositoryConnection `graphql:"repositories(first: 100, after: $cursor, affiliations: [OWNER, COLLABORATOR, ORGANIZATION_MEMBER])"`
	}
}

type starredQuery struct {
	Viewer struct {
		StarredRepositories repositoryConnection `graphql:"starredRepositories(first: 100, after: $cursor)"`
	}
}

type watchedQuery struct {
	Viewer struct {
		Watching repositoryConnection `graphql:"watching(first: 100, after: $cursor)"`
	}
}

func (q maintainedQuery) connection() repositoryConnection { return q.Viewer.Repositories }
func (q starredQuery) connection() repositoryConnection { return q.Viewer.StarredRepositories }
func (q watchedQuery) connection() repositoryConnection { return q.Viewer.Watching }

type connectionQuery interface {
	maintainedQuery | starredQuery | watchedQuery
	connection() repositoryConnection
}

func (g *GraphQLGateway) ListMaintained(ctx context.Context) ([]domain.Repository, error) {
	repos, err := drain[maintainedQuery](ctx, g, "maintained")
	return repos, errors.Wrap(err, "failed to list maintained repositories")
}

func (g *GraphQLGateway) ListStarred(ctx context.Context) ([]domain.Repository, error) {
	repos, err := drain[starredQuery](ctx, g, "starred")
	return repos, errors.Wrap(err, "failed to list starred repositories")
}

func (g *GraphQLGateway) ListWatched(ctx context.Context) ([]domain.Repository, error) {
	repos, err := drain[watchedQuery](ctx, g, "watched")
	return repos, errors.Wrap(err, "failed to list watched repositories")
}

// drain follows the connection's cursor until the last page.
func drain[Q connectionQuery](ctx context.Context, g *GraphQLGateway, label string) ([]domain.Repository, error) {
	variables := map[string]interface{}{"cursor": (*githubv4.String)(nil)}
	var repos []domain.Repository
	for {
		var q Q
		if err := g.client.Query(ctx, &q, variables); err != nil {
			return nil, errors.Wrap(err, "failed to execute GraphQL query")
		}
		conn := q.connection()
		for _, n := range conn.Nodes {
			repos = append(repos, domain.Repository{
				FullName:    n.NameWithOwner,
				Description: n.Description,
				HTMLURL:     n.URL,
			})
		}
		if !conn.PageInfo.HasNextPage {
			break
		}
		variables["cursor"] = githubv4.NewString(conn.PageInfo.EndCursor)
		g.logger.Debugf("  Fetching next page of %s repositories...", label)
	}
	return repos, nil
}
