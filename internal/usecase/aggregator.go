// Package usecase contains the business logic of the application.
package usecase

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/naka-gawa/github-repo-search/internal/domain"
	"github.com/naka-gawa/github-repo-search/internal/gateway"
)

// Aggregator collects the authenticated user's repositories into a
// RepositoryGroup. Its FetchRepositoryGroup method is the producer wrapped by
// the cache.
type Aggregator struct {
	lister gateway.Lister
	logger logrus.FieldLogger
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(lister gateway.Lister, logger logrus.FieldLogger) *Aggregator {
	return &Aggregator{
		lister: lister,
		logger: logger,
	}
}

// FetchRepositoryGroup lists maintained, watched and starred repositories one
// after another. The first error aborts the whole fetch and is returned as is.
func (a *Aggregator) FetchRepositoryGroup(ctx context.Context) (domain.RepositoryGroup, error) {
	a.logger.Debug("Usecase: Fetching repositories from GitHub...")

	a.logger.Debug("[1/3] Fetching maintained repositories...")
	maintained, err := a.lister.ListMaintained(ctx)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("[2/3] Fetching watched repositories...")
	watched, err := a.lister.ListWatched(ctx)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("[3/3] Fetching starred repositories...")
	starred, err := a.lister.ListStarred(ctx)
	if err != nil {
		return nil, err
	}

	group := domain.RepositoryGroup{
		domain.Maintained: nonNil(maintained),
		domain.Starred:    nonNil(starred),
		domain.Watched:    nonNil(watched),
	}
	a.logger.WithFields(logrus.Fields{
		"maintained": len(maintained),
		"starred":    len(starred),
		"watched":    len(watched),
	}).Debug("Usecase: Repository fetch complete.")
	return group, nil
}

func nonNil(repos []domain.Repository) []domain.Repository {
	if repos == nil {
		return []domain.Repository{}
	}
	return repos
}
