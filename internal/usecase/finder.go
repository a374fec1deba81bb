package usecase

import (
	"context"
	"fmt"

	"github.com/montanaflynn/stats"
	"github.com/sirupsen/logrus"

	"github.com/naka-gawa/github-repo-search/internal/cache"
	"github.com/naka-gawa/github-repo-search/internal/domain"
)

// Finder answers searches from the cached repository snapshot, fetching it
// through the Aggregator on a miss.
type Finder struct {
	store      cache.Store
	aggregator *Aggregator
	suggester  *Suggester
	key        string
	logger     logrus.FieldLogger
}

// NewFinder creates a Finder. The snapshot is cached under a key derived
// from Aggregator.FetchRepositoryGroup.
func NewFinder(store cache.Store, aggregator *Aggregator, suggester *Suggester, logger logrus.FieldLogger) *Finder {
	return &Finder{
		store:      store,
		aggregator: aggregator,
		suggester:  suggester,
		key:        cache.FuncKey(aggregator.FetchRepositoryGroup),
		logger:     logger,
	}
}

// Search returns ranked suggestions for query. With recreate set the cache
// is cleared first, forcing a fresh fetch.
func (f *Finder) Search(ctx context.Context, query string, minConfidence int, recreate bool) ([]domain.Suggestion, error) {
	if recreate {
		if err := f.store.InvalidateAll(ctx); err != nil {
			return nil, err
		}
	}

	group, err := f.repositories(ctx)
	if err != nil {
		return nil, err
	}

	suggestions := f.suggester.Generate(query, group, minConfidence)
	f.logConfidence(query, suggestions)
	return suggestions, nil
}

// UpdateCache clears the cache and repopulates it immediately.
func (f *Finder) UpdateCache(ctx context.Context) (domain.RepositoryGroup, error) {
	if err := f.store.InvalidateAll(ctx); err != nil {
		return nil, err
	}
	return f.repositories(ctx)
}

// CacheInfo lists the entries currently held by the store.
func (f *Finder) CacheInfo(ctx context.Context) ([]cache.EntryInfo, error) {
	return f.store.Info(ctx)
}

func (f *Finder) repositories(ctx context.Context) (domain.RepositoryGroup, error) {
	return cache.GetOrCompute(ctx, f.store, f.key, f.aggregator.FetchRepositoryGroup)
}

func (f *Finder) logConfidence(query string, suggestions []domain.Suggestion) {
	summary := SummarizeConfidence(suggestions)
	f.logger.WithFields(logrus.Fields{
		"query":   query,
		"matches": summary.Matches,
		"mean":    summary.Mean,
		"median":  summary.Median,
		"max":     summary.Max,
	}).Debug("Usecase: Search complete.")
}

// ConfidenceSummary describes the scores of the matched suggestions.
// All fields are zero when nothing matched.
type ConfidenceSummary struct {
	Matches int
	Mean    float64
	Median  float64
	Max     float64
}

func (s ConfidenceSummary) String() string {
	if s.Matches == 0 {
		return "0 matches"
	}
	return fmt.Sprintf("%d matches, confidence mean %.1f, median %.1f, max %.0f", s.Matches, s.Mean, s.Median, s.Max)
}

// SummarizeConfidence computes a ConfidenceSummary, ignoring the "no results" suggestion.
func SummarizeConfidence(suggestions []domain.Suggestion) ConfidenceSummary {
	var confidences []int
	for _, s := range suggestions {
		if !s.IsSentinel() {
			confidences = append(confidences, s.Confidence)
		}
	}
	if len(confidences) == 0 {
		return ConfidenceSummary{}
	}

	data := stats.LoadRawData(confidences)
	mean, _ := data.Mean()
	median, _ := data.Median()
	highest, _ := data.Max()
	return ConfidenceSummary{
		Matches: len(confidences),
		Mean:    mean,
		Median:  median,
		Max:     highest,
	}
}
