package usecase

import (
	"fmt"
	"sort"

	"github.com/naka-gawa/github-repo-search/internal/domain"
	"github.com/naka-gawa/github-repo-search/internal/fuzzy"
)

// DefaultMinConfidence is the lowest score a repository needs to be suggested.
const DefaultMinConfidence = 60

// Suggester turns a RepositoryGroup and a query into ranked suggestions.
type Suggester struct {
	scorer fuzzy.Scorer
}

// NewSuggester returns a Suggester using scorer, or partial-ratio scoring when scorer is nil.
func NewSuggester(scorer fuzzy.Scorer) *Suggester {
	if scorer == nil {
		scorer = fuzzy.PartialRatioScorer{}
	}
	return &Suggester{scorer: scorer}
}

// Generate scores every repository name against query and returns those
// scoring at least minConfidence, best first.
//
// Categories are visited in domain.Categories order and each full name is
// considered once: the first category it appears in decides its icon, and a
// name that scored too low is not scored again under a later category.
// Equal scores keep that visiting order. When nothing qualifies the result is
// a single suggestion without Arg.
func (s *Suggester) Generate(query string, group domain.RepositoryGroup, minConfidence int) []domain.Suggestion {
	var suggestions []domain.Suggestion
	seen := make(map[string]struct{})

	for _, category := range domain.Categories {
		for _, repo := range group[category] {
			if _, ok := seen[repo.FullName]; ok {
				continue
			}
			seen[repo.FullName] = struct{}{}

			confidence := s.scorer.Score(repo.FullName, query)
			if confidence < minConfidence {
				continue
			}
			suggestions = append(suggestions, newSuggestion(category, repo, confidence))
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Confidence > suggestions[j].Confidence
	})

	if len(suggestions) == 0 {
		return []domain.Suggestion{{Title: fmt.Sprintf(`No results found for "%s"`, query)}}
	}
	return suggestions
}

func newSuggestion(category domain.Category, repo domain.Repository, confidence int) domain.Suggestion {
	subtitle := repo.Description
	if subtitle == "" {
		subtitle = domain.NoDescription
	}
	arg := repo.HTMLURL
	return domain.Suggestion{
		Title:      category.Icon() + " " + repo.FullName,
		Subtitle:   subtitle,
		Arg:        &arg,
		Confidence: confidence,
		FullName:   repo.FullName,
		IssuesURL:  repo.IssuesURL(),
		PRURL:      repo.PullsURL(),
	}
}
