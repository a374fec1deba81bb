// Package alfred renders suggestions in the Alfred script filter JSON format.
package alfred

import (
	"encoding/json"
	"io"

	"emperror.dev/errors"

	"github.com/naka-gawa/github-repo-search/internal/domain"
)

// Item is one entry of a script filter response.
type Item struct {
	Title     string     `json:"title"`
	Subtitle  string     `json:"subtitle"`
	Arg       *string    `json:"arg"`
	Valid     bool       `json:"valid"`
	Variables *Variables `json:"variables"`
}

// Variables are passed on to the workflow's downstream actions.
type Variables struct {
	Confidence int    `json:"confidence"`
	FullName   string `json:"full_name"`
	IssuesURL  string `json:"issues_url"`
	PRURL      string `json:"pr_url"`
}

// Response is the top-level script filter document.
type Response struct {
	Items []Item `json:"items"`
}

// NewResponse converts suggestions into items, keeping their order.
// The "no results" suggestion becomes an item that cannot be actioned.
func NewResponse(suggestions []domain.Suggestion) Response {
	items := make([]Item, 0, len(suggestions))
	for _, s := range suggestions {
		item := Item{Title: s.Title, Subtitle: s.Subtitle, Arg: s.Arg}
		if !s.IsSentinel() {
			item.Valid = true
			item.Variables = &Variables{
				Confidence: s.Confidence,
				FullName:   s.FullName,
				IssuesURL:  s.IssuesURL,
				PRURL:      s.PRURL,
			}
		}
		items = append(items, item)
	}
	return Response{Items: items}
}

// Render writes suggestions to w as a single JSON document.
func Render(w io.Writer, suggestions []domain.Suggestion) error {
	if err := json.NewEncoder(w).Encode(NewResponse(suggestions)); err != nil {
		return errors.Wrap(err, "failed to write Alfred response")
	}
	return nil
}
