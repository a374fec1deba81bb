// Package domain contains the core data structures and domain logic for the application.
package domain

// Category is the user's relationship to a repository.
type Category string

const (
	Maintained Category = "maintained"
	Starred    Category = "starred"
	Watched    Category = "watched"
)

// Categories lists every Category in precedence order.
// Suggestions are generated and deduplicated in this order.
var Categories = []Category{Maintained, Starred, Watched}

// Icon returns the glyph used to prefix suggestion titles for the category.
func (c Category) Icon() string {
	switch c {
	case Maintained:
		return "🔧"
	case Starred:
		return "⭐"
	case Watched:
		return "👀"
	}
	return ""
}

// Repository is one remote repository as seen under a given category.
type Repository struct {
	FullName    string `msgpack:"full_name"`
	Description string `msgpack:"description"`
	HTMLURL     string `msgpack:"html_url"`
}

func (r Repository) IssuesURL() string { return r.HTMLURL + "/issues" }

func (r Repository) PullsURL() string { return r.HTMLURL + "/pulls" }

// RepositoryGroup is the categorized snapshot of all repositories for the
// authenticated user. It is the unit stored in the cache.
type RepositoryGroup map[Category][]Repository

// Count returns the total number of records across all categories.
func (g RepositoryGroup) Count() int {
	n := 0
	for _, repos := range g {
		n += len(repos)
	}
	return n
}
