package domain

// NoDescription is the subtitle used when a repository has no description.
const NoDescription = "No description available."

// Suggestion is a single ranked search result.
// Arg is nil only for the "no results" placeholder.
type Suggestion struct {
	Title      string
	Subtitle   string
	Arg        *string
	Confidence int
	FullName   string
	IssuesURL  string
	PRURL      string
}

// IsSentinel reports whether s is the placeholder emitted when nothing matched.
func (s Suggestion) IsSentinel() bool {
	return s.Arg == nil
}
