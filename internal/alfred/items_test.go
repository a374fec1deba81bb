package alfred

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-repo-search/internal/domain"
)

func TestRender(t *testing.T) {
	url := "https://host/alice/toolkit"
	testCases := []struct {
		name         string
		suggestions  []domain.Suggestion
		expectedJSON string
	}{
		{
			name: "match",
			suggestions: []domain.Suggestion{{
				Title:      "🔧 alice/toolkit",
				Subtitle:   "A CLI toolkit",
				Arg:        &url,
				Confidence: 100,
				FullName:   "alice/toolkit",
				IssuesURL:  url + "/issues",
				PRURL:      url + "/pulls",
			}},
			expectedJSON: `{"items":[{"title":"🔧 alice/toolkit","subtitle":"A CLI toolkit","arg":"https://host/alice/toolkit","valid":true,
				"variables":{"confidence":100,"full_name":"alice/toolkit","issues_url":"https://host/alice/toolkit/issues","pr_url":"https://host/alice/toolkit/pulls"}}]}`,
		},
		{
			name:         "no results",
			suggestions:  []domain.Suggestion{{Title: `No results found for "zzzzz"`}},
			expectedJSON: `{"items":[{"title":"No results found for \"zzzzz\"","subtitle":"","arg":null,"valid":false,"variables":null}]}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Render(&buf, tc.suggestions))
			assert.JSONEq(t, tc.expectedJSON, buf.String())
		})
	}
}

func TestNewResponse_KeepsOrder(t *testing.T) {
	a, b := "a", "b"
	resp := NewResponse([]domain.Suggestion{
		{Title: "first", Arg: &a, Confidence: 90},
		{Title: "second", Arg: &b, Confidence: 70},
	})

	require.Len(t, resp.Items, 2)
	assert.Equal(t, "first", resp.Items[0].Title)
	assert.Equal(t, "second", resp.Items[1].Title)
}
