package usecase

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/naka-gawa/github-repo-search/internal/domain"
)

// mockLister is a mock implementation of the gateway.Lister interface.
type mockLister struct {
	mock.Mock
}

func (m *mockLister) ListMaintained(ctx context.Context) ([]domain.Repository, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Repository), args.Error(1)
}

func (m *mockLister) ListStarred(ctx context.Context) ([]domain.Repository, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Repository), args.Error(1)
}

func (m *mockLister) ListWatched(ctx context.Context) ([]domain.Repository, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Repository), args.Error(1)
}

func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

var (
	toolkit = domain.Repository{FullName: "alice/toolkit", Description: "A CLI toolkit", HTMLURL: "https://host/alice/toolkit"}
	bobRepo = domain.Repository{FullName: "bob/repo", HTMLURL: "https://host/bob/repo"}
	carol   = domain.Repository{FullName: "carol/lib", Description: "Library", HTMLURL: "https://host/carol/lib"}
)

func TestAggregator_FetchRepositoryGroup(t *testing.T) {
	testCases := []struct {
		name          string
		maintained    []domain.Repository
		starred       []domain.Repository
		watched       []domain.Repository
		maintainedErr error
		watchedErr    error
		starredErr    error
		expected      domain.RepositoryGroup
		expectError   bool
		skipStarred   bool
		skipWatched   bool
	}{
		{
			name:       "happy path - groups each relation",
			maintained: []domain.Repository{toolkit},
			starred:    []domain.Repository{bobRepo},
			watched:    []domain.Repository{bobRepo, carol},
			expected: domain.RepositoryGroup{
				domain.Maintained: {toolkit},
				domain.Starred:    {bobRepo},
				domain.Watched:    {bobRepo, carol},
			},
		},
		{
			name: "empty case - every relation is empty",
			expected: domain.RepositoryGroup{
				domain.Maintained: {},
				domain.Starred:    {},
				domain.Watched:    {},
			},
		},
		{
			name:          "error case - maintained fails before anything else is fetched",
			maintainedErr: errors.New("bad credentials"),
			expectError:   true,
			skipStarred:   true,
			skipWatched:   true,
		},
		{
			name:        "error case - watched fails and starred is never fetched",
			maintained:  []domain.Repository{toolkit},
			watchedErr:  errors.New("network down"),
			expectError: true,
			skipStarred: true,
		},
		{
			name:        "error case - starred fails",
			maintained:  []domain.Repository{toolkit},
			watched:     []domain.Repository{carol},
			starredErr:  errors.New("rate limited"),
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Arrange ---
			lister := new(mockLister)
			lister.On("ListMaintained", mock.Anything).Return(tc.maintained, tc.maintainedErr)
			if !tc.skipWatched {
				lister.On("ListWatched", mock.Anything).Return(tc.watched, tc.watchedErr)
			}
			if !tc.skipStarred {
				lister.On("ListStarred", mock.Anything).Return(tc.starred, tc.starredErr)
			}
			aggregator := NewAggregator(lister, discardLogger())

			// --- Act ---
			group, err := aggregator.FetchRepositoryGroup(context.Background())

			// --- Assert ---
			if tc.expectError {
				assert.Error(t, err)
				assert.Nil(t, group)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, group)
			}
			lister.AssertExpectations(t)
			if tc.skipStarred {
				lister.AssertNotCalled(t, "ListStarred", mock.Anything)
			}
		})
	}
}
