// Package testutil holds testify mocks and fixtures shared by package tests.
package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/pable/go-lol-stats/internal/model"
	"github.com/pable/go-lol-stats/internal/riot"
)

// VerifyAllMocks asserts the expectations of every mock passed in.
func VerifyAllMocks(t *testing.T, mocks ...any) {
	t.Helper()

	for _, m := range mocks {
		if mockObj, ok := m.(interface{ AssertExpectations(mock.TestingT) bool }); ok {
			mockObj.AssertExpectations(t)
		}
	}
}

// MockProvider is a riot.Provider driven by testify expectations.
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) ResolveAccount(ctx context.Context, riotID string) (string, error) {
	args := m.Called(ctx, riotID)
	return args.String(0), args.Error(1)
}

func (m *MockProvider) ListMatches(ctx context.Context, puuid string, queue model.Queue, page int) ([]string, error) {
	args := m.Called(ctx, puuid, queue, page)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

func (m *MockProvider) FetchMatch(ctx context.Context, matchID string) (*riot.Match, error) {
	args := m.Called(ctx, matchID)
	match, _ := args.Get(0).(*riot.Match)
	return match, args.Error(1)
}

func (m *MockProvider) FetchTimeline(ctx context.Context, matchID string) (*riot.Timeline, error) {
	args := m.Called(ctx, matchID)
	tl, _ := args.Get(0).(*riot.Timeline)
	return tl, args.Error(1)
}
