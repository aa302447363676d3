package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"quizforge/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memoryCache is a trivial in-process domain.Cache for tests.
type memoryCache struct {
	mu    sync.Mutex
	items map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string]string{}}
}

func (c *memoryCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.items[key]; ok {
		return v, nil
	}
	return "", domain.ErrCacheMiss
}

func (c *memoryCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

func (c *memoryCache) Ping(ctx context.Context) error { return nil }

func leaderboardSubmissions() []*domain.Submission {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []*domain.Submission{
		{UserID: "carol", TotalScore: 80, MaxScore: 100, Subject: "math", Grade: 3, CreatedAt: base},
		{UserID: "alice", TotalScore: 95, MaxScore: 100, Subject: "math", Grade: 3, CreatedAt: base},
		{UserID: "dave", TotalScore: 80, MaxScore: 120, Subject: "math", Grade: 3, CreatedAt: base},
		{UserID: "bob", TotalScore: 80, MaxScore: 100, Subject: "math", Grade: 3, CreatedAt: base.AddDate(0, 0, 1)},
	}
}

func TestRankSubmissionsOrdering(t *testing.T) {
	entries := RankSubmissions(leaderboardSubmissions(), 10)
	require.Len(t, entries, 4)

	// Highest total score first.
	assert.Equal(t, "alice", entries[0].UserID)
	assert.Equal(t, 1, entries[0].Rank)

	// Equal total score on a larger-max quiz ranks higher.
	assert.Equal(t, "dave", entries[1].UserID)

	// Remaining tie broken by recency, newest first.
	assert.Equal(t, "bob", entries[2].UserID)
	assert.Equal(t, "carol", entries[3].UserID)
	assert.Equal(t, 4, entries[3].Rank)
}

func TestRankSubmissionsPercentage(t *testing.T) {
	subs := []*domain.Submission{
		{UserID: "a", TotalScore: 2, MaxScore: 3, CreatedAt: time.Now()},
		{UserID: "b", TotalScore: 1, MaxScore: 0, CreatedAt: time.Now()},
	}
	entries := RankSubmissions(subs, 10)
	require.Len(t, entries, 2)
	assert.InDelta(t, 66.7, entries[0].Percentage, 0.001)
	assert.InDelta(t, 0.0, entries[1].Percentage, 0.001)
}

func TestRankSubmissionsTruncatesBeforeRanking(t *testing.T) {
	entries := RankSubmissions(leaderboardSubmissions(), 2)
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, "alice", entries[0].UserID)
	assert.Equal(t, "dave", entries[1].UserID)
}

func TestRankSubmissionsEmpty(t *testing.T) {
	assert.Empty(t, RankSubmissions(nil, 10))
}

func TestGetLeaderboardCachesResult(t *testing.T) {
	repo := new(MockSubmissionRepository)
	cacheClient := newMemoryCache()
	svc := NewLeaderboardService(repo, cacheClient, time.Minute, 10)

	repo.On("FindLeaderboard", mock.Anything, 3, "math", 10).
		Return(leaderboardSubmissions(), nil).Once()

	first, err := svc.GetLeaderboard(context.Background(), 3, "math", 10)
	require.NoError(t, err)
	require.Len(t, first, 4)

	// Second read is served from the cache; the repository is not hit again.
	second, err := svc.GetLeaderboard(context.Background(), 3, "math", 10)
	require.NoError(t, err)
	assert.Equal(t, len(first), len(second))
	assert.Equal(t, first[0].UserID, second[0].UserID)

	repo.AssertExpectations(t)
}

func TestGetLeaderboardClampsLimit(t *testing.T) {
	repo := new(MockSubmissionRepository)
	svc := NewLeaderboardService(repo, newMemoryCache(), time.Minute, 10)

	repo.On("FindLeaderboard", mock.Anything, 0, "", 10).
		Return([]*domain.Submission{}, nil).Once()
	repo.On("FindLeaderboard", mock.Anything, 0, "", maxLeaderboardLimit).
		Return([]*domain.Submission{}, nil).Once()

	_, err := svc.GetLeaderboard(context.Background(), 0, "", 0)
	require.NoError(t, err)
	_, err = svc.GetLeaderboard(context.Background(), 0, "", 500)
	require.NoError(t, err)

	repo.AssertExpectations(t)
}

func TestGetLeaderboardWorksWithoutCache(t *testing.T) {
	repo := new(MockSubmissionRepository)
	svc := NewLeaderboardService(repo, nil, time.Minute, 10)

	repo.On("FindLeaderboard", mock.Anything, 0, "", 10).
		Return(leaderboardSubmissions(), nil)

	entries, err := svc.GetLeaderboard(context.Background(), 0, "", 10)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}
