package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"quizforge/internal/cache"
	"quizforge/internal/domain"
	"quizforge/internal/logger"
	"quizforge/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const maxLeaderboardLimit = 50

// LeaderboardService orders historical submissions into a ranked view.
// Reads go through a short-TTL cache; concurrent misses for the same
// view are collapsed into a single recompute.
type LeaderboardService struct {
	repo         domain.SubmissionRepository
	cache        domain.Cache
	ttl          time.Duration
	defaultLimit int
	group        singleflight.Group
}

func NewLeaderboardService(repo domain.SubmissionRepository, cacheClient domain.Cache, ttl time.Duration, defaultLimit int) *LeaderboardService {
	if defaultLimit <= 0 {
		defaultLimit = 10
	}
	return &LeaderboardService{
		repo:         repo,
		cache:        cacheClient,
		ttl:          ttl,
		defaultLimit: defaultLimit,
	}
}

// GetLeaderboard returns the ranked top submissions, optionally
// filtered by grade and subject substring.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, grade int, subject string, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}

	key := cache.LeaderboardKey(grade, subject, limit)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err == nil {
			var entries []domain.LeaderboardEntry
			if err := json.Unmarshal([]byte(cached), &entries); err == nil {
				return entries, nil
			}
			logger.Get().Warn("Discarding unparseable leaderboard cache entry", zap.String("key", key))
		} else if err != domain.ErrCacheMiss {
			logger.Get().Error("Leaderboard cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	result, err, _ := s.group.Do(key, func() (interface{}, error) {
		submissions, err := s.repo.FindLeaderboard(ctx, grade, subject, limit)
		if err != nil {
			return nil, domain.NewInternalError("Failed to load leaderboard data", err)
		}
		entries := RankSubmissions(submissions, limit)

		if s.cache != nil {
			if payload, err := json.Marshal(entries); err == nil {
				if err := s.cache.Set(ctx, key, string(payload), s.ttl); err != nil {
					logger.Get().Warn("Leaderboard cache write failed", zap.String("key", key), zap.Error(err))
				}
			}
		}
		return entries, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.LeaderboardEntry), nil
}

// RankSubmissions orders submissions and assigns 1-based ranks. The
// sort key, in descending priority: total score, then max score (an
// equal raw score on a harder quiz ranks higher), then recency.
// Percentage is rounded to one decimal, 0.0 when max score is 0.
func RankSubmissions(submissions []*domain.Submission, limit int) []domain.LeaderboardEntry {
	sorted := make([]*domain.Submission, len(submissions))
	copy(sorted, submissions)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.TotalScore != b.TotalScore {
			return a.TotalScore > b.TotalScore
		}
		if a.MaxScore != b.MaxScore {
			return a.MaxScore > b.MaxScore
		}
		return a.CreatedAt.After(b.CreatedAt)
	})

	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	entries := make([]domain.LeaderboardEntry, 0, len(sorted))
	for i, sub := range sorted {
		entries = append(entries, domain.LeaderboardEntry{
			Rank:       i + 1,
			UserID:     sub.UserID,
			Score:      sub.TotalScore,
			MaxScore:   sub.MaxScore,
			Percentage: util.Percentage(sub.TotalScore, sub.MaxScore, 1),
			Subject:    sub.Subject,
			Grade:      sub.Grade,
			Date:       sub.CreatedAt,
		})
	}
	return entries
}
