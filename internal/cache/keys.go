package cache

import (
	"fmt"
	"strings"
)

const leaderboardPrefix = "leaderboard"

// LeaderboardKey builds the cache key for one leaderboard view. Filters
// are part of the key so different views never collide; the subject is
// lowercased because subject matching is case-insensitive.
func LeaderboardKey(grade int, subject string, limit int) string {
	s := strings.ToLower(strings.TrimSpace(subject))
	if s == "" {
		s = "all"
	}
	g := "all"
	if grade > 0 {
		g = fmt.Sprintf("%d", grade)
	}
	return fmt.Sprintf("%s:grade:%s:subject:%s:limit:%d", leaderboardPrefix, g, s, limit)
}
