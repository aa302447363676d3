package service

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"quizforge/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// correctOptionValue extracts the text of the option the question
// declares correct.
func correctOptionValue(t *testing.T, q domain.Question) string {
	t.Helper()
	prefix := q.CorrectOption + ")"
	for _, opt := range q.Options {
		if strings.HasPrefix(opt, prefix) {
			return strings.TrimSpace(opt[len(prefix):])
		}
	}
	t.Fatalf("no option matches correct_option %q in %v", q.CorrectOption, q.Options)
	return ""
}

func TestSynthesizeFallbackQuizBucketCounts(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	mix := domain.DifficultyMix{Easy: 3, Medium: 2, Hard: 2}
	points := domain.PointsSchedule{Easy: 1, Medium: 2, Hard: 3}

	questions := SynthesizeFallbackQuiz(mix, points, rng)
	require.Len(t, questions, 7)

	counts := map[domain.Difficulty]int{}
	for _, q := range questions {
		counts[q.Difficulty]++
		assert.Equal(t, domain.OriginFallback, q.Origin)
		assert.Len(t, q.Options, 4)
		assert.InDelta(t, points.For(q.Difficulty), q.Points, 0.001)
	}
	assert.Equal(t, 3, counts[domain.DifficultyEasy])
	assert.Equal(t, 2, counts[domain.DifficultyMedium])
	assert.Equal(t, 2, counts[domain.DifficultyHard])
}

func TestSynthesizeFallbackQuizCorrectOptionsAreComputed(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	mix := domain.DifficultyMix{Easy: 5, Medium: 5, Hard: 5}
	points := domain.PointsSchedule{Easy: 1, Medium: 2, Hard: 3}

	for _, q := range SynthesizeFallbackQuiz(mix, points, rng) {
		value := correctOptionValue(t, q)
		// The explanation states the arithmetic result, which must be
		// the value behind the declared correct option.
		assert.True(t, strings.HasSuffix(q.Explanation, fmt.Sprintf("= %s.", value)),
			"explanation %q does not end with result %q", q.Explanation, value)
	}
}

func TestSynthesizeFallbackQuizDeterministicForSeed(t *testing.T) {
	mix := domain.DifficultyMix{Easy: 2, Medium: 1, Hard: 1}
	points := domain.PointsSchedule{Easy: 1, Medium: 2, Hard: 3}

	first := SynthesizeFallbackQuiz(mix, points, rand.New(rand.NewSource(99)))
	second := SynthesizeFallbackQuiz(mix, points, rand.New(rand.NewSource(99)))
	assert.Equal(t, first, second)
}

func TestSynthesizeFallbackQuizEmptyMix(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	questions := SynthesizeFallbackQuiz(domain.DifficultyMix{}, domain.PointsSchedule{}, rng)
	assert.Empty(t, questions)
}
