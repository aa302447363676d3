package service

import (
	"quizforge/internal/domain"
)

// Performance ratio thresholds driving the next difficulty mix.
const (
	ratioAdvance  = 0.8 // above this the learner gets a harder mix
	ratioBalanced = 0.5 // above this the learner gets a balanced mix
)

// PlanDistribution turns a learner's recent performance history into a
// difficulty mix for the next quiz. It is pure and deterministic: the
// same history and question total always produce the same mix.
//
// The hard bucket is always the remainder after flooring the easy and
// medium percentages, so Easy+Medium+Hard == totalQuestions holds by
// construction. When the remainder leaves no hard question, one is
// reclaimed from easy first, then medium, keeping at least one hard
// question in every non-empty quiz.
func PlanDistribution(history []domain.ScorePair, totalQuestions int) domain.DifficultyMix {
	if totalQuestions < 1 {
		return domain.DifficultyMix{}
	}

	n := float64(totalQuestions)
	var easy, medium int

	if len(history) == 0 {
		// First quiz: balanced start, half easy.
		easy = int(n * 0.5)
		medium = int(n * 0.3)
	} else {
		var score, maxScore float64
		for _, pair := range history {
			score += pair.Score
			maxScore += pair.MaxScore
		}
		ratio := 0.5
		if maxScore > 0 {
			ratio = score / maxScore
		}

		switch {
		case ratio > ratioAdvance:
			easy = int(n * 0.2)
			if easy < 1 {
				easy = 1
			}
			medium = int(n * 0.4)
		case ratio > ratioBalanced:
			easy = int(n * 0.4)
			medium = int(n * 0.4)
		default:
			easy = int(n * 0.6)
			medium = int(n * 0.3)
		}
	}

	mix := domain.DifficultyMix{
		Easy:   easy,
		Medium: medium,
		Hard:   totalQuestions - easy - medium,
	}
	return rebalanceHard(mix)
}

// rebalanceHard enforces the hard >= 1 invariant for non-empty mixes
// by stealing a question from easy, then medium.
func rebalanceHard(mix domain.DifficultyMix) domain.DifficultyMix {
	for mix.Hard < 1 && mix.Easy > 0 {
		mix.Easy--
		mix.Hard++
	}
	for mix.Hard < 1 && mix.Medium > 0 {
		mix.Medium--
		mix.Hard++
	}
	return mix
}
