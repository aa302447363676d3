package service

import (
	"testing"

	"quizforge/internal/domain"

	"github.com/stretchr/testify/assert"
)

func historyWithRatio(ratio float64) []domain.ScorePair {
	return []domain.ScorePair{{Score: ratio * 100, MaxScore: 100}}
}

func TestPlanDistributionNoHistory(t *testing.T) {
	mix := PlanDistribution(nil, 10)
	assert.Equal(t, domain.DifficultyMix{Easy: 5, Medium: 3, Hard: 2}, mix)
}

func TestPlanDistributionHighPerformer(t *testing.T) {
	mix := PlanDistribution(historyWithRatio(0.9), 10)
	assert.Equal(t, domain.DifficultyMix{Easy: 2, Medium: 4, Hard: 4}, mix)
}

func TestPlanDistributionMidPerformer(t *testing.T) {
	mix := PlanDistribution(historyWithRatio(0.6), 10)
	assert.Equal(t, domain.DifficultyMix{Easy: 4, Medium: 4, Hard: 2}, mix)
}

func TestPlanDistributionLowPerformer(t *testing.T) {
	mix := PlanDistribution(historyWithRatio(0.3), 10)
	assert.Equal(t, domain.DifficultyMix{Easy: 6, Medium: 3, Hard: 1}, mix)
}

func TestPlanDistributionBoundaryRatios(t *testing.T) {
	// Exactly 0.8 is not "above 0.8": the learner stays on the balanced mix.
	mix := PlanDistribution(historyWithRatio(0.8), 10)
	assert.Equal(t, domain.DifficultyMix{Easy: 4, Medium: 4, Hard: 2}, mix)

	// Exactly 0.5 is not "above 0.5": the learner gets the easier mix.
	mix = PlanDistribution(historyWithRatio(0.5), 10)
	assert.Equal(t, domain.DifficultyMix{Easy: 6, Medium: 3, Hard: 1}, mix)
}

func TestPlanDistributionZeroMaxScoreHistory(t *testing.T) {
	// A history with no obtainable points behaves like a 0.5 ratio.
	history := []domain.ScorePair{{Score: 0, MaxScore: 0}}
	mix := PlanDistribution(history, 10)
	assert.Equal(t, domain.DifficultyMix{Easy: 6, Medium: 3, Hard: 1}, mix)
}

func TestPlanDistributionSumInvariant(t *testing.T) {
	histories := [][]domain.ScorePair{
		nil,
		historyWithRatio(0.1),
		historyWithRatio(0.55),
		historyWithRatio(0.79),
		historyWithRatio(0.81),
		historyWithRatio(1.0),
	}
	for _, history := range histories {
		for n := 1; n <= 30; n++ {
			mix := PlanDistribution(history, n)
			assert.Equal(t, n, mix.Total(), "history=%v n=%d mix=%+v", history, n, mix)
			assert.GreaterOrEqual(t, mix.Easy, 0)
			assert.GreaterOrEqual(t, mix.Medium, 0)
			assert.GreaterOrEqual(t, mix.Hard, 1, "history=%v n=%d mix=%+v", history, n, mix)
		}
	}
}

func TestPlanDistributionReclaimsHardQuestion(t *testing.T) {
	// A single-question quiz for a high performer would floor hard to
	// zero; the planner reclaims it from the easy bucket.
	mix := PlanDistribution(historyWithRatio(0.95), 1)
	assert.Equal(t, domain.DifficultyMix{Easy: 0, Medium: 0, Hard: 1}, mix)
}

func TestPlanDistributionNonPositiveTotal(t *testing.T) {
	assert.Equal(t, domain.DifficultyMix{}, PlanDistribution(nil, 0))
	assert.Equal(t, domain.DifficultyMix{}, PlanDistribution(nil, -3))
}

func TestPlanDistributionDeterministic(t *testing.T) {
	history := []domain.ScorePair{{Score: 7, MaxScore: 10}, {Score: 9, MaxScore: 10}}
	first := PlanDistribution(history, 12)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, PlanDistribution(history, 12))
	}
}
