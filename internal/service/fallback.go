package service

import (
	"fmt"
	"math/rand"

	"quizforge/internal/domain"
)

var optionLetters = [4]string{"A", "B", "C", "D"}

// SynthesizeFallbackQuiz deterministically generates arithmetic
// questions matching the mix when the content provider cannot produce
// a valid response: sums for easy, subtraction word problems for
// medium, multiplication for hard. Correct options are computed
// exactly, never guessed. Question order is shuffled while each
// question keeps its own difficulty and points metadata.
func SynthesizeFallbackQuiz(mix domain.DifficultyMix, points domain.PointsSchedule, rng *rand.Rand) []domain.Question {
	questions := make([]domain.Question, 0, mix.Total())

	for i := 0; i < mix.Easy; i++ {
		questions = append(questions, fallbackSum(points.Easy, rng))
	}
	for i := 0; i < mix.Medium; i++ {
		questions = append(questions, fallbackSubtraction(points.Medium, rng))
	}
	for i := 0; i < mix.Hard; i++ {
		questions = append(questions, fallbackMultiplication(points.Hard, rng))
	}

	rng.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
	return questions
}

// fallbackSum builds an addition question with the correct sum placed
// at a random letter and distinct near-miss distractors.
func fallbackSum(points float64, rng *rand.Rand) domain.Question {
	a, b := rng.Intn(10)+1, rng.Intn(10)+1
	correct := a + b

	values := [4]int{correct - 2, correct - 1, correct + 1, correct + 2}
	correctIdx := rng.Intn(4)
	values[correctIdx] = correct

	options := make([]string, 4)
	for i, v := range values {
		options[i] = fmt.Sprintf("%s) %d", optionLetters[i], v)
	}

	return domain.Question{
		Text:          fmt.Sprintf("What is %d + %d?", a, b),
		Options:       options,
		CorrectOption: optionLetters[correctIdx],
		Difficulty:    domain.DifficultyEasy,
		Points:        points,
		Explanation:   fmt.Sprintf("%d + %d = %d.", a, b, correct),
		Origin:        domain.OriginFallback,
	}
}

func fallbackSubtraction(points float64, rng *rand.Rand) domain.Question {
	a, b := rng.Intn(41)+10, rng.Intn(20)+1
	return domain.Question{
		Text: fmt.Sprintf("If you have %d apples and give away %d, how many do you have left?", a, b),
		Options: []string{
			fmt.Sprintf("A) %d", a-b),
			fmt.Sprintf("B) %d", a+b),
			fmt.Sprintf("C) %d", b-a),
			fmt.Sprintf("D) %d", a*b),
		},
		CorrectOption: "A",
		Difficulty:    domain.DifficultyMedium,
		Points:        points,
		Explanation:   fmt.Sprintf("%d - %d = %d.", a, b, a-b),
		Origin:        domain.OriginFallback,
	}
}

func fallbackMultiplication(points float64, rng *rand.Rand) domain.Question {
	a, b := rng.Intn(11)+2, rng.Intn(11)+2
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return domain.Question{
		Text: fmt.Sprintf("What is %d × %d?", a, b),
		Options: []string{
			fmt.Sprintf("A) %d", a*b),
			fmt.Sprintf("B) %d", a+b),
			fmt.Sprintf("C) %d", diff),
			fmt.Sprintf("D) %d", a*(b+1)),
		},
		CorrectOption: "A",
		Difficulty:    domain.DifficultyHard,
		Points:        points,
		Explanation:   fmt.Sprintf("%d × %d = %d.", a, b, a*b),
		Origin:        domain.OriginFallback,
	}
}
