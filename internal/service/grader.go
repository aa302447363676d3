package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"quizforge/internal/domain"
	"quizforge/internal/util"
)

const noExplanation = "No explanation provided."

// firstRune returns the leading UTF-8 character of s, or "" when s is
// empty. Slicing bytes would split a multi-byte character.
func firstRune(s string) string {
	if s == "" {
		return ""
	}
	_, size := utf8.DecodeRuneInString(s)
	return s[:size]
}

// topicMiss tracks incorrect answers per topic in first-seen order so
// suggestion output is deterministic.
type topicMiss struct {
	topic string
	count int
}

// Evaluate grades a submitted answer set against a quiz snapshot. It
// performs no I/O, keeps no state, and is deterministic and total over
// well-formed input: re-running it on the same inputs yields an
// identical result. Answers correspond to questions positionally.
func Evaluate(questions []domain.Question, answers []string) (*domain.EvaluationResult, error) {
	if len(questions) == 0 || len(answers) == 0 || len(questions) != len(answers) {
		return nil, domain.NewInputMismatchError(len(questions), len(answers))
	}

	var (
		totalScore     float64
		maxScore       float64
		correctAnswers int
		feedback       = make([]domain.FeedbackEntry, 0, len(questions))
		misses         []topicMiss
		missIndex      = map[string]int{}
		metrics        = domain.NewPerformanceMetrics()
	)

	for i, q := range questions {
		marks := q.Points
		if marks <= 0 {
			marks = 1
		}
		maxScore += marks

		correctLetter, correctText := findCorrectOption(q)

		userAnswer := strings.ToUpper(strings.TrimSpace(answers[i]))
		userLetter := firstRune(userAnswer)

		isCorrect := userLetter != "" && userLetter == correctLetter
		awarded := 0.0
		if isCorrect {
			awarded = marks
			totalScore += marks
			correctAnswers++
		}

		explanation := q.Explanation
		if explanation == "" {
			explanation = noExplanation
		}

		correctAnswer := "No correct answer provided"
		if correctLetter != "" {
			correctAnswer = fmt.Sprintf("%s) %s", correctLetter, correctText)
		}

		feedback = append(feedback, domain.FeedbackEntry{
			Question:      q.Text,
			UserAnswer:    userAnswer,
			CorrectAnswer: correctAnswer,
			IsCorrect:     isCorrect,
			MarksAwarded:  awarded,
			MaxMarks:      marks,
			Explanation:   explanation,
		})

		if !isCorrect {
			topic := q.Topic
			if topic == "" {
				topic = "General"
			}
			if idx, ok := missIndex[topic]; ok {
				misses[idx].count++
			} else {
				missIndex[topic] = len(misses)
				misses = append(misses, topicMiss{topic: topic, count: 1})
			}
		}

		difficulty, _ := domain.ParseDifficulty(string(q.Difficulty))
		stats := metrics[difficulty]
		stats.Total++
		stats.Score += awarded
		stats.MaxScore += marks
		if isCorrect {
			stats.Correct++
		}
	}

	percentage := util.Percentage(totalScore, maxScore, 2)

	return &domain.EvaluationResult{
		TotalScore:     totalScore,
		MaxScore:       maxScore,
		Percentage:     percentage,
		Feedback:       feedback,
		Suggestions:    buildSuggestions(len(questions), correctAnswers, totalScore, maxScore, percentage, misses),
		CorrectAnswers: correctAnswers,
		Metrics:        metrics,
	}, nil
}

// findCorrectOption locates the option whose text starts with
// "<correct_option>)" (case-insensitive) and returns its leading letter
// and remaining text. When no option matches, the first listed option
// is the nominal correct answer, which keeps grading deterministic
// even on malformed content.
func findCorrectOption(q domain.Question) (letter, text string) {
	want := strings.ToUpper(strings.TrimSpace(q.CorrectOption)) + ")"
	for _, opt := range q.Options {
		if strings.HasPrefix(strings.ToUpper(opt), want) {
			letter = strings.ToUpper(firstRune(opt))
			if len(opt) > 3 {
				text = opt[3:]
			}
			return letter, text
		}
	}
	if len(q.Options) > 0 && q.Options[0] != "" {
		letter = strings.ToUpper(firstRune(q.Options[0]))
		if len(q.Options[0]) > 3 {
			text = q.Options[0][3:]
		}
	}
	return letter, text
}

func buildSuggestions(total, correct int, score, maxScore, percentage float64, misses []topicMiss) []string {
	if len(misses) == 0 {
		return []string{
			fmt.Sprintf("🎉 Perfect score! You got all %d questions right!", total),
			fmt.Sprintf("Total score: %g/%g (100%%)", score, maxScore),
			"Great job! You've mastered this material.",
			"Consider trying a more challenging quiz next time!",
		}
	}

	suggestions := []string{
		fmt.Sprintf("You scored %d out of %d questions correctly.", correct, total),
		fmt.Sprintf("Total score: %g/%g (%.1f%%)", score, maxScore, percentage),
		"Areas to focus on:",
	}
	for _, m := range misses {
		plural := ""
		if m.count > 1 {
			plural = "s"
		}
		suggestions = append(suggestions, fmt.Sprintf("- %s: %d incorrect answer%s", m.topic, m.count, plural))
	}
	suggestions = append(suggestions,
		"Tips for improvement:",
		"- Review the explanations for incorrect answers",
		"- Practice more questions on the topics you struggled with",
		"- Take notes on key concepts you found challenging",
	)
	return suggestions
}
