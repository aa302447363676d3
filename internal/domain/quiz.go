package domain

import (
	"strings"
	"time"
)

// Difficulty is the difficulty tag carried by every question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty normalizes a raw difficulty string. Unknown tags
// default to medium, which is also what the grader assumes when
// bucketing malformed questions.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy, true
	case "medium":
		return DifficultyMedium, true
	case "hard":
		return DifficultyHard, true
	default:
		return DifficultyMedium, false
	}
}

// DifficultyMix is the count of easy/medium/hard questions making up
// one quiz instance. Easy+Medium+Hard always equals the requested
// question total.
type DifficultyMix struct {
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

func (m DifficultyMix) Total() int {
	return m.Easy + m.Medium + m.Hard
}

func (m DifficultyMix) Validate() error {
	if m.Easy < 0 || m.Medium < 0 || m.Hard < 0 {
		return NewValidationError("difficulty mix counts must be non-negative")
	}
	if m.Total() >= 1 && m.Hard < 1 {
		return NewValidationError("difficulty mix must reserve at least one hard question")
	}
	return nil
}

// PointsSchedule is the per-difficulty point value used to weight scoring.
type PointsSchedule struct {
	Easy   float64 `json:"easy"`
	Medium float64 `json:"medium"`
	Hard   float64 `json:"hard"`
}

func (p PointsSchedule) For(d Difficulty) float64 {
	switch d {
	case DifficultyEasy:
		return p.Easy
	case DifficultyHard:
		return p.Hard
	default:
		return p.Medium
	}
}

func (p PointsSchedule) Validate() error {
	if p.Easy <= 0 || p.Medium <= 0 || p.Hard <= 0 {
		return NewValidationError("points schedule values must be positive")
	}
	return nil
}

// QuestionOrigin tags where a question came from, so grading and
// rendering can branch explicitly instead of sniffing field contents.
type QuestionOrigin string

const (
	// OriginProvider marks a question produced by the content provider.
	OriginProvider QuestionOrigin = "provider"
	// OriginFallback marks a deterministically synthesized question.
	OriginFallback QuestionOrigin = "fallback"
	// OriginPlaceholder marks a padding question inserted to keep the
	// persisted count equal to the requested total.
	OriginPlaceholder QuestionOrigin = "placeholder"
)

// Question is a single multiple-choice question. Immutable once
// generated; the points alias ("marks" vs "points") is resolved at
// ingestion so every read site sees one field.
type Question struct {
	Text          string         `json:"question"`
	Options       []string       `json:"options"` // 4 entries, each prefixed "<Letter>) "
	CorrectOption string         `json:"correct_option"`
	Difficulty    Difficulty     `json:"difficulty"`
	Points        float64        `json:"points"`
	Explanation   string         `json:"explanation"`
	Topic         string         `json:"topic,omitempty"`
	Origin        QuestionOrigin `json:"origin,omitempty"`
}

// GeneratedQuiz is the persisted snapshot of one quiz-generation
// request: the questions plus the mix and points schedule that
// produced them, so grading later is reproducible.
type GeneratedQuiz struct {
	ID             string
	UserID         string
	Grade          int
	Subject        string
	TotalQuestions int
	MaxScore       float64
	Mix            DifficultyMix
	Points         PointsSchedule
	Questions      []Question
	CreatedAt      time.Time
}

// ScorePair is one historical (score, max score) observation consumed
// by the distribution planner.
type ScorePair struct {
	Score    float64
	MaxScore float64
}

// FeedbackEntry is the graded record for one question, in the same
// order as the submitted answers.
type FeedbackEntry struct {
	Question      string  `json:"question"`
	UserAnswer    string  `json:"user_answer"`
	CorrectAnswer string  `json:"correct_answer"`
	IsCorrect     bool    `json:"is_correct"`
	MarksAwarded  float64 `json:"marks_awarded"`
	MaxMarks      float64 `json:"max_marks"`
	Explanation   string  `json:"explanation"`
}

// DifficultyStats accumulates per-difficulty performance for one
// evaluation.
type DifficultyStats struct {
	Correct  int     `json:"correct"`
	Total    int     `json:"total"`
	Score    float64 `json:"score"`
	MaxScore float64 `json:"max_score"`
}

// PerformanceMetrics maps a difficulty tag to its accumulated stats.
// Derived on every evaluation, never persisted independently of the
// EvaluationResult it came from.
type PerformanceMetrics map[Difficulty]*DifficultyStats

// NewPerformanceMetrics returns a metrics map with all three buckets
// pre-initialized.
func NewPerformanceMetrics() PerformanceMetrics {
	return PerformanceMetrics{
		DifficultyEasy:   {},
		DifficultyMedium: {},
		DifficultyHard:   {},
	}
}

// EvaluationResult aggregates one grading pass over a quiz snapshot.
type EvaluationResult struct {
	TotalScore     float64            `json:"total_score"`
	MaxScore       float64            `json:"max_score"`
	Percentage     float64            `json:"percentage"` // 0-100, two decimals
	Feedback       []FeedbackEntry    `json:"feedback"`
	Suggestions    []string           `json:"suggestions"`
	CorrectAnswers int                `json:"correct_answers"`
	Metrics        PerformanceMetrics `json:"performance_metrics"`
}

// Submission is one graded answer set. Resubmission for the same quiz
// creates a new, independent record; history is append-only.
type Submission struct {
	ID          string
	QuizID      string
	UserID      string
	TotalScore  float64
	MaxScore    float64
	Answers     []string
	Feedback    []FeedbackEntry
	Suggestions []string
	Metrics     PerformanceMetrics
	CreatedAt   time.Time

	// Joined quiz attributes, populated by history and leaderboard reads.
	Subject string
	Grade   int
}

// LeaderboardEntry is computed on read; rank is the 1-based position
// after sorting and is never stored.
type LeaderboardEntry struct {
	Rank       int       `json:"rank"`
	UserID     string    `json:"user_id"`
	Score      float64   `json:"score"`
	MaxScore   float64   `json:"max_score"`
	Percentage float64   `json:"percentage"`
	Subject    string    `json:"subject"`
	Grade      int       `json:"grade"`
	Date       time.Time `json:"date"`
}
