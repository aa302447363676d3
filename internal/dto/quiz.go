package dto

import (
	"time"

	"quizforge/internal/domain"
)

// PointsStrategy carries the per-difficulty point values of a
// generation request.
type PointsStrategy struct {
	Easy   float64 `json:"easy"`
	Medium float64 `json:"medium"`
	Hard   float64 `json:"hard"`
}

// GenerateQuizRequest is the body of POST /api/quiz/generate. Any
// client-sent difficulty distribution is ignored; the mix is always
// computed from the learner's history.
type GenerateQuizRequest struct {
	Grade          int            `json:"grade"`
	Subject        string         `json:"subject"`
	TotalQuestions int            `json:"total_questions"`
	PointsStrategy PointsStrategy `json:"points_strategy"`
}

// QuizMetadata describes the generated quiz snapshot.
type QuizMetadata struct {
	Grade          int                   `json:"grade"`
	Subject        string                `json:"subject"`
	TotalQuestions int                   `json:"total_questions"`
	MaxScore       float64               `json:"max_score"`
	Distribution   domain.DifficultyMix  `json:"question_distribution"`
	PointsStrategy domain.PointsSchedule `json:"points_strategy"`
	CreatedAt      time.Time             `json:"created_at"`
}

// GenerateQuizResponse is the response of POST /api/quiz/generate.
type GenerateQuizResponse struct {
	ID        string            `json:"id"`
	CreatedAt time.Time         `json:"created_at"`
	Questions []domain.Question `json:"questions"`
	Metadata  QuizMetadata      `json:"metadata"`
}

// EvaluateQuizRequest is the body of POST /api/quiz/evaluate. Answers
// correspond positionally to the quiz's questions.
type EvaluateQuizRequest struct {
	QuizID  string   `json:"quiz_id"`
	Answers []string `json:"user_answers"`
}

// EvaluateQuizResponse is the response of POST /api/quiz/evaluate.
type EvaluateQuizResponse struct {
	SubmissionID   string                    `json:"submission_id"`
	TotalScore     float64                   `json:"total_score"`
	MaxScore       float64                   `json:"max_score"`
	Percentage     float64                   `json:"percentage"`
	Feedback       []domain.FeedbackEntry    `json:"feedback"`
	Suggestions    []string                  `json:"suggestions"`
	CorrectAnswers int                       `json:"correct_answers"`
	TotalQuestions int                       `json:"total_questions"`
	Metrics        domain.PerformanceMetrics `json:"performance_metrics"`
}

// HistoryRequest collects the /api/quiz/history query filters.
type HistoryRequest struct {
	UserID   string
	Grade    int
	Subject  string
	MinScore *float64
	MaxScore *float64
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}

// HistoryItem is one submission in the history listing.
type HistoryItem struct {
	ID          string                 `json:"id"`
	QuizID      string                 `json:"quiz_id"`
	UserID      string                 `json:"user_id"`
	TotalScore  float64                `json:"total_score"`
	MaxScore    float64                `json:"max_score"`
	Percentage  float64                `json:"percentage"`
	Answers     []string               `json:"answers"`
	Feedback    []domain.FeedbackEntry `json:"feedback"`
	Suggestions []string               `json:"suggestions"`
	Subject     string                 `json:"subject"`
	Grade       int                    `json:"grade"`
	CreatedAt   time.Time              `json:"created_at"`
}

// HistoryResponse is the paginated history listing.
type HistoryResponse struct {
	Total   int           `json:"total"`
	Count   int           `json:"count"`
	Results []HistoryItem `json:"results"`
}

// NextDifficultyResponse suggests the next quiz difficulty based on
// the learner's latest percentage.
type NextDifficultyResponse struct {
	PreviousScore  float64 `json:"previous_score"`
	NextDifficulty string  `json:"next_difficulty"`
}

// HintRequest is the body of POST /api/quiz/hint.
type HintRequest struct {
	Question   string `json:"question"`
	UserAnswer string `json:"user_answer,omitempty"`
}

// HintResponse is the response of POST /api/quiz/hint.
type HintResponse struct {
	Question string `json:"question"`
	Hint     string `json:"hint"`
	Success  bool   `json:"success"`
}

// LeaderboardResponse is the response of GET /api/quiz/leaderboard.
type LeaderboardResponse struct {
	Grade   int                       `json:"grade,omitempty"`
	Subject string                    `json:"subject,omitempty"`
	Entries []domain.LeaderboardEntry `json:"entries"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ErrorResponse represents an error in the API response.
type ErrorResponse struct {
	Error string `json:"error"`
}
