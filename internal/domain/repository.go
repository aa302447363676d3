package domain

import (
	"context"
	"time"
)

// QuizRepository defines the interface for quiz persistence.
// Implementations return (nil, nil) when a quiz does not exist.
type QuizRepository interface {
	// SaveQuiz persists a generated quiz snapshot.
	SaveQuiz(ctx context.Context, quiz *GeneratedQuiz) error

	// GetQuizByID retrieves a quiz snapshot by its ID.
	GetQuizByID(ctx context.Context, id string) (*GeneratedQuiz, error)
}

// SubmissionFilters narrows a history query. Zero values mean
// "no filter"; Subject matches as a case-insensitive substring.
type SubmissionFilters struct {
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

// SubmissionRepository defines the interface for submission persistence.
type SubmissionRepository interface {
	// SaveSubmission appends a graded submission record.
	SaveSubmission(ctx context.Context, submission *Submission) error

	// FindRecentSubmissions returns score pairs for the user's most
	// recent submissions whose quiz subject contains the given
	// substring (case-insensitive), newest first.
	FindRecentSubmissions(ctx context.Context, userID, subject string, limit int) ([]ScorePair, error)

	// FindSubmissions returns the total match count and one page of
	// submissions, newest first.
	FindSubmissions(ctx context.Context, filters SubmissionFilters) (int, []*Submission, error)

	// FindLatestScore returns the percentage of the user's most recent
	// submission, optionally scoped to a subject. Nil when the user has
	// no history.
	FindLatestScore(ctx context.Context, userID, subject string) (*float64, error)

	// FindLeaderboard returns the top submissions ordered by
	// (total_score desc, max_score desc, created_at desc).
	FindLeaderboard(ctx context.Context, grade int, subject string, limit int) ([]*Submission, error)
}
