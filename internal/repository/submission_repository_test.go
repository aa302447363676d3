package repository

import (
	"context"
	"testing"
	"time"

	"quizforge/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSubmission() *domain.Submission {
	metrics := domain.NewPerformanceMetrics()
	metrics[domain.DifficultyEasy].Total = 1
	metrics[domain.DifficultyEasy].Correct = 1

	return &domain.Submission{
		ID:         "01HSUB00000000000000000000",
		QuizID:     "01HQUIZ0000000000000000000",
		UserID:     "student-1",
		TotalScore: 1,
		MaxScore:   3,
		Answers:    []string{"A", "B"},
		Feedback: []domain.FeedbackEntry{
			{Question: "What is 2 + 3?", UserAnswer: "A", CorrectAnswer: "5", IsCorrect: true, MarksAwarded: 1, MaxMarks: 1},
			{Question: "What is 6 x 7?", UserAnswer: "B", CorrectAnswer: "42", IsCorrect: false, MaxMarks: 2},
		},
		Suggestions: []string{"Review multiplication."},
		Metrics:     metrics,
		CreatedAt:   time.Date(2024, 1, 15, 11, 0, 0, 0, time.UTC),
	}
}

func TestSaveSubmission(t *testing.T) {
	db, mock := setupQuizTestDB(t)
	defer db.Close()
	repo := NewSQLXSubmissionRepository(db)

	sub := sampleSubmission()

	mock.ExpectExec("INSERT INTO submissions").
		WithArgs(sub.ID, sub.QuizID, sub.UserID, sub.TotalScore, sub.MaxScore,
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sub.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.SaveSubmission(context.Background(), sub)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindRecentSubmissions(t *testing.T) {
	db, mock := setupQuizTestDB(t)
	defer db.Close()
	repo := NewSQLXSubmissionRepository(db)

	rows := sqlmock.NewRows([]string{"total_score", "max_score"}).
		AddRow(9.0, 10.0).
		AddRow(5.0, 10.0).
		AddRow(7.0, 10.0)

	mock.ExpectQuery("SELECT s.total_score, s.max_score").
		WithArgs("student-1", "%math%", 3).
		WillReturnRows(rows)

	pairs, err := repo.FindRecentSubmissions(context.Background(), "student-1", "math", 3)
	require.NoError(t, err)
	require.Len(t, pairs, 3)
	assert.Equal(t, domain.ScorePair{Score: 9, MaxScore: 10}, pairs[0])
	assert.Equal(t, domain.ScorePair{Score: 7, MaxScore: 10}, pairs[2])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindSubmissionsWithFilters(t *testing.T) {
	db, mock := setupQuizTestDB(t)
	defer db.Close()
	repo := NewSQLXSubmissionRepository(db)

	minScore := 5.0
	filters := domain.SubmissionFilters{
		UserID:   "student-1",
		Subject:  "math",
		MinScore: &minScore,
		Limit:    10,
		Offset:   0,
	}

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM submissions`).
		WithArgs("student-1", "%math%", minScore).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	sub := sampleSubmission()
	model, err := submissionToModel(sub)
	require.NoError(t, err)

	columns := []string{"id", "quiz_id", "user_id", "total_score", "max_score",
		"answers", "feedback", "suggestions", "metrics", "created_at", "subject", "grade"}
	answersJSON, _ := model.Answers.Value()
	suggestionsJSON, _ := model.Suggestions.Value()
	rows := sqlmock.NewRows(columns).
		AddRow(model.ID, model.QuizID, model.UserID, model.TotalScore, model.MaxScore,
			answersJSON, []byte(model.Feedback), suggestionsJSON, []byte(model.Metrics),
			model.CreatedAt, "Mathematics", 3)

	mock.ExpectQuery("SELECT s.id, s.quiz_id").
		WithArgs("student-1", "%math%", minScore, 10, 0).
		WillReturnRows(rows)

	total, submissions, err := repo.FindSubmissions(context.Background(), filters)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, submissions, 1)
	assert.Equal(t, sub.ID, submissions[0].ID)
	assert.Equal(t, []string{"A", "B"}, submissions[0].Answers)
	assert.Len(t, submissions[0].Feedback, 2)
	assert.Equal(t, "Mathematics", submissions[0].Subject)
	assert.Equal(t, 3, submissions[0].Grade)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindLatestScore(t *testing.T) {
	db, mock := setupQuizTestDB(t)
	defer db.Close()
	repo := NewSQLXSubmissionRepository(db)

	mock.ExpectQuery("SELECT s.total_score, s.max_score").
		WithArgs("student-1").
		WillReturnRows(sqlmock.NewRows([]string{"total_score", "max_score"}).AddRow(8.0, 10.0))

	score, err := repo.FindLatestScore(context.Background(), "student-1", "")
	require.NoError(t, err)
	require.NotNil(t, score)
	assert.InDelta(t, 80.0, *score, 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindLatestScoreNoHistory(t *testing.T) {
	db, mock := setupQuizTestDB(t)
	defer db.Close()
	repo := NewSQLXSubmissionRepository(db)

	mock.ExpectQuery("SELECT s.total_score, s.max_score").
		WithArgs("student-2").
		WillReturnRows(sqlmock.NewRows([]string{"total_score", "max_score"}))

	score, err := repo.FindLatestScore(context.Background(), "student-2", "")
	assert.NoError(t, err)
	assert.Nil(t, score)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindLeaderboardOrdering(t *testing.T) {
	db, mock := setupQuizTestDB(t)
	defer db.Close()
	repo := NewSQLXSubmissionRepository(db)

	sub := sampleSubmission()
	model, err := submissionToModel(sub)
	require.NoError(t, err)

	columns := []string{"id", "quiz_id", "user_id", "total_score", "max_score",
		"answers", "feedback", "suggestions", "metrics", "created_at", "subject", "grade"}
	answersJSON, _ := model.Answers.Value()
	suggestionsJSON, _ := model.Suggestions.Value()
	rows := sqlmock.NewRows(columns).
		AddRow(model.ID, model.QuizID, model.UserID, model.TotalScore, model.MaxScore,
			answersJSON, []byte(model.Feedback), suggestionsJSON, []byte(model.Metrics),
			model.CreatedAt, "Mathematics", 3)

	mock.ExpectQuery("ORDER BY s.total_score DESC, s.max_score DESC, s.created_at DESC").
		WithArgs(3, "%math%", 10).
		WillReturnRows(rows)

	submissions, err := repo.FindLeaderboard(context.Background(), 3, "math", 10)
	require.NoError(t, err)
	require.Len(t, submissions, 1)
	assert.Equal(t, sub.UserID, submissions[0].UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
