package repository

import (
	"context"
	"testing"
	"time"

	"quizforge/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupQuizTestDB creates a new sqlx.DB instance and sqlmock for quiz repository testing.
func setupQuizTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	return sqlxDB, mock
}

func sampleQuiz() *domain.GeneratedQuiz {
	return &domain.GeneratedQuiz{
		ID:             "01HQUIZ0000000000000000000",
		UserID:         "student-1",
		Grade:          3,
		Subject:        "Mathematics",
		TotalQuestions: 2,
		MaxScore:       3,
		Mix:            domain.DifficultyMix{Easy: 1, Medium: 1},
		Points:         domain.PointsSchedule{Easy: 1, Medium: 2, Hard: 3},
		Questions: []domain.Question{
			{
				Text:          "What is 2 + 3?",
				Options:       []string{"A) 5", "B) 6", "C) 4", "D) 7"},
				CorrectOption: "A) 5",
				Difficulty:    domain.DifficultyEasy,
				Points:        1,
				Explanation:   "2 + 3 = 5",
				Topic:         "addition",
			},
			{
				Text:          "What is 6 x 7?",
				Options:       []string{"A) 42", "B) 36", "C) 48", "D) 40"},
				CorrectOption: "A) 42",
				Difficulty:    domain.DifficultyMedium,
				Points:        2,
				Explanation:   "6 x 7 = 42",
				Topic:         "multiplication",
			},
		},
		CreatedAt: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestSaveQuiz(t *testing.T) {
	db, mock := setupQuizTestDB(t)
	defer db.Close()
	repo := NewSQLXQuizRepository(db)

	quiz := sampleQuiz()

	mock.ExpectExec("INSERT INTO quizzes").
		WithArgs(quiz.ID, quiz.UserID, quiz.Grade, quiz.Subject, quiz.TotalQuestions, quiz.MaxScore,
			quiz.Mix.Easy, quiz.Mix.Medium, quiz.Mix.Hard,
			quiz.Points.Easy, quiz.Points.Medium, quiz.Points.Hard,
			sqlmock.AnyArg(), quiz.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.SaveQuiz(context.Background(), quiz)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetQuizByID(t *testing.T) {
	db, mock := setupQuizTestDB(t)
	defer db.Close()
	repo := NewSQLXQuizRepository(db)

	quiz := sampleQuiz()
	model, err := quizToModel(quiz)
	require.NoError(t, err)

	columns := []string{"id", "user_id", "grade", "subject", "total_questions", "max_score",
		"easy_count", "medium_count", "hard_count", "easy_points", "medium_points", "hard_points",
		"questions", "created_at"}
	rows := sqlmock.NewRows(columns).
		AddRow(model.ID, model.UserID, model.Grade, model.Subject, model.TotalQuestions, model.MaxScore,
			model.EasyCount, model.MediumCount, model.HardCount,
			model.EasyPoints, model.MediumPoints, model.HardPoints,
			[]byte(model.Questions), model.CreatedAt)

	mock.ExpectQuery("SELECT (.+) FROM quizzes WHERE id").
		WithArgs(quiz.ID).
		WillReturnRows(rows)

	got, err := repo.GetQuizByID(context.Background(), quiz.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, quiz.ID, got.ID)
	assert.Equal(t, quiz.Mix, got.Mix)
	assert.Equal(t, quiz.Points, got.Points)
	assert.Len(t, got.Questions, 2)
	assert.Equal(t, "What is 2 + 3?", got.Questions[0].Text)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetQuizByIDNotFound(t *testing.T) {
	db, mock := setupQuizTestDB(t)
	defer db.Close()
	repo := NewSQLXQuizRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM quizzes WHERE id").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	got, err := repo.GetQuizByID(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
