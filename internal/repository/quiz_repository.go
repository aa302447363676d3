package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"quizforge/internal/domain"
	"quizforge/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// sqlxQuizRepository implements domain.QuizRepository using sqlx.
type sqlxQuizRepository struct {
	db *sqlx.DB
}

// NewSQLXQuizRepository creates a new instance of sqlxQuizRepository.
func NewSQLXQuizRepository(db *sqlx.DB) domain.QuizRepository {
	return &sqlxQuizRepository{db: db}
}

func quizToModel(quiz *domain.GeneratedQuiz) (*models.Quiz, error) {
	questionsJSON, err := json.Marshal(quiz.Questions)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal questions: %w", err)
	}
	return &models.Quiz{
		ID:             quiz.ID,
		UserID:         quiz.UserID,
		Grade:          quiz.Grade,
		Subject:        quiz.Subject,
		TotalQuestions: quiz.TotalQuestions,
		MaxScore:       quiz.MaxScore,
		EasyCount:      quiz.Mix.Easy,
		MediumCount:    quiz.Mix.Medium,
		HardCount:      quiz.Mix.Hard,
		EasyPoints:     quiz.Points.Easy,
		MediumPoints:   quiz.Points.Medium,
		HardPoints:     quiz.Points.Hard,
		Questions:      models.JSONDocument(questionsJSON),
		CreatedAt:      quiz.CreatedAt,
	}, nil
}

func quizToDomain(model *models.Quiz) (*domain.GeneratedQuiz, error) {
	var questions []domain.Question
	if len(model.Questions) > 0 {
		if err := json.Unmarshal(model.Questions, &questions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal questions: %w", err)
		}
	}
	return &domain.GeneratedQuiz{
		ID:             model.ID,
		UserID:         model.UserID,
		Grade:          model.Grade,
		Subject:        model.Subject,
		TotalQuestions: model.TotalQuestions,
		MaxScore:       model.MaxScore,
		Mix: domain.DifficultyMix{
			Easy:   model.EasyCount,
			Medium: model.MediumCount,
			Hard:   model.HardCount,
		},
		Points: domain.PointsSchedule{
			Easy:   model.EasyPoints,
			Medium: model.MediumPoints,
			Hard:   model.HardPoints,
		},
		Questions: questions,
		CreatedAt: model.CreatedAt,
	}, nil
}

// SaveQuiz persists a generated quiz snapshot.
func (r *sqlxQuizRepository) SaveQuiz(ctx context.Context, quiz *domain.GeneratedQuiz) error {
	model, err := quizToModel(quiz)
	if err != nil {
		return err
	}

	query := `INSERT INTO quizzes (id, user_id, grade, subject, total_questions, max_score,
	            easy_count, medium_count, hard_count, easy_points, medium_points, hard_points,
	            questions, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err = r.db.ExecContext(ctx, query,
		model.ID, model.UserID, model.Grade, model.Subject, model.TotalQuestions, model.MaxScore,
		model.EasyCount, model.MediumCount, model.HardCount,
		model.EasyPoints, model.MediumPoints, model.HardPoints,
		model.Questions, model.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save quiz: %w", err)
	}
	return nil
}

// GetQuizByID retrieves a quiz snapshot by its ID. Returns (nil, nil)
// when the quiz does not exist.
func (r *sqlxQuizRepository) GetQuizByID(ctx context.Context, id string) (*domain.GeneratedQuiz, error) {
	var model models.Quiz
	query := `SELECT id, user_id, grade, subject, total_questions, max_score,
	            easy_count, medium_count, hard_count, easy_points, medium_points, hard_points,
	            questions, created_at
	          FROM quizzes WHERE id = $1`

	err := r.db.GetContext(ctx, &model, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by id: %w", err)
	}
	return quizToDomain(&model)
}
