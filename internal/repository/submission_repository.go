package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"quizforge/internal/domain"
	"quizforge/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// submissionColumns is the joined column list shared by the history
// and leaderboard reads.
const submissionColumns = `s.id, s.quiz_id, s.user_id, s.total_score, s.max_score,
	s.answers, s.feedback, s.suggestions, s.metrics, s.created_at,
	q.subject, q.grade`

// sqlxSubmissionRepository implements domain.SubmissionRepository
// using sqlx.
type sqlxSubmissionRepository struct {
	db *sqlx.DB
}

// NewSQLXSubmissionRepository creates a new instance of
// sqlxSubmissionRepository.
func NewSQLXSubmissionRepository(db *sqlx.DB) domain.SubmissionRepository {
	return &sqlxSubmissionRepository{db: db}
}

func submissionToModel(sub *domain.Submission) (*models.Submission, error) {
	feedbackJSON, err := json.Marshal(sub.Feedback)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal feedback: %w", err)
	}
	metricsJSON, err := json.Marshal(sub.Metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metrics: %w", err)
	}
	return &models.Submission{
		ID:          sub.ID,
		QuizID:      sub.QuizID,
		UserID:      sub.UserID,
		TotalScore:  sub.TotalScore,
		MaxScore:    sub.MaxScore,
		Answers:     models.StringSlice(sub.Answers),
		Feedback:    models.JSONDocument(feedbackJSON),
		Suggestions: models.StringSlice(sub.Suggestions),
		Metrics:     models.JSONDocument(metricsJSON),
		CreatedAt:   sub.CreatedAt,
	}, nil
}

func submissionToDomain(model *models.Submission) (*domain.Submission, error) {
	var feedback []domain.FeedbackEntry
	if len(model.Feedback) > 0 {
		if err := json.Unmarshal(model.Feedback, &feedback); err != nil {
			return nil, fmt.Errorf("failed to unmarshal feedback: %w", err)
		}
	}
	var metrics domain.PerformanceMetrics
	if len(model.Metrics) > 0 {
		if err := json.Unmarshal(model.Metrics, &metrics); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metrics: %w", err)
		}
	}
	return &domain.Submission{
		ID:          model.ID,
		QuizID:      model.QuizID,
		UserID:      model.UserID,
		TotalScore:  model.TotalScore,
		MaxScore:    model.MaxScore,
		Answers:     []string(model.Answers),
		Feedback:    feedback,
		Suggestions: []string(model.Suggestions),
		Metrics:     metrics,
		CreatedAt:   model.CreatedAt,
		Subject:     model.Subject,
		Grade:       model.Grade,
	}, nil
}

// SaveSubmission appends a graded submission record.
func (r *sqlxSubmissionRepository) SaveSubmission(ctx context.Context, submission *domain.Submission) error {
	model, err := submissionToModel(submission)
	if err != nil {
		return err
	}

	query := `INSERT INTO submissions (id, quiz_id, user_id, total_score, max_score,
	            answers, feedback, suggestions, metrics, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err = r.db.ExecContext(ctx, query,
		model.ID, model.QuizID, model.UserID, model.TotalScore, model.MaxScore,
		model.Answers, model.Feedback, model.Suggestions, model.Metrics, model.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save submission: %w", err)
	}
	return nil
}

// FindRecentSubmissions returns score pairs for the user's most recent
// submissions whose quiz subject contains the given substring,
// newest first.
func (r *sqlxSubmissionRepository) FindRecentSubmissions(ctx context.Context, userID, subject string, limit int) ([]domain.ScorePair, error) {
	query := `SELECT s.total_score, s.max_score
	          FROM submissions s
	          JOIN quizzes q ON q.id = s.quiz_id
	          WHERE s.user_id = $1 AND q.subject ILIKE $2
	          ORDER BY s.created_at DESC
	          LIMIT $3`

	rows, err := r.db.QueryContext(ctx, query, userID, "%"+subject+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent submissions: %w", err)
	}
	defer rows.Close()

	var pairs []domain.ScorePair
	for rows.Next() {
		var pair domain.ScorePair
		if err := rows.Scan(&pair.Score, &pair.MaxScore); err != nil {
			return nil, fmt.Errorf("failed to scan score pair: %w", err)
		}
		pairs = append(pairs, pair)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recent submissions: %w", err)
	}
	return pairs, nil
}

// FindSubmissions returns the total match count and one page of
// submissions, newest first.
func (r *sqlxSubmissionRepository) FindSubmissions(ctx context.Context, filters domain.SubmissionFilters) (int, []*domain.Submission, error) {
	var conditions []string
	var args []interface{}

	addCondition := func(expr string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(expr, len(args)))
	}

	if filters.UserID != "" {
		addCondition("s.user_id = $%d", filters.UserID)
	}
	if filters.Grade > 0 {
		addCondition("q.grade = $%d", filters.Grade)
	}
	if filters.Subject != "" {
		addCondition("q.subject ILIKE $%d", "%"+filters.Subject+"%")
	}
	if filters.MinScore != nil {
		addCondition("s.total_score >= $%d", *filters.MinScore)
	}
	if filters.MaxScore != nil {
		addCondition("s.total_score <= $%d", *filters.MaxScore)
	}
	if filters.From != nil {
		addCondition("s.created_at >= $%d", *filters.From)
	}
	if filters.To != nil {
		addCondition("s.created_at <= $%d", *filters.To)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := `SELECT COUNT(*) FROM submissions s JOIN quizzes q ON q.id = s.quiz_id` + where
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return 0, nil, fmt.Errorf("failed to count submissions: %w", err)
	}

	pageArgs := append(args, filters.Limit, filters.Offset)
	pageQuery := fmt.Sprintf(`SELECT %s
	          FROM submissions s
	          JOIN quizzes q ON q.id = s.quiz_id%s
	          ORDER BY s.created_at DESC
	          LIMIT $%d OFFSET $%d`, submissionColumns, where, len(args)+1, len(args)+2)

	var rows []models.Submission
	if err := r.db.SelectContext(ctx, &rows, pageQuery, pageArgs...); err != nil {
		return 0, nil, fmt.Errorf("failed to query submissions: %w", err)
	}

	submissions := make([]*domain.Submission, 0, len(rows))
	for i := range rows {
		sub, err := submissionToDomain(&rows[i])
		if err != nil {
			return 0, nil, err
		}
		submissions = append(submissions, sub)
	}
	return total, submissions, nil
}

// FindLatestScore returns the percentage of the user's most recent
// submission, optionally scoped to a subject. Returns (nil, nil) when
// the user has no history.
func (r *sqlxSubmissionRepository) FindLatestScore(ctx context.Context, userID, subject string) (*float64, error) {
	var (
		query string
		args  []interface{}
	)
	if subject != "" {
		query = `SELECT s.total_score, s.max_score
		          FROM submissions s
		          JOIN quizzes q ON q.id = s.quiz_id
		          WHERE s.user_id = $1 AND q.subject ILIKE $2
		          ORDER BY s.created_at DESC
		          LIMIT 1`
		args = []interface{}{userID, "%" + subject + "%"}
	} else {
		query = `SELECT s.total_score, s.max_score
		          FROM submissions s
		          WHERE s.user_id = $1
		          ORDER BY s.created_at DESC
		          LIMIT 1`
		args = []interface{}{userID}
	}

	var pair domain.ScorePair
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&pair.Score, &pair.MaxScore)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest score: %w", err)
	}

	var percentage float64
	if pair.MaxScore > 0 {
		percentage = pair.Score / pair.MaxScore * 100
	}
	return &percentage, nil
}

// FindLeaderboard returns the top submissions ordered by
// (total_score desc, max_score desc, created_at desc).
func (r *sqlxSubmissionRepository) FindLeaderboard(ctx context.Context, grade int, subject string, limit int) ([]*domain.Submission, error) {
	var conditions []string
	var args []interface{}

	if grade > 0 {
		args = append(args, grade)
		conditions = append(conditions, fmt.Sprintf("q.grade = $%d", len(args)))
	}
	if subject != "" {
		args = append(args, "%"+subject+"%")
		conditions = append(conditions, fmt.Sprintf("q.subject ILIKE $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	args = append(args, limit)
	query := fmt.Sprintf(`SELECT %s
	          FROM submissions s
	          JOIN quizzes q ON q.id = s.quiz_id%s
	          ORDER BY s.total_score DESC, s.max_score DESC, s.created_at DESC
	          LIMIT $%d`, submissionColumns, where, len(args))

	var rows []models.Submission
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}

	submissions := make([]*domain.Submission, 0, len(rows))
	for i := range rows {
		sub, err := submissionToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, sub)
	}
	return submissions, nil
}
