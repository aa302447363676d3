package service

import (
	"context"
	"fmt"
	"time"

	"quizforge/internal/config"
	"quizforge/internal/domain"
	"quizforge/internal/dto"
	"quizforge/internal/logger"
	"quizforge/internal/util"

	"go.uber.org/zap"
)

// QuestionGenerator abstracts the content requester so the quiz
// service can be tested with a deterministic double.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, grade int, subject string, mix domain.DifficultyMix, points domain.PointsSchedule) []domain.Question
}

// QuizService defines the core quiz operations.
type QuizService interface {
	GenerateQuiz(ctx context.Context, userID string, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error)
	EvaluateQuiz(ctx context.Context, userID string, req *dto.EvaluateQuizRequest) (*dto.EvaluateQuizResponse, error)
	GetHistory(ctx context.Context, req *dto.HistoryRequest) (*dto.HistoryResponse, error)
	NextDifficulty(ctx context.Context, userID, subject string, previousScore float64) (*dto.NextDifficultyResponse, error)
}

type quizService struct {
	quizRepo  domain.QuizRepository
	subRepo   domain.SubmissionRepository
	generator QuestionGenerator
	cfg       *config.Config
}

func NewQuizService(
	quizRepo domain.QuizRepository,
	subRepo domain.SubmissionRepository,
	generator QuestionGenerator,
	cfg *config.Config,
) QuizService {
	return &quizService{
		quizRepo:  quizRepo,
		subRepo:   subRepo,
		generator: generator,
		cfg:       cfg,
	}
}

// GenerateQuiz plans an adaptive difficulty mix from the learner's
// recent history, obtains a validated question set, and persists the
// snapshot so grading later is reproducible.
func (s *quizService) GenerateQuiz(ctx context.Context, userID string, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error) {
	minQ, maxQ := s.cfg.Quiz.MinQuestions, s.cfg.Quiz.MaxQuestions
	if req.TotalQuestions < minQ || req.TotalQuestions > maxQ {
		return nil, domain.NewInvalidInputError(
			fmt.Sprintf("Number of questions must be between %d and %d, got %d", minQ, maxQ, req.TotalQuestions))
	}

	points := domain.PointsSchedule{
		Easy:   req.PointsStrategy.Easy,
		Medium: req.PointsStrategy.Medium,
		Hard:   req.PointsStrategy.Hard,
	}
	if err := points.Validate(); err != nil {
		return nil, domain.NewInvalidInputError(err.Error())
	}

	history, err := s.subRepo.FindRecentSubmissions(ctx, userID, req.Subject, s.cfg.Quiz.HistoryWindow)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load submission history", err)
	}

	mix := PlanDistribution(history, req.TotalQuestions)
	logger.Get().Info("Planned adaptive difficulty mix",
		zap.String("user_id", userID),
		zap.String("subject", req.Subject),
		zap.Int("history_size", len(history)),
		zap.Int("easy", mix.Easy),
		zap.Int("medium", mix.Medium),
		zap.Int("hard", mix.Hard))

	questions := s.generator.GenerateQuestions(ctx, req.Grade, req.Subject, mix, points)

	var maxScore float64
	for _, q := range questions {
		maxScore += q.Points
	}

	quiz := &domain.GeneratedQuiz{
		ID:             util.NewULID(),
		UserID:         userID,
		Grade:          req.Grade,
		Subject:        req.Subject,
		TotalQuestions: req.TotalQuestions,
		MaxScore:       maxScore,
		Mix:            mix,
		Points:         points,
		Questions:      questions,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.quizRepo.SaveQuiz(ctx, quiz); err != nil {
		return nil, domain.NewInternalError("Failed to save quiz", err)
	}

	return &dto.GenerateQuizResponse{
		ID:        quiz.ID,
		CreatedAt: quiz.CreatedAt,
		Questions: quiz.Questions,
		Metadata: dto.QuizMetadata{
			Grade:          quiz.Grade,
			Subject:        quiz.Subject,
			TotalQuestions: quiz.TotalQuestions,
			MaxScore:       quiz.MaxScore,
			Distribution:   quiz.Mix,
			PointsStrategy: quiz.Points,
			CreatedAt:      quiz.CreatedAt,
		},
	}, nil
}

// EvaluateQuiz grades a submitted answer set against the stored quiz
// snapshot and appends a new submission record. Resubmission creates a
// new, independent record.
func (s *quizService) EvaluateQuiz(ctx context.Context, userID string, req *dto.EvaluateQuizRequest) (*dto.EvaluateQuizResponse, error) {
	quiz, err := s.quizRepo.GetQuizByID(ctx, req.QuizID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(req.QuizID)
	}

	result, err := Evaluate(quiz.Questions, req.Answers)
	if err != nil {
		return nil, err
	}

	submission := &domain.Submission{
		ID:          util.NewULID(),
		QuizID:      quiz.ID,
		UserID:      userID,
		TotalScore:  result.TotalScore,
		MaxScore:    result.MaxScore,
		Answers:     req.Answers,
		Feedback:    result.Feedback,
		Suggestions: result.Suggestions,
		Metrics:     result.Metrics,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.subRepo.SaveSubmission(ctx, submission); err != nil {
		return nil, domain.NewInternalError("Failed to save submission", err)
	}

	logger.Get().Info("Quiz evaluated",
		zap.String("user_id", userID),
		zap.String("quiz_id", quiz.ID),
		zap.String("submission_id", submission.ID),
		zap.Float64("total_score", result.TotalScore),
		zap.Float64("max_score", result.MaxScore))

	return &dto.EvaluateQuizResponse{
		SubmissionID:   submission.ID,
		TotalScore:     result.TotalScore,
		MaxScore:       result.MaxScore,
		Percentage:     result.Percentage,
		Feedback:       result.Feedback,
		Suggestions:    result.Suggestions,
		CorrectAnswers: result.CorrectAnswers,
		TotalQuestions: len(quiz.Questions),
		Metrics:        result.Metrics,
	}, nil
}

// GetHistory returns one page of the caller's submission history,
// newest first.
func (s *quizService) GetHistory(ctx context.Context, req *dto.HistoryRequest) (*dto.HistoryResponse, error) {
	if req.MinScore != nil && req.MaxScore != nil && *req.MinScore > *req.MaxScore {
		return nil, domain.NewInvalidInputError("'min_score' must be less than or equal to 'max_score'")
	}
	if req.From != nil && req.To != nil && req.From.After(*req.To) {
		return nil, domain.NewInvalidInputError("'from_date' must be before or equal to 'to_date'")
	}

	limit := req.Limit
	if limit < 1 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	total, submissions, err := s.subRepo.FindSubmissions(ctx, domain.SubmissionFilters{
		UserID:   req.UserID,
		Grade:    req.Grade,
		Subject:  req.Subject,
		MinScore: req.MinScore,
		MaxScore: req.MaxScore,
		From:     req.From,
		To:       req.To,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return nil, domain.NewInternalError("Failed to load submission history", err)
	}

	results := make([]dto.HistoryItem, 0, len(submissions))
	for _, sub := range submissions {
		results = append(results, dto.HistoryItem{
			ID:          sub.ID,
			QuizID:      sub.QuizID,
			UserID:      sub.UserID,
			TotalScore:  sub.TotalScore,
			MaxScore:    sub.MaxScore,
			Percentage:  util.Percentage(sub.TotalScore, sub.MaxScore, 2),
			Answers:     sub.Answers,
			Feedback:    sub.Feedback,
			Suggestions: sub.Suggestions,
			Subject:     sub.Subject,
			Grade:       sub.Grade,
			CreatedAt:   sub.CreatedAt,
		})
	}

	return &dto.HistoryResponse{
		Total:   total,
		Count:   len(results),
		Results: results,
	}, nil
}

// NextDifficulty suggests the next quiz difficulty from the learner's
// latest percentage, falling back to the provided previous score when
// the learner has no history.
func (s *quizService) NextDifficulty(ctx context.Context, userID, subject string, previousScore float64) (*dto.NextDifficultyResponse, error) {
	latest, err := s.subRepo.FindLatestScore(ctx, userID, subject)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load latest score", err)
	}

	score := previousScore
	if latest != nil {
		score = *latest
	}

	return &dto.NextDifficultyResponse{
		PreviousScore:  score,
		NextDifficulty: SuggestDifficulty(score),
	}, nil
}

// SuggestDifficulty maps a percentage score to the next difficulty
// level.
func SuggestDifficulty(percentage float64) string {
	switch {
	case percentage >= 80:
		return "HARD"
	case percentage >= 50:
		return "MEDIUM"
	default:
		return "EASY"
	}
}
