package handler

import (
	"strconv"
	"time"

	"quizforge/internal/domain"
	"quizforge/internal/dto"
	"quizforge/internal/logger"
	"quizforge/internal/middleware"
	"quizforge/internal/service"
	"quizforge/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	quizService        service.QuizService
	hintService        *service.HintService
	leaderboardService *service.LeaderboardService
	validator          *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(
	quizService service.QuizService,
	hintService *service.HintService,
	leaderboardService *service.LeaderboardService,
	validator *validation.Validator,
) *QuizHandler {
	return &QuizHandler{
		quizService:        quizService,
		hintService:        hintService,
		leaderboardService: leaderboardService,
		validator:          validator,
	}
}

func userIDFromCtx(c *fiber.Ctx) string {
	if userID, ok := c.Locals(middleware.UserIDKey).(string); ok {
		return userID
	}
	return ""
}

// GenerateQuiz handles POST /api/quiz/generate
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	if errs := h.validator.ValidateGenerateQuizRequest(&req); len(errs) > 0 {
		return errs
	}

	userID := userIDFromCtx(c)
	resp, err := h.quizService.GenerateQuiz(c.Context(), userID, &req)
	if err != nil {
		logger.Get().Error("Failed to generate quiz",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("subject", req.Subject),
		)
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// EvaluateQuiz handles POST /api/quiz/evaluate
func (h *QuizHandler) EvaluateQuiz(c *fiber.Ctx) error {
	var req dto.EvaluateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	if errs := h.validator.ValidateEvaluateQuizRequest(&req); len(errs) > 0 {
		return errs
	}

	userID := userIDFromCtx(c)
	resp, err := h.quizService.EvaluateQuiz(c.Context(), userID, &req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// GetHistory handles GET /api/quiz/history
func (h *QuizHandler) GetHistory(c *fiber.Ctx) error {
	req := dto.HistoryRequest{
		UserID:  userIDFromCtx(c),
		Subject: c.Query("subject"),
		Grade:   c.QueryInt("grade"),
		Limit:   c.QueryInt("limit", 50),
		Offset:  c.QueryInt("offset"),
	}

	if raw := c.Query("min_score"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return domain.NewInvalidInputError("'min_score' must be a number")
		}
		req.MinScore = &v
	}
	if raw := c.Query("max_score"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return domain.NewInvalidInputError("'max_score' must be a number")
		}
		req.MaxScore = &v
	}
	if raw := c.Query("from_date"); raw != "" {
		ts, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return domain.NewInvalidInputError("'from_date' must be formatted YYYY-MM-DD")
		}
		req.From = &ts
	}
	if raw := c.Query("to_date"); raw != "" {
		ts, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return domain.NewInvalidInputError("'to_date' must be formatted YYYY-MM-DD")
		}
		end := ts.Add(24*time.Hour - time.Nanosecond)
		req.To = &end
	}

	resp, err := h.quizService.GetHistory(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// NextDifficulty handles GET /api/quiz/next-difficulty
func (h *QuizHandler) NextDifficulty(c *fiber.Ctx) error {
	previousScore := c.QueryFloat("previous_score")
	if previousScore < 0 || previousScore > 100 {
		return domain.NewInvalidInputError("'previous_score' must be between 0 and 100")
	}

	resp, err := h.quizService.NextDifficulty(c.Context(), userIDFromCtx(c), c.Query("subject"), previousScore)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetHint handles POST /api/quiz/hint
func (h *QuizHandler) GetHint(c *fiber.Ctx) error {
	var req dto.HintRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	if errs := h.validator.ValidateHintRequest(&req); len(errs) > 0 {
		return errs
	}

	hint := h.hintService.GenerateHint(c.Context(), req.Question, req.UserAnswer)
	return c.JSON(dto.HintResponse{
		Question: req.Question,
		Hint:     hint,
		Success:  true,
	})
}

// GetLeaderboard handles GET /api/quiz/leaderboard
func (h *QuizHandler) GetLeaderboard(c *fiber.Ctx) error {
	grade := c.QueryInt("grade")
	subject := c.Query("subject")
	limit := c.QueryInt("limit")

	entries, err := h.leaderboardService.GetLeaderboard(c.Context(), grade, subject, limit)
	if err != nil {
		return err
	}

	return c.JSON(dto.LeaderboardResponse{
		Grade:   grade,
		Subject: subject,
		Entries: entries,
	})
}
