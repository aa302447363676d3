package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"quizforge/internal/domain"
	"quizforge/internal/logger"

	"go.uber.org/zap"
)

// maxGenerationAttempts is the total provider-call budget before the
// requester falls back to deterministic synthesis.
const maxGenerationAttempts = 2

// generationState drives the retry-then-fallback control flow.
type generationState int

const (
	stateRequesting generationState = iota
	stateValidating
	stateSuccess
	stateRetryPending
	stateFallback
)

// GenerationService turns a difficulty mix into a validated question
// set. Provider failures are absorbed internally: after the retry
// budget is exhausted a fallback quiz is synthesized, so callers always
// receive exactly mix.Total() questions.
type GenerationService struct {
	provider domain.ContentProvider
	timeout  time.Duration
	rng      *rand.Rand
}

// NewGenerationService creates a GenerationService. The provider client
// is injected so tests can substitute a deterministic double; rng seeds
// fallback synthesis and may be nil for a time-seeded source.
func NewGenerationService(provider domain.ContentProvider, timeout time.Duration, rng *rand.Rand) *GenerationService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &GenerationService{
		provider: provider,
		timeout:  timeout,
		rng:      rng,
	}
}

// GenerateQuestions requests a question set matching the mix from the
// content provider, validating, retrying and finally falling back as
// needed. The returned slice always has exactly mix.Total() entries.
func (s *GenerationService) GenerateQuestions(ctx context.Context, grade int, subject string, mix domain.DifficultyMix, points domain.PointsSchedule) []domain.Question {
	l := logger.Get()
	prompt := buildQuizPrompt(grade, subject, mix, points)

	var (
		raw       string
		questions []domain.Question
		attempts  int
	)

	state := stateRequesting
	for state != stateSuccess {
		switch state {
		case stateRequesting:
			attempts++
			var err error
			raw, err = s.callProvider(ctx, prompt)
			if err != nil {
				l.Warn("Content provider request failed",
					zap.Int("attempt", attempts),
					zap.String("subject", subject),
					zap.Error(err))
				state = stateRetryPending
				continue
			}
			state = stateValidating

		case stateValidating:
			parsed, err := parseProviderResponse(raw, points)
			if err != nil {
				l.Warn("Content provider response failed validation",
					zap.Int("attempt", attempts),
					zap.String("subject", subject),
					zap.Error(err))
				state = stateRetryPending
				continue
			}
			questions = parsed
			state = stateSuccess

		case stateRetryPending:
			if attempts >= maxGenerationAttempts {
				state = stateFallback
				continue
			}
			state = stateRequesting

		case stateFallback:
			l.Info("All generation attempts failed, synthesizing fallback quiz",
				zap.String("subject", subject),
				zap.Int("total_questions", mix.Total()))
			questions = SynthesizeFallbackQuiz(mix, points, s.rng)
			state = stateSuccess
		}
	}

	return s.fitToTotal(questions, mix.Total(), points)
}

// callProvider invokes the provider under an explicit timeout. A
// deadline expiry is reported as a provider timeout; both outcomes are
// treated identically by the retry logic.
func (s *GenerationService) callProvider(ctx context.Context, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	response, err := s.provider.Complete(callCtx, prompt)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", domain.NewProviderTimeoutError(err)
		}
		return "", domain.NewProviderError(err)
	}
	if strings.TrimSpace(response) == "" {
		return "", domain.NewValidationError("empty response from content provider")
	}
	return response, nil
}

// fitToTotal makes the question count equal to the requested total:
// extras are truncated, shortfalls are padded with clearly-marked
// placeholder questions. Downstream grading depends on this invariant.
func (s *GenerationService) fitToTotal(questions []domain.Question, total int, points domain.PointsSchedule) []domain.Question {
	if len(questions) > total {
		logger.Get().Warn("Provider returned extra questions, truncating",
			zap.Int("returned", len(questions)),
			zap.Int("requested", total))
		questions = questions[:total]
	}
	for len(questions) < total {
		questions = append(questions, domain.Question{
			Text: fmt.Sprintf("Additional question %d", len(questions)+1),
			Options: []string{
				"A) Option A",
				"B) Option B",
				"C) Option C",
				"D) Option D",
			},
			CorrectOption: "A",
			Difficulty:    domain.DifficultyMedium,
			Points:        points.Medium,
			Explanation:   "Placeholder explanation.",
			Origin:        domain.OriginPlaceholder,
		})
	}
	return questions
}

// rawQuestion is the wire shape of one provider question. The points
// alias ("marks" vs "points") is resolved here, once, at ingestion.
type rawQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectOption string   `json:"correct_option"`
	Difficulty    string   `json:"difficulty"`
	Points        *float64 `json:"points"`
	Marks         *float64 `json:"marks"`
	Explanation   string   `json:"explanation"`
	Topic         string   `json:"topic"`
}

var validCorrectOptions = map[string]bool{"A": true, "B": true, "C": true, "D": true}

// parseProviderResponse strips Markdown code fences, parses the JSON
// document and validates it structurally. Any violation is a
// validation failure handled by the caller's retry logic.
func parseProviderResponse(raw string, points domain.PointsSchedule) ([]domain.Question, error) {
	text := stripCodeFences(raw)

	var payload struct {
		Questions *[]rawQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, domain.NewValidationError(fmt.Sprintf("failed to parse provider response as JSON: %v", err))
	}
	if payload.Questions == nil {
		return nil, domain.NewValidationError("invalid response format: missing 'questions' key")
	}

	questions := make([]domain.Question, 0, len(*payload.Questions))
	for i, q := range *payload.Questions {
		if err := validateRawQuestion(q); err != nil {
			return nil, domain.NewValidationError(fmt.Sprintf("question %d: %v", i+1, err.Error()))
		}

		difficulty, _ := domain.ParseDifficulty(q.Difficulty)
		pts := points.For(difficulty)
		if q.Points != nil {
			pts = *q.Points
		} else if q.Marks != nil {
			pts = *q.Marks
		}

		questions = append(questions, domain.Question{
			Text:          strings.TrimSpace(q.Question),
			Options:       q.Options,
			CorrectOption: strings.ToUpper(strings.TrimSpace(q.CorrectOption)),
			Difficulty:    difficulty,
			Points:        pts,
			Explanation:   strings.TrimSpace(q.Explanation),
			Topic:         strings.TrimSpace(q.Topic),
			Origin:        domain.OriginProvider,
		})
	}
	return questions, nil
}

func validateRawQuestion(q rawQuestion) error {
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("missing question text")
	}
	if len(q.Options) != 4 {
		return fmt.Errorf("expected 4 options, got %d", len(q.Options))
	}
	if !validCorrectOptions[strings.ToUpper(strings.TrimSpace(q.CorrectOption))] {
		return fmt.Errorf("correct_option must be A, B, C, or D")
	}
	if _, ok := domain.ParseDifficulty(q.Difficulty); !ok {
		return fmt.Errorf("difficulty must be easy, medium, or hard")
	}
	if q.Points == nil && q.Marks == nil {
		return fmt.Errorf("missing points value")
	}
	if strings.TrimSpace(q.Explanation) == "" {
		return fmt.Errorf("missing explanation")
	}
	return nil
}

// stripCodeFences removes Markdown code-fence wrappers the provider
// sometimes adds around the JSON document.
func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
