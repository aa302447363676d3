package service

import (
	"context"
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"

	"quizforge/internal/domain"
	"quizforge/internal/logger"

	"go.uber.org/zap"
)

const maxHintLength = 250

// fallbackHints is the deterministic hint pool used when the provider
// cannot produce a usable hint. Provider failures are invisible to the
// learner.
var fallbackHints = []string{
	"Try breaking the problem down into smaller steps.",
	"Review the key concepts related to this question.",
	"Check if you've considered all the given information.",
	"Try to eliminate obviously wrong answers first.",
	"Think about any formulas or concepts that might apply here.",
	"Make sure you understand all the terms in the question.",
	"Try to rephrase the question in your own words.",
	"Consider drawing a diagram to visualize the problem.",
	"Think about similar problems you've solved before.",
	"Check your calculations carefully.",
}

// HintService produces guidance for a question without revealing the
// answer.
type HintService struct {
	provider domain.ContentProvider
	timeout  time.Duration
	rng      *rand.Rand
}

func NewHintService(provider domain.ContentProvider, timeout time.Duration, rng *rand.Rand) *HintService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &HintService{
		provider: provider,
		timeout:  timeout,
		rng:      rng,
	}
}

// GenerateHint asks the provider for a hint, falling back to the fixed
// hint pool on any failure or unusable response.
func (s *HintService) GenerateHint(ctx context.Context, questionText, userAnswer string) string {
	prompt := buildHintPrompt(strings.TrimSpace(questionText), strings.TrimSpace(userAnswer))

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	response, err := s.provider.Complete(callCtx, prompt)
	if err != nil {
		logger.Get().Warn("Hint generation failed, using fallback hint", zap.Error(err))
		return fallbackHints[s.rng.Intn(len(fallbackHints))]
	}

	hint := sanitizeHint(response)
	if hint == "" {
		logger.Get().Warn("Hint response unusable, using fallback hint")
		return fallbackHints[s.rng.Intn(len(fallbackHints))]
	}
	return hint
}

// sanitizeHint strips formatting noise and rejects hints that are too
// short to be helpful. Returns "" when the response is unusable.
func sanitizeHint(raw string) string {
	hint := strings.TrimSpace(raw)

	for _, prefix := range []string{"hint:", "suggestion:"} {
		if strings.HasPrefix(strings.ToLower(hint), prefix) {
			hint = strings.TrimSpace(hint[len(prefix):])
		}
	}
	hint = strings.Trim(hint, `"'`)

	if len(hint) < 10 {
		return ""
	}
	if len(hint) > maxHintLength {
		cut := maxHintLength - 3
		for cut > 0 && !utf8.RuneStart(hint[cut]) {
			cut--
		}
		hint = hint[:cut] + "..."
	}
	return hint
}
