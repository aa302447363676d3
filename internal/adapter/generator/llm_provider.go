package generator

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"quizforge/internal/config"
	"quizforge/internal/domain"
	"quizforge/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// LLMProvider implements domain.ContentProvider on top of a
// langchaingo model.
type LLMProvider struct {
	model       llms.Model
	temperature float64
	maxTokens   int
}

// NewLLMProvider builds a provider for the configured backend.
// Supported backends are "ollama" and "openai".
func NewLLMProvider(cfg config.ProviderConfig) (*LLMProvider, error) {
	var (
		model llms.Model
		err   error
	)

	switch cfg.Backend {
	case "ollama":
		opts := []ollama.Option{
			ollama.WithModel(cfg.Model),
			ollama.WithHTTPClient(&http.Client{Timeout: cfg.Timeout + 10*time.Second}),
		}
		if cfg.ServerURL != "" {
			opts = append(opts, ollama.WithServerURL(cfg.ServerURL))
		}
		model, err = ollama.New(opts...)
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai API key cannot be empty")
		}
		model, err = openai.New(
			openai.WithToken(cfg.APIKey),
			openai.WithModel(cfg.Model),
		)
	default:
		return nil, fmt.Errorf("unsupported provider backend: %q", cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s provider: %w", cfg.Backend, err)
	}

	logger.Get().Info("Initialized content provider",
		zap.String("backend", cfg.Backend),
		zap.String("model", cfg.Model))

	return &LLMProvider{
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

var _ domain.ContentProvider = (*LLMProvider)(nil)

// Complete sends the prompt to the model and returns its raw text
// response.
func (p *LLMProvider) Complete(ctx context.Context, prompt string) (string, error) {
	response, err := llms.GenerateFromSinglePrompt(ctx, p.model, prompt,
		llms.WithTemperature(p.temperature),
		llms.WithMaxTokens(p.maxTokens))
	if err != nil {
		return "", fmt.Errorf("LLM call failed: %w", err)
	}
	return response, nil
}
