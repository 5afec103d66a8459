package summarizer

import (
	"context"
	"sync"

	"github.com/BALASANKARP/Edurecap/internal/config"
	"github.com/BALASANKARP/Edurecap/internal/logger"
)

// generateFunc sends one prompt with one API key.
type generateFunc func(ctx context.Context, apiKey, model, prompt string) (string, error)

type implGenerator struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	logger     logger.Logger
	model      string
	generate   generateFunc
}

// New creates a Generator that rotates through the supplied Gemini API keys.
func New(cfg config.GeminiConfig, log logger.Logger) Generator {
	return newGenerator(cfg, log, geminiGenerate)
}

func newGenerator(cfg config.GeminiConfig, log logger.Logger, fn generateFunc) *implGenerator {
	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &implGenerator{
		apiKeys:  cfg.APIKeys,
		logger:   log,
		model:    model,
		generate: fn,
	}
}
