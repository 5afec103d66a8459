package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const (
	summaryPrompt    = "summarize this class transcript in 3 lines: %s"
	flashcardsPrompt = "from the summary of the transcript generate 3 main takeaways as points for flashcards: %s"
	answerPrompt     = `Answer the question using only the context below. Reply with the shortest span of the context that answers it. If the context does not contain the answer, say so.

Context:
---
%s
---

Question: %s`
)

var errNoKeys = errors.New("no Gemini API keys configured")

func (g *implGenerator) Summarize(ctx context.Context, transcript string) (string, error) {
	return g.call(ctx, fmt.Sprintf(summaryPrompt, transcript))
}

func (g *implGenerator) Flashcards(ctx context.Context, text string) (string, error) {
	return g.call(ctx, fmt.Sprintf(flashcardsPrompt, text))
}

func (g *implGenerator) Answer(ctx context.Context, question, passage string) (string, error) {
	return g.call(ctx, fmt.Sprintf(answerPrompt, passage, question))
}

// call sends prompt to Gemini, rotating API keys on 429 / quota errors.
func (g *implGenerator) call(ctx context.Context, prompt string) (string, error) {
	attempts := len(g.apiKeys)
	if attempts == 0 {
		return "", errNoKeys
	}

	var lastErr error
	for range attempts {
		idx, key := g.key()

		text, err := g.generate(ctx, key, g.model, prompt)
		if err != nil {
			if isQuotaError(err) {
				g.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
				g.rotateKey(idx)
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}
		return strings.TrimSpace(text), nil
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *implGenerator) key() (int, string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentKey, g.apiKeys[g.currentKey]
}

// rotateKey advances past idx unless another request already did.
func (g *implGenerator) rotateKey(idx int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.currentKey == idx {
		g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
	}
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func geminiGenerate(ctx context.Context, apiKey, model, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	result, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}

	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		var text string
		for _, part := range result.Candidates[0].Content.Parts {
			if part.Text != "" {
				text += part.Text
			}
		}
		return text, nil
	}

	return "", fmt.Errorf("empty response from Gemini")
}
