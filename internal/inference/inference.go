// Package inference adapts remote NLP models to summarization and
// extractive question answering.
package inference

import (
	"context"
	"fmt"
	"strings"

	"scholar_assistant_go_backend/cmd/api/config"
	"scholar_assistant_go_backend/internal/observability"
)

type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

type QuestionAnswerer interface {
	Answer(ctx context.Context, question, passage string) (string, error)
}

// Backend is one inference provider serving both tasks.
type Backend interface {
	Summarizer
	QuestionAnswerer
	Name() string
	Close() error
}

// New builds the backend selected in cfg.
func New(ctx context.Context, cfg config.InferenceConfig, metrics *observability.Metrics) (Backend, error) {
	switch cfg.Backend {
	case config.InferenceHuggingFace:
		return NewHuggingFaceClient(cfg.HuggingFace, metrics), nil
	case config.InferenceGemini:
		return NewGeminiClient(ctx, cfg.Gemini, metrics)
	case config.InferenceOpenAI:
		return NewOpenAIClient(cfg.OpenAI, metrics), nil
	default:
		return nil, fmt.Errorf("unknown inference backend %q", cfg.Backend)
	}
}

const summarizePrompt = `Summarize the following text in one short paragraph of 30 to 150 words. Reply with the summary only.

Text:
%s`

const answerPrompt = `Answer the question using only the context below. Copy the shortest contiguous span of the context that answers it and reply with that span only.

Context:
%s

Question: %s`

func buildSummarizePrompt(text string) string {
	return fmt.Sprintf(summarizePrompt, text)
}

func buildAnswerPrompt(question, passage string) string {
	return fmt.Sprintf(answerPrompt, passage, question)
}

func cleanCompletion(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"`)
}
