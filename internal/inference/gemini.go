package inference

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"scholar_assistant_go_backend/cmd/api/config"
	apperrors "scholar_assistant_go_backend/internal/errors"
	"scholar_assistant_go_backend/internal/observability"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const geminiCollaborator = "gemini"

// contentGenerator is the part of *genai.GenerativeModel used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// GeminiClient prompts a Gemini model for both tasks.
type GeminiClient struct {
	client  *genai.Client
	model   contentGenerator
	metrics *observability.Metrics
}

func NewGeminiClient(ctx context.Context, cfg config.GeminiConfig, metrics *observability.Metrics) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SetTemperature(0)

	return &GeminiClient{client: client, model: model, metrics: metrics}, nil
}

func (g *GeminiClient) Name() string { return geminiCollaborator }

func (g *GeminiClient) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

func (g *GeminiClient) Summarize(ctx context.Context, text string) (string, error) {
	return g.generate(ctx, buildSummarizePrompt(text))
}

func (g *GeminiClient) Answer(ctx context.Context, question, passage string) (string, error) {
	return g.generate(ctx, buildAnswerPrompt(question, passage))
}

func (g *GeminiClient) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	var text string
	if err == nil {
		text, err = responseText(resp)
	}
	g.metrics.RecordCollaboratorCall(geminiCollaborator, err)
	if err != nil {
		return "", apperrors.NewCollaboratorError(geminiCollaborator, err)
	}
	return cleanCompletion(text), nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("model returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("model returned no text")
	}
	return sb.String(), nil
}
