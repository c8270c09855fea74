package inference

import (
	"context"
	"errors"

	"scholar_assistant_go_backend/cmd/api/config"
	apperrors "scholar_assistant_go_backend/internal/errors"
	"scholar_assistant_go_backend/internal/observability"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

const openAICollaborator = "openai"

const systemPrompt = "You are a research assistant that summarizes papers and answers questions about them."

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIClient prompts an OpenAI chat model for both tasks.
type OpenAIClient struct {
	client  chatCompleter
	model   string
	metrics *observability.Metrics
}

func NewOpenAIClient(cfg config.OpenAIConfig, metrics *observability.Metrics) *OpenAIClient {
	return &OpenAIClient{
		client:  openai.NewClient(cfg.APIKey),
		model:   cfg.Model,
		metrics: metrics,
	}
}

func (o *OpenAIClient) Name() string { return openAICollaborator }

func (o *OpenAIClient) Close() error { return nil }

func (o *OpenAIClient) Summarize(ctx context.Context, text string) (string, error) {
	return o.complete(ctx, buildSummarizePrompt(text))
}

func (o *OpenAIClient) Answer(ctx context.Context, question, passage string) (string, error) {
	return o.complete(ctx, buildAnswerPrompt(question, passage))
}

func (o *OpenAIClient) complete(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err == nil && len(resp.Choices) == 0 {
		err = errors.New("OpenAI returned no choices")
	}
	o.metrics.RecordCollaboratorCall(openAICollaborator, err)
	if err != nil {
		return "", apperrors.NewCollaboratorError(openAICollaborator, err)
	}

	log.Debug().Str("finish_reason", string(resp.Choices[0].FinishReason)).Msg("chat completion received")
	return cleanCompletion(resp.Choices[0].Message.Content), nil
}
