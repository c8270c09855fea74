package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"scholar_assistant_go_backend/cmd/api/config"
	apperrors "scholar_assistant_go_backend/internal/errors"
	"scholar_assistant_go_backend/internal/observability"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const huggingFaceCollaborator = "huggingface"

// Generation parameters for the summarization pipeline.
const (
	summaryMaxLength = 150
	summaryMinLength = 30
)

// HuggingFaceClient calls hosted pipelines on the Hugging Face Inference API.
type HuggingFaceClient struct {
	httpClient         *http.Client
	baseURL            string
	token              string
	summarizationModel string
	qaModel            string
	limiter            *rate.Limiter
	metrics            *observability.Metrics
}

func NewHuggingFaceClient(cfg config.HuggingFaceConfig, metrics *observability.Metrics) *HuggingFaceClient {
	return &HuggingFaceClient{
		httpClient:         &http.Client{Timeout: 60 * time.Second},
		baseURL:            cfg.APIURL,
		token:              cfg.Token,
		summarizationModel: cfg.SummarizationModel,
		qaModel:            cfg.QAModel,
		limiter:            rate.NewLimiter(rate.Limit(5), 5),
		metrics:            metrics,
	}
}

type summarizationRequest struct {
	Inputs     string                  `json:"inputs"`
	Parameters summarizationParameters `json:"parameters"`
}

type summarizationParameters struct {
	MaxLength int  `json:"max_length"`
	MinLength int  `json:"min_length"`
	DoSample  bool `json:"do_sample"`
}

type summarizationResult struct {
	SummaryText string `json:"summary_text"`
}

type questionAnsweringRequest struct {
	Inputs questionAnsweringInputs `json:"inputs"`
}

type questionAnsweringInputs struct {
	Question string `json:"question"`
	Context  string `json:"context"`
}

type questionAnsweringResult struct {
	Answer string  `json:"answer"`
	Score  float64 `json:"score"`
	Start  int     `json:"start"`
	End    int     `json:"end"`
}

type huggingFaceError struct {
	Error string `json:"error"`
}

func (c *HuggingFaceClient) Name() string { return huggingFaceCollaborator }

func (c *HuggingFaceClient) Close() error { return nil }

func (c *HuggingFaceClient) Summarize(ctx context.Context, text string) (string, error) {
	req := summarizationRequest{
		Inputs: text,
		Parameters: summarizationParameters{
			MaxLength: summaryMaxLength,
			MinLength: summaryMinLength,
			DoSample:  false,
		},
	}

	var results []summarizationResult
	err := c.post(ctx, c.summarizationModel, req, &results)
	if err == nil && len(results) == 0 {
		err = errors.New("summarization returned no results")
	}
	c.metrics.RecordCollaboratorCall(huggingFaceCollaborator, err)
	if err != nil {
		return "", apperrors.NewCollaboratorError(huggingFaceCollaborator, err)
	}
	return results[0].SummaryText, nil
}

func (c *HuggingFaceClient) Answer(ctx context.Context, question, passage string) (string, error) {
	req := questionAnsweringRequest{
		Inputs: questionAnsweringInputs{Question: question, Context: passage},
	}

	var result questionAnsweringResult
	err := c.post(ctx, c.qaModel, req, &result)
	c.metrics.RecordCollaboratorCall(huggingFaceCollaborator, err)
	if err != nil {
		return "", apperrors.NewCollaboratorError(huggingFaceCollaborator, err)
	}
	log.Debug().Float64("score", result.Score).Msg("question answered")
	return result.Answer, nil
}

func (c *HuggingFaceClient) post(ctx context.Context, model string, payload, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+model, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr huggingFaceError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("model %s returned %d: %s", model, resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("model %s returned %d", model, resp.StatusCode)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	return nil
}
