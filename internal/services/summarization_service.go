package services

import (
	"context"
	"io"
	"strings"

	apperrors "scholar_assistant_go_backend/internal/errors"
	"scholar_assistant_go_backend/internal/inference"
)

// SummarizationService summarizes raw text or uploaded PDFs.
type SummarizationService struct {
	summarizer inference.Summarizer
	extractor  TextExtractor
}

func NewSummarizationService(summarizer inference.Summarizer, extractor TextExtractor) *SummarizationService {
	return &SummarizationService{summarizer: summarizer, extractor: extractor}
}

func (s *SummarizationService) Summarize(ctx context.Context, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", apperrors.NewValidationError("content")
	}
	return s.summarizer.Summarize(ctx, content)
}

// SummarizePDF extracts the document's text and summarizes it.
func (s *SummarizationService) SummarizePDF(ctx context.Context, r io.Reader) (string, error) {
	text, err := s.extractor.ExtractTextFromReader(r)
	if err != nil {
		return "", apperrors.NewCollaboratorError("pdf", err)
	}
	return s.summarizer.Summarize(ctx, text)
}
