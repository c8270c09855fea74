package services

import (
	"context"
	"strings"

	apperrors "scholar_assistant_go_backend/internal/errors"
	"scholar_assistant_go_backend/internal/inference"

	"github.com/rs/zerolog/log"
)

// QuestionAnsweringService answers a question from a passage supplied by the
// caller or, for a paper id, from that paper's arXiv abstract.
type QuestionAnsweringService struct {
	answerer inference.QuestionAnswerer
	arxiv    ArxivSearcher
}

func NewQuestionAnsweringService(answerer inference.QuestionAnswerer, arxiv ArxivSearcher) *QuestionAnsweringService {
	return &QuestionAnsweringService{answerer: answerer, arxiv: arxiv}
}

// Answer prefers passage when both passage and paperID are set.
func (s *QuestionAnsweringService) Answer(ctx context.Context, question, passage, paperID string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", apperrors.NewValidationError("question")
	}

	if strings.TrimSpace(passage) == "" {
		if strings.TrimSpace(paperID) == "" {
			return "", apperrors.NewValidationError("context")
		}
		paper, err := s.arxiv.GetByID(ctx, paperID)
		if err != nil {
			return "", err
		}
		log.Debug().Str("paper_id", paperID).Msg("using arXiv abstract as context")
		passage = paper.Summary
	}

	return s.answerer.Answer(ctx, question, passage)
}
