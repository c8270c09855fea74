package services

import (
	"context"

	"scholar_assistant_go_backend/internal/models"
	"scholar_assistant_go_backend/internal/repository"

	"github.com/rs/zerolog/log"
)

// PaperService is the endpoint-facing side of the paper store.
type PaperService struct {
	repo repository.PaperRepository
}

func NewPaperService(repo repository.PaperRepository) *PaperService {
	return &PaperService{repo: repo}
}

// StorePaper upserts paper on (title, year).
func (s *PaperService) StorePaper(ctx context.Context, paper models.Paper) error {
	if err := s.repo.Store(ctx, paper); err != nil {
		return err
	}
	log.Info().Str("title", paper.Title).Int("year", paper.Year).Msg("Paper stored")
	return nil
}

// QueryPapers never returns a nil slice on success.
func (s *PaperService) QueryPapers(ctx context.Context, filter models.PaperQueryFilter) ([]models.Paper, error) {
	papers, err := s.repo.Query(ctx, filter)
	if err != nil {
		return nil, err
	}
	if papers == nil {
		papers = []models.Paper{}
	}
	return papers, nil
}

func (s *PaperService) Healthy(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
