package repository

import (
	"context"
	"sync"

	"scholar_assistant_go_backend/internal/models"
)

type mergeKey struct {
	title string
	year  int
}

// MemoryPaperRepository is a process-local PaperRepository.
type MemoryPaperRepository struct {
	mu     sync.RWMutex
	papers map[mergeKey]models.Paper
}

func NewMemoryPaperRepository() *MemoryPaperRepository {
	return &MemoryPaperRepository{papers: make(map[mergeKey]models.Paper)}
}

func (r *MemoryPaperRepository) Store(ctx context.Context, paper models.Paper) error {
	if err := ValidatePaper(paper); err != nil {
		return err
	}

	stored := paper
	stored.Authors = append([]string{}, paper.Authors...)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.papers[mergeKey{title: paper.Title, year: paper.Year}] = stored
	return nil
}

func (r *MemoryPaperRepository) Query(ctx context.Context, filter models.PaperQueryFilter) ([]models.Paper, error) {
	preds := filterPredicates(filter)

	r.mu.RLock()
	defer r.mu.RUnlock()

	papers := make([]models.Paper, 0)
	for _, paper := range r.papers {
		if matches(paper, preds) {
			out := paper
			out.Authors = append([]string{}, paper.Authors...)
			papers = append(papers, out)
		}
	}
	return papers, nil
}

func (r *MemoryPaperRepository) Ping(ctx context.Context) error {
	return nil
}

// Len returns the number of stored papers.
func (r *MemoryPaperRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.papers)
}
