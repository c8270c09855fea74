// Package repository persists paper metadata and answers filtered lookups.
package repository

import (
	"context"
	"strings"

	apperrors "scholar_assistant_go_backend/internal/errors"
	"scholar_assistant_go_backend/internal/models"
)

// PaperRepository stores papers keyed by (title, year) and queries them by
// optional topic/year predicates.
type PaperRepository interface {
	Store(ctx context.Context, paper models.Paper) error
	Query(ctx context.Context, filter models.PaperQueryFilter) ([]models.Paper, error)
	Ping(ctx context.Context) error
}

// ValidatePaper checks the merge key is complete.
func ValidatePaper(paper models.Paper) error {
	if strings.TrimSpace(paper.Title) == "" {
		return apperrors.NewValidationError("title")
	}
	if paper.Year == 0 {
		return apperrors.NewValidationError("year")
	}
	return nil
}

func normalizeAuthors(authors []string) []string {
	if authors == nil {
		return []string{}
	}
	return authors
}
