package api

import (
	"strings"

	apperrors "scholar_assistant_go_backend/internal/errors"
	"scholar_assistant_go_backend/internal/models"
	"scholar_assistant_go_backend/internal/services"
)

type PaperRequest struct {
	Title    string   `json:"title"`
	Year     *int     `json:"year"`
	Topic    string   `json:"topic"`
	Abstract string   `json:"abstract"`
	Authors  []string `json:"authors"`
}

func (r PaperRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return apperrors.NewValidationError("title")
	}
	if r.Year == nil {
		return apperrors.NewValidationError("year")
	}
	return nil
}

func (r PaperRequest) ToPaper() models.Paper {
	paper := models.Paper{
		Title:    r.Title,
		Topic:    r.Topic,
		Abstract: r.Abstract,
		Authors:  r.Authors,
	}
	if r.Year != nil {
		paper.Year = *r.Year
	}
	if paper.Authors == nil {
		paper.Authors = []string{}
	}
	return paper
}

type PaperQueryRequest struct {
	Topic *string `json:"topic" form:"topic"`
	Year  *int    `json:"year" form:"year"`
}

func (r PaperQueryRequest) Filter() models.PaperQueryFilter {
	return models.PaperQueryFilter{Topic: r.Topic, Year: r.Year}
}

type StorePaperResponse struct {
	Status string `json:"status"`
}

type PapersResponse struct {
	Papers []models.Paper `json:"papers"`
}

type SummarizeRequest struct {
	Content *string `json:"content"`
}

func (r SummarizeRequest) Validate() error {
	if r.Content == nil {
		return apperrors.NewValidationError("content")
	}
	return nil
}

type SummarizeResponse struct {
	Summary string `json:"summary"`
}

type AnswerQuestionRequest struct {
	Context  string `json:"context"`
	PaperID  string `json:"paper_id"`
	Question string `json:"question"`
}

func (r AnswerQuestionRequest) Validate() error {
	if strings.TrimSpace(r.Question) == "" {
		return apperrors.NewValidationError("question")
	}
	if strings.TrimSpace(r.Context) == "" && strings.TrimSpace(r.PaperID) == "" {
		return &apperrors.ValidationError{Field: "context", Message: "context or paper_id required"}
	}
	return nil
}

type AnswerResponse struct {
	Answer string `json:"answer"`
}

type ArxivSearchRequest struct {
	Keyword    string `json:"keyword"`
	MaxResults *int   `json:"max_results"`
}

func (r ArxivSearchRequest) Validate() error {
	if strings.TrimSpace(r.Keyword) == "" {
		return apperrors.NewValidationError("keyword")
	}
	if r.MaxResults != nil && *r.MaxResults < 1 {
		return &apperrors.ValidationError{Field: "max_results", Message: "must be at least 1"}
	}
	return nil
}

func (r ArxivSearchRequest) Limit() int {
	if r.MaxResults == nil {
		return services.DefaultArxivMaxResults
	}
	return *r.MaxResults
}

type ArxivSearchResponse struct {
	Papers []services.ArxivPaper `json:"papers"`
}

type FutureWorksRequest struct {
	Content *string `json:"content"`
}

func (r FutureWorksRequest) Validate() error {
	if r.Content == nil {
		return apperrors.NewValidationError("content")
	}
	return nil
}

type FutureWorksResponse struct {
	Suggestions []string `json:"suggestions"`
}

type BibtexImportRequest struct {
	Bibtex string `json:"bibtex"`
	Topic  string `json:"topic"`
}

func (r BibtexImportRequest) Validate() error {
	if strings.TrimSpace(r.Bibtex) == "" {
		return apperrors.NewValidationError("bibtex")
	}
	return nil
}

type BibtexImportResponse struct {
	Stored  int      `json:"stored"`
	Skipped []string `json:"skipped"`
}
