package api

import (
	"context"
	"io"

	"scholar_assistant_go_backend/internal/models"
	"scholar_assistant_go_backend/internal/services"
)

type PaperService interface {
	StorePaper(ctx context.Context, paper models.Paper) error
	QueryPapers(ctx context.Context, filter models.PaperQueryFilter) ([]models.Paper, error)
	Healthy(ctx context.Context) error
}

type SummarizationService interface {
	Summarize(ctx context.Context, content string) (string, error)
	SummarizePDF(ctx context.Context, r io.Reader) (string, error)
}

type QuestionAnsweringService interface {
	Answer(ctx context.Context, question, passage, paperID string) (string, error)
}

type ArxivSearchService interface {
	Search(ctx context.Context, keyword string, maxResults int) ([]services.ArxivPaper, error)
}

type FutureWorkService interface {
	Suggest(content string) []string
}

type BibtexService interface {
	Import(ctx context.Context, source, topic string) (*services.ImportResult, error)
	Export(ctx context.Context, filter models.PaperQueryFilter) (string, error)
}

// Services are the collaborators behind the HTTP endpoints.
type Services struct {
	Papers     PaperService
	Summaries  SummarizationService
	Answers    QuestionAnsweringService
	Arxiv      ArxivSearchService
	FutureWork FutureWorkService
	Bibtex     BibtexService
}
