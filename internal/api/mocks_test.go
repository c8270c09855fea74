package api

import (
	"context"
	"io"

	"scholar_assistant_go_backend/internal/models"
	"scholar_assistant_go_backend/internal/services"

	"github.com/stretchr/testify/mock"
)

type MockPaperService struct {
	mock.Mock
}

func (m *MockPaperService) StorePaper(ctx context.Context, paper models.Paper) error {
	args := m.Called(ctx, paper)
	return args.Error(0)
}

func (m *MockPaperService) QueryPapers(ctx context.Context, filter models.PaperQueryFilter) ([]models.Paper, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Paper), args.Error(1)
}

func (m *MockPaperService) Healthy(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockSummarizationService struct {
	mock.Mock
}

func (m *MockSummarizationService) Summarize(ctx context.Context, content string) (string, error) {
	args := m.Called(ctx, content)
	return args.String(0), args.Error(1)
}

func (m *MockSummarizationService) SummarizePDF(ctx context.Context, r io.Reader) (string, error) {
	data, _ := io.ReadAll(r)
	args := m.Called(ctx, string(data))
	return args.String(0), args.Error(1)
}

type MockQuestionAnsweringService struct {
	mock.Mock
}

func (m *MockQuestionAnsweringService) Answer(ctx context.Context, question, passage, paperID string) (string, error) {
	args := m.Called(ctx, question, passage, paperID)
	return args.String(0), args.Error(1)
}

type MockArxivSearchService struct {
	mock.Mock
}

func (m *MockArxivSearchService) Search(ctx context.Context, keyword string, maxResults int) ([]services.ArxivPaper, error) {
	args := m.Called(ctx, keyword, maxResults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.ArxivPaper), args.Error(1)
}

type MockBibtexService struct {
	mock.Mock
}

func (m *MockBibtexService) Import(ctx context.Context, source, topic string) (*services.ImportResult, error) {
	args := m.Called(ctx, source, topic)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ImportResult), args.Error(1)
}

func (m *MockBibtexService) Export(ctx context.Context, filter models.PaperQueryFilter) (string, error) {
	args := m.Called(ctx, filter)
	return args.String(0), args.Error(1)
}

type testServices struct {
	papers    *MockPaperService
	summaries *MockSummarizationService
	answers   *MockQuestionAnsweringService
	arxiv     *MockArxivSearchService
	bibtex    *MockBibtexService
}

func newTestServices() *testServices {
	return &testServices{
		papers:    new(MockPaperService),
		summaries: new(MockSummarizationService),
		answers:   new(MockQuestionAnsweringService),
		arxiv:     new(MockArxivSearchService),
		bibtex:    new(MockBibtexService),
	}
}

func (s *testServices) services() Services {
	return Services{
		Papers:     s.papers,
		Summaries:  s.summaries,
		Answers:    s.answers,
		Arxiv:      s.arxiv,
		FutureWork: services.NewFutureWorkService(),
		Bibtex:     s.bibtex,
	}
}
