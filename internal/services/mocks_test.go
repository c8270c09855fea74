package services

import (
	"context"
	"io"

	"scholar_assistant_go_backend/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockPaperRepository struct {
	mock.Mock
}

func (m *MockPaperRepository) Store(ctx context.Context, paper models.Paper) error {
	args := m.Called(ctx, paper)
	return args.Error(0)
}

func (m *MockPaperRepository) Query(ctx context.Context, filter models.PaperQueryFilter) ([]models.Paper, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Paper), args.Error(1)
}

func (m *MockPaperRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockArxivSearcher struct {
	mock.Mock
}

func (m *MockArxivSearcher) Search(ctx context.Context, keyword string, maxResults int) ([]ArxivPaper, error) {
	args := m.Called(ctx, keyword, maxResults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ArxivPaper), args.Error(1)
}

func (m *MockArxivSearcher) GetByID(ctx context.Context, id string) (*ArxivPaper, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ArxivPaper), args.Error(1)
}

type MockQuestionAnswerer struct {
	mock.Mock
}

func (m *MockQuestionAnswerer) Answer(ctx context.Context, question, passage string) (string, error) {
	args := m.Called(ctx, question, passage)
	return args.String(0), args.Error(1)
}

type MockSummarizer struct {
	mock.Mock
}

func (m *MockSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

type MockTextExtractor struct {
	mock.Mock
}

func (m *MockTextExtractor) ExtractTextFromReader(r io.Reader) (string, error) {
	args := m.Called(r)
	return args.String(0), args.Error(1)
}
