package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "scholar_assistant_go_backend/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestQuestionAnsweringService_WithContext(t *testing.T) {
	answerer := new(MockQuestionAnswerer)
	arxiv := new(MockArxivSearcher)
	answerer.On("Answer", mock.Anything, "Who wrote it?", "Ada wrote it.").Return("Ada", nil).Once()

	answer, err := NewQuestionAnsweringService(answerer, arxiv).Answer(context.Background(), "Who wrote it?", "Ada wrote it.", "1706.03762")
	require.NoError(t, err)
	assert.Equal(t, "Ada", answer)
	arxiv.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestQuestionAnsweringService_WithPaperID(t *testing.T) {
	answerer := new(MockQuestionAnswerer)
	arxiv := new(MockArxivSearcher)
	arxiv.On("GetByID", mock.Anything, "1706.03762").Return(&ArxivPaper{Summary: "We propose the Transformer."}, nil).Once()
	answerer.On("Answer", mock.Anything, "What is proposed?", "We propose the Transformer.").Return("the Transformer", nil).Once()

	answer, err := NewQuestionAnsweringService(answerer, arxiv).Answer(context.Background(), "What is proposed?", "", "1706.03762")
	require.NoError(t, err)
	assert.Equal(t, "the Transformer", answer)
	answerer.AssertExpectations(t)
	arxiv.AssertExpectations(t)
}

func TestQuestionAnsweringService_Errors(t *testing.T) {
	var validationErr *apperrors.ValidationError

	service := NewQuestionAnsweringService(new(MockQuestionAnswerer), new(MockArxivSearcher))

	_, err := service.Answer(context.Background(), "", "ctx", "")
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "question", validationErr.Field)

	_, err = service.Answer(context.Background(), "q", "", "")
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "context", validationErr.Field)

	arxiv := new(MockArxivSearcher)
	arxiv.On("GetByID", mock.Anything, "bad").Return(nil, apperrors.NewCollaboratorError("arxiv", errors.New("not found"))).Once()
	_, err = NewQuestionAnsweringService(new(MockQuestionAnswerer), arxiv).Answer(context.Background(), "q", "", "bad")
	var collabErr *apperrors.CollaboratorError
	assert.ErrorAs(t, err, &collabErr)
}

func TestQuestionAnsweringService_ArxivErrorFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(errorFeed))
	}))
	defer server.Close()
	answerer := new(MockQuestionAnswerer)

	answer, err := NewQuestionAnsweringService(answerer, newTestArxivService(server.URL)).
		Answer(context.Background(), "What is proposed?", "", "not-an-id")

	assert.Empty(t, answer)
	var collabErr *apperrors.CollaboratorError
	require.ErrorAs(t, err, &collabErr)
	assert.Contains(t, err.Error(), "incorrect id format for not-an-id")
	answerer.AssertNotCalled(t, "Answer", mock.Anything, mock.Anything, mock.Anything)
}
