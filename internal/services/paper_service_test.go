package services

import (
	"context"
	"errors"
	"testing"

	apperrors "scholar_assistant_go_backend/internal/errors"
	"scholar_assistant_go_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPaperService_StorePaper(t *testing.T) {
	repo := new(MockPaperRepository)
	paper := models.Paper{Title: "A", Year: 2020}
	repo.On("Store", mock.Anything, paper).Return(nil).Once()

	require.NoError(t, NewPaperService(repo).StorePaper(context.Background(), paper))
	repo.AssertExpectations(t)
}

func TestPaperService_QueryPapers(t *testing.T) {
	t.Run("nil result becomes empty", func(t *testing.T) {
		repo := new(MockPaperRepository)
		repo.On("Query", mock.Anything, models.PaperQueryFilter{}).Return([]models.Paper(nil), nil).Once()

		papers, err := NewPaperService(repo).QueryPapers(context.Background(), models.PaperQueryFilter{})
		require.NoError(t, err)
		assert.NotNil(t, papers)
		assert.Empty(t, papers)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		repo := new(MockPaperRepository)
		repo.On("Query", mock.Anything, mock.Anything).Return(nil, apperrors.NewStoreError("query papers", errors.New("down"))).Once()

		_, err := NewPaperService(repo).QueryPapers(context.Background(), models.PaperQueryFilter{})
		var storeErr *apperrors.StoreError
		assert.ErrorAs(t, err, &storeErr)
	})
}

func TestPaperService_Healthy(t *testing.T) {
	repo := new(MockPaperRepository)
	repo.On("Ping", mock.Anything).Return(errors.New("unreachable")).Once()

	assert.Error(t, NewPaperService(repo).Healthy(context.Background()))
}
