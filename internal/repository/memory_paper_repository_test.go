package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	apperrors "scholar_assistant_go_backend/internal/errors"
	"scholar_assistant_go_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPaperRepository_StoreIsIdempotent(t *testing.T) {
	repo := NewMemoryPaperRepository()
	ctx := context.Background()
	paper := models.Paper{Title: "Attention Is All You Need", Year: 2017, Topic: "nlp"}

	require.NoError(t, repo.Store(ctx, paper))
	require.NoError(t, repo.Store(ctx, paper))

	assert.Equal(t, 1, repo.Len())
}

func TestMemoryPaperRepository_LastWriteWins(t *testing.T) {
	repo := NewMemoryPaperRepository()
	ctx := context.Background()

	require.NoError(t, repo.Store(ctx, models.Paper{Title: "A", Year: 2020, Topic: "nlp"}))
	require.NoError(t, repo.Store(ctx, models.Paper{Title: "A", Year: 2020, Topic: "ml", Authors: []string{"Ada"}}))

	papers, err := repo.Query(ctx, models.PaperQueryFilter{Year: intPtr(2020)})
	require.NoError(t, err)
	require.Len(t, papers, 1)
	assert.Equal(t, "ml", papers[0].Topic)
	assert.Equal(t, []string{"Ada"}, papers[0].Authors)
}

func TestMemoryPaperRepository_QueryConjunction(t *testing.T) {
	repo := NewMemoryPaperRepository()
	ctx := context.Background()
	seed := []models.Paper{
		{Title: "P1", Year: 2020, Topic: "nlp"},
		{Title: "P2", Year: 2021, Topic: "nlp"},
		{Title: "P3", Year: 2020, Topic: "vision"},
	}
	for _, p := range seed {
		require.NoError(t, repo.Store(ctx, p))
	}

	t.Run("topic only ignores year", func(t *testing.T) {
		papers, err := repo.Query(ctx, models.PaperQueryFilter{Topic: strPtr("nlp")})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"P1", "P2"}, titles(papers))
	})

	t.Run("year only ignores topic", func(t *testing.T) {
		papers, err := repo.Query(ctx, models.PaperQueryFilter{Year: intPtr(2020)})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"P1", "P3"}, titles(papers))
	})

	t.Run("both predicates", func(t *testing.T) {
		papers, err := repo.Query(ctx, models.PaperQueryFilter{Topic: strPtr("nlp"), Year: intPtr(2020)})
		require.NoError(t, err)
		assert.Equal(t, []string{"P1"}, titles(papers))
	})

	t.Run("empty filter returns everything", func(t *testing.T) {
		papers, err := repo.Query(ctx, models.PaperQueryFilter{})
		require.NoError(t, err)
		assert.Len(t, papers, 3)
	})

	t.Run("no match is empty, not an error", func(t *testing.T) {
		papers, err := repo.Query(ctx, models.PaperQueryFilter{Topic: strPtr("biology")})
		require.NoError(t, err)
		assert.NotNil(t, papers)
		assert.Empty(t, papers)
	})
}

func TestMemoryPaperRepository_EmptyStore(t *testing.T) {
	papers, err := NewMemoryPaperRepository().Query(context.Background(), models.PaperQueryFilter{Year: intPtr(2023)})
	require.NoError(t, err)
	assert.NotNil(t, papers)
	assert.Empty(t, papers)
}

func TestMemoryPaperRepository_MissingKeyFails(t *testing.T) {
	repo := NewMemoryPaperRepository()
	ctx := context.Background()

	var validationErr *apperrors.ValidationError

	err := repo.Store(ctx, models.Paper{Year: 2020})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "title", validationErr.Field)

	err = repo.Store(ctx, models.Paper{Title: "A"})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "year", validationErr.Field)

	assert.Equal(t, 0, repo.Len())
}

func TestMemoryPaperRepository_ConcurrentStores(t *testing.T) {
	repo := NewMemoryPaperRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repo.Store(ctx, models.Paper{Title: fmt.Sprintf("P%d", i%10), Year: 2024})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, repo.Len())
}

func titles(papers []models.Paper) []string {
	out := make([]string, 0, len(papers))
	for _, p := range papers {
		out = append(out, p.Title)
	}
	return out
}
