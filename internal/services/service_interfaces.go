package services

import (
	"context"
	"io"
)

type ArxivSearcher interface {
	Search(ctx context.Context, keyword string, maxResults int) ([]ArxivPaper, error)
	GetByID(ctx context.Context, id string) (*ArxivPaper, error)
}

type TextExtractor interface {
	ExtractTextFromReader(r io.Reader) (string, error)
}
