package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "scholar_assistant_go_backend/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const atomFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xmlns:opensearch="http://a9.com/-/spec/opensearch/1.1/">
  <opensearch:totalResults>2</opensearch:totalResults>
  <entry>
    <id>http://arxiv.org/abs/1706.03762v7</id>
    <published>2017-06-12T17:57:34Z</published>
    <title>Attention Is All
      You Need</title>
    <summary>  The dominant sequence transduction models
  are based on recurrent networks.
    </summary>
    <author><name>Ashish Vaswani</name></author>
    <author><name>Noam Shazeer</name></author>
    <link href="http://arxiv.org/abs/1706.03762v7" rel="alternate" type="text/html"/>
    <link title="pdf" href="http://arxiv.org/pdf/1706.03762v7" rel="related" type="application/pdf"/>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/1810.04805v2</id>
    <published>2018-10-11T00:50:01Z</published>
    <title>BERT</title>
    <summary>Pre-training of deep bidirectional transformers.</summary>
    <author><name>Jacob Devlin</name></author>
  </entry>
</feed>`

const emptyFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom"></feed>`

func newTestArxivService(url string) *ArxivService {
	return NewArxivService(url, 5*time.Second, nil)
}

func TestArxivService_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "all:transformers", q.Get("search_query"))
		assert.Equal(t, "relevance", q.Get("sortBy"))
		assert.Equal(t, "10", q.Get("max_results"))
		w.Header().Set("Content-Type", "application/atom+xml")
		w.Write([]byte(atomFeed))
	}))
	defer server.Close()

	papers, err := newTestArxivService(server.URL).Search(context.Background(), "transformers", 0)
	require.NoError(t, err)
	require.Len(t, papers, 2)

	assert.Equal(t, ArxivPaper{
		ID:      "1706.03762",
		Title:   "Attention Is All You Need",
		Summary: "The dominant sequence transduction models are based on recurrent networks.",
		Authors: []string{"Ashish Vaswani", "Noam Shazeer"},
		Year:    2017,
		URL:     "http://arxiv.org/abs/1706.03762v7",
		PDFURL:  "http://arxiv.org/pdf/1706.03762v7",
	}, papers[0])
	assert.Equal(t, "1810.04805", papers[1].ID)
	assert.Equal(t, 2018, papers[1].Year)
}

func TestArxivService_SearchNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.URL.Query().Get("max_results"))
		w.Write([]byte(emptyFeed))
	}))
	defer server.Close()

	papers, err := newTestArxivService(server.URL).Search(context.Background(), "nothing", 3)
	require.NoError(t, err)
	assert.NotNil(t, papers)
	assert.Empty(t, papers)
}

func TestArxivService_SearchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newTestArxivService(server.URL).Search(context.Background(), "transformers", 5)

	var collabErr *apperrors.CollaboratorError
	require.ErrorAs(t, err, &collabErr)
	assert.Equal(t, "arxiv", collabErr.Collaborator)
	assert.Contains(t, err.Error(), "503")
}

func TestArxivService_GetByID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("id_list") == "1706.03762" {
			w.Write([]byte(atomFeed))
			return
		}
		w.Write([]byte(emptyFeed))
	}))
	defer server.Close()
	service := newTestArxivService(server.URL)

	paper, err := service.GetByID(context.Background(), "arXiv:1706.03762v7")
	require.NoError(t, err)
	assert.Equal(t, "Attention Is All You Need", paper.Title)

	_, err = service.GetByID(context.Background(), "9999.99999")
	assert.ErrorIs(t, err, ErrArxivPaperNotFound)

	_, err = service.GetByID(context.Background(), "  ")
	var validationErr *apperrors.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestNormalizeArxivID(t *testing.T) {
	tests := map[string]string{
		"1706.03762":                           "1706.03762",
		"1706.03762v7":                         "1706.03762",
		"arXiv:1706.03762":                     "1706.03762",
		"https://arxiv.org/abs/1706.03762v2":   "1706.03762",
		"https://arxiv.org/pdf/1706.03762.pdf": "1706.03762",
		"hep-th/9901001v1":                     "hep-th/9901001",
		"":                                     "",
	}

	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, want, NormalizeArxivID(input))
		})
	}
}

const errorFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/api/errors#incorrect_id_format_for_not-an-id</id>
    <title>Error</title>
    <summary>incorrect id format for not-an-id</summary>
    <author><name>arXiv api core</name></author>
  </entry>
</feed>`

func TestArxivService_ErrorFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(errorFeed))
	}))
	defer server.Close()
	service := newTestArxivService(server.URL)

	paper, err := service.GetByID(context.Background(), "not-an-id")
	assert.Nil(t, paper)
	var collabErr *apperrors.CollaboratorError
	require.ErrorAs(t, err, &collabErr)
	assert.Equal(t, "arxiv", collabErr.Collaborator)
	assert.Contains(t, err.Error(), "arXiv error: incorrect id format for not-an-id")

	papers, err := service.Search(context.Background(), "transformers", 5)
	assert.Nil(t, papers)
	require.ErrorAs(t, err, &collabErr)
	assert.Contains(t, err.Error(), "incorrect id format")
}

func TestSearchQuery(t *testing.T) {
	tests := map[string]string{
		"transformers":                  "all:transformers",
		"  graph neural networks ":      "all:graph neural networks",
		"ti:transformer AND au:vaswani": "ti:transformer AND au:vaswani",
		"cat:cs.CL":                     "cat:cs.CL",
		"(abs:attention) OR ti:bert":    "(abs:attention) OR ti:bert",
		"ratio: 3:1 mixtures":           "all:ratio: 3:1 mixtures",
	}

	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, want, searchQuery(input))
		})
	}
}
