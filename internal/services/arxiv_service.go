package services

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	apperrors "scholar_assistant_go_backend/internal/errors"
	"scholar_assistant_go_backend/internal/observability"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	arxivCollaborator = "arxiv"

	DefaultArxivMaxResults = 10

	// arXiv asks clients to stay at or below three requests per second.
	arxivRateLimit = 3
	arxivBurst     = 3
)

var ErrArxivPaperNotFound = errors.New("paper not found on arXiv")

var (
	arxivEntryIDRegex = regexp.MustCompile(`arxiv\.org/abs/(.+?)(?:v\d+)?$`)
	arxivInputIDRegex = regexp.MustCompile(`(?i)^(?:arxiv:|https?://(?:export\.)?arxiv\.org/(?:abs|pdf)/)?(.+?)(?:v\d+)?(?:\.pdf)?$`)
	whitespaceRegex   = regexp.MustCompile(`\s+`)

	fieldQualifierRegex = regexp.MustCompile(`(?:^|[\s(])(?:ti|au|abs|co|jr|cat|rn|id|all):`)
)

// ArxivPaper is one search hit.
type ArxivPaper struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Authors []string `json:"authors"`
	Year    int      `json:"year"`
	URL     string   `json:"url"`
	PDFURL  string   `json:"pdf_url,omitempty"`
}

// ArxivEntry is an <entry> of the Atom feed returned by the arXiv API.
type ArxivEntry struct {
	ID        string `xml:"id"`
	Title     string `xml:"title"`
	Summary   string `xml:"summary"`
	Published string `xml:"published"`
	Updated   string `xml:"updated"`
	Authors   []struct {
		Name string `xml:"name"`
	} `xml:"author"`
	Links []struct {
		Href string `xml:"href,attr"`
		Rel  string `xml:"rel,attr"`
		Type string `xml:"type,attr"`
	} `xml:"link"`
}

type ArxivFeed struct {
	TotalResults int          `xml:"totalResults"`
	Entries      []ArxivEntry `xml:"entry"`
}

type ArxivService struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	metrics    *observability.Metrics
}

func NewArxivService(baseURL string, timeout time.Duration, metrics *observability.Metrics) *ArxivService {
	return &ArxivService{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Limit(arxivRateLimit), arxivBurst),
		metrics:    metrics,
	}
}

// Search returns up to maxResults papers matching keyword, most relevant first.
func (s *ArxivService) Search(ctx context.Context, keyword string, maxResults int) ([]ArxivPaper, error) {
	if maxResults <= 0 {
		maxResults = DefaultArxivMaxResults
	}

	query := url.Values{}
	query.Set("search_query", searchQuery(keyword))
	query.Set("start", "0")
	query.Set("max_results", strconv.Itoa(maxResults))
	query.Set("sortBy", "relevance")
	query.Set("sortOrder", "descending")

	feed, err := s.fetch(ctx, query)
	s.metrics.RecordCollaboratorCall(arxivCollaborator, err)
	if err != nil {
		return nil, apperrors.NewCollaboratorError(arxivCollaborator, err)
	}

	papers := make([]ArxivPaper, 0, len(feed.Entries))
	for i := range feed.Entries {
		papers = append(papers, entryToPaper(&feed.Entries[i]))
	}
	log.Debug().Str("keyword", keyword).Int("results", len(papers)).Msg("arXiv search completed")
	return papers, nil
}

// GetByID fetches a single paper. id may be a bare identifier, an
// "arXiv:" reference or an abs/pdf URL.
func (s *ArxivService) GetByID(ctx context.Context, id string) (*ArxivPaper, error) {
	normalized := NormalizeArxivID(id)
	if normalized == "" {
		return nil, apperrors.NewValidationError("paper_id")
	}

	query := url.Values{}
	query.Set("id_list", normalized)

	feed, err := s.fetch(ctx, query)
	if err == nil && (len(feed.Entries) == 0 || strings.TrimSpace(feed.Entries[0].Title) == "") {
		err = fmt.Errorf("%w: %s", ErrArxivPaperNotFound, normalized)
	}
	s.metrics.RecordCollaboratorCall(arxivCollaborator, err)
	if err != nil {
		return nil, apperrors.NewCollaboratorError(arxivCollaborator, err)
	}

	paper := entryToPaper(&feed.Entries[0])
	return &paper, nil
}

func (s *ArxivService) fetch(ctx context.Context, query url.Values) (*ArxivFeed, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query arXiv: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv returned status code %d", resp.StatusCode)
	}

	var feed ArxivFeed
	if err := xml.NewDecoder(io.LimitReader(resp.Body, 10<<20)).Decode(&feed); err != nil {
		return nil, fmt.Errorf("failed to parse XML response: %w", err)
	}
	// arXiv reports bad ids and queries as a 200 feed with one error entry.
	for i := range feed.Entries {
		if strings.Contains(feed.Entries[i].ID, "/api/errors") {
			return nil, fmt.Errorf("arXiv error: %s", normalizeWhitespace(feed.Entries[i].Summary))
		}
	}
	return &feed, nil
}

// searchQuery scopes a bare keyword to all fields and leaves
// field-qualified queries such as "ti:transformer AND au:vaswani" as is.
func searchQuery(keyword string) string {
	keyword = strings.TrimSpace(keyword)
	if fieldQualifierRegex.MatchString(keyword) {
		return keyword
	}
	return "all:" + keyword
}

func entryToPaper(entry *ArxivEntry) ArxivPaper {
	authors := make([]string, 0, len(entry.Authors))
	for _, author := range entry.Authors {
		if name := normalizeWhitespace(author.Name); name != "" {
			authors = append(authors, name)
		}
	}

	pdfURL := ""
	for _, link := range entry.Links {
		if link.Type == "application/pdf" {
			pdfURL = link.Href
			break
		}
	}

	id := ""
	if m := arxivEntryIDRegex.FindStringSubmatch(entry.ID); len(m) > 1 {
		id = m[1]
	}

	return ArxivPaper{
		ID:      id,
		Title:   normalizeWhitespace(entry.Title),
		Summary: normalizeWhitespace(entry.Summary),
		Authors: authors,
		Year:    publishedYear(entry.Published),
		URL:     strings.TrimSpace(entry.ID),
		PDFURL:  pdfURL,
	}
}

// NormalizeArxivID strips reference prefixes, URL forms and version suffixes.
func NormalizeArxivID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if m := arxivInputIDRegex.FindStringSubmatch(raw); len(m) > 1 {
		return m[1]
	}
	return raw
}

func publishedYear(published string) int {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(published))
	if err != nil {
		return 0
	}
	return t.Year()
}

func normalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}
