package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	apperrors "scholar_assistant_go_backend/internal/errors"
	"scholar_assistant_go_backend/internal/models"
	"scholar_assistant_go_backend/internal/repository"

	"github.com/nickng/bibtex"
	"github.com/rs/zerolog/log"
)

var (
	authorSeparator = regexp.MustCompile(`\s+and\s+`)
	yearPattern     = regexp.MustCompile(`\d{4}`)
	citeKeyCleaner  = regexp.MustCompile(`[^a-z0-9]`)
)

// ImportResult counts the outcome of a BibTeX import.
type ImportResult struct {
	Stored  int      `json:"stored"`
	Skipped []string `json:"skipped"`
}

// BibtexService moves paper metadata between BibTeX and the paper store.
type BibtexService struct {
	repo repository.PaperRepository
}

func NewBibtexService(repo repository.PaperRepository) *BibtexService {
	return &BibtexService{repo: repo}
}

// Import stores every entry that carries a title and a numeric year. topic
// is applied to entries without a keywords field.
func (s *BibtexService) Import(ctx context.Context, source, topic string) (*ImportResult, error) {
	papers, skipped, err := ParseBibtex(source, topic)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Skipped: skipped}
	for _, paper := range papers {
		if err := s.repo.Store(ctx, paper); err != nil {
			return nil, err
		}
		result.Stored++
	}

	log.Info().Int("stored", result.Stored).Int("skipped", len(skipped)).Msg("BibTeX import finished")
	return result, nil
}

// Export renders the papers matching filter as @article entries.
func (s *BibtexService) Export(ctx context.Context, filter models.PaperQueryFilter) (string, error) {
	papers, err := s.repo.Query(ctx, filter)
	if err != nil {
		return "", err
	}
	return RenderBibtex(papers), nil
}

// ParseBibtex converts entries to papers. Entries missing a title or a
// numeric year are returned by cite key in skipped.
func ParseBibtex(source, topic string) ([]models.Paper, []string, error) {
	bib, err := bibtex.Parse(strings.NewReader(source))
	if err != nil {
		return nil, nil, &apperrors.ValidationError{Field: "bibtex", Message: err.Error()}
	}

	papers := make([]models.Paper, 0, len(bib.Entries))
	skipped := make([]string, 0)
	for _, entry := range bib.Entries {
		paper, ok := entryToModel(entry, topic)
		if !ok {
			skipped = append(skipped, entry.CiteName)
			continue
		}
		papers = append(papers, paper)
	}
	return papers, skipped, nil
}

func entryToModel(entry *bibtex.BibEntry, topic string) (models.Paper, bool) {
	title := stripBraces(field(entry, "title"))
	year, err := strconv.Atoi(yearPattern.FindString(field(entry, "year")))
	if title == "" || err != nil || year == 0 {
		return models.Paper{}, false
	}

	paperTopic := stripBraces(field(entry, "keywords"))
	if paperTopic == "" {
		paperTopic = topic
	}

	return models.Paper{
		Title:    title,
		Year:     year,
		Topic:    paperTopic,
		Abstract: stripBraces(field(entry, "abstract")),
		Authors:  splitAuthors(field(entry, "author")),
	}, true
}

// field looks a field up case-insensitively.
func field(entry *bibtex.BibEntry, key string) string {
	for name, value := range entry.Fields {
		if strings.EqualFold(name, key) && value != nil {
			return strings.TrimSpace(value.String())
		}
	}
	return ""
}

func splitAuthors(raw string) []string {
	raw = normalizeWhitespace(stripBraces(raw))
	if raw == "" {
		return []string{}
	}

	authors := make([]string, 0)
	for _, name := range authorSeparator.Split(raw, -1) {
		if name = strings.TrimSpace(name); name != "" {
			authors = append(authors, name)
		}
	}
	return authors
}

func stripBraces(s string) string {
	return normalizeWhitespace(strings.NewReplacer("{", "", "}", "").Replace(s))
}

// RenderBibtex writes papers as @article entries.
func RenderBibtex(papers []models.Paper) string {
	bib := bibtex.NewBibTex()
	used := make(map[string]int)
	for _, paper := range papers {
		key := citeKey(paper)
		used[key]++
		if n := used[key]; n > 1 {
			key = fmt.Sprintf("%s%d", key, n)
		}

		entry := bibtex.NewBibEntry("article", key)
		entry.AddField("title", bibtex.NewBibConst(paper.Title))
		entry.AddField("year", bibtex.NewBibConst(strconv.Itoa(paper.Year)))
		if len(paper.Authors) > 0 {
			entry.AddField("author", bibtex.NewBibConst(strings.Join(paper.Authors, " and ")))
		}
		if paper.Abstract != "" {
			entry.AddField("abstract", bibtex.NewBibConst(paper.Abstract))
		}
		if paper.Topic != "" {
			entry.AddField("keywords", bibtex.NewBibConst(paper.Topic))
		}
		bib.AddEntry(entry)
	}
	return bib.String()
}

// familyName handles both "Last, First" and "First Last" forms.
func familyName(name string) string {
	if last, _, found := strings.Cut(name, ","); found {
		return strings.TrimSpace(last)
	}
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// citeKey builds keys like "vaswani2017attention".
func citeKey(paper models.Paper) string {
	author := "anon"
	if len(paper.Authors) > 0 {
		if family := familyName(paper.Authors[0]); family != "" {
			author = family
		}
	}

	word := ""
	if words := strings.Fields(paper.Title); len(words) > 0 {
		word = words[0]
	}

	return citeKeyCleaner.ReplaceAllString(strings.ToLower(author), "") +
		strconv.Itoa(paper.Year) +
		citeKeyCleaner.ReplaceAllString(strings.ToLower(word), "")
}
