package repository

import (
	"fmt"
	"strings"

	"scholar_assistant_go_backend/internal/models"
)

type predicate struct {
	field string
	value any
}

// predicateBuilder folds optional equality predicates into a conjunction.
// A predicate is only added when its source field is present.
type predicateBuilder struct {
	predicates []predicate
}

func (b *predicateBuilder) when(present bool, field string, value func() any) *predicateBuilder {
	if present {
		b.predicates = append(b.predicates, predicate{field: field, value: value()})
	}
	return b
}

func filterPredicates(filter models.PaperQueryFilter) []predicate {
	b := &predicateBuilder{}
	b.when(filter.HasYear(), "year", func() any { return *filter.Year }).
		when(filter.HasTopic(), "topic", func() any { return *filter.Topic })
	return b.predicates
}

const paperReturnClause = "RETURN p.title AS title, p.year AS year, p.topic AS topic, p.abstract AS abstract, p.authors AS authors"

const mergePaperCypher = `MERGE (p:Paper {title: $title, year: $year})
SET p.topic = $topic, p.abstract = $abstract, p.authors = $authors`

// buildQueryCypher renders the MATCH statement for filter. Values are only
// ever passed as parameters.
func buildQueryCypher(filter models.PaperQueryFilter) (string, map[string]any) {
	preds := filterPredicates(filter)
	params := make(map[string]any, len(preds))
	conditions := make([]string, 0, len(preds))
	for _, p := range preds {
		conditions = append(conditions, fmt.Sprintf("p.%s = $%s", p.field, p.field))
		params[p.field] = p.value
	}

	var sb strings.Builder
	sb.WriteString("MATCH (p:Paper)")
	if len(conditions) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conditions, " AND "))
	}
	sb.WriteString(" ")
	sb.WriteString(paperReturnClause)
	return sb.String(), params
}

func mergeParams(paper models.Paper) map[string]any {
	return map[string]any{
		"title":    paper.Title,
		"year":     paper.Year,
		"topic":    nullable(paper.Topic),
		"abstract": nullable(paper.Abstract),
		"authors":  normalizeAuthors(paper.Authors),
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// matches reports whether paper satisfies every predicate in preds.
func matches(paper models.Paper, preds []predicate) bool {
	for _, p := range preds {
		switch p.field {
		case "year":
			if paper.Year != p.value.(int) {
				return false
			}
		case "topic":
			if paper.Topic != p.value.(string) {
				return false
			}
		}
	}
	return true
}
