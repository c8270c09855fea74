package services

import "strings"

const futureWorkPrefixRunes = 30

// FutureWorkService turns paper content into follow-up research suggestions.
type FutureWorkService struct{}

func NewFutureWorkService() *FutureWorkService {
	return &FutureWorkService{}
}

// Suggest returns a single suggestion built from the first 30 runes of
// content.
func (s *FutureWorkService) Suggest(content string) []string {
	runes := []rune(content)
	if len(runes) > futureWorkPrefixRunes {
		runes = runes[:futureWorkPrefixRunes]
	}
	var sb strings.Builder
	sb.WriteString("Explore further advancements in ")
	sb.WriteString(string(runes))
	sb.WriteString("...")
	return []string{sb.String()}
}
