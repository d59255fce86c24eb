package services

import (
	"github.com/samber/lo"

	"memerender/internal/suggestions"
)

// Suggestion is a catalog entry with the glyph the list shows for it.
type Suggestion struct {
	suggestions.Entry
	Icon string `json:"icon"`
}

type SuggestionService struct{}

func NewSuggestionService() *SuggestionService {
	return &SuggestionService{}
}

// List filters the catalog; an empty query returns everything.
func (s *SuggestionService) List(query string) []Suggestion {
	return lo.Map(suggestions.Get(query), func(e suggestions.Entry, _ int) Suggestion {
		return Suggestion{Entry: e, Icon: suggestions.Icon(e.Label)}
	})
}
