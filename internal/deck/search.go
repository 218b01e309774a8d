package deck

import (
	"strings"

	"github.com/example/hindicards/pkg/models"
)

// Search returns, in deck order, the cards whose front or back contains query
// regardless of case. A blank query matches nothing.
func Search(cards []models.Flashcard, query string) []models.Flashcard {
	matches := []models.Flashcard{}
	if strings.TrimSpace(query) == "" {
		return matches
	}

	needle := strings.ToLower(query)
	for _, card := range cards {
		if strings.Contains(strings.ToLower(card.Front), needle) ||
			strings.Contains(strings.ToLower(card.Back), needle) {
			matches = append(matches, card)
		}
	}
	return matches
}
