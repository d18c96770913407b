// Package results turns a scored submission into the ranked list shown
// after the quiz.
package results

import (
	"fmt"

	"github.com/abhisek/luminar/internal/api"
	"github.com/abhisek/luminar/internal/intelligence"
)

// Card is one ranked dimension ready for display.
type Card struct {
	Dimension   intelligence.Dimension
	Score       int
	Description string
}

// Title renders the card heading, e.g. "Espacial: 80%".
func (c Card) Title() string {
	return fmt.Sprintf("%s: %d%%", c.Dimension.Label(), c.Score)
}

// Aggregate ranks all eight dimensions of r by descending score. Equal
// scores keep the fixed dimension order. Descriptions are empty when r
// carried none.
func Aggregate(r *api.TestResult) []Card {
	var desc *intelligence.Descriptions
	if r.Descriptions != nil {
		texts := r.Descriptions.Texts()
		desc = &texts
	}

	entries := intelligence.Rank(r.Intelligences.Scores(), desc)
	cards := make([]Card, len(entries))
	for i, e := range entries {
		cards[i] = Card{Dimension: e.Dimension, Score: e.Score, Description: e.Description}
	}
	return cards
}
