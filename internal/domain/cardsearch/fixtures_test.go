package cardsearch

import (
	"github.com/sylvanlibrary/cardsearch/internal/domain/cards"
	"github.com/sylvanlibrary/cardsearch/internal/domain/colour"
)

func card(id int64, name string, colours colour.Set) *cards.Card {
	return &cards.Card{ID: id, Name: name, Colours: colours, ColourIdentity: colours}
}

// fixtureCards covers every colour combination that matters to the colour
// policy plus a few attribute edge cases.
func fixtureCards() []*cards.Card {
	return []*cards.Card{
		{
			ID: 1, Name: "Serra Angel", Type: "Creature", Subtype: "Angel",
			RulesText: "Flying, vigilance", Cmc: cards.Number(5), Power: cards.Number(4), Toughness: cards.Number(4),
			Colours: colour.White, ColourIdentity: colour.White, SetCode: "LEA",
		},
		{
			ID: 2, Name: "Azorius Charm", Type: "Instant",
			RulesText: "Choose one — You gain life", Cmc: cards.Number(2),
			Colours: colour.White | colour.Blue, ColourIdentity: colour.White | colour.Blue, SetCode: "RTR",
		},
		{
			ID: 3, Name: "Esper Charm", Type: "Instant", FlavourText: "Three shards, one will.",
			Cmc:     cards.Number(3),
			Colours: colour.White | colour.Blue | colour.Black, ColourIdentity: colour.White | colour.Blue | colour.Black, SetCode: "ALA",
		},
		{
			ID: 4, Name: "Shock", Type: "Instant", RulesText: "Shock deals 2 damage to any target.",
			Cmc:     cards.Number(1),
			Colours: colour.Red, ColourIdentity: colour.Red, SetCode: "M19",
		},
		{
			ID: 5, Name: "Sol Ring", Type: "Artifact", Cmc: cards.Number(1),
			Colours: colour.None, ColourIdentity: colour.None, SetCode: "LEA",
		},
		{
			ID: 6, Name: "Tarmogoyf", Type: "Creature", Subtype: "Lhurgoyf",
			Cmc: cards.Number(2), Toughness: cards.Number(1),
			Colours: colour.Green, ColourIdentity: colour.Green, SetCode: "FUT",
		},
		{
			ID: 7, Name: "Birds of Paradise", Type: "Creature", Subtype: "Bird",
			Cmc: cards.Number(1), Power: cards.Number(0), Toughness: cards.Number(1),
			Colours: colour.Green, ColourIdentity: colour.Green, SetCode: "LEA",
		},
		{
			ID: 8, Name: "Jace, the Mind Sculptor", Type: "Legendary Planeswalker", Subtype: "Jace",
			Cmc:     cards.Number(4),
			Colours: colour.Blue, ColourIdentity: colour.Blue, SetCode: "WWK",
		},
		{
			ID: 9, Name: "Plains", Type: "Basic Land", Subtype: "Plains",
			Colours: colour.None, ColourIdentity: colour.White, SetCode: "LEA",
		},
		{
			ID: 10, Name: "Mystery Card",
		},
	}
}

func ids(list []*cards.Card) []int64 {
	out := make([]int64, 0, len(list))
	for _, c := range list {
		out = append(out, c.ID)
	}
	return out
}

func filter(root Parameter, list []*cards.Card) []int64 {
	var out []*cards.Card
	for _, c := range list {
		if root.Matches(c) {
			out = append(out, c)
		}
	}
	return ids(out)
}
