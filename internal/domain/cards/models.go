package cards

import "github.com/sylvanlibrary/cardsearch/internal/domain/colour"

// Card is a single catalog record. Empty strings and nil numbers mean the
// attribute is absent on the card.
type Card struct {
	ID             int64
	Name           string
	RulesText      string
	FlavourText    string
	Type           string
	Subtype        string
	Cmc            *float64
	Power          *float64
	Toughness      *float64
	Colours        colour.Set
	ColourIdentity colour.Set
	SetCode        string
}

// Number is a small helper for building optional numeric attributes.
func Number(v float64) *float64 {
	return &v
}
