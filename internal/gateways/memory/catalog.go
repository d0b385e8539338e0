package memory

import (
	"context"
	"slices"

	"github.com/sylvanlibrary/cardsearch/internal/domain/cards"
)

// Catalog is an ordered in-memory card catalog. Its card list is fixed at
// construction.
type Catalog struct {
	name  string
	cards []*cards.Card
}

var _ cards.Catalog = (*Catalog)(nil)
var _ cards.Lister = (*Catalog)(nil)

// NewCatalog copies list so later changes by the caller are not visible.
func NewCatalog(name string, list []*cards.Card) *Catalog {
	owned := make([]*cards.Card, len(list))
	copy(owned, list)
	return &Catalog{name: name, cards: owned}
}

func (c *Catalog) Name() string {
	return c.name
}

func (c *Catalog) Each(ctx context.Context, fn func(*cards.Card) error) error {
	for _, card := range c.cards {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(card); err != nil {
			return err
		}
	}
	return nil
}

// All returns a copy of the card list in catalog order. The cards
// themselves are shared.
func (c *Catalog) All() []*cards.Card {
	return slices.Clone(c.cards)
}

func (c *Catalog) Count(_ context.Context) (int, error) {
	return len(c.cards), nil
}
