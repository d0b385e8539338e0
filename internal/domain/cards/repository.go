package cards

import "context"

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock

// Catalog is a read-only, ordered source of card records.
type Catalog interface {
	// Each calls fn for every card in enumeration order. Enumeration stops at
	// the first error returned by fn or by the underlying store.
	Each(ctx context.Context, fn func(*Card) error) error
}

// Lister is implemented by catalogs held fully in memory.
type Lister interface {
	All() []*Card
}
