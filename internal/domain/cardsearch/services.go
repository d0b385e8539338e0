package cardsearch

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	lru "github.com/hashicorp/golang-lru"
	"github.com/sahilm/fuzzy"
	"github.com/sylvanlibrary/cardsearch/internal/domain/cards"
)

const (
	defaultCacheSize   = 256
	defaultSuggestions = 5
)

// Result is the outcome of a single search.
type Result struct {
	Cards []*cards.Card
	Query Parameter

	// Suggestions holds close card names when a name search found nothing.
	Suggestions []string
	Cached      bool
}

type Service interface {
	Search(ctx context.Context, b Builder) (*Result, error)
	Invalidate()
}

type service struct {
	catalog     cards.Catalog
	executor    *Executor
	cache       *lru.Cache
	suggestions int
}

type ServiceOption func(*service)

// WithCacheSize sets the number of result sets kept. Zero disables caching.
func WithCacheSize(n int) ServiceOption {
	return func(s *service) {
		if n <= 0 {
			s.cache = nil
			return
		}
		cache, err := lru.New(n)
		if err == nil {
			s.cache = cache
		}
	}
}

// WithSuggestions sets how many name suggestions are returned. Zero
// disables suggestions.
func WithSuggestions(n int) ServiceOption {
	return func(s *service) {
		s.suggestions = n
	}
}

func NewService(catalog cards.Catalog, executor *Executor, opts ...ServiceOption) *service {
	cache, _ := lru.New(defaultCacheSize)
	s := &service{
		catalog:     catalog,
		executor:    executor,
		cache:       cache,
		suggestions: defaultSuggestions,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.executor == nil {
		s.executor = NewExecutor()
	}
	return s
}

func (s *service) Search(ctx context.Context, b Builder) (*Result, error) {
	root, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build search: %w", err)
	}

	key := CatalogName(s.catalog) + "|" + root.String()
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			res := cached.(*Result).clone()
			res.Cached = true
			return res, nil
		}
	}

	found, err := s.executor.Execute(ctx, root, s.catalog)
	if err != nil {
		return nil, err
	}

	res := &Result{Cards: found, Query: root}
	if len(found) == 0 && s.suggestions > 0 {
		if name, ok := nameCriterion(root); ok {
			res.Suggestions, err = s.suggest(ctx, name)
			if err != nil {
				slog.Warn("Failed to build name suggestions",
					slog.String("type", "db"),
					slog.String("name", name),
					slog.Any("error", err))
			}
		}
	}

	if s.cache != nil {
		s.cache.Add(key, res.clone())
	}
	return res, nil
}

// clone copies the slices of r so cached results never share backing
// arrays with what callers receive.
func (r *Result) clone() *Result {
	c := *r
	c.Cards = slices.Clone(r.Cards)
	c.Suggestions = slices.Clone(r.Suggestions)
	return &c
}

// Invalidate drops every cached result, e.g. after the catalog changed.
func (s *service) Invalidate() {
	if s.cache != nil {
		s.cache.Purge()
	}
}

// cardNames implements fuzzy.Source.
type cardNames []string

func (n cardNames) String(i int) string { return n[i] }
func (n cardNames) Len() int            { return len(n) }

func (s *service) suggest(ctx context.Context, name string) ([]string, error) {
	seen := make(map[string]struct{})
	var names cardNames
	err := s.catalog.Each(ctx, func(card *cards.Card) error {
		if _, ok := seen[card.Name]; ok || card.Name == "" {
			return nil
		}
		seen[card.Name] = struct{}{}
		names = append(names, card.Name)
		return nil
	})
	if err != nil {
		return nil, err
	}

	matches := fuzzy.FindFrom(strings.ToLower(name), lowered(names))
	out := make([]string, 0, min(len(matches), s.suggestions))
	for _, m := range matches {
		if len(out) == s.suggestions {
			break
		}
		out = append(out, names[m.Index])
	}
	return out, nil
}

func lowered(names cardNames) cardNames {
	out := make(cardNames, len(names))
	for i, n := range names {
		out[i] = strings.ToLower(n)
	}
	return out
}

// nameCriterion returns the first positive name leaf of the tree.
func nameCriterion(root Parameter) (string, bool) {
	var name string
	root.Walk(func(p Parameter) bool {
		if name != "" || p.Kind == KindNot {
			return false
		}
		if p.Kind == KindName && !p.Negated {
			name = p.Text
		}
		return true
	})
	return name, name != ""
}
