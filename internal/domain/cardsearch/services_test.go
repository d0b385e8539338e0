package cardsearch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sylvanlibrary/cardsearch/internal/domain/cards"
	"github.com/sylvanlibrary/cardsearch/internal/domain/cards/mock"
	"github.com/sylvanlibrary/cardsearch/internal/domain/colour"
	"github.com/sylvanlibrary/cardsearch/internal/gateways/memory"
	"go.uber.org/mock/gomock"
)

func eachFrom(list []*cards.Card) func(context.Context, func(*cards.Card) error) error {
	return func(_ context.Context, fn func(*cards.Card) error) error {
		for _, c := range list {
			if err := fn(c); err != nil {
				return err
			}
		}
		return nil
	}
}

func TestServiceSearch(t *testing.T) {
	svc := NewService(memory.NewCatalog("fixtures", fixtureCards()), NewExecutor())

	res, err := svc.Search(context.Background(), FieldSearch{
		Colours: ColourSelection{Colours: []colour.Set{colour.Green}},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{6, 7}, ids(res.Cards))
	assert.Equal(t, KindAnd, res.Query.Kind)
	assert.False(t, res.Cached)
	assert.Empty(t, res.Suggestions)
}

func TestServiceCachesResults(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mock.NewMockCatalog(ctrl)
	catalog.EXPECT().
		Each(gomock.Any(), gomock.Any()).
		DoAndReturn(eachFrom(fixtureCards())).
		Times(2)

	svc := NewService(catalog, NewExecutor(), WithSuggestions(0))
	search := FieldSearch{TypeText: "instant"}

	first, err := svc.Search(context.Background(), search)
	require.NoError(t, err)
	second, err := svc.Search(context.Background(), search)
	require.NoError(t, err)

	assert.False(t, first.Cached)
	assert.True(t, second.Cached)
	assert.Equal(t, ids(first.Cards), ids(second.Cards))

	svc.Invalidate()
	third, err := svc.Search(context.Background(), search)
	require.NoError(t, err)
	assert.False(t, third.Cached)
}

func TestServiceCachedResultsAreIsolated(t *testing.T) {
	svc := NewService(memory.NewCatalog("fixtures", fixtureCards()), NewExecutor())
	search := FieldSearch{Colours: ColourSelection{Colours: []colour.Set{colour.Green}}}

	first, err := svc.Search(context.Background(), search)
	require.NoError(t, err)
	require.Equal(t, []int64{6, 7}, ids(first.Cards))
	first.Cards[0] = &cards.Card{ID: 999}

	second, err := svc.Search(context.Background(), search)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, []int64{6, 7}, ids(second.Cards))

	second.Cards[1] = &cards.Card{ID: 998}
	third, err := svc.Search(context.Background(), search)
	require.NoError(t, err)
	assert.Equal(t, []int64{6, 7}, ids(third.Cards))
}

func TestServiceWithoutCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mock.NewMockCatalog(ctrl)
	catalog.EXPECT().
		Each(gomock.Any(), gomock.Any()).
		DoAndReturn(eachFrom(fixtureCards())).
		Times(2)

	svc := NewService(catalog, nil, WithCacheSize(0), WithSuggestions(0))
	for i := 0; i < 2; i++ {
		res, err := svc.Search(context.Background(), SimpleSearch{Text: "sol"})
		require.NoError(t, err)
		assert.False(t, res.Cached)
	}
}

func TestServiceSuggestsNames(t *testing.T) {
	svc := NewService(memory.NewCatalog("fixtures", fixtureCards()), NewExecutor(), WithSuggestions(2))

	res, err := svc.Search(context.Background(), FieldSearch{CardName: "tarmgoyf"})
	require.NoError(t, err)
	assert.Empty(t, res.Cards)
	require.NotEmpty(t, res.Suggestions)
	assert.Equal(t, "Tarmogoyf", res.Suggestions[0])
	assert.LessOrEqual(t, len(res.Suggestions), 2)
}

func TestServiceNoSuggestionsWithoutName(t *testing.T) {
	svc := NewService(memory.NewCatalog("fixtures", fixtureCards()), NewExecutor())

	res, err := svc.Search(context.Background(), FieldSearch{SetCode: "XXX"})
	require.NoError(t, err)
	assert.Empty(t, res.Cards)
	assert.Empty(t, res.Suggestions)
}

func TestServiceBuildError(t *testing.T) {
	svc := NewService(memory.NewCatalog("fixtures", nil), NewExecutor())

	_, err := svc.Search(context.Background(), FieldSearch{Cmc: []Comparison{{Operator: "NE", Value: 1}}})
	var invalid *InvalidOperatorError
	assert.True(t, errors.As(err, &invalid))
}

func TestNameCriterion(t *testing.T) {
	name, ok := nameCriterion(And(Not(Name("goblin")), Or(Name("elf"))))
	assert.True(t, ok)
	assert.Equal(t, "elf", name)

	_, ok = nameCriterion(And(Name("elf").Negate()))
	assert.False(t, ok)
}
