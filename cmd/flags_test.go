package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sylvanlibrary/cardsearch/internal/domain/cards"
	"github.com/sylvanlibrary/cardsearch/internal/domain/cardsearch"
	"github.com/sylvanlibrary/cardsearch/internal/domain/colour"
)

func TestParseComparison(t *testing.T) {
	tests := []struct {
		in      string
		want    cardsearch.Comparison
		wantErr bool
	}{
		{in: ">=3", want: cardsearch.AtLeast(3)},
		{in: "<= 2.5", want: cardsearch.AtMost(2.5)},
		{in: "==1", want: cardsearch.Exactly(1)},
		{in: "=0", want: cardsearch.Exactly(0)},
		{in: "gte:4", want: cardsearch.AtLeast(4)},
		{in: "EQ:7", want: cardsearch.Exactly(7)},
		{in: "3", wantErr: true},
		{in: "ne:3", wantErr: true},
		{in: ">=x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseComparison(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseColours(t *testing.T) {
	got, err := parseColours([]string{"w,u", "black", "c"})
	require.NoError(t, err)
	assert.Equal(t, []colour.Set{colour.White, colour.Blue, colour.Black, colour.None}, got)

	_, err = parseColours([]string{"purple"})
	assert.Error(t, err)
}

func TestFieldFlagsBuild(t *testing.T) {
	search, err := fieldFlags{
		name:           "angel",
		cmc:            []string{">=4"},
		colours:        []string{"w"},
		coloursExclude: true,
		exclusion:      "leaves",
	}.build()
	require.NoError(t, err)

	assert.Equal(t, "angel", search.CardName)
	assert.Equal(t, []cardsearch.Comparison{cardsearch.AtLeast(4)}, search.Cmc)
	assert.True(t, search.Colours.ExcludeUnselected)
	assert.Equal(t, cardsearch.ExcludeWithNegatedLeaves, search.Exclusion)

	_, err = fieldFlags{exclusion: "sideways"}.build()
	assert.Error(t, err)
}

func TestSimpleFlagsBuild(t *testing.T) {
	search, err := simpleFlags{rules: true, colours: []string{"r"}, exclusion: "not"}.build("deals 3 damage")
	require.NoError(t, err)

	assert.Equal(t, "deals 3 damage", search.Text)
	assert.True(t, search.IncludeRules)
	assert.Equal(t, []colour.Set{colour.Red}, search.Colours)
	assert.Equal(t, cardsearch.ExcludeWithNot, search.Exclusion)
}

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	err := printResult(&buf, &cardsearch.Result{
		Query: cardsearch.And(cardsearch.Name("angel")),
		Cards: []*cards.Card{{
			Name:      "Serra Angel",
			SetCode:   "LEA",
			Type:      "Creature",
			Subtype:   "Angel",
			Cmc:       cards.Number(5),
			Power:     cards.Number(4),
			Toughness: cards.Number(4),
			Colours:   colour.White,
		}},
		Cached: true,
	}, true)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `query: and(name~"angel")`)
	assert.Contains(t, out, "Serra Angel")
	assert.Contains(t, out, "Creature - Angel")
	assert.Contains(t, out, "4/4")
	assert.Contains(t, out, "1 card(s) (cached)")
}

func TestPrintResultSuggestions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printResult(&buf, &cardsearch.Result{Suggestions: []string{"Tarmogoyf"}}, false))
	assert.Contains(t, buf.String(), `Did you mean: "Tarmogoyf"?`)
}
