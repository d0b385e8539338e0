package cardsearch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sylvanlibrary/cardsearch/internal/domain/cards"
	"github.com/sylvanlibrary/cardsearch/internal/domain/colour"
)

// must unwraps a numeric leaf constructor whose operator is known valid.
func must(p Parameter, err error) Parameter {
	if err != nil {
		panic(err)
	}
	return p
}

func TestLeafMatches(t *testing.T) {
	angel := fixtureCards()[0]
	mystery := fixtureCards()[9]

	tests := []struct {
		name  string
		param Parameter
		card  *cards.Card
		want  bool
	}{
		{name: "name ignores case", param: Name("serra"), card: angel, want: true},
		{name: "name miss", param: Name("goblin"), card: angel, want: false},
		{name: "rules text", param: RulesText("VIGILANCE"), card: angel, want: true},
		{name: "type", param: Type("creat"), card: angel, want: true},
		{name: "subtype", param: Subtype("angel"), card: angel, want: true},
		{name: "absent flavour never matches", param: FlavourText("a"), card: angel, want: false},
		{name: "negated absent flavour matches", param: FlavourText("a").Negate(), card: angel, want: true},
		{name: "set exact", param: Set("LEA"), card: angel, want: true},
		{name: "set is not a substring test", param: Set("LE"), card: angel, want: false},
		{name: "absent set", param: Set("LEA"), card: mystery, want: false},
		{name: "colour present", param: ColourMatch(colour.White), card: angel, want: true},
		{name: "colour absent", param: ColourMatch(colour.Blue), card: angel, want: false},
		{name: "negated colour absent", param: ColourMatch(colour.Blue).Negate(), card: angel, want: true},
		{name: "colourless operand on coloured card", param: ColourMatch(colour.None), card: angel, want: false},
		{name: "colourless operand on colourless card", param: ColourMatch(colour.None), card: mystery, want: true},
		{name: "identity", param: ColourIdentityMatch(colour.White), card: fixtureCards()[8], want: true},
		{name: "identity is not colour", param: ColourMatch(colour.White), card: fixtureCards()[8], want: false},
		{name: "multicoloured one colour", param: MulticolouredOnly(), card: angel, want: false},
		{name: "multicoloured two colours", param: MulticolouredOnly(), card: fixtureCards()[1], want: true},
		{name: "multi-bit colour operand", param: ColourMatch(colour.White | colour.Blue), card: fixtureCards()[2], want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.param.Matches(tt.card))
		})
	}
}

func TestNumericLeaves(t *testing.T) {
	four := &cards.Card{Cmc: cards.Number(4), Power: cards.Number(2)}
	absent := &cards.Card{}

	gte, err := Cmc(GTE, 3)
	require.NoError(t, err)
	lte, err := Cmc(LTE, 5)
	require.NoError(t, err)
	eq, err := Cmc(EQ, 4)
	require.NoError(t, err)

	assert.True(t, gte.Matches(four))
	assert.True(t, lte.Matches(four))
	assert.True(t, eq.Matches(four))
	assert.False(t, must(Power(GTE, 3)).Matches(four))
	assert.True(t, must(Power(LTE, 2)).Matches(four))

	for _, p := range []Parameter{gte, lte, eq} {
		assert.False(t, p.Matches(absent), p.String())
	}
	assert.False(t, must(Toughness(EQ, 0)).Matches(absent))
}

func TestInvalidOperator(t *testing.T) {
	_, err := Cmc(Operator("GT"), 3)
	require.Error(t, err)

	var invalid *InvalidOperatorError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "cmc", invalid.Attribute)
	assert.Equal(t, Operator("GT"), invalid.Operator)
	assert.EqualError(t, err, `invalid operator "GT" for cmc`)

	_, err = ParseOperator("between")
	require.True(t, errors.As(err, &invalid))
	assert.Empty(t, invalid.Attribute)
	assert.EqualError(t, err, `invalid operator "between"`)

	op, err := ParseOperator(">=")
	require.NoError(t, err)
	assert.Equal(t, GTE, op)
}

func TestEmptyCombinators(t *testing.T) {
	for _, c := range fixtureCards() {
		assert.True(t, And().Matches(c))
		assert.False(t, Or().Matches(c))
		assert.True(t, Not().Matches(c))
	}
}

func TestNotEqualsAndOfNegations(t *testing.T) {
	children := []Parameter{
		ColourMatch(colour.Black),
		ColourMatch(colour.Red),
		Name("charm"),
		must(Cmc(GTE, 4)),
	}

	negated := make([]Parameter, 0, len(children))
	for _, c := range children {
		negated = append(negated, c.Negate())
	}

	list := fixtureCards()
	assert.Equal(t, filter(Not(children...), list), filter(And(negated...), list))
	assert.Equal(t, filter(Not(children...), list), filter(Not(Or(children...)), list))
}

func TestCombinatorsOwnChildren(t *testing.T) {
	children := []Parameter{ColourMatch(colour.White)}
	or := Or(children...)
	children[0] = ColourMatch(colour.Red)

	assert.True(t, or.Matches(card(1, "x", colour.White)))
	assert.False(t, or.Matches(card(2, "y", colour.Red)))
}

func TestString(t *testing.T) {
	root := And(
		Name("elf"),
		Or(ColourMatch(colour.White), ColourMatch(colour.Blue)),
		ColourMatch(colour.Black).Negate(),
		must(Cmc(GTE, 3)),
		Set("LEA"),
		MulticolouredOnly(),
		Not(ColourIdentityMatch(colour.None)),
	)

	assert.Equal(t,
		`and(name~"elf", or(colour=w, colour=u), !colour=b, cmc>=3, set="LEA", multicoloured, not(identity=c))`,
		root.String())
	assert.Equal(t, 8, root.LeafCount())
}
