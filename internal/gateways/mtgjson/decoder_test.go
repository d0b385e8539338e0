package mtgjson

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sylvanlibrary/cardsearch/internal/domain/cards"
	"github.com/sylvanlibrary/cardsearch/internal/domain/colour"
)

const allSets = `{
  "M10": {
    "code": "M10",
    "cards": [
      {
        "name": "Tarmogoyf",
        "text": "Tarmogoyf's power is equal to the number of card types among cards in all graveyards.",
        "types": ["Creature"],
        "subtypes": ["Lhurgoyf"],
        "convertedManaCost": 2,
        "power": "*",
        "toughness": "1+*",
        "colors": ["G"],
        "colorIdentity": ["G"]
      }
    ]
  },
  "LEA": {
    "code": "LEA",
    "cards": [
      {
        "name": "Serra Angel",
        "text": "Flying, vigilance",
        "flavor": "Born with wings of light.",
        "types": ["Creature"],
        "subtypes": ["Angel"],
        "cmc": 5,
        "power": "4",
        "toughness": "4",
        "colors": ["White"],
        "colorIdentity": ["W"]
      },
      {
        "name": "Plains",
        "supertypes": ["Basic"],
        "types": ["Land"],
        "subtypes": ["Plains"],
        "colorIdentity": ["W"]
      }
    ]
  }
}`

func TestDecode(t *testing.T) {
	list, err := Decode(strings.NewReader(allSets))
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, &cards.Card{
		ID:             1,
		Name:           "Serra Angel",
		RulesText:      "Flying, vigilance",
		FlavourText:    "Born with wings of light.",
		Type:           "Creature",
		Subtype:        "Angel",
		Cmc:            cards.Number(5),
		Power:          cards.Number(4),
		Toughness:      cards.Number(4),
		Colours:        colour.White,
		ColourIdentity: colour.White,
		SetCode:        "LEA",
	}, list[0])

	plains := list[1]
	assert.Equal(t, int64(2), plains.ID)
	assert.Equal(t, "Basic Land", plains.Type)
	assert.Equal(t, colour.None, plains.Colours)
	assert.Equal(t, colour.White, plains.ColourIdentity)
	assert.Nil(t, plains.Cmc)

	goyf := list[2]
	assert.Equal(t, "M10", goyf.SetCode)
	assert.Equal(t, cards.Number(2), goyf.Cmc)
	assert.Nil(t, goyf.Power)
	assert.Nil(t, goyf.Toughness)
	assert.Equal(t, colour.Green, goyf.Colours)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(strings.NewReader(`[`))
	assert.Error(t, err)

	_, err = Decode(strings.NewReader(`{"X": {"code": "X", "cards": [{"name": "Odd", "colors": ["Purple"]}]}}`))
	var unknown *colour.UnknownColourError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "Purple", unknown.Token)
}
