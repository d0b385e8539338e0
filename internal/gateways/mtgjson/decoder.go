package mtgjson

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/sylvanlibrary/cardsearch/internal/domain/cards"
	"github.com/sylvanlibrary/cardsearch/internal/domain/colour"
)

type setData struct {
	Code  string     `json:"code"`
	Name  string     `json:"name"`
	Cards []cardData `json:"cards"`
}

type cardData struct {
	Name              string   `json:"name"`
	Text              string   `json:"text"`
	Flavor            string   `json:"flavor"`
	FlavorText        string   `json:"flavorText"`
	Types             []string `json:"types"`
	Supertypes        []string `json:"supertypes"`
	Subtypes          []string `json:"subtypes"`
	Cmc               *float64 `json:"cmc"`
	ConvertedManaCost *float64 `json:"convertedManaCost"`
	Power             string   `json:"power"`
	Toughness         string   `json:"toughness"`
	Colors            []string `json:"colors"`
	ColorIdentity     []string `json:"colorIdentity"`
}

// Decode reads an AllSets document and returns one card per printing,
// ordered by set code and then by position within the set. IDs are
// assigned sequentially from 1 in that order.
func Decode(r io.Reader) ([]*cards.Card, error) {
	var sets map[string]setData
	if err := json.NewDecoder(r).Decode(&sets); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}

	keys := make([]string, 0, len(sets))
	for key := range sets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var (
		result []*cards.Card
		nextID int64 = 1
	)
	for _, key := range keys {
		set := sets[key]
		code := set.Code
		if code == "" {
			code = key
		}

		for i := range set.Cards {
			card, err := set.Cards[i].toCard(nextID, code)
			if err != nil {
				return nil, fmt.Errorf("set %s card %q: %w", code, set.Cards[i].Name, err)
			}
			result = append(result, card)
			nextID++
		}
	}
	return result, nil
}

func (d *cardData) toCard(id int64, setCode string) (*cards.Card, error) {
	colours, err := parseColours(d.Colors)
	if err != nil {
		return nil, err
	}
	identity, err := parseColours(d.ColorIdentity)
	if err != nil {
		return nil, err
	}

	cmc := d.ConvertedManaCost
	if cmc == nil {
		cmc = d.Cmc
	}
	flavour := d.FlavorText
	if flavour == "" {
		flavour = d.Flavor
	}

	typeLine := make([]string, 0, len(d.Supertypes)+len(d.Types))
	typeLine = append(typeLine, d.Supertypes...)
	typeLine = append(typeLine, d.Types...)

	return &cards.Card{
		ID:             id,
		Name:           d.Name,
		RulesText:      d.Text,
		FlavourText:    flavour,
		Type:           strings.Join(typeLine, " "),
		Subtype:        strings.Join(d.Subtypes, " "),
		Cmc:            cmc,
		Power:          parseNumber(d.Power),
		Toughness:      parseNumber(d.Toughness),
		Colours:        colours,
		ColourIdentity: identity,
		SetCode:        setCode,
	}, nil
}

// parseColours accepts both single-letter codes and full colour names,
// which older datasets use for the colors field.
func parseColours(tokens []string) (colour.Set, error) {
	if len(tokens) == 0 {
		return colour.None, nil
	}
	if set, err := colour.CodesToFlags(tokens); err == nil {
		return set, nil
	}
	return colour.NamesToFlags(tokens)
}

// parseNumber returns nil for values such as "*" or "1+*".
func parseNumber(value string) *float64 {
	if value == "" {
		return nil
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return cards.Number(n)
}
