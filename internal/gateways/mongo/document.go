package mongo

import (
	"github.com/sylvanlibrary/cardsearch/internal/domain/cards"
	"github.com/sylvanlibrary/cardsearch/internal/domain/colour"
)

// cardDocument is the stored shape of a card. Absent attributes are omitted
// rather than stored as empty values so that text and numeric filters never
// match them.
type cardDocument struct {
	ID                  int64    `bson:"_id"`
	Name                string   `bson:"name,omitempty"`
	RulesText           string   `bson:"rules_text,omitempty"`
	FlavourText         string   `bson:"flavour_text,omitempty"`
	Type                string   `bson:"type,omitempty"`
	Subtype             string   `bson:"subtype,omitempty"`
	Cmc                 *float64 `bson:"cmc,omitempty"`
	Power               *float64 `bson:"power,omitempty"`
	Toughness           *float64 `bson:"toughness,omitempty"`
	ColourFlags         int32    `bson:"colour_flags"`
	ColourIdentityFlags int32    `bson:"colour_identity_flags"`
	SetCode             string   `bson:"set_code,omitempty"`
}

func (d *cardDocument) toDomain() *cards.Card {
	return &cards.Card{
		ID:             d.ID,
		Name:           d.Name,
		RulesText:      d.RulesText,
		FlavourText:    d.FlavourText,
		Type:           d.Type,
		Subtype:        d.Subtype,
		Cmc:            d.Cmc,
		Power:          d.Power,
		Toughness:      d.Toughness,
		Colours:        colour.Set(d.ColourFlags),
		ColourIdentity: colour.Set(d.ColourIdentityFlags),
		SetCode:        d.SetCode,
	}
}

func fromDomain(card *cards.Card) *cardDocument {
	return &cardDocument{
		ID:                  card.ID,
		Name:                card.Name,
		RulesText:           card.RulesText,
		FlavourText:         card.FlavourText,
		Type:                card.Type,
		Subtype:             card.Subtype,
		Cmc:                 card.Cmc,
		Power:               card.Power,
		Toughness:           card.Toughness,
		ColourFlags:         int32(card.Colours),
		ColourIdentityFlags: int32(card.ColourIdentity),
		SetCode:             card.SetCode,
	}
}
