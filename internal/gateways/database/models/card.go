package models

import (
	"time"

	"github.com/sylvanlibrary/cardsearch/internal/domain/cards"
	"github.com/sylvanlibrary/cardsearch/internal/domain/colour"
	"github.com/uptrace/bun"
)

type Card struct {
	bun.BaseModel `bun:"table:cards,alias:c"`

	ID                  int64     `bun:"id,pk"`
	Name                string    `bun:"name,notnull"`
	RulesText           string    `bun:"rules_text,nullzero"`
	FlavourText         string    `bun:"flavour_text,nullzero"`
	Type                string    `bun:"type,nullzero"`
	Subtype             string    `bun:"subtype,nullzero"`
	Cmc                 *float64  `bun:"cmc"`
	Power               *float64  `bun:"power"`
	Toughness           *float64  `bun:"toughness"`
	ColourFlags         int16     `bun:"colour_flags,notnull,default:0"`
	ColourIdentityFlags int16     `bun:"colour_identity_flags,notnull,default:0"`
	SetCode             string    `bun:"set_code,nullzero"`
	CreatedAt           time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt           time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

func (c *Card) ToDomain() *cards.Card {
	return &cards.Card{
		ID:             c.ID,
		Name:           c.Name,
		RulesText:      c.RulesText,
		FlavourText:    c.FlavourText,
		Type:           c.Type,
		Subtype:        c.Subtype,
		Cmc:            c.Cmc,
		Power:          c.Power,
		Toughness:      c.Toughness,
		Colours:        colour.Set(c.ColourFlags),
		ColourIdentity: colour.Set(c.ColourIdentityFlags),
		SetCode:        c.SetCode,
	}
}

func FromDomain(card *cards.Card) *Card {
	return &Card{
		ID:                  card.ID,
		Name:                card.Name,
		RulesText:           card.RulesText,
		FlavourText:         card.FlavourText,
		Type:                card.Type,
		Subtype:             card.Subtype,
		Cmc:                 card.Cmc,
		Power:               card.Power,
		Toughness:           card.Toughness,
		ColourFlags:         int16(card.Colours),
		ColourIdentityFlags: int16(card.ColourIdentity),
		SetCode:             card.SetCode,
	}
}
