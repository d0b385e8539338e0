package cardsearch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sylvanlibrary/cardsearch/internal/domain/cards"
	"github.com/sylvanlibrary/cardsearch/internal/domain/colour"
)

// Kind tags a Parameter as either a combinator or one of the leaf predicates.
type Kind int

const (
	KindAnd Kind = iota
	KindOr
	KindNot

	KindName
	KindRulesText
	KindFlavourText
	KindType
	KindSubtype
	KindCmc
	KindPower
	KindToughness
	KindColour
	KindColourIdentity
	KindSet
	KindMulticoloured
)

var kindNames = map[Kind]string{
	KindAnd:            "and",
	KindOr:             "or",
	KindNot:            "not",
	KindName:           "name",
	KindRulesText:      "rules",
	KindFlavourText:    "flavour",
	KindType:           "type",
	KindSubtype:        "subtype",
	KindCmc:            "cmc",
	KindPower:          "power",
	KindToughness:      "toughness",
	KindColour:         "colour",
	KindColourIdentity: "identity",
	KindSet:            "set",
	KindMulticoloured:  "multicoloured",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsCombinator reports whether nodes of this kind hold children.
func (k Kind) IsCombinator() bool {
	return k == KindAnd || k == KindOr || k == KindNot
}

// Parameter is one node of a search tree. Combinators use Children; leaves
// use the operand field matching their kind. Negated inverts a leaf's result
// and is ignored on combinators.
type Parameter struct {
	Kind     Kind
	Text     string
	Number   float64
	Operator Operator
	Colour   colour.Set
	Negated  bool
	Children []Parameter
}

func textLeaf(kind Kind, text string) Parameter {
	return Parameter{Kind: kind, Text: text}
}

// Name matches cards whose name contains text, ignoring case.
func Name(text string) Parameter { return textLeaf(KindName, text) }

// RulesText matches cards whose rules text contains text, ignoring case.
func RulesText(text string) Parameter { return textLeaf(KindRulesText, text) }

// FlavourText matches cards whose flavour text contains text, ignoring case.
func FlavourText(text string) Parameter { return textLeaf(KindFlavourText, text) }

// Type matches cards whose type line contains text, ignoring case.
func Type(text string) Parameter { return textLeaf(KindType, text) }

// Subtype matches cards whose subtypes contain text, ignoring case.
func Subtype(text string) Parameter { return textLeaf(KindSubtype, text) }

// Set matches cards printed in the set with exactly this code.
func Set(code string) Parameter { return textLeaf(KindSet, code) }

func numericLeaf(kind Kind, op Operator, value float64) (Parameter, error) {
	if !op.Valid() {
		return Parameter{}, &InvalidOperatorError{Attribute: kind.String(), Operator: op}
	}
	return Parameter{Kind: kind, Number: value, Operator: op}, nil
}

// Cmc compares the converted mana cost of a card against value.
func Cmc(op Operator, value float64) (Parameter, error) { return numericLeaf(KindCmc, op, value) }

// Power compares the numeric power of a card against value.
func Power(op Operator, value float64) (Parameter, error) { return numericLeaf(KindPower, op, value) }

// Toughness compares the numeric toughness of a card against value.
func Toughness(op Operator, value float64) (Parameter, error) {
	return numericLeaf(KindToughness, op, value)
}

// ColourMatch matches cards that have every colour in c. colour.None
// matches colourless cards only.
func ColourMatch(c colour.Set) Parameter {
	return Parameter{Kind: KindColour, Colour: c}
}

// ColourIdentityMatch is ColourMatch applied to the colour identity.
func ColourIdentityMatch(c colour.Set) Parameter {
	return Parameter{Kind: KindColourIdentity, Colour: c}
}

// MulticolouredOnly matches cards with two or more colours.
func MulticolouredOnly() Parameter {
	return Parameter{Kind: KindMulticoloured}
}

func combinator(kind Kind, children []Parameter) Parameter {
	owned := make([]Parameter, len(children))
	copy(owned, children)
	return Parameter{Kind: kind, Children: owned}
}

// And matches when every child matches. An empty And matches everything.
func And(children ...Parameter) Parameter { return combinator(KindAnd, children) }

// Or matches when at least one child matches. An empty Or matches nothing.
func Or(children ...Parameter) Parameter { return combinator(KindOr, children) }

// Not matches when none of its children match.
func Not(children ...Parameter) Parameter { return combinator(KindNot, children) }

// Negate returns a copy of p with its leaf result inverted.
func (p Parameter) Negate() Parameter {
	p.Negated = !p.Negated
	return p
}

// Matches evaluates the tree rooted at p against card.
func (p Parameter) Matches(card *cards.Card) bool {
	switch p.Kind {
	case KindAnd:
		for _, child := range p.Children {
			if !child.Matches(card) {
				return false
			}
		}
		return true
	case KindOr:
		for _, child := range p.Children {
			if child.Matches(card) {
				return true
			}
		}
		return false
	case KindNot:
		for _, child := range p.Children {
			if child.Matches(card) {
				return false
			}
		}
		return true
	}

	return p.matchLeaf(card) != p.Negated
}

func (p Parameter) matchLeaf(card *cards.Card) bool {
	switch p.Kind {
	case KindName:
		return containsFold(card.Name, p.Text)
	case KindRulesText:
		return containsFold(card.RulesText, p.Text)
	case KindFlavourText:
		return containsFold(card.FlavourText, p.Text)
	case KindType:
		return containsFold(card.Type, p.Text)
	case KindSubtype:
		return containsFold(card.Subtype, p.Text)
	case KindCmc:
		return p.Operator.compare(card.Cmc, p.Number)
	case KindPower:
		return p.Operator.compare(card.Power, p.Number)
	case KindToughness:
		return p.Operator.compare(card.Toughness, p.Number)
	case KindColour:
		return hasColours(card.Colours, p.Colour)
	case KindColourIdentity:
		return hasColours(card.ColourIdentity, p.Colour)
	case KindSet:
		return card.SetCode != "" && card.SetCode == p.Text
	case KindMulticoloured:
		return card.Colours.Count() >= 2
	default:
		panic(fmt.Sprintf("cardsearch: unhandled parameter kind %d", p.Kind))
	}
}

func containsFold(field, text string) bool {
	if field == "" {
		return false
	}
	return strings.Contains(strings.ToLower(field), strings.ToLower(text))
}

func hasColours(mask, want colour.Set) bool {
	if want == colour.None {
		return mask == colour.None
	}
	return mask.Has(want)
}

// Walk calls fn for p and every descendant in pre-order. Returning false
// from fn skips the node's children.
func (p Parameter) Walk(fn func(Parameter) bool) {
	if !fn(p) {
		return
	}
	for _, child := range p.Children {
		child.Walk(fn)
	}
}

// LeafCount returns the number of leaf predicates in the tree.
func (p Parameter) LeafCount() int {
	n := 0
	p.Walk(func(node Parameter) bool {
		if !node.Kind.IsCombinator() {
			n++
		}
		return true
	})
	return n
}

// String renders the tree in a stable form, e.g.
// and(name~"elf", or(colour=w, colour=u), !colour=b).
func (p Parameter) String() string {
	var sb strings.Builder
	p.write(&sb)
	return sb.String()
}

func (p Parameter) write(sb *strings.Builder) {
	if p.Kind.IsCombinator() {
		sb.WriteString(p.Kind.String())
		sb.WriteByte('(')
		for i, child := range p.Children {
			if i > 0 {
				sb.WriteString(", ")
			}
			child.write(sb)
		}
		sb.WriteByte(')')
		return
	}

	if p.Negated {
		sb.WriteByte('!')
	}
	sb.WriteString(p.Kind.String())
	switch p.Kind {
	case KindCmc, KindPower, KindToughness:
		sb.WriteString(p.Operator.Symbol())
		sb.WriteString(strconv.FormatFloat(p.Number, 'g', -1, 64))
	case KindColour, KindColourIdentity:
		sb.WriteByte('=')
		sb.WriteString(p.Colour.String())
	case KindSet:
		sb.WriteByte('=')
		sb.WriteString(strconv.Quote(p.Text))
	case KindMulticoloured:
	default:
		sb.WriteByte('~')
		sb.WriteString(strconv.Quote(p.Text))
	}
}
