package cardsearch

import "github.com/sylvanlibrary/cardsearch/internal/domain/colour"

// FieldSearch builds a tree from a form of individual card fields. Every
// criterion left empty adds no constraint.
type FieldSearch struct {
	CardName    string
	RulesText   string
	FlavourText string
	TypeText    string
	SubtypeText string

	Cmc       []Comparison
	Power     []Comparison
	Toughness []Comparison

	Colours          ColourSelection
	ColourIdentities ColourSelection

	SetCode           string
	MulticolouredOnly bool

	// IncludeColourless adds colourless to the universe used when
	// excluding unselected colours.
	IncludeColourless bool

	// Exclusion picks how unselected colours are excluded. Defaults to a
	// Not node.
	Exclusion Exclusion
}

var _ Builder = FieldSearch{}

// Build implements Builder.
func (s FieldSearch) Build() (Parameter, error) {
	root := &node{}

	root.addText(Name, s.CardName)
	root.addText(RulesText, s.RulesText)
	root.addText(FlavourText, s.FlavourText)
	root.addText(Type, s.TypeText)
	root.addText(Subtype, s.SubtypeText)

	if err := root.addComparisons(Cmc, s.Cmc); err != nil {
		return Parameter{}, err
	}
	if err := root.addComparisons(Power, s.Power); err != nil {
		return Parameter{}, err
	}
	if err := root.addComparisons(Toughness, s.Toughness); err != nil {
		return Parameter{}, err
	}

	u := universe(s.IncludeColourless)
	s.addSelection(root, s.Colours, ColourMatch, u)
	s.addSelection(root, s.ColourIdentities, ColourIdentityMatch, u)

	root.addText(Set, s.SetCode)
	if s.MulticolouredOnly {
		root.add(MulticolouredOnly())
	}

	return root.freeze(), nil
}

// addSelection applies the match-exactly and exclude-unselected toggles of
// one colour attribute. Colour and colour identity never share nodes.
func (s FieldSearch) addSelection(root *node, sel ColourSelection, leaf func(colour.Set) Parameter, u []colour.Set) {
	if len(sel.Colours) == 0 {
		return
	}

	leaves := make([]Parameter, 0, len(sel.Colours))
	for _, c := range sel.Colours {
		leaves = append(leaves, leaf(c))
	}

	if sel.MatchExactly {
		root.add(leaves...)
	} else {
		root.add(Or(leaves...))
	}

	if sel.ExcludeUnselected {
		exclude(root, s.Exclusion, leaf, unselected(sel.Colours, u))
	}
}
