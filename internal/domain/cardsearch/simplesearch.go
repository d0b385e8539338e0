package cardsearch

import (
	"strings"

	"github.com/sylvanlibrary/cardsearch/internal/domain/colour"
)

// SimpleSearch builds a tree from a single free-text box plus a handful of
// colour and set toggles.
type SimpleSearch struct {
	Text         string
	IncludeName  bool
	IncludeRules bool
	IncludeTypes bool

	Colours []colour.Set

	// MatchColours requires every selected colour instead of any of them.
	MatchColours bool

	// ExcludeColours rejects cards having any colour that was not selected.
	ExcludeColours bool

	MulticolouredOnly bool
	SetCode           string
	CardType          string

	IncludeColourless bool

	// Exclusion picks how unselected colours are excluded. NewSimpleSearch
	// sets it to attach negated leaves directly to the root.
	Exclusion Exclusion
}

var _ Builder = SimpleSearch{}

// NewSimpleSearch returns a SimpleSearch using negated-leaf exclusion.
func NewSimpleSearch() SimpleSearch {
	return SimpleSearch{Exclusion: ExcludeWithNegatedLeaves}
}

// Build implements Builder.
func (s SimpleSearch) Build() (Parameter, error) {
	root := &node{}

	if text := strings.TrimSpace(s.Text); text != "" {
		var fields []Parameter
		if s.IncludeName {
			fields = append(fields, Name(text))
		}
		if s.IncludeRules {
			fields = append(fields, RulesText(text))
		}
		if s.IncludeTypes {
			fields = append(fields, Type(text), Subtype(text))
		}
		if len(fields) == 0 {
			fields = append(fields, Name(text))
		}
		root.add(Or(fields...))
	}

	if len(s.Colours) > 0 {
		leaves := make([]Parameter, 0, len(s.Colours))
		for _, c := range s.Colours {
			leaves = append(leaves, ColourMatch(c))
		}
		if s.MatchColours {
			root.add(And(leaves...))
		} else {
			root.add(Or(leaves...))
		}

		if s.ExcludeColours {
			exclude(root, s.Exclusion, ColourMatch, unselected(s.Colours, universe(s.IncludeColourless)))
		}
	}

	root.addText(Set, s.SetCode)
	if s.MulticolouredOnly {
		root.add(MulticolouredOnly())
	}
	root.addText(Type, s.CardType)

	return root.freeze(), nil
}
