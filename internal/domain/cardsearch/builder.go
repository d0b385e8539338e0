package cardsearch

import (
	"strings"

	"github.com/sylvanlibrary/cardsearch/internal/domain/colour"
)

// Builder turns a set of search criteria into a Parameter tree. The root of
// every tree is an And node.
type Builder interface {
	Build() (Parameter, error)
}

// Comparison is a numeric criterion such as "cmc >= 3".
type Comparison struct {
	Operator Operator
	Value    float64
}

func AtLeast(v float64) Comparison { return Comparison{Operator: GTE, Value: v} }
func AtMost(v float64) Comparison  { return Comparison{Operator: LTE, Value: v} }
func Exactly(v float64) Comparison { return Comparison{Operator: EQ, Value: v} }

// ColourSelection is an ordered list of chosen colours plus the two
// toggles controlling how they are matched.
type ColourSelection struct {
	Colours []colour.Set

	// MatchExactly requires every selected colour instead of any of them.
	MatchExactly bool

	// ExcludeUnselected rejects cards having any colour that was not selected.
	ExcludeUnselected bool
}

// Exclusion selects how unselected colours are excluded from a search.
// Both styles produce the same results.
type Exclusion int

const (
	// ExcludeWithNot adds a single Not node holding one leaf per
	// unselected colour.
	ExcludeWithNot Exclusion = iota

	// ExcludeWithNegatedLeaves adds one negated leaf per unselected colour
	// directly to the enclosing And.
	ExcludeWithNegatedLeaves
)

// node accumulates the children of a root And before it is frozen.
type node struct {
	children []Parameter
}

func (n *node) add(p ...Parameter) {
	n.children = append(n.children, p...)
}

func (n *node) addText(leaf func(string) Parameter, text string) {
	if text = strings.TrimSpace(text); text != "" {
		n.add(leaf(text))
	}
}

func (n *node) addComparisons(leaf func(Operator, float64) (Parameter, error), comparisons []Comparison) error {
	for _, c := range comparisons {
		p, err := leaf(c.Operator, c.Value)
		if err != nil {
			return err
		}
		n.add(p)
	}
	return nil
}

func (n *node) freeze() Parameter {
	return And(n.children...)
}

// universe returns the colours considered when computing the complement of
// a selection.
func universe(includeColourless bool) []colour.Set {
	u := make([]colour.Set, 0, len(colour.Universe)+1)
	u = append(u, colour.Universe...)
	if includeColourless {
		u = append(u, colour.None)
	}
	return u
}

// unselected returns the universe colours not covered by selection.
func unselected(selection []colour.Set, u []colour.Set) []colour.Set {
	var mask colour.Set
	colourless := false
	for _, c := range selection {
		if c == colour.None {
			colourless = true
		}
		mask |= c
	}

	out := make([]colour.Set, 0, len(u))
	for _, c := range u {
		if c == colour.None {
			if !colourless {
				out = append(out, c)
			}
			continue
		}
		if mask&c == 0 {
			out = append(out, c)
		}
	}
	return out
}

// exclude attaches leaves rejecting every colour in excluded to root.
func exclude(root *node, style Exclusion, leaf func(colour.Set) Parameter, excluded []colour.Set) {
	if len(excluded) == 0 {
		return
	}

	switch style {
	case ExcludeWithNegatedLeaves:
		for _, c := range excluded {
			root.add(leaf(c).Negate())
		}
	default:
		leaves := make([]Parameter, 0, len(excluded))
		for _, c := range excluded {
			leaves = append(leaves, leaf(c))
		}
		root.add(Not(leaves...))
	}
}
