package repositories

import (
	"fmt"
	"strings"

	"github.com/sylvanlibrary/cardsearch/internal/domain/cardsearch"
	"github.com/sylvanlibrary/cardsearch/internal/domain/colour"
)

var textColumns = map[cardsearch.Kind]string{
	cardsearch.KindName:        "c.name",
	cardsearch.KindRulesText:   "c.rules_text",
	cardsearch.KindFlavourText: "c.flavour_text",
	cardsearch.KindType:        "c.type",
	cardsearch.KindSubtype:     "c.subtype",
}

var numericColumns = map[cardsearch.Kind]string{
	cardsearch.KindCmc:       "c.cmc",
	cardsearch.KindPower:     "c.power",
	cardsearch.KindToughness: "c.toughness",
}

var colourColumns = map[cardsearch.Kind]string{
	cardsearch.KindColour:         "c.colour_flags",
	cardsearch.KindColourIdentity: "c.colour_identity_flags",
}

// WhereClause translates a search tree into a single SQL boolean expression
// with bun placeholders. Every leaf is NULL-safe so negation behaves exactly
// like Parameter.Matches.
func WhereClause(root cardsearch.Parameter) (string, []any) {
	w := &sqlWriter{}
	w.write(root)
	return w.sb.String(), w.args
}

type sqlWriter struct {
	sb   strings.Builder
	args []any
}

func (w *sqlWriter) write(p cardsearch.Parameter) {
	switch p.Kind {
	case cardsearch.KindAnd:
		w.group(p.Children, " AND ", "TRUE", false)
	case cardsearch.KindOr:
		w.group(p.Children, " OR ", "FALSE", false)
	case cardsearch.KindNot:
		w.group(p.Children, " AND ", "TRUE", true)
	default:
		if p.Negated {
			w.sb.WriteString("NOT ")
		}
		w.sb.WriteByte('(')
		w.leaf(p)
		w.sb.WriteByte(')')
	}
}

func (w *sqlWriter) group(children []cardsearch.Parameter, sep, empty string, negate bool) {
	if len(children) == 0 {
		w.sb.WriteString(empty)
		return
	}

	w.sb.WriteByte('(')
	for i, child := range children {
		if i > 0 {
			w.sb.WriteString(sep)
		}
		if negate {
			w.sb.WriteString("NOT (")
			w.write(child)
			w.sb.WriteByte(')')
			continue
		}
		w.write(child)
	}
	w.sb.WriteByte(')')
}

func (w *sqlWriter) leaf(p cardsearch.Parameter) {
	if col, ok := textColumns[p.Kind]; ok {
		fmt.Fprintf(&w.sb, "COALESCE(%s, '') <> '' AND strpos(lower(%s), lower(?)) > 0", col, col)
		w.args = append(w.args, p.Text)
		return
	}
	if col, ok := numericColumns[p.Kind]; ok {
		fmt.Fprintf(&w.sb, "COALESCE(%s %s ?, FALSE)", col, p.Operator.Symbol())
		w.args = append(w.args, p.Number)
		return
	}
	if col, ok := colourColumns[p.Kind]; ok {
		if p.Colour == colour.None {
			fmt.Fprintf(&w.sb, "%s = 0", col)
			return
		}
		fmt.Fprintf(&w.sb, "(%s & ?) = ?", col)
		w.args = append(w.args, int(p.Colour), int(p.Colour))
		return
	}

	switch p.Kind {
	case cardsearch.KindSet:
		w.sb.WriteString("COALESCE(c.set_code = ?, FALSE)")
		w.args = append(w.args, p.Text)
	case cardsearch.KindMulticoloured:
		w.sb.WriteString("(c.colour_flags & (c.colour_flags - 1)) <> 0")
	default:
		panic(fmt.Sprintf("repositories: unhandled parameter kind %s", p.Kind))
	}
}
