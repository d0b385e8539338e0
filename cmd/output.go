package cmd

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/sylvanlibrary/cardsearch/internal/domain/cards"
	"github.com/sylvanlibrary/cardsearch/internal/domain/cardsearch"
)

func printResult(w io.Writer, res *cardsearch.Result, showQuery bool) error {
	if showQuery {
		fmt.Fprintf(w, "query: %s\n\n", res.Query)
	}

	if len(res.Cards) == 0 {
		fmt.Fprintln(w, "No cards found.")
		if len(res.Suggestions) > 0 {
			fmt.Fprintf(w, "Did you mean: %s?\n", joinQuoted(res.Suggestions))
		}
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSET\tCOLOUR\tCMC\tTYPE\tP/T")
	for _, card := range res.Cards {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			card.Name,
			card.SetCode,
			card.Colours,
			number(card.Cmc),
			typeLine(card),
			powerToughness(card),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%d card(s)", len(res.Cards))
	if res.Cached {
		fmt.Fprint(w, " (cached)")
	}
	fmt.Fprintln(w)
	return nil
}

func number(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}

func typeLine(card *cards.Card) string {
	if card.Subtype == "" {
		return card.Type
	}
	return card.Type + " - " + card.Subtype
}

func powerToughness(card *cards.Card) string {
	if card.Power == nil && card.Toughness == nil {
		return ""
	}
	return number(card.Power) + "/" + number(card.Toughness)
}

func joinQuoted(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += strconv.Quote(n)
	}
	return out
}
