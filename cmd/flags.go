package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sylvanlibrary/cardsearch/internal/domain/cardsearch"
	"github.com/sylvanlibrary/cardsearch/internal/domain/colour"
)

var symbolPrefixes = []string{">=", "<=", "==", "="}

// parseComparison accepts ">=3", "<=2.5", "=1" and the word forms
// "gte:3", "lte:2", "eq:1".
func parseComparison(s string) (cardsearch.Comparison, error) {
	s = strings.TrimSpace(s)

	var opText, valueText string
	for _, prefix := range symbolPrefixes {
		if strings.HasPrefix(s, prefix) {
			opText, valueText = prefix, s[len(prefix):]
			break
		}
	}
	if opText == "" {
		var ok bool
		opText, valueText, ok = strings.Cut(s, ":")
		if !ok {
			return cardsearch.Comparison{}, fmt.Errorf("comparison %q needs an operator such as >=3 or gte:3", s)
		}
	}

	op, err := cardsearch.ParseOperator(opText)
	if err != nil {
		return cardsearch.Comparison{}, err
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(valueText), 64)
	if err != nil {
		return cardsearch.Comparison{}, fmt.Errorf("comparison %q has no numeric value", s)
	}
	return cardsearch.Comparison{Operator: op, Value: value}, nil
}

func parseComparisons(values []string) ([]cardsearch.Comparison, error) {
	out := make([]cardsearch.Comparison, 0, len(values))
	for _, v := range values {
		c, err := parseComparison(v)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// parseColours splits comma separated flag values into a colour selection.
func parseColours(values []string) ([]colour.Set, error) {
	var tokens []string
	for _, v := range values {
		tokens = append(tokens, strings.Split(v, ",")...)
	}
	return colour.ParseSelection(tokens)
}

func parseExclusion(s string) (cardsearch.Exclusion, error) {
	switch strings.ToLower(s) {
	case "not":
		return cardsearch.ExcludeWithNot, nil
	case "leaves":
		return cardsearch.ExcludeWithNegatedLeaves, nil
	}
	return 0, fmt.Errorf("unknown exclusion style %q, use not or leaves", s)
}
