package cardsearch

import (
	"fmt"
	"strings"
)

// Operator is the comparison applied by numeric leaves.
type Operator string

const (
	GTE Operator = "GTE"
	LTE Operator = "LTE"
	EQ  Operator = "EQ"
)

// ParseOperator accepts GTE/LTE/EQ in any case as well as >=, <= and =.
func ParseOperator(s string) (Operator, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "GTE", ">=":
		return GTE, nil
	case "LTE", "<=":
		return LTE, nil
	case "EQ", "=", "==":
		return EQ, nil
	}
	return "", &InvalidOperatorError{Operator: Operator(s)}
}

// Valid reports whether o is one of the supported operators.
func (o Operator) Valid() bool {
	return o == GTE || o == LTE || o == EQ
}

// Symbol returns the comparison symbol used when rendering trees and SQL.
func (o Operator) Symbol() string {
	switch o {
	case GTE:
		return ">="
	case LTE:
		return "<="
	case EQ:
		return "="
	}
	return "?"
}

// compare treats an absent attribute as never satisfying the comparison.
func (o Operator) compare(field *float64, operand float64) bool {
	if field == nil {
		return false
	}
	switch o {
	case GTE:
		return *field >= operand
	case LTE:
		return *field <= operand
	case EQ:
		return *field == operand
	}
	panic(fmt.Sprintf("cardsearch: invalid operator %q", string(o)))
}
