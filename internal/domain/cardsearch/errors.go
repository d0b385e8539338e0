package cardsearch

import (
	"errors"
	"fmt"
)

// ErrNilCatalog is returned when a search is executed without a catalog.
var ErrNilCatalog = errors.New("cardsearch: nil catalog")

// InvalidOperatorError is returned when a numeric leaf is built with an
// operator other than GTE, LTE or EQ. Attribute names the numeric leaf
// ("cmc", "power", "toughness") and is empty when the operator was parsed
// on its own.
type InvalidOperatorError struct {
	Attribute string
	Operator  Operator
}

func (e *InvalidOperatorError) Error() string {
	if e.Attribute == "" {
		return fmt.Sprintf("invalid operator %q", string(e.Operator))
	}
	return fmt.Sprintf("invalid operator %q for %s", string(e.Operator), e.Attribute)
}
