package mongo

import (
	"fmt"
	"regexp"

	"github.com/sylvanlibrary/cardsearch/internal/domain/cardsearch"
	"github.com/sylvanlibrary/cardsearch/internal/domain/colour"
	"go.mongodb.org/mongo-driver/bson"
)

var textFields = map[cardsearch.Kind]string{
	cardsearch.KindName:        "name",
	cardsearch.KindRulesText:   "rules_text",
	cardsearch.KindFlavourText: "flavour_text",
	cardsearch.KindType:        "type",
	cardsearch.KindSubtype:     "subtype",
}

var numericFields = map[cardsearch.Kind]string{
	cardsearch.KindCmc:       "cmc",
	cardsearch.KindPower:     "power",
	cardsearch.KindToughness: "toughness",
}

var colourFields = map[cardsearch.Kind]string{
	cardsearch.KindColour:         "colour_flags",
	cardsearch.KindColourIdentity: "colour_identity_flags",
}

var comparisonOperators = map[cardsearch.Operator]string{
	cardsearch.GTE: "$gte",
	cardsearch.LTE: "$lte",
	cardsearch.EQ:  "$eq",
}

// monocolouredMasks lists every colour mask with fewer than two colours.
var monocolouredMasks = bson.A{0, 1, 2, 4, 8, 16}

// FilterDocument translates a search tree into a MongoDB query document.
func FilterDocument(root cardsearch.Parameter) bson.D {
	switch root.Kind {
	case cardsearch.KindAnd:
		if len(root.Children) == 0 {
			return bson.D{}
		}
		return bson.D{{Key: "$and", Value: documents(root.Children)}}
	case cardsearch.KindOr:
		if len(root.Children) == 0 {
			return bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: bson.A{}}}}}
		}
		return bson.D{{Key: "$or", Value: documents(root.Children)}}
	case cardsearch.KindNot:
		if len(root.Children) == 0 {
			return bson.D{}
		}
		return bson.D{{Key: "$nor", Value: documents(root.Children)}}
	}

	doc := leafDocument(root)
	if root.Negated {
		return bson.D{{Key: "$nor", Value: bson.A{doc}}}
	}
	return doc
}

func documents(children []cardsearch.Parameter) bson.A {
	out := make(bson.A, 0, len(children))
	for _, child := range children {
		out = append(out, FilterDocument(child))
	}
	return out
}

func leafDocument(p cardsearch.Parameter) bson.D {
	if field, ok := textFields[p.Kind]; ok {
		return bson.D{{Key: field, Value: bson.D{
			{Key: "$regex", Value: regexp.QuoteMeta(p.Text)},
			{Key: "$options", Value: "i"},
		}}}
	}
	if field, ok := numericFields[p.Kind]; ok {
		return bson.D{{Key: field, Value: bson.D{{Key: comparisonOperators[p.Operator], Value: p.Number}}}}
	}
	if field, ok := colourFields[p.Kind]; ok {
		if p.Colour == colour.None {
			return bson.D{{Key: field, Value: 0}}
		}
		return bson.D{{Key: field, Value: bson.D{{Key: "$bitsAllSet", Value: int32(p.Colour)}}}}
	}

	switch p.Kind {
	case cardsearch.KindSet:
		return bson.D{{Key: "set_code", Value: p.Text}}
	case cardsearch.KindMulticoloured:
		return bson.D{{Key: "colour_flags", Value: bson.D{{Key: "$nin", Value: monocolouredMasks}}}}
	default:
		panic(fmt.Sprintf("mongo: unhandled parameter kind %s", p.Kind))
	}
}
