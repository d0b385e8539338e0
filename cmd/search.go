package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/sylvanlibrary/cardsearch/internal/domain/cardsearch"
	"github.com/sylvanlibrary/cardsearch/sylvan"
)

type fieldFlags struct {
	name, rules, flavour, cardType, subtype string
	cmc, power, toughness                   []string

	colours, identities             []string
	coloursExact, identitiesExact   bool
	coloursExclude, identityExclude bool

	set               string
	multicoloured     bool
	includeColourless bool
	exclusion         string
	showQuery         bool
}

var fieldOpts fieldFlags

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search cards field by field",
	RunE: func(cmd *cobra.Command, args []string) error {
		search, err := fieldOpts.build()
		if err != nil {
			return err
		}

		return withApp(cmd.Context(), "search", func(app *sylvan.App) error {
			if cmd.Flags().Changed("include-colourless") {
				search.IncludeColourless = fieldOpts.includeColourless
			} else {
				search.IncludeColourless = app.Config.Search.IncludeColourless
			}
			return runSearch(cmd.Context(), cmd, app, search, fieldOpts.showQuery)
		})
	},
}

func init() {
	f := searchCmd.Flags()
	f.StringVar(&fieldOpts.name, "name", "", "text contained in the card name")
	f.StringVar(&fieldOpts.rules, "rules", "", "text contained in the rules text")
	f.StringVar(&fieldOpts.flavour, "flavour", "", "text contained in the flavour text")
	f.StringVar(&fieldOpts.cardType, "type", "", "text contained in the type line")
	f.StringVar(&fieldOpts.subtype, "subtype", "", "text contained in the subtypes")
	f.StringArrayVar(&fieldOpts.cmc, "cmc", nil, "converted mana cost comparison, e.g. >=3 (repeatable)")
	f.StringArrayVar(&fieldOpts.power, "power", nil, "power comparison, e.g. lte:2 (repeatable)")
	f.StringArrayVar(&fieldOpts.toughness, "toughness", nil, "toughness comparison, e.g. =4 (repeatable)")
	f.StringSliceVar(&fieldOpts.colours, "colour", nil, "colours, as names or codes (w,u,b,r,g,c)")
	f.BoolVar(&fieldOpts.coloursExact, "colour-all", false, "require every selected colour")
	f.BoolVar(&fieldOpts.coloursExclude, "colour-exclude", false, "reject cards with unselected colours")
	f.StringSliceVar(&fieldOpts.identities, "identity", nil, "colour identity, as names or codes")
	f.BoolVar(&fieldOpts.identitiesExact, "identity-all", false, "require every selected identity colour")
	f.BoolVar(&fieldOpts.identityExclude, "identity-exclude", false, "reject cards with unselected identity colours")
	f.StringVar(&fieldOpts.set, "set", "", "exact set code")
	f.BoolVar(&fieldOpts.multicoloured, "multicoloured", false, "only cards with two or more colours")
	f.BoolVar(&fieldOpts.includeColourless, "include-colourless", false, "treat colourless as a colour when excluding")
	f.StringVar(&fieldOpts.exclusion, "exclusion", "not", "exclusion style: not or leaves")
	f.BoolVar(&fieldOpts.showQuery, "show-query", false, "print the parameter tree")

	rootCmd.AddCommand(searchCmd)
}

func (o fieldFlags) build() (cardsearch.FieldSearch, error) {
	search := cardsearch.FieldSearch{
		CardName:          o.name,
		RulesText:         o.rules,
		FlavourText:       o.flavour,
		TypeText:          o.cardType,
		SubtypeText:       o.subtype,
		SetCode:           o.set,
		MulticolouredOnly: o.multicoloured,
	}

	var err error
	if search.Cmc, err = parseComparisons(o.cmc); err != nil {
		return search, err
	}
	if search.Power, err = parseComparisons(o.power); err != nil {
		return search, err
	}
	if search.Toughness, err = parseComparisons(o.toughness); err != nil {
		return search, err
	}

	if search.Colours.Colours, err = parseColours(o.colours); err != nil {
		return search, err
	}
	search.Colours.MatchExactly = o.coloursExact
	search.Colours.ExcludeUnselected = o.coloursExclude

	if search.ColourIdentities.Colours, err = parseColours(o.identities); err != nil {
		return search, err
	}
	search.ColourIdentities.MatchExactly = o.identitiesExact
	search.ColourIdentities.ExcludeUnselected = o.identityExclude

	if search.Exclusion, err = parseExclusion(o.exclusion); err != nil {
		return search, err
	}
	return search, nil
}

func runSearch(ctx context.Context, cmd *cobra.Command, app *sylvan.App, b cardsearch.Builder, showQuery bool) error {
	res, err := app.Search.Search(ctx, b)
	if err != nil {
		return err
	}
	return printResult(cmd.OutOrStdout(), res, showQuery)
}
