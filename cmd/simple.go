package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/sylvanlibrary/cardsearch/internal/domain/cardsearch"
	"github.com/sylvanlibrary/cardsearch/sylvan"
)

type simpleFlags struct {
	name, rules, types bool
	colours            []string
	matchColours       bool
	excludeColours     bool
	multicoloured      bool
	set                string
	cardType           string
	includeColourless  bool
	exclusion          string
	showQuery          bool
}

var simpleOpts simpleFlags

var simpleCmd = &cobra.Command{
	Use:   "simple [text...]",
	Short: "Search cards from a single text box",
	RunE: func(cmd *cobra.Command, args []string) error {
		search, err := simpleOpts.build(strings.Join(args, " "))
		if err != nil {
			return err
		}

		return withApp(cmd.Context(), "simple", func(app *sylvan.App) error {
			if cmd.Flags().Changed("include-colourless") {
				search.IncludeColourless = simpleOpts.includeColourless
			} else {
				search.IncludeColourless = app.Config.Search.IncludeColourless
			}
			return runSearch(cmd.Context(), cmd, app, search, simpleOpts.showQuery)
		})
	},
}

func init() {
	f := simpleCmd.Flags()
	f.BoolVar(&simpleOpts.name, "name", false, "search card names")
	f.BoolVar(&simpleOpts.rules, "rules", false, "search rules text")
	f.BoolVar(&simpleOpts.types, "types", false, "search types and subtypes")
	f.StringSliceVar(&simpleOpts.colours, "colour", nil, "colours, as names or codes (w,u,b,r,g,c)")
	f.BoolVar(&simpleOpts.matchColours, "match-colours", false, "require every selected colour")
	f.BoolVar(&simpleOpts.excludeColours, "exclude-colours", false, "reject cards with unselected colours")
	f.BoolVar(&simpleOpts.multicoloured, "multicoloured", false, "only cards with two or more colours")
	f.StringVar(&simpleOpts.set, "set", "", "exact set code")
	f.StringVar(&simpleOpts.cardType, "card-type", "", "text contained in the type line")
	f.BoolVar(&simpleOpts.includeColourless, "include-colourless", false, "treat colourless as a colour when excluding")
	f.StringVar(&simpleOpts.exclusion, "exclusion", "leaves", "exclusion style: not or leaves")
	f.BoolVar(&simpleOpts.showQuery, "show-query", false, "print the parameter tree")

	rootCmd.AddCommand(simpleCmd)
}

func (o simpleFlags) build(text string) (cardsearch.SimpleSearch, error) {
	search := cardsearch.NewSimpleSearch()
	search.Text = text
	search.IncludeName = o.name
	search.IncludeRules = o.rules
	search.IncludeTypes = o.types
	search.MatchColours = o.matchColours
	search.ExcludeColours = o.excludeColours
	search.MulticolouredOnly = o.multicoloured
	search.SetCode = o.set
	search.CardType = o.cardType

	var err error
	if search.Colours, err = parseColours(o.colours); err != nil {
		return search, err
	}
	if search.Exclusion, err = parseExclusion(o.exclusion); err != nil {
		return search, err
	}
	return search, nil
}
