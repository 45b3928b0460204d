// ABOUTME: Cobra command for searching recent tweets.
// ABOUTME: Maps CLI flags onto engine search options and renders results.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/chirpsearch/chirp/internal/engine"
	"github.com/chirpsearch/chirp/internal/format"
)

func newSearchCmd() *cobra.Command {
	var out outputFlags
	var limit, minLikes, minRetweets int
	var verified bool
	var lang, sort string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search recent tweets",
		Long: `Search recent tweets matching a query.

Filters are applied both as search operators and client-side, so
results always satisfy them. Zero matches is a success, not an error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if limit <= 0 {
				limit = app.cfg.Limit()
			}

			res, err := app.engine.Search(cmd.Context(), args[0], engine.SearchOptions{
				Limit:        limit,
				VerifiedOnly: verified,
				MinLikes:     minLikes,
				MinRetweets:  minRetweets,
				Lang:         lang,
				Sort:         sort,
			})
			if err != nil {
				return err
			}

			app.notices(res.FromCache)
			return format.Render(os.Stdout, res, out.options())
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of results (default from config)")
	cmd.Flags().BoolVar(&verified, "verified", false, "Only tweets from verified accounts")
	cmd.Flags().IntVar(&minLikes, "min-likes", 0, "Minimum like count")
	cmd.Flags().IntVar(&minRetweets, "min-retweets", 0, "Minimum retweet count")
	cmd.Flags().StringVar(&lang, "lang", "", "BCP-47 language filter, e.g. en")
	cmd.Flags().StringVar(&sort, "sort", engine.SortPopular, "Sort order: popular or recent")
	out.register(cmd)

	return cmd
}
