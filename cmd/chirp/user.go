// ABOUTME: Cobra command for fetching a user's recent tweets.
// ABOUTME: Accepts the handle with or without a leading @.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/chirpsearch/chirp/internal/format"
)

func newUserCmd() *cobra.Command {
	var out outputFlags
	var limit int

	cmd := &cobra.Command{
		Use:   "user <username>",
		Short: "Fetch a user's recent tweets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if limit <= 0 {
				limit = app.cfg.Limit()
			}

			res, err := app.engine.UserTimeline(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}

			app.notices(res.FromCache)
			return format.Render(os.Stdout, res, out.options())
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of tweets (default from config)")
	out.register(cmd)

	return cmd
}
