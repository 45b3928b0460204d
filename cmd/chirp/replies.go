// ABOUTME: Cobra command for fetching replies to a tweet.
// ABOUTME: Validates the tweet id in the engine and renders the thread.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/chirpsearch/chirp/internal/format"
)

func newRepliesCmd() *cobra.Command {
	var out outputFlags
	var limit int

	cmd := &cobra.Command{
		Use:   "replies <tweet-id>",
		Short: "Fetch replies to a tweet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if limit <= 0 {
				limit = app.cfg.Limit()
			}

			res, err := app.engine.Replies(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}

			app.notices(res.FromCache)
			return format.Render(os.Stdout, res, out.options())
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of replies (default from config)")
	out.register(cmd)

	return cmd
}
