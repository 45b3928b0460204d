// ABOUTME: Entry point for the chirp binary.
// ABOUTME: Executes the root Cobra command and renders typed failures.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/chirpsearch/chirp/internal/api"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)

		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			switch apiErr.Kind {
			case api.KindUnauthorized:
				fmt.Fprintln(os.Stderr, "Run 'chirp setup' to configure a valid credential.")
			case api.KindRateLimited:
				if !apiErr.ResetAt.IsZero() {
					fmt.Fprintf(os.Stderr, "Quota resets in %s.\n", time.Until(apiErr.ResetAt).Round(time.Second))
				}
			}
		}
		os.Exit(1)
	}
}
