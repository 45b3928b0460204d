// ABOUTME: Credential validation for the setup wizard.
// ABOUTME: Tests a bearer token by issuing a single minimal search request.
package tui

import (
	"context"

	"github.com/chirpsearch/chirp/internal/api"
)

// ValidateToken tests the bearer token by running one tiny search.
// The context allows cancellation when the user quits during validation.
func ValidateToken(ctx context.Context, token string) error {
	client := api.NewClient(api.DefaultBaseURL, token)
	_, _, err := client.SearchRecent(ctx, "hello", 10)
	return err
}
