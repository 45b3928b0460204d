// ABOUTME: Cobra commands for managing the local result cache.
// ABOUTME: Exposes cache clear and cache status.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chirpsearch/chirp/internal/cache"
	"github.com/chirpsearch/chirp/internal/config"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local result cache",
	}

	cmd.AddCommand(newCacheClearCmd())
	cmd.AddCommand(newCacheStatusCmd())

	return cmd
}

func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetCacheFilePath()
			if err != nil {
				return fmt.Errorf("failed to resolve cache path: %w", err)
			}

			store := cache.New(path, true, 0)
			if err := store.Clear(); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}

			fmt.Println("Cache cleared.")
			return nil
		},
	}
}

func newCacheStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show cache location, size, and settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			path, err := config.GetCacheFilePath()
			if err != nil {
				return fmt.Errorf("failed to resolve cache path: %w", err)
			}

			store := cache.New(path, cfg.IsCacheEnabled(), cfg.CacheTTL())
			fmt.Printf("path:    %s\n", path)
			fmt.Printf("enabled: %t\n", cfg.IsCacheEnabled())
			fmt.Printf("ttl:     %s\n", cfg.CacheTTL())
			fmt.Printf("entries: %d\n", store.Len())
			return nil
		},
	}
}
