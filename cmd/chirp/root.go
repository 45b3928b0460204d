// ABOUTME: Root Cobra command and shared wiring for the chirp CLI.
// ABOUTME: Builds a per-invocation app context instead of package globals.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chirpsearch/chirp/internal/api"
	"github.com/chirpsearch/chirp/internal/cache"
	"github.com/chirpsearch/chirp/internal/config"
	"github.com/chirpsearch/chirp/internal/engine"
	"github.com/chirpsearch/chirp/internal/format"
)

// app holds everything a single command invocation needs. Constructed
// fresh in each RunE so no mutable state survives between invocations.
type app struct {
	cfg    *config.Config
	store  *cache.Store
	engine *engine.Engine
	demo   bool
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cachePath, err := config.GetCacheFilePath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cache path: %w", err)
	}
	store := cache.New(cachePath, cfg.IsCacheEnabled(), cfg.CacheTTL())

	token, _ := cfg.ResolveToken()
	demo := token == ""
	client := api.NewClient(api.DefaultBaseURL, token)

	eng, err := engine.New(cfg, store, client, demo)
	if err != nil {
		return nil, fmt.Errorf("failed to build engine: %w", err)
	}

	return &app{cfg: cfg, store: store, engine: eng, demo: demo}, nil
}

// notices prints mode annotations to stderr so stdout stays
// machine-readable.
func (a *app) notices(fromCache bool) {
	if a.demo {
		fmt.Fprintln(os.Stderr, "Demo mode: no credential configured, showing synthesized data. Run 'chirp setup' to connect.")
	}
	if fromCache {
		fmt.Fprintln(os.Stderr, "(served from cache)")
	}
}

// outputFlags are the rendering flags shared by search, replies, and user.
type outputFlags struct {
	json    bool
	csv     bool
	quiet   bool
	compact bool
	noColor bool
}

func (f *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.json, "json", false, "Output results as JSON")
	cmd.Flags().BoolVar(&f.csv, "csv", false, "Output results as CSV")
	cmd.Flags().BoolVar(&f.quiet, "quiet", false, "Output one tweet URL per line")
	cmd.Flags().BoolVar(&f.compact, "compact", false, "Output one line per tweet")
	cmd.Flags().BoolVar(&f.noColor, "no-color", false, "Disable terminal styling")
}

func (f *outputFlags) options() format.Options {
	opts := format.Options{Mode: format.ModePretty, NoColor: f.noColor}
	switch {
	case f.json:
		opts.Mode = format.ModeJSON
	case f.csv:
		opts.Mode = format.ModeCSV
	case f.quiet:
		opts.Mode = format.ModeQuiet
	case f.compact:
		opts.Mode = format.ModeCompact
	}
	return opts
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chirp",
		Short: "Search X from your terminal",
		Long: `
 ██████╗██╗  ██╗██╗██████╗ ██████╗
██╔════╝██║  ██║██║██╔══██╗██╔══██╗
██║     ███████║██║██████╔╝██████╔╝
██║     ██╔══██║██║██╔══██╗██╔═══╝
╚██████╗██║  ██║██║██║  ██║██║
 ╚═════╝╚═╝  ╚═╝╚═╝╚═╝  ╚═╝╚═╝

Search tweets, replies, and user timelines from the command line.
Results are cached locally; without a credential chirp runs in demo
mode with synthesized data.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newRepliesCmd())
	rootCmd.AddCommand(newUserCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCacheCmd())
	rootCmd.AddCommand(newSetupCmd())
	rootCmd.AddCommand(newMCPCmd())

	return rootCmd
}
