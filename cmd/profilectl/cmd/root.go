// Package cmd implements the profilectl commands.
package cmd

import (
	"context"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/janisto/profile-console/internal/cache"
	"github.com/janisto/profile-console/internal/platform/config"
	"github.com/janisto/profile-console/internal/service/remote"
	"github.com/janisto/profile-console/internal/store"
)

// Opener builds the state store a command operates on.
type Opener func(ctx context.Context, opts Options) (*store.Store, error)

// storeRunner adapts a command body that needs the store into a cobra RunE.
type storeRunner func(run func(cmd *cobra.Command, s *store.Store) error) func(*cobra.Command, []string) error

// Options are the persistent flags shared by every command.
type Options struct {
	APIURL   string
	CacheDir string
	Format   string
}

// NewRootCmd assembles the command tree. open is called once per command run.
func NewRootCmd(open Opener) *cobra.Command {
	var opts Options

	rootCmd := &cobra.Command{
		Use:   "profilectl",
		Short: "Manage the console profile from the command line",
		Long: `profilectl drives the same profile state as the web console: it reads the
local cache directory, talks to the remote profile API and mirrors every
successful change back into the cache.

Settings default to the console's environment (PROFILE_API_URL,
PROFILE_CACHE_DIR, PROFILE_API_TIMEOUT, optionally from .env).

Use "profilectl [command] --help" for more information about a command.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.APIURL, "api-url", "", "Remote profile API base URL (overrides PROFILE_API_URL)")
	rootCmd.PersistentFlags().StringVar(&opts.CacheDir, "cache-dir", "", "Cache directory (overrides PROFILE_CACHE_DIR)")
	rootCmd.PersistentFlags().StringVarP(&opts.Format, "format", "f", formatTable, "Output format (table, json)")

	withStore := storeRunner(func(run func(cmd *cobra.Command, s *store.Store) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(opts.Format); err != nil {
				return err
			}
			s, err := open(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return run(cmd, s)
		}
	})

	rootCmd.AddCommand(
		newShowCmd(&opts, withStore),
		newSaveCmd(&opts, withStore),
		newLoadCmd(&opts, withStore),
		newDeleteCmd(&opts, withStore),
	)
	return rootCmd
}

// OpenStore is the production Opener: environment configuration, the HTTP
// remote client and the on-disk cache.
func OpenStore(ctx context.Context, opts Options) (*store.Store, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	cfg, err := config.LoadConsole()
	if err != nil {
		return nil, err
	}
	if opts.APIURL != "" {
		cfg.APIURL = opts.APIURL
	}
	if opts.CacheDir != "" {
		cfg.CacheDir = opts.CacheDir
	}

	client := remote.NewClient(&http.Client{Timeout: cfg.APITimeout}, remote.WithBaseURL(cfg.APIURL))
	s := store.New(client, cache.NewOS(cfg.CacheDir))
	s.Init(ctx)
	return s, nil
}

// Execute runs the command tree against the configured backend.
func Execute() {
	if err := NewRootCmd(OpenStore).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
