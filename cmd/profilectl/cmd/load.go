package cmd

import (
	"github.com/spf13/cobra"

	"github.com/janisto/profile-console/internal/store"
)

func newLoadCmd(opts *Options, withStore storeRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Fetch the current profile from the remote API",
		Long: `Load fetches the current profile from the remote API and caches it. When a
profile is already cached it is printed without a remote call.

Examples:
  profilectl load
  profilectl load --api-url http://localhost:8081/v1`,
		Args: cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, s *store.Store) error {
			res := s.Load(cmd.Context())
			if !res.Success {
				return failure(res, store.OpLoad)
			}
			return printProfile(cmd.OutOrStdout(), opts.Format, res.Profile)
		}),
	}
}
