package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/janisto/profile-console/internal/store"
)

func newShowCmd(opts *Options, withStore storeRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the cached profile",
		Long: `Show prints the profile held in the local cache without contacting the
remote API. Use "profilectl load" to fetch it when nothing is cached.

Examples:
  profilectl show
  profilectl show --format json`,
		Args: cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, s *store.Store) error {
			snap := s.Snapshot()
			if snap.Data == nil {
				if opts.Format == formatJSON {
					_, err := fmt.Fprintln(cmd.OutOrStdout(), "null")
					return err
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), store.MsgNoProfile)
				return err
			}
			return printProfile(cmd.OutOrStdout(), opts.Format, snap.Data)
		}),
	}
}
