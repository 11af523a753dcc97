package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/janisto/profile-console/internal/profile"
	"github.com/janisto/profile-console/internal/store"
)

func newDeleteCmd(opts *Options, withStore storeRunner) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the profile remotely and clear the cache",
		Long: `Delete removes the cached profile from the remote API and clears the local
cache. Pass --id to delete a profile that is not cached.

Examples:
  profilectl delete
  profilectl delete --id 0b6f3c1e-8d7a-4a8e-9d3b-2f1e5c7a9b10`,
		Args: cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, s *store.Store) error {
			target := id
			if target == "" {
				if current := s.Snapshot().Data; current != nil {
					target = current.ID
				}
			}
			if target == "" {
				return errors.New(profile.MsgNoUserID)
			}

			res := s.Delete(cmd.Context(), target)
			if !res.Success {
				return failure(res, store.OpDelete)
			}
			if opts.Format == formatJSON {
				return printJSON(cmd.OutOrStdout(), map[string]string{"deleted": target})
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), profile.MsgDeleted)
			return err
		}),
	}

	cmd.Flags().StringVar(&id, "id", "", "Profile id to delete (defaults to the cached profile)")
	return cmd
}
