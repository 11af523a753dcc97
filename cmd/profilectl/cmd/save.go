package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/janisto/profile-console/internal/profile"
	"github.com/janisto/profile-console/internal/store"
)

func newSaveCmd(opts *Options, withStore storeRunner) *cobra.Command {
	var form profile.Form

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Create or update the profile",
		Long: `Save validates the given attributes with the same rules as the web form,
sends them to the remote API and mirrors the confirmed profile into the cache.
The id of the cached profile, if any, is kept.

Examples:
  profilectl save --name "Ann Lee" --email ann@example.com
  profilectl save --name "Ann Lee" --email ann@example.com --age 30`,
		Args: cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, s *store.Store) error {
			draft, err := profile.ParseForm(form)
			if err != nil {
				return err
			}
			current := s.Snapshot().Data
			if current != nil {
				draft.ID = current.ID
			}

			res := s.Save(cmd.Context(), draft.Name, draft)
			if !res.Success {
				return failure(res, store.OpSave)
			}
			if opts.Format == formatTable {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), profile.SavedMessage(current != nil)); err != nil {
					return err
				}
			}
			return printProfile(cmd.OutOrStdout(), opts.Format, res.Profile)
		}),
	}

	cmd.Flags().StringVar(&form.Name, "name", "", "Display name (3-50 letters, spaces, hyphens, apostrophes)")
	cmd.Flags().StringVar(&form.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&form.Age, "age", "", "Optional age (18-120)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
