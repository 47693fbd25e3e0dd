package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/baharkarakas/contact-manager/internal/auth"
	"github.com/baharkarakas/contact-manager/internal/client"
)

func newLoginCmd(opts *rootOptions) *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Obtain an admin access token",
		Long: "Log in as the admin user and print the access token as a shell export.\n" +
			"Use it with: eval \"$(contactctl login)\"",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd.InOrStdin(), cmd.ErrOrStderr(), "password: ")
			if err != nil {
				return err
			}
			tok, err := opts.client().Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "export CONTACTS_TOKEN=%s\n", tok.AccessToken)
			fmt.Fprintf(cmd.ErrOrStderr(), "token valid for %ds\n", tok.ExpiresIn)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "admin", "admin username")
	return cmd
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password",
		Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, errOut := cmd.InOrStdin(), cmd.ErrOrStderr()
			password, err := readPassword(in, errOut, "password: ")
			if err != nil {
				return err
			}
			if password == "" {
				return errors.New("password must not be empty")
			}
			if isTTY(in) {
				again, err := readPassword(in, errOut, "confirm: ")
				if err != nil {
					return err
				}
				if again != password {
					return errors.New("passwords do not match")
				}
			}
			hash, err := auth.HashPassword(password)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

// withLoginHint points at login when the API rejected the token.
func withLoginHint(err error) error {
	if client.IsUnauthorized(err) {
		return fmt.Errorf("%w (run: eval \"$(contactctl login)\")", err)
	}
	return err
}
