// Package cli implements the contactctl command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/baharkarakas/contact-manager/internal/client"
)

const defaultAPIURL = "http://localhost:5000"

type rootOptions struct {
	apiURL string
	token  string
}

func (o *rootOptions) client() *client.Client {
	var opts []client.Option
	if o.token != "" {
		opts = append(opts, client.WithToken(o.token))
	}
	return client.New(o.apiURL, opts...)
}

// NewRootCmd builds contactctl. Flag defaults come from CONTACTS_API_URL and
// CONTACTS_TOKEN.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "contactctl",
		Short:         "Submit and manage contact inquiries",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.apiURL, "api", envOr("CONTACTS_API_URL", defaultAPIURL), "contacts API base URL")
	root.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("CONTACTS_TOKEN"), "admin access token")

	root.AddCommand(
		newSubmitCmd(opts),
		newListCmd(opts),
		newGetCmd(opts),
		newEditCmd(opts),
		newDeleteCmd(opts),
		newExportCmd(opts),
		newLoginCmd(opts),
		newHashPasswordCmd(),
		newHealthCmd(opts),
		newDashboardCmd(opts),
	)
	for _, c := range root.Commands() {
		run := c.RunE
		if run == nil || c.Name() == "login" {
			continue
		}
		c.RunE = func(cmd *cobra.Command, args []string) error {
			return withLoginHint(run(cmd, args))
		}
	}
	return root
}

func newHealthCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the API and its store are reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.client().Health(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
