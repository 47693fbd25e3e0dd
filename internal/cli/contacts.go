package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/baharkarakas/contact-manager/internal/dashboard"
	"github.com/baharkarakas/contact-manager/internal/models"
	"github.com/baharkarakas/contact-manager/internal/tui"
)

func newSubmitCmd(opts *rootOptions) *cobra.Command {
	var in models.ContactInput
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Send a contact inquiry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if errs := dashboard.ValidateForm(in); len(errs) > 0 {
				for _, f := range []string{"name", "email", "phone"} {
					if m, ok := errs[f]; ok {
						fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", f, m)
					}
				}
				return errors.New("invalid contact")
			}
			c, err := opts.client().Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Message sent successfully! (id %s)\n", c.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "your name")
	cmd.Flags().StringVar(&in.Email, "email", "", "email address")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "10-digit phone number")
	cmd.Flags().StringVar(&in.Message, "message", "", "optional message")
	return cmd
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var (
		search string
		sortBy string
		order  string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := dashboard.DefaultQuery()
			q.Search = search
			if sortBy != "" {
				k, ok := dashboard.ParseSortKey(sortBy)
				if !ok {
					return fmt.Errorf("invalid --sort %q (want name or date)", sortBy)
				}
				q.SortBy = k
			}
			if order != "" {
				o, ok := dashboard.ParseOrder(order)
				if !ok {
					return fmt.Errorf("invalid --order %q (want asc or desc)", order)
				}
				q.Order = o
			}

			all, err := opts.client().List(cmd.Context())
			if err != nil {
				return err
			}
			visible := dashboard.Apply(all, q)

			if asJSON {
				return printJSON(cmd.OutOrStdout(), visible)
			}
			printTable(cmd.OutOrStdout(), visible)
			st := dashboard.ComputeStats(all, time.Now())
			fmt.Fprintf(cmd.OutOrStdout(), "\nTotal %d  Recent (24h) %d\n", st.Total, st.Recent)
			return nil
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "filter by name, email or phone")
	cmd.Flags().StringVar(&sortBy, "sort", "", "sort key: name or date (default date)")
	cmd.Flags().StringVar(&order, "order", "", "asc or desc (default desc)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newGetCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), c)
			}
			printContact(cmd.OutOrStdout(), c)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

// newEditCmd sends the full record: the current values overlaid with the
// flags the user actually set.
func newEditCmd(opts *rootOptions) *cobra.Command {
	var in models.ContactInput
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var p models.ContactPatch
			flags := cmd.Flags()
			if flags.Changed("name") {
				p.Name = &in.Name
			}
			if flags.Changed("email") {
				p.Email = &in.Email
			}
			if flags.Changed("phone") {
				p.Phone = &in.Phone
			}
			if flags.Changed("message") {
				p.Message = &in.Message
			}
			if p.Empty() {
				return errors.New("nothing to change: set at least one of --name, --email, --phone, --message")
			}

			c := opts.client()
			cur, err := c.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			p.Apply(&cur)
			full := models.ContactInput{Name: cur.Name, Email: cur.Email, Phone: cur.Phone, Message: cur.Message}

			out, err := c.Update(cmd.Context(), args[0], models.PatchFrom(full))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Contact updated successfully")
			printContact(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "new name")
	cmd.Flags().StringVar(&in.Email, "email", "", "new email")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "new phone")
	cmd.Flags().StringVar(&in.Message, "message", "", "new message")
	return cmd
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Permanently remove a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := opts.client()
			if !yes {
				cur, err := c.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				ok, err := confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), fmt.Sprintf("delete %s <%s>?", cur.Name, cur.Email))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "aborted")
					return nil
				}
			}
			if err := c.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Contact removed")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every contact to CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := opts.client().List(cmd.Context())
			if err != nil {
				return err
			}
			switch out {
			case "-":
				return dashboard.WriteCSV(cmd.OutOrStdout(), all, nil)
			case "":
				path, err := dashboard.SaveCSV(".", all, time.Now())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "CSV exported to %s\n", path)
				return nil
			default:
				return writeCSVFile(out, all)
			}
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", `output file ("-" for stdout; default Contacts_<date>.csv)`)
	return cmd
}

func writeCSVFile(path string, contacts []models.Contact) error {
	if len(contacts) == 0 {
		return dashboard.ErrNothingToExport
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := dashboard.WriteCSV(f, contacts, nil); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func newDashboardCmd(opts *rootOptions) *cobra.Command {
	var exportDir string
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive admin dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(opts.client(), exportDir)
		},
	}
	cmd.Flags().StringVar(&exportDir, "export-dir", ".", "directory for CSV exports")
	return cmd
}

// output

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printTable(w io.Writer, contacts []models.Contact) {
	if len(contacts) == 0 {
		fmt.Fprintln(w, "no contacts found")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tPHONE\tDATE")
	for _, c := range contacts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Email, c.Phone, c.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	tw.Flush()
}

func printContact(w io.Writer, c models.Contact) {
	fmt.Fprintf(w, "id:       %s\n", c.ID)
	fmt.Fprintf(w, "name:     %s\n", c.Name)
	fmt.Fprintf(w, "email:    %s\n", c.Email)
	fmt.Fprintf(w, "phone:    %s\n", c.Phone)
	if c.Message != "" {
		fmt.Fprintf(w, "message:  %s\n", c.Message)
	}
	fmt.Fprintf(w, "created:  %s\n", c.CreatedAt.Local().Format(time.RFC1123))
}
