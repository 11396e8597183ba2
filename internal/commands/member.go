package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tripsplit-dev/tripsplit/internal/model"
)

func newMemberCommand(opts *rootOptions) *cobra.Command {
	memberCmd := &cobra.Command{
		Use:   "member",
		Short: "Manage the trip roster",
	}
	memberCmd.AddCommand(newMemberAddCommand(opts), newMemberListCommand(opts))
	return memberCmd
}

func newMemberAddCommand(opts *rootOptions) *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Add a member to the roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := openTrip(opts)
			if err != nil {
				return err
			}

			m := model.Member{ID: args[0], Name: name, Email: email}
			if err := t.members.Add(m); err != nil {
				return err
			}
			if err := t.members.Save(t.root); err != nil {
				return err
			}
			t.commit(cmd, "member: Add "+m.ID, "members")

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", m.DisplayName())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email address")

	return cmd
}

func newMemberListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List roster members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := openTrip(opts)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tEMAIL")
			for _, m := range t.members.All() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", m.ID, m.Name, m.Email)
			}
			return tw.Flush()
		},
	}
}
