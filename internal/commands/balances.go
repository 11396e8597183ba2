package commands

import (
	"github.com/spf13/cobra"

	"github.com/tripsplit-dev/tripsplit/internal/balance"
	"github.com/tripsplit-dev/tripsplit/internal/report"
)

func newBalancesCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "balances",
		Short: "Show what each member paid, owes and nets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := openTrip(opts)
			if err != nil {
				return err
			}
			expenses, err := t.expenses()
			if err != nil {
				return err
			}
			return report.WriteBalances(cmd.OutOrStdout(), balance.Summarize(expenses), t.namer(), t.cfg.Trip.Currency)
		},
	}
}
