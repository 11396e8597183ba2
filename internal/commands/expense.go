package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/tripsplit-dev/tripsplit/internal/ledger"
	"github.com/tripsplit-dev/tripsplit/internal/model"
	"github.com/tripsplit-dev/tripsplit/internal/money"
	"github.com/tripsplit-dev/tripsplit/internal/report"
)

const dateLayout = "2006-01-02"

func newExpenseCommand(opts *rootOptions) *cobra.Command {
	expenseCmd := &cobra.Command{
		Use:   "expense",
		Short: "Record and list expenses",
	}
	expenseCmd.AddCommand(newExpenseAddCommand(opts), newExpenseListCommand(opts))
	return expenseCmd
}

func newExpenseAddCommand(opts *rootOptions) *cobra.Command {
	var payer, amountStr, dateStr, desc string
	var equal bool
	var amounts, percents []string

	cmd := &cobra.Command{
		Use:   "add [participant...]",
		Short: "Record an expense",
		Long: `Record an expense paid by one member and split between members.

Without --split or --percent the amount is split equally between the named
participants, or between everyone on the roster when none are named.`,
		Example: `  tripsplit expense add --payer ana --amount 120 --desc "Dinner"
  tripsplit expense add --payer ana --amount 60 --equal ana ben
  tripsplit expense add --payer ben --amount 100 --split ana=40 --split ben=60
  tripsplit expense add --payer cho --amount 200 --percent ana=50 --percent cho=50`,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := openTrip(opts)
			if err != nil {
				return err
			}

			amount, err := money.Parse(amountStr)
			if err != nil {
				return err
			}

			date := today()
			if dateStr != "" {
				date, err = time.Parse(dateLayout, dateStr)
				if err != nil {
					return fmt.Errorf("parsing date %q: %w", dateStr, err)
				}
			}

			shares, err := expenseShares(amount, args, amounts, percents, t.members.IDs())
			if err != nil {
				return err
			}

			expenseID, err := t.ledger.Add(ledger.AddParams{
				Date:        date,
				Description: desc,
				Payer:       payer,
				Amount:      amount,
				Splits:      shares,
			})
			if err != nil {
				return err
			}
			t.commit(cmd, fmt.Sprintf("expense: %s %s", expenseID, desc),
				ledger.MonthFile(date.Year(), int(date.Month())))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Recorded %s\n", expenseID)
			return report.WriteShares(out, shares, t.namer(), t.cfg.Trip.Currency)
		},
	}

	cmd.Flags().StringVar(&payer, "payer", "", "member who paid (required)")
	cmd.Flags().StringVar(&amountStr, "amount", "", "amount paid (required)")
	cmd.Flags().StringVar(&dateStr, "date", "", "expense date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&desc, "desc", "", "description")
	cmd.Flags().BoolVar(&equal, "equal", false, "mode marker only: split equally, which is already the default; excludes --split and --percent")
	cmd.Flags().StringArrayVar(&amounts, "split", nil, "participant=amount owed (repeatable)")
	cmd.Flags().StringArrayVar(&percents, "percent", nil, "participant=percentage owed (repeatable)")
	_ = cmd.MarkFlagRequired("payer")
	_ = cmd.MarkFlagRequired("amount")
	cmd.MarkFlagsMutuallyExclusive("equal", "split", "percent")

	return cmd
}

func newExpenseListCommand(opts *rootOptions) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := openTrip(opts)
			if err != nil {
				return err
			}

			var expenses []model.Expense
			if month != "" {
				m, err := time.Parse("2006-01", month)
				if err != nil {
					return fmt.Errorf("parsing month %q: %w", month, err)
				}
				expenses, err = t.ledger.ReadMonth(m.Year(), int(m.Month()))
				if err != nil {
					return err
				}
			} else {
				expenses, err = t.expenses()
				if err != nil {
					return err
				}
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDATE\tPAYER\tAMOUNT\tDESCRIPTION\tSPLITS")
			for _, e := range expenses {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					e.ID, e.Date.Format(dateLayout), e.Payer, e.Amount.StringFixed(2), e.Description, ledger.FormatSplits(e.Splits))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "only this month, as YYYY-MM")

	return cmd
}

func today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
