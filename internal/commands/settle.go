package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tripsplit-dev/tripsplit/internal/report"
	"github.com/tripsplit-dev/tripsplit/internal/settle"
)

func newSettleCommand(opts *rootOptions) *cobra.Command {
	var format, out string
	var export bool

	cmd := &cobra.Command{
		Use:   "settle",
		Short: "Recommend payments that settle all balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "table" && format != "csv" {
				return fmt.Errorf("unknown format %q (want table or csv)", format)
			}

			t, err := openTrip(opts)
			if err != nil {
				return err
			}
			expenses, err := t.expenses()
			if err != nil {
				return err
			}

			settlements := settle.Settle(expenses)
			run := report.NewRun(settlements, t.cfg.Trip.Currency, time.Now())
			w := cmd.OutOrStdout()

			switch {
			case export:
				path, err := report.Export(t.root, run)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "Exported %d settlements to %s\n", len(settlements), path)
				return nil
			case out != "":
				if err := report.WriteFile(out, run); err != nil {
					return err
				}
				fmt.Fprintf(w, "Wrote %d settlements to %s\n", len(settlements), out)
				return nil
			case format == "csv":
				return report.WriteCSV(w, run)
			default:
				return report.WriteSettlements(w, settlements, t.namer(), t.cfg.Trip.Currency)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "output format: table or csv")
	cmd.Flags().StringVar(&out, "out", "", "write the CSV plan to this file")
	cmd.Flags().BoolVar(&export, "export", false, "write the CSV plan under exports/")
	cmd.MarkFlagsMutuallyExclusive("out", "export")

	return cmd
}
