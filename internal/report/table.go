package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/tripsplit-dev/tripsplit/internal/balance"
	"github.com/tripsplit-dev/tripsplit/internal/model"
)

// Namer resolves a participant ID to a display name.
type Namer func(id string) string

// IDNamer displays participants by their raw ID.
func IDNamer(id string) string { return id }

// WriteBalances renders per-participant totals as an aligned table.
func WriteBalances(w io.Writer, sums []balance.Summary, name Namer, currency string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "MEMBER\tPAID\tOWED\tNET (%s)\t\n", currency)
	for _, s := range sums {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n",
			name(s.Participant), s.Paid.StringFixed(2), s.Owed.StringFixed(2), s.Net.StringFixed(2))
	}
	return tw.Flush()
}

// WriteSettlements renders settlements one per line, e.g. "Ben pays Ana 40.00 EUR".
func WriteSettlements(w io.Writer, settlements []model.Settlement, name Namer, currency string) error {
	if len(settlements) == 0 {
		_, err := fmt.Fprintln(w, "All settled up.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	for _, s := range settlements {
		fmt.Fprintf(tw, "%s\tpays\t%s\t%s %s\n", name(s.From), name(s.To), s.Amount.StringFixed(2), currency)
	}
	return tw.Flush()
}

// WriteShares renders one line per participant share.
func WriteShares(w io.Writer, shares []model.Share, name Namer, currency string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, s := range shares {
		amount := s.Amount.StringFixed(2)
		if currency != "" {
			amount += " " + currency
		}
		fmt.Fprintf(tw, "%s\t%s\n", name(s.Participant), amount)
	}
	return tw.Flush()
}
