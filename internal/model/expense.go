package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Share is one participant's portion of an expense.
type Share struct {
	Participant string
	Amount      decimal.Decimal
}

// Expense is a shared cost fronted by Payer.
// A nil Splits slice means the whole amount is attributed to the payer.
type Expense struct {
	ID          string    // "YYYY-MM-NNN", empty for ad-hoc expenses
	Date        time.Time //nolint:revive // plain field name is clearest
	Description string
	Payer       string
	Amount      decimal.Decimal
	Splits      []Share
}

// Participants returns the participant IDs of the expense splits, in order.
func (e Expense) Participants() []string {
	ids := make([]string, len(e.Splits))
	for i, s := range e.Splits {
		ids[i] = s.Participant
	}
	return ids
}

// Settlement is a single recommended payment from a debtor to a creditor.
type Settlement struct {
	From   string
	To     string
	Amount decimal.Decimal
}

// SumShares returns the total of all share amounts.
func SumShares(shares []Share) decimal.Decimal {
	total := decimal.Zero
	for _, s := range shares {
		total = total.Add(s.Amount)
	}
	return total
}
