// Package settle turns net balances into a short list of debtor-to-creditor
// payments.
//
// The matcher is greedy: it repeatedly pairs the largest remaining debt with
// the largest remaining credit. That bounds the result to fewer payments than
// participants but is not guaranteed to find the true minimum, which is
// NP-hard in general.
package settle

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/tripsplit-dev/tripsplit/internal/balance"
	"github.com/tripsplit-dev/tripsplit/internal/model"
	"github.com/tripsplit-dev/tripsplit/internal/money"
)

// position is a participant's outstanding magnitude while matching.
type position struct {
	participant string
	remaining   decimal.Decimal
}

// Settle aggregates expenses and returns the payments that clear every balance.
func Settle(expenses []model.Expense) []model.Settlement {
	return FromBalances(balance.Aggregate(expenses))
}

// FromBalances returns the payments that clear b.
//
// Balances within one cent of zero are treated as settled. Debtors and
// creditors are each sorted by magnitude, largest first; equal magnitudes keep
// first-seen order. Any residue left when one side runs out is dropped.
func FromBalances(b *balance.Balances) []model.Settlement {
	debtors, creditors := partition(b)
	byRemainingDesc := func(x, y position) int {
		return y.remaining.Cmp(x.remaining)
	}
	slices.SortStableFunc(debtors, byRemainingDesc)
	slices.SortStableFunc(creditors, byRemainingDesc)

	var out []model.Settlement
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		d, c := &debtors[i], &creditors[j]

		amount := decimal.Min(d.remaining, c.remaining)
		if amount.GreaterThan(money.Cent) {
			out = append(out, model.Settlement{
				From:   d.participant,
				To:     c.participant,
				Amount: money.Round(amount),
			})
		}

		d.remaining = d.remaining.Sub(amount)
		c.remaining = c.remaining.Sub(amount)
		if d.remaining.LessThan(money.Cent) {
			i++
		}
		if c.remaining.LessThan(money.Cent) {
			j++
		}
	}
	return out
}

func partition(b *balance.Balances) (debtors, creditors []position) {
	negCent := money.Cent.Neg()
	for _, p := range b.Participants() {
		net := b.Get(p)
		switch {
		case net.LessThan(negCent):
			debtors = append(debtors, position{participant: p, remaining: net.Abs()})
		case net.GreaterThan(money.Cent):
			creditors = append(creditors, position{participant: p, remaining: net})
		}
	}
	return debtors, creditors
}
