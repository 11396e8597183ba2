package balance

import (
	"github.com/shopspring/decimal"

	"github.com/tripsplit-dev/tripsplit/internal/model"
)

// Balances maps each participant to a signed net position: positive means the
// participant is owed money, negative means they owe. Participants are kept in
// the order they were first seen.
type Balances struct {
	order []string
	net   map[string]decimal.Decimal
}

func newBalances() *Balances {
	return &Balances{net: make(map[string]decimal.Decimal)}
}

func (b *Balances) add(participant string, delta decimal.Decimal) {
	cur, ok := b.net[participant]
	if !ok {
		b.order = append(b.order, participant)
	}
	b.net[participant] = cur.Add(delta)
}

// Get returns the net balance of a participant (zero if unknown).
func (b *Balances) Get(participant string) decimal.Decimal {
	return b.net[participant]
}

// Participants returns all participants in first-seen order.
func (b *Balances) Participants() []string {
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

// Map returns a copy of the balances keyed by participant.
func (b *Balances) Map() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(b.net))
	for k, v := range b.net {
		out[k] = v
	}
	return out
}

// Len returns the number of participants.
func (b *Balances) Len() int {
	return len(b.order)
}

// Aggregate folds expenses into one net balance per participant.
//
// The payer is credited with the full amount and every split participant is
// debited by their share. A payer listed in their own splits is debited like
// anyone else. No rounding or renormalisation is applied.
func Aggregate(expenses []model.Expense) *Balances {
	b := newBalances()
	for _, e := range expenses {
		b.add(e.Payer, e.Amount)
		for _, s := range e.Splits {
			b.add(s.Participant, s.Amount.Neg())
		}
	}
	return b
}

// Summary is one participant's totals across a set of expenses.
type Summary struct {
	Participant string
	Paid        decimal.Decimal
	Owed        decimal.Decimal
	Net         decimal.Decimal
}

// Summarize returns paid/owed/net totals per participant in first-seen order.
func Summarize(expenses []model.Expense) []Summary {
	idx := make(map[string]int)
	var out []Summary
	get := func(p string) *Summary {
		i, ok := idx[p]
		if !ok {
			i = len(out)
			idx[p] = i
			out = append(out, Summary{Participant: p})
		}
		return &out[i]
	}

	for _, e := range expenses {
		s := get(e.Payer)
		s.Paid = s.Paid.Add(e.Amount)
		for _, sh := range e.Splits {
			s := get(sh.Participant)
			s.Owed = s.Owed.Add(sh.Amount)
		}
	}
	for i := range out {
		out[i].Net = out[i].Paid.Sub(out[i].Owed)
	}
	return out
}
