package split

import (
	"github.com/shopspring/decimal"

	"github.com/tripsplit-dev/tripsplit/internal/model"
	"github.com/tripsplit-dev/tripsplit/internal/money"
)

// Equal divides amount evenly among participants.
//
// Every participant gets the per-head share truncated to cents; the first
// participant in input order also absorbs the rounding remainder, so the
// shares always add up to amount exactly.
func Equal(amount decimal.Decimal, participants []string) ([]model.Share, error) {
	if len(participants) == 0 {
		return nil, newError(CodeNoParticipants, -1, "", "at least one participant is required")
	}
	if err := checkAmount(amount); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(participants))
	for i, p := range participants {
		if seen[p] {
			return nil, newError(CodeDuplicateParticipant, i, p, "participant appears more than once")
		}
		seen[p] = true
	}

	n := decimal.NewFromInt(int64(len(participants)))
	base := money.Floor(amount.Div(n))
	remainder := money.Round(amount.Sub(base.Mul(n)))

	shares := make([]model.Share, len(participants))
	for i, p := range participants {
		share := base
		if i == 0 {
			share = base.Add(remainder)
		}
		shares[i] = model.Share{Participant: p, Amount: share}
	}
	return shares, nil
}

// Custom divides amount according to caller-supplied amounts or percentages.
// The request is validated first; any violation is returned unchanged.
//
// Percentage shares are rounded to cents individually and the first entry
// absorbs whatever drift that leaves. Fixed amounts are used as given.
func Custom(amount decimal.Decimal, inputs []Input) ([]model.Share, error) {
	if err := Validate(amount, inputs); err != nil {
		return nil, err
	}

	shares := make([]model.Share, len(inputs))
	if ModeOf(inputs) == ModeAmount {
		for i, in := range inputs {
			shares[i] = model.Share{Participant: in.Participant, Amount: in.Amount.Decimal}
		}
		return shares, nil
	}

	for i, in := range inputs {
		shares[i] = model.Share{
			Participant: in.Participant,
			Amount:      money.Round(money.Percent(amount, in.Percentage.Decimal)),
		}
	}
	absorbDrift(shares, money.Round(amount.Sub(model.SumShares(shares))))
	return shares, nil
}

// absorbDrift folds the rounding drift into the first share. When the drift is
// negative and larger than that share, the rest is taken from the following
// shares in order, none going below zero.
func absorbDrift(shares []model.Share, drift decimal.Decimal) {
	if !drift.IsNegative() {
		shares[0].Amount = shares[0].Amount.Add(drift)
		return
	}
	owed := drift.Neg()
	for i := range shares {
		if !owed.IsPositive() {
			return
		}
		take := decimal.Min(owed, shares[i].Amount)
		shares[i].Amount = shares[i].Amount.Sub(take)
		owed = owed.Sub(take)
	}
}

// reconcile checks that percentages sum to 100, or amounts sum to the total,
// within one cent.
func reconcile(amount decimal.Decimal, inputs []Input, mode Mode) error {
	total := decimal.Zero
	for _, in := range inputs {
		total = total.Add(in.value())
	}

	want := amount
	if mode == ModePercentage {
		want = maxPercentage
	}
	if !money.WithinTolerance(total, want) {
		return newError(CodeSplitSumMismatch, -1, "", "%s splits sum to %s, want %s",
			mode, total.String(), want.String())
	}
	return nil
}
