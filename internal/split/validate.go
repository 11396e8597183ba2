package split

import (
	"github.com/shopspring/decimal"

	"github.com/tripsplit-dev/tripsplit/internal/money"
)

var maxPercentage = decimal.NewFromInt(100)

// Validate checks a custom split request and returns the first violation found.
//
// Checks run in a fixed order: the total, the split set, each entry's mode and
// range, mode consistency across entries, duplicate participants, and finally
// whether the entries reconcile with the total to within one cent.
func Validate(amount decimal.Decimal, inputs []Input) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	if len(inputs) == 0 {
		return newError(CodeEmptySplitSet, -1, "", "at least one split is required")
	}

	modes := make([]Mode, len(inputs))
	for i, in := range inputs {
		m, err := checkEntry(i, in)
		if err != nil {
			return err
		}
		modes[i] = m
	}

	for i, m := range modes {
		if m != modes[0] {
			return newError(CodeMixedSplitModes, i, inputs[i].Participant,
				"uses %s but entry 0 uses %s", m, modes[0])
		}
	}

	seen := make(map[string]bool, len(inputs))
	for i, in := range inputs {
		if seen[in.Participant] {
			return newError(CodeDuplicateParticipant, i, in.Participant, "participant appears more than once")
		}
		seen[in.Participant] = true
	}

	return reconcile(amount, inputs, modes[0])
}

func checkEntry(i int, in Input) (Mode, error) {
	switch {
	case in.Amount.Valid && in.Percentage.Valid:
		return 0, newError(CodeAmbiguousSplitMode, i, in.Participant, "both amount and percentage are set")
	case !in.Amount.Valid && !in.Percentage.Valid:
		return 0, newError(CodeMissingSplitValue, i, in.Participant, "neither amount nor percentage is set")
	case in.Amount.Valid:
		if !in.Amount.Decimal.IsPositive() {
			return 0, newError(CodeNonPositiveSplitAmount, i, in.Participant,
				"amount %s must be positive", in.Amount.Decimal.String())
		}
		if !money.HasCentPrecision(in.Amount.Decimal) {
			return 0, newError(CodeSplitAmountPrecision, i, in.Participant,
				"amount %s has more than 2 decimal places", in.Amount.Decimal.String())
		}
		return ModeAmount, nil
	default:
		pct := in.Percentage.Decimal
		if pct.IsNegative() || pct.GreaterThan(maxPercentage) {
			return 0, newError(CodePercentageOutOfRange, i, in.Participant,
				"percentage %s not in [0, 100]", pct.String())
		}
		return ModePercentage, nil
	}
}

// checkAmount requires a positive total expressible in whole cents.
func checkAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return newError(CodeInvalidAmount, -1, "", "amount %s must be positive", amount.String())
	}
	if !money.HasCentPrecision(amount) {
		return newError(CodeInvalidAmount, -1, "", "amount %s has more than 2 decimal places", amount.String())
	}
	return nil
}
