package split

import "github.com/shopspring/decimal"

// Mode is how a custom split expresses each participant's share.
type Mode int

const (
	ModeAmount Mode = iota + 1
	ModePercentage
)

func (m Mode) String() string {
	switch m {
	case ModeAmount:
		return "amount"
	case ModePercentage:
		return "percentage"
	default:
		return "unknown"
	}
}

// Input is one caller-supplied entry of a custom split.
// Exactly one of Amount and Percentage must be set.
type Input struct {
	Participant string
	Amount      decimal.NullDecimal
	Percentage  decimal.NullDecimal
}

// ByAmount returns an Input owing a fixed amount.
func ByAmount(participant string, amount decimal.Decimal) Input {
	return Input{Participant: participant, Amount: decimal.NewNullDecimal(amount)}
}

// ByPercentage returns an Input owing a percentage of the total.
func ByPercentage(participant string, pct decimal.Decimal) Input {
	return Input{Participant: participant, Percentage: decimal.NewNullDecimal(pct)}
}

// value returns whichever of Amount or Percentage is set.
func (in Input) value() decimal.Decimal {
	if in.Amount.Valid {
		return in.Amount.Decimal
	}
	return in.Percentage.Decimal
}

// ModeOf reports the mode of the first entry. It does not check consistency;
// use Validate for that.
func ModeOf(inputs []Input) Mode {
	if len(inputs) == 0 {
		return 0
	}
	if inputs[0].Percentage.Valid && !inputs[0].Amount.Valid {
		return ModePercentage
	}
	if inputs[0].Amount.Valid && !inputs[0].Percentage.Valid {
		return ModeAmount
	}
	return 0
}
