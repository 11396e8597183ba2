package api

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tripsplit-dev/tripsplit/internal/balance"
	"github.com/tripsplit-dev/tripsplit/internal/model"
	"github.com/tripsplit-dev/tripsplit/internal/split"
)

// EqualSplitRequest is the body of POST /splits/equal.
type EqualSplitRequest struct {
	Amount       decimal.Decimal `json:"amount"`
	Participants []string        `json:"participants"`
}

// SplitEntry is one entry of a custom split. Set exactly one of Amount or Percentage.
type SplitEntry struct {
	Participant string              `json:"participant"`
	Amount      decimal.NullDecimal `json:"amount"`
	Percentage  decimal.NullDecimal `json:"percentage"`
}

// CustomSplitRequest is the body of POST /splits/custom and /splits/validate.
type CustomSplitRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Splits []SplitEntry    `json:"splits"`
}

func (r CustomSplitRequest) inputs() []split.Input {
	out := make([]split.Input, len(r.Splits))
	for i, s := range r.Splits {
		out[i] = split.Input{Participant: s.Participant, Amount: s.Amount, Percentage: s.Percentage}
	}
	return out
}

// ShareDTO is a participant amount on the wire.
type ShareDTO struct {
	Participant string          `json:"participant"`
	Amount      decimal.Decimal `json:"amount"`
}

// ExpenseDTO is one expense in a settlement request. Omit splits for an
// expense attributed to the payer alone.
type ExpenseDTO struct {
	Payer  string          `json:"payer"`
	Amount decimal.Decimal `json:"amount"`
	Splits []ShareDTO      `json:"splits,omitempty"`
}

// SettleRequest is the body of POST /settlements.
type SettleRequest struct {
	Expenses []ExpenseDTO `json:"expenses"`
}

// check rejects expenses the aggregator would misread: a missing payer or
// participant, a non-positive amount, or a negative share.
func (r SettleRequest) check() error {
	for i, e := range r.Expenses {
		if e.Payer == "" {
			return fmt.Errorf("expense %d: payer is required", i)
		}
		if !e.Amount.IsPositive() {
			return fmt.Errorf("expense %d: amount %s must be positive", i, e.Amount.String())
		}
		for k, s := range e.Splits {
			if s.Participant == "" {
				return fmt.Errorf("expense %d split %d: participant is required", i, k)
			}
			if s.Amount.IsNegative() {
				return fmt.Errorf("expense %d split %d: amount %s must not be negative", i, k, s.Amount.String())
			}
		}
	}
	return nil
}

func (r SettleRequest) expenses() []model.Expense {
	out := make([]model.Expense, len(r.Expenses))
	for i, e := range r.Expenses {
		out[i] = model.Expense{Payer: e.Payer, Amount: e.Amount}
		if e.Splits != nil {
			out[i].Splits = make([]model.Share, len(e.Splits))
			for k, s := range e.Splits {
				out[i].Splits[k] = model.Share{Participant: s.Participant, Amount: s.Amount}
			}
		}
	}
	return out
}

// ShareResponse is a computed share, amounts rendered to cents.
type ShareResponse struct {
	Participant string `json:"participant"`
	Amount      string `json:"amount"`
}

// SettlementResponse is one recommended payment.
type SettlementResponse struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

// BalanceResponse is one participant's totals.
type BalanceResponse struct {
	Participant string `json:"participant"`
	Paid        string `json:"paid"`
	Owed        string `json:"owed"`
	Net         string `json:"net"`
}

// SettleResponse is the result of POST /settlements.
type SettleResponse struct {
	Balances    []BalanceResponse    `json:"balances"`
	Settlements []SettlementResponse `json:"settlements"`
}

func toShareResponses(shares []model.Share) []ShareResponse {
	out := make([]ShareResponse, len(shares))
	for i, s := range shares {
		out[i] = ShareResponse{Participant: s.Participant, Amount: s.Amount.StringFixed(2)}
	}
	return out
}

func toSettleResponse(sums []balance.Summary, settlements []model.Settlement) SettleResponse {
	resp := SettleResponse{
		Balances:    make([]BalanceResponse, len(sums)),
		Settlements: make([]SettlementResponse, len(settlements)),
	}
	for i, s := range sums {
		resp.Balances[i] = BalanceResponse{
			Participant: s.Participant,
			Paid:        s.Paid.StringFixed(2),
			Owed:        s.Owed.StringFixed(2),
			Net:         s.Net.StringFixed(2),
		}
	}
	for i, s := range settlements {
		resp.Settlements[i] = SettlementResponse{From: s.From, To: s.To, Amount: s.Amount.StringFixed(2)}
	}
	return resp
}
