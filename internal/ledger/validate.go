package ledger

import (
	"fmt"

	"github.com/tripsplit-dev/tripsplit/internal/id"
	"github.com/tripsplit-dev/tripsplit/internal/model"
	"github.com/tripsplit-dev/tripsplit/internal/money"
)

// ValidationError describes a single ledger invariant violation.
type ValidationError struct {
	Invariant   int
	ExpenseID   string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invariant %d [%s]: %s", e.Invariant, e.ExpenseID, e.Description)
}

// MemberChecker tests whether a participant ID is on the trip roster.
type MemberChecker interface {
	Exists(id string) bool
}

// ValidateExpenses enforces 6 invariants on the expenses of a given month.
func ValidateExpenses(expenses []model.Expense, members MemberChecker, year, month int) []ValidationError {
	var errs []ValidationError
	add := func(inv int, expenseID, format string, args ...any) {
		errs = append(errs, ValidationError{Invariant: inv, ExpenseID: expenseID, Description: fmt.Sprintf(format, args...)})
	}

	for _, e := range expenses {
		// Invariant 1: Splits reconcile with the amount to within a cent.
		if e.Splits != nil {
			total := model.SumShares(e.Splits)
			if !money.WithinTolerance(total, e.Amount) {
				add(1, e.ID, "splits (%s) != amount (%s)", total.StringFixed(2), e.Amount.StringFixed(2))
			}
		}

		// Invariant 2: Payer and participants are on the roster.
		if !members.Exists(e.Payer) {
			add(2, e.ID, "unknown payer %q", e.Payer)
		}
		for _, s := range e.Splits {
			if !members.Exists(s.Participant) {
				add(2, e.ID, "unknown participant %q", s.Participant)
			}
		}

		// Invariant 3: Date within month.
		if e.Date.Year() != year || int(e.Date.Month()) != month {
			add(3, e.ID, "date %s not in %04d-%02d", e.Date.Format(dateFormat), year, month)
		}

		// Invariant 4: Positive amount, non-negative shares, whole cents.
		if !e.Amount.IsPositive() {
			add(4, e.ID, "amount %s must be positive", e.Amount.StringFixed(2))
		}
		if !money.HasCentPrecision(e.Amount) {
			add(4, e.ID, "amount %s has more than 2 decimal places", e.Amount)
		}
		for _, s := range e.Splits {
			if s.Amount.IsNegative() {
				add(4, e.ID, "share of %s is negative", s.Participant)
			}
			if !money.HasCentPrecision(s.Amount) {
				add(4, e.ID, "share of %s (%s) has more than 2 decimal places", s.Participant, s.Amount)
			}
		}

		// Invariant 6: A participant appears at most once per expense.
		seen := make(map[string]bool, len(e.Splits))
		for _, s := range e.Splits {
			if seen[s.Participant] {
				add(6, e.ID, "participant %q listed twice", s.Participant)
			}
			seen[s.Participant] = true
		}
	}

	// Invariant 5: Unique sequential IDs, contiguous 1..N, in this month.
	seqSeen := make(map[int]bool)
	for _, e := range expenses {
		y, m, seq, err := id.ParseExpenseID(e.ID)
		if err != nil {
			add(5, e.ID, "invalid expense ID: %v", err)
			continue
		}
		if y != year || m != month {
			add(5, e.ID, "expense ID not in %04d-%02d", year, month)
		}
		if seqSeen[seq] {
			add(5, e.ID, "duplicate sequence %d", seq)
		}
		seqSeen[seq] = true
	}
	for i := 1; i <= len(seqSeen); i++ {
		if !seqSeen[i] {
			add(5, fmt.Sprintf("seq %d", i), "missing sequence %d in 1..%d", i, len(seqSeen))
		}
	}

	return errs
}
