package split

import (
	"errors"
	"fmt"
)

// Code identifies which split invariant a request violated.
type Code string

const (
	CodeInvalidAmount          Code = "INVALID_AMOUNT"
	CodeEmptySplitSet          Code = "EMPTY_SPLIT_SET"
	CodeNoParticipants         Code = "NO_PARTICIPANTS"
	CodeAmbiguousSplitMode     Code = "AMBIGUOUS_SPLIT_MODE"
	CodeMissingSplitValue      Code = "MISSING_SPLIT_VALUE"
	CodeMixedSplitModes        Code = "MIXED_SPLIT_MODES"
	CodeNonPositiveSplitAmount Code = "NON_POSITIVE_SPLIT_AMOUNT"
	CodePercentageOutOfRange   Code = "PERCENTAGE_OUT_OF_RANGE"
	CodeSplitSumMismatch       Code = "SPLIT_SUM_MISMATCH"
	CodeDuplicateParticipant   Code = "DUPLICATE_PARTICIPANT"
	CodeSplitAmountPrecision   Code = "SPLIT_AMOUNT_PRECISION"
)

// ValidationError describes the first violated split invariant.
// Index is the offending entry, or -1 when the request as a whole is at fault.
type ValidationError struct {
	Code        Code
	Index       int
	Participant string
	Description string
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Description)
	}
	return fmt.Sprintf("%s [entry %d %q]: %s", e.Code, e.Index, e.Participant, e.Description)
}

// Is matches any ValidationError with the same Code, so callers can use
// errors.Is(err, split.ErrMixedSplitModes).
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Code == e.Code
}

var (
	ErrInvalidAmount          = &ValidationError{Code: CodeInvalidAmount, Index: -1, Description: "amount must be a positive number of cents"}
	ErrEmptySplitSet          = &ValidationError{Code: CodeEmptySplitSet, Index: -1, Description: "at least one split is required"}
	ErrNoParticipants         = &ValidationError{Code: CodeNoParticipants, Index: -1, Description: "at least one participant is required"}
	ErrAmbiguousSplitMode     = &ValidationError{Code: CodeAmbiguousSplitMode, Index: -1, Description: "split sets both amount and percentage"}
	ErrMissingSplitValue      = &ValidationError{Code: CodeMissingSplitValue, Index: -1, Description: "split sets neither amount nor percentage"}
	ErrMixedSplitModes        = &ValidationError{Code: CodeMixedSplitModes, Index: -1, Description: "splits mix amounts and percentages"}
	ErrNonPositiveSplitAmount = &ValidationError{Code: CodeNonPositiveSplitAmount, Index: -1, Description: "split amount must be positive"}
	ErrPercentageOutOfRange   = &ValidationError{Code: CodePercentageOutOfRange, Index: -1, Description: "percentage must be between 0 and 100"}
	ErrSplitSumMismatch       = &ValidationError{Code: CodeSplitSumMismatch, Index: -1, Description: "splits do not add up to the total"}
	ErrDuplicateParticipant   = &ValidationError{Code: CodeDuplicateParticipant, Index: -1, Description: "participant appears more than once"}
	ErrSplitAmountPrecision   = &ValidationError{Code: CodeSplitAmountPrecision, Index: -1, Description: "split amount has more than 2 decimal places"}
)

func newError(code Code, index int, participant, format string, args ...any) *ValidationError {
	return &ValidationError{
		Code:        code,
		Index:       index,
		Participant: participant,
		Description: fmt.Sprintf(format, args...),
	}
}

// CodeOf returns the Code of a split validation error anywhere in err's chain.
func CodeOf(err error) (Code, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Code, true
	}
	return "", false
}
