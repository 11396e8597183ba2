package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tripsplit-dev/tripsplit/internal/model"
)

// Header is the CSV header for expenses.csv.
const Header = "expense_id,date,payer,amount,description,splits"

const (
	numFields  = 6
	dateFormat = "2006-01-02"
	colID      = 0
	colDate    = 1
	colPayer   = 2
	colAmount  = 3
	colDesc    = 4
	colSplits  = 5
)

// ReadExpenses reads all expenses from an expenses.csv reader.
func ReadExpenses(r io.Reader) ([]model.Expense, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading expenses CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var expenses []model.Expense
	for i, rec := range records[1:] {
		e, err := UnmarshalExpense(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}

// WriteExpenses writes expenses to an expenses.csv writer (including header).
func WriteExpenses(w io.Writer, expenses []model.Expense) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, e := range expenses {
		if err := cw.Write(MarshalExpense(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// AppendExpenses appends expenses to an existing expenses.csv writer (no header).
func AppendExpenses(w io.Writer, expenses []model.Expense) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, e := range expenses {
		if err := cw.Write(MarshalExpense(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalExpense converts an Expense to a CSV row.
func MarshalExpense(e model.Expense) []string {
	row := make([]string, numFields)
	row[colID] = e.ID
	row[colDate] = e.Date.Format(dateFormat)
	row[colPayer] = e.Payer
	row[colAmount] = e.Amount.StringFixed(2)
	row[colDesc] = e.Description
	row[colSplits] = FormatSplits(e.Splits)
	return row
}

// UnmarshalExpense converts a CSV row to an Expense.
func UnmarshalExpense(record []string) (model.Expense, error) {
	if len(record) != numFields {
		return model.Expense{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.Expense{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Expense{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	splits, err := ParseSplits(record[colSplits])
	if err != nil {
		return model.Expense{}, err
	}

	return model.Expense{
		ID:          record[colID],
		Date:        date,
		Payer:       record[colPayer],
		Amount:      amount,
		Description: record[colDesc],
		Splits:      splits,
	}, nil
}

// FormatSplits renders shares as "ana=40.00;ben=40.00". Nil shares render empty.
func FormatSplits(shares []model.Share) string {
	parts := make([]string, len(shares))
	for i, s := range shares {
		parts[i] = s.Participant + "=" + s.Amount.StringFixed(2)
	}
	return strings.Join(parts, ";")
}

// ParseSplits is the inverse of FormatSplits. An empty column means no splits.
func ParseSplits(col string) ([]model.Share, error) {
	if col == "" {
		return nil, nil
	}
	parts := strings.Split(col, ";")
	shares := make([]model.Share, 0, len(parts))
	for _, p := range parts {
		who, amt, ok := strings.Cut(p, "=")
		if !ok || who == "" {
			return nil, fmt.Errorf("parsing split %q: want participant=amount", p)
		}
		d, err := decimal.NewFromString(amt)
		if err != nil {
			return nil, fmt.Errorf("parsing split amount %q: %w", amt, err)
		}
		shares = append(shares, model.Share{Participant: who, Amount: d})
	}
	return shares, nil
}
