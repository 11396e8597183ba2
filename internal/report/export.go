package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tripsplit-dev/tripsplit/internal/model"
)

// Run is one computed settlement plan, stamped so exported files can be told apart.
type Run struct {
	ID          uuid.UUID
	GeneratedAt time.Time
	Currency    string
	Settlements []model.Settlement
}

// NewRun stamps settlements with a fresh run ID.
func NewRun(settlements []model.Settlement, currency string, now time.Time) Run {
	return Run{
		ID:          uuid.New(),
		GeneratedAt: now.UTC(),
		Currency:    currency,
		Settlements: settlements,
	}
}

// Header is the CSV header for exported settlement plans.
const Header = "run_id,generated_at,from,to,amount,currency"

const (
	numFields      = 6
	exportDir      = "exports"
	colRunID       = 0
	colGeneratedAt = 1
	colFrom        = 2
	colTo          = 3
	colAmount      = 4
	colCurrency    = 5
)

// MarshalSettlement converts one settlement of a run to a CSV row.
func MarshalSettlement(run Run, s model.Settlement) []string {
	row := make([]string, numFields)
	row[colRunID] = run.ID.String()
	row[colGeneratedAt] = run.GeneratedAt.Format(time.RFC3339)
	row[colFrom] = s.From
	row[colTo] = s.To
	row[colAmount] = s.Amount.StringFixed(2)
	row[colCurrency] = run.Currency
	return row
}

// UnmarshalSettlement converts a CSV row back to its run ID and settlement.
func UnmarshalSettlement(record []string) (uuid.UUID, model.Settlement, error) {
	if len(record) != numFields {
		return uuid.Nil, model.Settlement{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	runID, err := uuid.Parse(record[colRunID])
	if err != nil {
		return uuid.Nil, model.Settlement{}, fmt.Errorf("parsing run_id %q: %w", record[colRunID], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return uuid.Nil, model.Settlement{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	return runID, model.Settlement{
		From:   record[colFrom],
		To:     record[colTo],
		Amount: amount,
	}, nil
}

// WriteCSV writes a run as CSV (including header).
func WriteCSV(w io.Writer, run Run) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, s := range run.Settlements {
		if err := cw.Write(MarshalSettlement(run, s)); err != nil {
			return fmt.Errorf("writing settlement %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads settlements written by WriteCSV.
func ReadCSV(r io.Reader) ([]model.Settlement, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading settlements CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var out []model.Settlement
	for i, rec := range records[1:] {
		_, s, err := UnmarshalSettlement(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// Export writes a run to <repoRoot>/exports/settlements-<timestamp>.csv and
// returns the file path.
func Export(repoRoot string, run Run) (string, error) {
	dir := filepath.Join(repoRoot, exportDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating exports dir: %w", err)
	}

	name := fmt.Sprintf("settlements-%s-%s.csv", run.GeneratedAt.Format("20060102-150405"), run.ID.String()[:8])
	path := filepath.Join(dir, name)
	if err := WriteFile(path, run); err != nil {
		return "", err
	}
	return path, nil
}

// WriteFile writes a run as CSV to path, replacing any existing file.
func WriteFile(path string, run Run) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export: %w", err)
	}
	defer f.Close()

	if err := WriteCSV(f, run); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}
