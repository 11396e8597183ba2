package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tripsplit-dev/tripsplit/internal/money"
)

// GenericParser reads the plain "date,description,amount,paid_by" layout that
// spreadsheets and receipt apps can export.
type GenericParser struct{}

const (
	genericDateFormat = "2006-01-02"
	genericNumFields  = 4
	genericColDate    = 0
	genericColDesc    = 1
	genericColAmount  = 2
	genericColPayer   = 3
)

// Format returns the parser name.
func (p *GenericParser) Format() string { return "generic" }

// Parse reads a generic CSV and returns Rows. Blank lines are skipped.
func (p *GenericParser) Parse(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = genericNumFields
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading generic CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var rows []Row
	for i, rec := range records[1:] {
		row, err := parseGenericRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseGenericRow(rec []string) (Row, error) {
	date, err := time.Parse(genericDateFormat, rec[genericColDate])
	if err != nil {
		return Row{}, fmt.Errorf("parsing date %q: %w", rec[genericColDate], err)
	}

	amount, err := money.Parse(strings.TrimPrefix(rec[genericColAmount], "$"))
	if err != nil {
		return Row{}, err
	}
	if !amount.IsPositive() {
		return Row{}, fmt.Errorf("amount %s must be positive", amount.StringFixed(2))
	}

	payer := strings.TrimSpace(rec[genericColPayer])
	if payer == "" {
		return Row{}, fmt.Errorf("missing paid_by")
	}

	return Row{
		Date:        date,
		Description: rec[genericColDesc],
		Amount:      amount,
		Payer:       payer,
	}, nil
}
