package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tripsplit-dev/tripsplit/internal/model"
	"github.com/tripsplit-dev/tripsplit/internal/money"
)

// SplitwiseParser parses Splitwise group CSV exports. After the fixed columns
// come one column per person holding their net effect: the payer is the one
// positive value, everyone else owes the negation of theirs.
//
// Participants are reported by their column header; callers map them to
// member IDs.
type SplitwiseParser struct{}

const (
	splitwiseDateFormat = "2006-01-02"
	splitwiseFixedCols  = 5
	splitwiseColDate    = 0
	splitwiseColDesc    = 1
	splitwiseColCat     = 2
	splitwiseColCost    = 3
	splitwisePayment    = "Payment"
)

// Format returns the parser name.
func (p *SplitwiseParser) Format() string { return "splitwise" }

// Parse reads a Splitwise CSV. Payment rows and the trailing "Total balance"
// row are skipped.
func (p *SplitwiseParser) Parse(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading splitwise CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	header := records[0]
	if len(header) <= splitwiseFixedCols {
		return nil, fmt.Errorf("splitwise CSV has no person columns")
	}
	people := header[splitwiseFixedCols:]

	var rows []Row
	for i, rec := range records[1:] {
		if skipSplitwiseRow(rec) {
			continue
		}
		if len(rec) != len(header) {
			return nil, fmt.Errorf("row %d: expected %d fields, got %d", i+2, len(header), len(rec))
		}
		row, err := parseSplitwiseRow(rec, people)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func skipSplitwiseRow(rec []string) bool {
	if len(rec) == 0 || strings.TrimSpace(rec[splitwiseColDate]) == "" {
		return true
	}
	return len(rec) > splitwiseColCat && rec[splitwiseColCat] == splitwisePayment
}

func parseSplitwiseRow(rec []string, people []string) (Row, error) {
	date, err := time.Parse(splitwiseDateFormat, rec[splitwiseColDate])
	if err != nil {
		return Row{}, fmt.Errorf("parsing date %q: %w", rec[splitwiseColDate], err)
	}

	cost, err := money.Parse(rec[splitwiseColCost])
	if err != nil {
		return Row{}, err
	}
	if !cost.IsPositive() {
		return Row{}, fmt.Errorf("cost %s must be positive", cost.StringFixed(2))
	}

	payer := ""
	var payerNet decimal.Decimal
	var splits []model.Share
	for k, person := range people {
		net, err := money.Parse(strings.TrimSpace(rec[splitwiseFixedCols+k]))
		if err != nil {
			return Row{}, fmt.Errorf("%s: %w", person, err)
		}
		switch {
		case net.IsPositive():
			if payer != "" {
				return Row{}, fmt.Errorf("expenses with several payers (%s, %s) are not supported", payer, person)
			}
			payer, payerNet = person, net
		case net.IsNegative():
			splits = append(splits, model.Share{Participant: person, Amount: net.Neg()})
		}
	}
	if payer == "" {
		return Row{}, fmt.Errorf("no payer: no person column is positive")
	}
	if own := cost.Sub(payerNet); own.IsPositive() {
		splits = append([]model.Share{{Participant: payer, Amount: own}}, splits...)
	}

	return Row{
		Date:        date,
		Description: rec[splitwiseColDesc],
		Amount:      cost,
		Payer:       payer,
		Splits:      splits,
	}, nil
}
