package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tripsplit-dev/tripsplit/internal/id"
	"github.com/tripsplit-dev/tripsplit/internal/model"
)

const (
	expensesDir  = "expenses"
	expensesFile = "expenses.csv"
)

// Service provides business logic for the trip expense ledger.
type Service struct {
	repoRoot string
	members  MemberChecker
}

// NewService creates a ledger Service.
func NewService(repoRoot string, members MemberChecker) *Service {
	return &Service{repoRoot: repoRoot, members: members}
}

// AddParams holds parameters for recording an expense.
type AddParams struct {
	Date        time.Time
	Description string
	Payer       string
	Amount      decimal.Decimal
	Splits      []model.Share // nil = attributed to the payer alone
}

// Add validates an expense together with the rest of its month and appends it
// to that month's expenses.csv. Returns the expense ID.
func (s *Service) Add(params AddParams) (string, error) {
	year := params.Date.Year()
	month := int(params.Date.Month())

	existing, err := s.ReadMonth(year, month)
	if err != nil {
		return "", err
	}

	ids := make([]string, len(existing))
	for i, e := range existing {
		ids[i] = e.ID
	}
	expenseID := id.FormatExpenseID(year, month, id.NextSeq(ids))

	expense := model.Expense{
		ID:          expenseID,
		Date:        params.Date,
		Description: params.Description,
		Payer:       params.Payer,
		Amount:      params.Amount,
		Splits:      params.Splits,
	}

	// Validate ALL expenses of the month together.
	all := append(existing, expense)
	if verrs := ValidateExpenses(all, s.members, year, month); len(verrs) > 0 {
		msgs := make([]string, len(verrs))
		for i, ve := range verrs {
			msgs[i] = ve.Error()
		}
		return "", fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
	}

	path := s.monthPath(year, month)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating expenses dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return "", fmt.Errorf("opening expenses: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return "", fmt.Errorf("writing header: %w", err)
		}
	}

	if err := AppendExpenses(f, []model.Expense{expense}); err != nil {
		return "", fmt.Errorf("appending expense: %w", err)
	}

	return expenseID, nil
}

// ReadMonth reads all expenses for a given year/month.
func (s *Service) ReadMonth(year, month int) ([]model.Expense, error) {
	path := s.monthPath(year, month)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening expenses %s: %w", path, err)
	}
	defer f.Close()

	expenses, err := ReadExpenses(f)
	if err != nil {
		return nil, fmt.Errorf("reading expenses %s: %w", path, err)
	}
	return expenses, nil
}

// ReadAll reads every month in the ledger, oldest first.
func (s *Service) ReadAll() ([]model.Expense, error) {
	months, err := s.Months()
	if err != nil {
		return nil, err
	}

	var all []model.Expense
	for _, ym := range months {
		expenses, err := s.ReadMonth(ym[0], ym[1])
		if err != nil {
			return nil, err
		}
		all = append(all, expenses...)
	}
	return all, nil
}

// Months returns the [year, month] pairs that have a ledger file, oldest first.
func (s *Service) Months() ([][2]int, error) {
	pattern := filepath.Join(s.repoRoot, expensesDir, "*", "*", expensesFile)
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("listing ledger months: %w", err)
	}

	var months [][2]int
	for _, p := range paths {
		monthDir := filepath.Dir(p)
		year, yerr := strconv.Atoi(filepath.Base(filepath.Dir(monthDir)))
		month, merr := strconv.Atoi(filepath.Base(monthDir))
		if yerr != nil || merr != nil || month < 1 || month > 12 {
			continue
		}
		months = append(months, [2]int{year, month})
	}
	sort.Slice(months, func(i, j int) bool {
		if months[i][0] != months[j][0] {
			return months[i][0] < months[j][0]
		}
		return months[i][1] < months[j][1]
	})
	return months, nil
}

// NextExpenseSeq returns the next available sequence number for a month.
func (s *Service) NextExpenseSeq(year, month int) (int, error) {
	expenses, err := s.ReadMonth(year, month)
	if err != nil {
		return 0, err
	}
	ids := make([]string, len(expenses))
	for i, e := range expenses {
		ids[i] = e.ID
	}
	return id.NextSeq(ids), nil
}

func (s *Service) monthPath(year, month int) string {
	return filepath.Join(s.repoRoot, MonthFile(year, month))
}

// MonthFile returns the ledger file for a month, relative to the repo root.
func MonthFile(year, month int) string {
	return filepath.Join(expensesDir, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month), expensesFile)
}
