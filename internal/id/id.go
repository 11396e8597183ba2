package id

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatExpenseID returns an expense ID like "2026-07-001".
func FormatExpenseID(year, month, seq int) string {
	return fmt.Sprintf("%04d-%02d-%03d", year, month, seq)
}

// ForDate returns the expense ID for the seq-th expense in date's month.
func ForDate(date time.Time, seq int) string {
	return FormatExpenseID(date.Year(), int(date.Month()), seq)
}

// ParseExpenseID parses "2026-07-001" into year, month, seq.
func ParseExpenseID(id string) (year, month, seq int, err error) {
	parts := strings.SplitN(id, "-", 3)
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid expense ID format: %q", id)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid year in expense ID %q: %w", id, err)
	}

	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid month in expense ID %q: %w", id, err)
	}
	if month < 1 || month > 12 {
		return 0, 0, 0, fmt.Errorf("month %d out of range in expense ID %q", month, id)
	}

	seq, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid sequence in expense ID %q: %w", id, err)
	}
	if seq < 1 {
		return 0, 0, 0, fmt.Errorf("sequence must start at 1 in expense ID %q", id)
	}

	return year, month, seq, nil
}

// NextSeq returns one past the highest sequence among ids. Unparseable IDs are ignored.
func NextSeq(ids []string) int {
	maxSeq := 0
	for _, s := range ids {
		_, _, seq, err := ParseExpenseID(s)
		if err != nil {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq + 1
}
