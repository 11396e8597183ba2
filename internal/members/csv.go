package members

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/tripsplit-dev/tripsplit/internal/model"
)

const (
	numFields = 3
	colID     = 0
	colName   = 1
	colEmail  = 2
)

// ReadMembers reads members.csv.
func ReadMembers(r io.Reader) ([]model.Member, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading members CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var members []model.Member
	for i, rec := range records[1:] {
		m, err := UnmarshalMember(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		members = append(members, m)
	}
	return members, nil
}

// WriteMembers writes members.csv.
func WriteMembers(w io.Writer, members []model.Member) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"member_id", "name", "email"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, m := range members {
		if err := cw.Write(MarshalMember(m)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalMember converts a Member to a CSV row.
func MarshalMember(m model.Member) []string {
	row := make([]string, numFields)
	row[colID] = m.ID
	row[colName] = m.Name
	row[colEmail] = m.Email
	return row
}

// UnmarshalMember converts a CSV row to a Member.
func UnmarshalMember(record []string) (model.Member, error) {
	if len(record) != numFields {
		return model.Member{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	if err := ValidateID(record[colID]); err != nil {
		return model.Member{}, err
	}
	return model.Member{
		ID:    record[colID],
		Name:  record[colName],
		Email: record[colEmail],
	}, nil
}
