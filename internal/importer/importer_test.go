package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `date,description,amount,paid_by
2026-07-03,Groceries,54.20,ana
2026-07-04,"Ferry, return",$36.00,ben
2026-07-05,Museum,45,cho
`

func TestGenericParser_Parse(t *testing.T) {
	p := &GenericParser{}
	rows, err := p.Parse(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Groceries", rows[0].Description)
	assert.Equal(t, "54.20", rows[0].Amount.StringFixed(2))
	assert.Equal(t, "ana", rows[0].Payer)
	assert.Equal(t, 3, rows[0].Date.Day())

	assert.Equal(t, "Ferry, return", rows[1].Description)
	assert.Equal(t, "36.00", rows[1].Amount.StringFixed(2))

	assert.Equal(t, "45.00", rows[2].Amount.StringFixed(2))
}

func TestGenericParser_HeaderOnly(t *testing.T) {
	p := &GenericParser{}
	rows, err := p.Parse(strings.NewReader("date,description,amount,paid_by\n"))
	require.NoError(t, err)
	assert.Nil(t, rows)
}

func TestGenericParser_Errors(t *testing.T) {
	tests := []struct {
		name string
		row  string
		want string
	}{
		{"bad date", "07/03/2026,x,1.00,ana", "parsing date"},
		{"bad amount", "2026-07-03,x,abc,ana", "parsing amount"},
		{"sub-cent amount", "2026-07-03,x,1.005,ana", "more than 2 decimal places"},
		{"negative amount", "2026-07-03,x,-4.00,ana", "must be positive"},
		{"missing payer", "2026-07-03,x,4.00,", "missing paid_by"},
		{"wrong field count", "2026-07-03,x,4.00", "wrong number of fields"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &GenericParser{}
			_, err := p.Parse(strings.NewReader("date,description,amount,paid_by\n" + tt.row + "\n"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("generic"))
	assert.NotNil(t, r.Get("GENERIC"))
	assert.NotNil(t, r.Get("splitwise"))
	assert.Nil(t, r.Get("unknown"))

	assert.Panics(t, func() { r.Register(&GenericParser{}) })
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	importPath := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(filepath.Join(importPath, "processed"), 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(importPath, "b.csv"), []byte(sample), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(importPath, "a.CSV"), []byte(sample), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(importPath, "notes.txt"), []byte("x"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a.CSV", files[0].Name)
	assert.Equal(t, "b.csv", files[1].Name)
	assert.Equal(t, int64(len(sample)), files[1].Size)
}

func TestScan_NoImportDir(t *testing.T) {
	files, err := Scan(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestMarkProcessed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "import"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "import", "trip.csv"), []byte(sample), 0o644))

	require.NoError(t, MarkProcessed(dir, "trip.csv"))

	_, err := os.Stat(filepath.Join(dir, "import", "trip.csv"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "import", "processed", "trip.csv"))
	assert.NoError(t, err)
}

const splitwiseSample = `Date,Description,Category,Cost,Currency,Ana Lima,Ben,Cho
2026-07-03,Dinner,Dining out,90.00,EUR,60.00,-30.00,-30.00
2026-07-04,Taxi,Taxi,25.00,EUR,-10.00,-15.00,25.00
2026-07-05,Settle up,Payment,30.00,EUR,-30.00,30.00,0.00

,Total balance, , ,EUR,20.00,-15.00,-5.00
`

func TestSplitwiseParser_Parse(t *testing.T) {
	rows, err := (&SplitwiseParser{}).Parse(strings.NewReader(splitwiseSample))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	dinner := rows[0]
	assert.Equal(t, "Dinner", dinner.Description)
	assert.Equal(t, "Ana Lima", dinner.Payer)
	assert.Equal(t, "90.00", dinner.Amount.StringFixed(2))
	require.Len(t, dinner.Splits, 3)
	assert.Equal(t, "Ana Lima", dinner.Splits[0].Participant)
	assert.Equal(t, "30.00", dinner.Splits[0].Amount.StringFixed(2))
	assert.Equal(t, "Ben", dinner.Splits[1].Participant)
	assert.Equal(t, "30.00", dinner.Splits[1].Amount.StringFixed(2))

	// The payer owes nothing of their own taxi.
	taxi := rows[1]
	assert.Equal(t, "Cho", taxi.Payer)
	require.Len(t, taxi.Splits, 2)
	assert.Equal(t, "Ana Lima", taxi.Splits[0].Participant)
	assert.Equal(t, "15.00", taxi.Splits[1].Amount.StringFixed(2))
}

func TestSplitwiseParser_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no people", "Date,Description,Category,Cost,Currency\n2026-07-03,X,Y,1.00,EUR\n", "no person columns"},
		{"two payers", "Date,Description,Category,Cost,Currency,A,B\n2026-07-03,X,Y,10.00,EUR,5.00,5.00\n", "several payers"},
		{"no payer", "Date,Description,Category,Cost,Currency,A,B\n2026-07-03,X,Y,10.00,EUR,-5.00,-5.00\n", "no payer"},
		{"bad date", "Date,Description,Category,Cost,Currency,A\n07/03/2026,X,Y,10.00,EUR,10.00\n", "parsing date"},
		{"short row", "Date,Description,Category,Cost,Currency,A,B\n2026-07-03,X,Y,10.00,EUR,10.00\n", "expected 7 fields"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&SplitwiseParser{}).Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
