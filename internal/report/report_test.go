package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripsplit-dev/tripsplit/internal/balance"
	"github.com/tripsplit-dev/tripsplit/internal/model"
)

var testTime = time.Date(2026, 7, 15, 10, 30, 0, 0, time.UTC)

func testSettlements() []model.Settlement {
	return []model.Settlement{
		{From: "ben", To: "ana", Amount: decimal.RequireFromString("40")},
		{From: "cho", To: "ana", Amount: decimal.RequireFromString("12.5")},
	}
}

func TestNewRun(t *testing.T) {
	local := time.FixedZone("WEST", 3600)
	run := NewRun(testSettlements(), "EUR", testTime.In(local))

	assert.NotEqual(t, uuid.Nil, run.ID)
	assert.Equal(t, time.UTC, run.GeneratedAt.Location())
	assert.True(t, run.GeneratedAt.Equal(testTime))
	assert.Equal(t, "EUR", run.Currency)

	other := NewRun(nil, "EUR", testTime)
	assert.NotEqual(t, run.ID, other.ID)
}

func TestCSVRoundTrip(t *testing.T) {
	run := NewRun(testSettlements(), "EUR", testTime)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, run))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, Header, lines[0])
	assert.Equal(t, run.ID.String()+",2026-07-15T10:30:00Z,ben,ana,40.00,EUR", lines[1])

	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "cho", got[1].From)
	assert.Equal(t, "12.50", got[1].Amount.StringFixed(2))
}

func TestUnmarshalSettlement_Errors(t *testing.T) {
	_, _, err := UnmarshalSettlement([]string{"x"})
	assert.Error(t, err)

	_, _, err = UnmarshalSettlement([]string{"not-a-uuid", "", "a", "b", "1.00", "EUR"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing run_id")

	_, _, err = UnmarshalSettlement([]string{uuid.NewString(), "", "a", "b", "one", "EUR"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing amount")
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	run := NewRun(testSettlements(), "EUR", testTime)

	path, err := Export(dir, run)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "exports"), filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "settlements-20260715-103000-"+run.ID.String()[:8]))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	got, err := ReadCSV(f)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestWriteBalances(t *testing.T) {
	sums := []balance.Summary{
		{Participant: "ana", Paid: decimal.RequireFromString("90"), Owed: decimal.RequireFromString("30"), Net: decimal.RequireFromString("60")},
		{Participant: "ben", Owed: decimal.RequireFromString("30"), Net: decimal.RequireFromString("-30")},
	}
	names := map[string]string{"ana": "Ana Lima", "ben": "Ben"}

	var buf bytes.Buffer
	require.NoError(t, WriteBalances(&buf, sums, func(id string) string { return names[id] }, "EUR"))
	out := buf.String()

	assert.Contains(t, out, "NET (EUR)")
	assert.Contains(t, out, "Ana Lima")
	assert.Contains(t, out, "90.00")
	assert.Contains(t, out, "-30.00")
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 3)
}

func TestWriteSettlements(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSettlements(&buf, testSettlements()[:1], IDNamer, "EUR"))
	assert.Equal(t, "ben pays ana 40.00 EUR\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteSettlements(&buf, nil, IDNamer, "EUR"))
	assert.Equal(t, "All settled up.\n", buf.String())
}

func TestWriteShares(t *testing.T) {
	shares := []model.Share{
		{Participant: "ana", Amount: decimal.RequireFromString("3.34")},
		{Participant: "ben", Amount: decimal.RequireFromString("3.33")},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteShares(&buf, shares, IDNamer, ""))
	assert.Equal(t, "ana  3.34\nben  3.33\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteShares(&buf, shares[:1], IDNamer, "EUR"))
	assert.Equal(t, "ana  3.34 EUR\n", buf.String())
}
