package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *Error          `json:"error"`
}

func do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	NewRouter().ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func TestHealth(t *testing.T) {
	rec, env := do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.JSONEq(t, `{"status":"ok"}`, string(env.Data))
}

func TestSplitEqual(t *testing.T) {
	rec, env := do(t, http.MethodPost, "/api/v1/splits/equal",
		`{"amount": "10.00", "participants": ["A", "B", "C"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[
		{"participant":"A","amount":"3.34"},
		{"participant":"B","amount":"3.33"},
		{"participant":"C","amount":"3.33"}
	]`, string(env.Data))
}

func TestSplitEqual_NumericAmount(t *testing.T) {
	rec, env := do(t, http.MethodPost, "/api/v1/splits/equal",
		`{"amount": 100, "participants": ["A", "B"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[
		{"participant":"A","amount":"50.00"},
		{"participant":"B","amount":"50.00"}
	]`, string(env.Data))
}

func TestSplitEqual_NoParticipants(t *testing.T) {
	rec, env := do(t, http.MethodPost, "/api/v1/splits/equal",
		`{"amount": "10.00", "participants": []}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NO_PARTICIPANTS", env.Error.Code)
	assert.False(t, env.Success)
}

func TestSplitCustom_Percentages(t *testing.T) {
	rec, env := do(t, http.MethodPost, "/api/v1/splits/custom", `{
		"amount": "200.00",
		"splits": [
			{"participant": "A", "percentage": "50"},
			{"participant": "B", "percentage": "25"},
			{"participant": "C", "percentage": "25"}
		]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[
		{"participant":"A","amount":"100.00"},
		{"participant":"B","amount":"50.00"},
		{"participant":"C","amount":"50.00"}
	]`, string(env.Data))
}

func TestSplitCustom_MixedModes(t *testing.T) {
	rec, env := do(t, http.MethodPost, "/api/v1/splits/custom", `{
		"amount": "100.00",
		"splits": [
			{"participant": "A", "amount": "50.00"},
			{"participant": "B", "percentage": "50"}
		]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "MIXED_SPLIT_MODES", env.Error.Code)
}

func TestSplitCustom_NullValueIsMissing(t *testing.T) {
	rec, env := do(t, http.MethodPost, "/api/v1/splits/custom", `{
		"amount": "100.00",
		"splits": [{"participant": "A", "amount": null}]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "MISSING_SPLIT_VALUE", env.Error.Code)
}

func TestValidateSplits(t *testing.T) {
	body := `{"amount": "60.00", "splits": [
		{"participant": "A", "amount": "30.00"},
		{"participant": "B", "amount": "30.00"}]}`
	rec, env := do(t, http.MethodPost, "/api/v1/splits/validate", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"valid":true}`, string(env.Data))

	body = `{"amount": "60.00", "splits": [
		{"participant": "A", "amount": "30.00"},
		{"participant": "B", "amount": "20.00"}]}`
	rec, env = do(t, http.MethodPost, "/api/v1/splits/validate", body)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "SPLIT_SUM_MISMATCH", env.Error.Code)
}

func TestSettle(t *testing.T) {
	rec, env := do(t, http.MethodPost, "/api/v1/settlements", `{"expenses": [
		{"payer": "A", "amount": "90.00", "splits": [
			{"participant": "A", "amount": "30.00"},
			{"participant": "B", "amount": "30.00"},
			{"participant": "C", "amount": "30.00"}]}
	]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SettleResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	require.Len(t, resp.Settlements, 2)
	assert.Equal(t, SettlementResponse{From: "B", To: "A", Amount: "30.00"}, resp.Settlements[0])
	assert.Equal(t, SettlementResponse{From: "C", To: "A", Amount: "30.00"}, resp.Settlements[1])

	require.Len(t, resp.Balances, 3)
	assert.Equal(t, BalanceResponse{Participant: "A", Paid: "90.00", Owed: "30.00", Net: "60.00"}, resp.Balances[0])
}

func TestSettle_EmptyExpenses(t *testing.T) {
	rec, env := do(t, http.MethodPost, "/api/v1/settlements", `{"expenses": []}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SettleResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Empty(t, resp.Settlements)
	assert.Empty(t, resp.Balances)
}

func TestSettle_RejectsMalformedExpenses(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing payer", `{"expenses": [{"amount": "10.00"}]}`, "payer is required"},
		{"negative amount", `{"expenses": [{"payer": "A", "amount": "-10.00"}]}`, "must be positive"},
		{"zero amount", `{"expenses": [{"payer": "A", "amount": "0"}]}`, "must be positive"},
		{"negative split", `{"expenses": [{"payer": "A", "amount": "10.00", "splits": [
			{"participant": "B", "amount": "-5.00"}]}]}`, "must not be negative"},
		{"empty participant", `{"expenses": [{"payer": "A", "amount": "10.00", "splits": [
			{"participant": "", "amount": "10.00"}]}]}`, "participant is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := do(t, http.MethodPost, "/api/v1/settlements", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, "BAD_REQUEST", env.Error.Code)
			assert.Contains(t, env.Error.Message, tt.want)
		})
	}
}

func TestSplitEqual_SubCentAmount(t *testing.T) {
	rec, env := do(t, http.MethodPost, "/api/v1/splits/equal",
		`{"amount": "10.005", "participants": ["A", "B", "C"]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_AMOUNT", env.Error.Code)
}

func TestSplitCustom_SubCentSplitAmount(t *testing.T) {
	rec, env := do(t, http.MethodPost, "/api/v1/splits/custom", `{
		"amount": "100.00",
		"splits": [
			{"participant": "A", "amount": "60.00"},
			{"participant": "B", "amount": "39.995"}
		]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "SPLIT_AMOUNT_PRECISION", env.Error.Code)
}

func TestSplitCustom_ZeroPercentFirstEntry(t *testing.T) {
	rec, env := do(t, http.MethodPost, "/api/v1/splits/custom", `{
		"amount": "0.01",
		"splits": [
			{"participant": "A", "percentage": "0"},
			{"participant": "B", "percentage": "50"},
			{"participant": "C", "percentage": "50"}
		]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[
		{"participant":"A","amount":"0.00"},
		{"participant":"B","amount":"0.00"},
		{"participant":"C","amount":"0.01"}
	]`, string(env.Data))
}

func TestMalformedJSON(t *testing.T) {
	for _, path := range []string{
		"/api/v1/splits/equal",
		"/api/v1/splits/custom",
		"/api/v1/splits/validate",
		"/api/v1/settlements",
	} {
		t.Run(path, func(t *testing.T) {
			rec, env := do(t, http.MethodPost, path, `{not json`)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, "BAD_REQUEST", env.Error.Code)
		})
	}
}
