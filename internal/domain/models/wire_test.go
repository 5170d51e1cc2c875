package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raw(s string) json.RawMessage { return json.RawMessage(s) }

func TestParsePartPaymentsSkipsMalformedEntries(t *testing.T) {
	req := CalculateRequest{
		PartPayments: []json.RawMessage{
			raw(`{"date":"2023-06-15","amount":20000}`),
			raw(`{"date":"2023-07-15"}`),
			raw(`{"amount":500}`),
			raw(`{"date":"2023-08-15","amount":"not a number"}`),
			raw(`{"date":"15/08/2023","amount":500}`),
			raw(`{"date":"2023-09-15","amount":-5}`),
			raw(`{"date":"2023-10-15","amount":1000}`),
		},
	}

	payments, skipped := req.ParsePartPayments()
	require.Len(t, payments, 2)
	assert.Len(t, skipped, 5)

	assert.Equal(t, time.Date(2023, time.June, 15, 0, 0, 0, 0, time.UTC), payments[0].Date)
	assert.Equal(t, 20000.0, payments[0].Amount)
	assert.Equal(t, 1000.0, payments[1].Amount)
}

func TestParsePartPaymentsLegacySingleFields(t *testing.T) {
	req := CalculateRequest{
		HasPartPayment:    true,
		PartPaymentAmount: raw(`5000`),
		PartPaymentDate:   "2023-06-15",
	}

	payments, skipped := req.ParsePartPayments()
	require.Len(t, payments, 1)
	assert.Empty(t, skipped)
	assert.Equal(t, 5000.0, payments[0].Amount)

	// A non-numeric legacy amount is skipped, not fatal.
	req.PartPaymentAmount = raw(`"oops"`)
	payments, skipped = req.ParsePartPayments()
	assert.Empty(t, payments)
	assert.Len(t, skipped, 1)
}

func TestParsePartPaymentsPreservesInputOrder(t *testing.T) {
	req := CalculateRequest{
		PartPayments: []json.RawMessage{
			raw(`{"date":"2023-06-15","amount":100}`),
			raw(`{"date":"2023-06-15","amount":200}`),
		},
	}

	payments, skipped := req.ParsePartPayments()
	require.Len(t, payments, 2)
	assert.Empty(t, skipped)
	assert.Equal(t, 100.0, payments[0].Amount)
	assert.Equal(t, 200.0, payments[1].Amount)
}

func TestNewCalculateResponseWireShape(t *testing.T) {
	due := time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC)
	result := ScheduleResult{
		Entries: []ScheduleEntry{
			{Kind: EntryPartPayment, Occurrence: 1, Date: due, Payment: 500, Principal: 500, Balance: 9500},
			{Kind: EntryInstallment, Number: 1, Date: due, Payment: 900, Principal: 850, Interest: 50, Balance: 8650},
		},
		Summary: Summary{TotalInterest: 50, TotalPayments: 1400, LoanTermMonths: 1},
	}

	resp := NewCalculateResponse(result)
	body, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))

	schedule := decoded["schedule"].([]any)
	require.Len(t, schedule, 2)

	pp := schedule[0].(map[string]any)
	assert.Equal(t, "Part Payment 1", pp["payment_number"])
	assert.Equal(t, true, pp["is_part_payment"])
	assert.Equal(t, "2023-02-01", pp["date"])
	assert.Equal(t, 0.0, pp["interest"])

	inst := schedule[1].(map[string]any)
	assert.Equal(t, 1.0, inst["payment_number"])
	assert.Equal(t, false, inst["is_part_payment"])
	assert.Equal(t, 8650.0, inst["remaining_balance"])

	summary := decoded["summary"].(map[string]any)
	assert.Equal(t, 50.0, summary["total_interest"])
	assert.Equal(t, 1400.0, summary["total_payments"])
	assert.Equal(t, 1.0, summary["loan_term_months"])
}
