package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the calendar date format used on the wire.
const DateLayout = "2006-01-02"

// CalculateRequest is the JSON body accepted by POST /calculate. Part
// payments are kept raw so a single malformed entry can be skipped without
// rejecting the whole request. The single partPayment* fields mirror the
// original calculator form and are folded into the list when hasPartPayment
// is set.
type CalculateRequest struct {
	Principal          float64           `json:"principal" binding:"required"`
	InterestRate       float64           `json:"interestRate"`
	LoanTermYears      int               `json:"loanTerm" binding:"required"`
	StartDate          string            `json:"startDate" binding:"required"`
	DayCountConvention string            `json:"dayCountConvention"`
	PartPayments       []json.RawMessage `json:"partPayments"`

	HasPartPayment    bool            `json:"hasPartPayment"`
	PartPaymentAmount json.RawMessage `json:"partPaymentAmount"`
	PartPaymentDate   string          `json:"partPaymentDate"`
}

// partPaymentWire is the shape of one entry in the partPayments list.
type partPaymentWire struct {
	Date   string       `json:"date"`
	Amount *json.Number `json:"amount"`
}

// Parameters builds the validated engine input from the request.
func (r CalculateRequest) Parameters() (LoanParameters, error) {
	convention := r.DayCountConvention
	if convention == "" {
		convention = string(DayCountActual365)
	}

	start, err := time.Parse(DateLayout, r.StartDate)
	if err != nil {
		return LoanParameters{}, fmt.Errorf("%w: start date must use YYYY-MM-DD", ErrInvalidInput)
	}

	return NewLoanParameters(r.Principal, r.InterestRate, r.LoanTermYears, start, convention)
}

// ParsePartPayments decodes the part payment list, returning the valid typed
// entries in input order. Entries missing a field, with an unparsable date or
// a non-numeric or non-positive amount are reported in skipped instead of
// failing the request.
func (r CalculateRequest) ParsePartPayments() (payments []PartPayment, skipped []string) {
	raw := r.PartPayments
	if len(raw) == 0 && r.HasPartPayment {
		date, _ := json.Marshal(r.PartPaymentDate)
		amount := r.PartPaymentAmount
		if len(amount) == 0 {
			amount = json.RawMessage("null")
		}
		single := fmt.Sprintf(`{"date":%s,"amount":%s}`, date, amount)
		raw = []json.RawMessage{json.RawMessage(single)}
	}

	for i, entry := range raw {
		var wire partPaymentWire
		if err := json.Unmarshal(entry, &wire); err != nil {
			skipped = append(skipped, fmt.Sprintf("entry %d: %v", i+1, err))
			continue
		}
		if wire.Date == "" || wire.Amount == nil {
			skipped = append(skipped, fmt.Sprintf("entry %d: date and amount are required", i+1))
			continue
		}
		date, err := time.Parse(DateLayout, wire.Date)
		if err != nil {
			skipped = append(skipped, fmt.Sprintf("entry %d: date must use YYYY-MM-DD", i+1))
			continue
		}
		amount, err := wire.Amount.Float64()
		if err != nil || amount <= 0 {
			skipped = append(skipped, fmt.Sprintf("entry %d: amount must be a positive number", i+1))
			continue
		}
		payments = append(payments, PartPayment{Date: date, Amount: amount})
	}
	return payments, skipped
}

// ScheduleEntryResponse is one wire row. PaymentNumber carries the integer
// installment sequence for regular rows and a "Part Payment N" label for part
// payment rows, matching the original calculator output exactly.
type ScheduleEntryResponse struct {
	PaymentNumber    any     `json:"payment_number"`
	Date             string  `json:"date"`
	Payment          float64 `json:"payment"`
	Principal        float64 `json:"principal"`
	Interest         float64 `json:"interest"`
	RemainingBalance float64 `json:"remaining_balance"`
	IsPartPayment    bool    `json:"is_part_payment"`
}

// SummaryResponse is the wire shape of the schedule summary.
type SummaryResponse struct {
	TotalInterest  float64 `json:"total_interest"`
	TotalPayments  float64 `json:"total_payments"`
	LoanTermMonths int     `json:"loan_term_months"`
}

// CalculateResponse is the JSON body returned by POST /calculate.
type CalculateResponse struct {
	Schedule []ScheduleEntryResponse `json:"schedule"`
	Summary  SummaryResponse         `json:"summary"`
}

// NewCalculateResponse converts an engine result into the wire contract.
func NewCalculateResponse(result ScheduleResult) CalculateResponse {
	rows := make([]ScheduleEntryResponse, 0, len(result.Entries))
	for _, entry := range result.Entries {
		row := ScheduleEntryResponse{
			Date:             entry.Date.Format(DateLayout),
			Payment:          entry.Payment,
			Principal:        entry.Principal,
			Interest:         entry.Interest,
			RemainingBalance: entry.Balance,
		}
		if entry.Kind == EntryPartPayment {
			row.PaymentNumber = fmt.Sprintf("Part Payment %d", entry.Occurrence)
			row.IsPartPayment = true
		} else {
			row.PaymentNumber = entry.Number
		}
		rows = append(rows, row)
	}

	return CalculateResponse{
		Schedule: rows,
		Summary: SummaryResponse{
			TotalInterest:  result.Summary.TotalInterest,
			TotalPayments:  result.Summary.TotalPayments,
			LoanTermMonths: result.Summary.LoanTermMonths,
		},
	}
}
