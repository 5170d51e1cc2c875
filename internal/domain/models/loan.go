package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidInput marks a rejected calculation request: bad principal, rate,
// term or day-count convention. Handlers surface it as a 400 with the message.
var ErrInvalidInput = errors.New("invalid loan input")

// DayCount selects the rule used to turn a calendar interval into a fraction
// of a year for interest accrual.
type DayCount string

const (
	// DayCountActual365 uses real day counts over a 365 or 366 day year.
	DayCountActual365 DayCount = "actual_365"
	// DayCountThirty360 assumes 30-day months over a 360-day year.
	DayCountThirty360 DayCount = "30_360"
)

// ParseDayCount normalizes and validates a convention tag. Validation happens
// here, at parameter construction, so the accrual formula never sees an
// unknown convention.
func ParseDayCount(raw string) (DayCount, error) {
	switch DayCount(strings.ToLower(strings.TrimSpace(raw))) {
	case DayCountActual365:
		return DayCountActual365, nil
	case DayCountThirty360:
		return DayCountThirty360, nil
	}
	return "", fmt.Errorf("%w: day count convention must be %q or %q", ErrInvalidInput, DayCountActual365, DayCountThirty360)
}

// LoanParameters is the immutable input to a schedule calculation.
type LoanParameters struct {
	Principal  float64
	AnnualRate float64 // fraction, e.g. 0.075 for 7.5%
	TermMonths int
	StartDate  time.Time
	Convention DayCount
}

// NewLoanParameters validates the raw request values and builds the typed
// parameter set. The rate arrives as a percentage and the term as whole
// years, matching the public API contract.
func NewLoanParameters(principal, annualRatePercent float64, termYears int, startDate time.Time, convention string) (LoanParameters, error) {
	if principal <= 0 {
		return LoanParameters{}, fmt.Errorf("%w: principal must be positive", ErrInvalidInput)
	}
	if annualRatePercent < 0 {
		return LoanParameters{}, fmt.Errorf("%w: interest rate must not be negative", ErrInvalidInput)
	}
	if termYears < 1 {
		return LoanParameters{}, fmt.Errorf("%w: loan term must be at least 1 year", ErrInvalidInput)
	}
	if startDate.IsZero() {
		return LoanParameters{}, fmt.Errorf("%w: start date is required", ErrInvalidInput)
	}

	conv, err := ParseDayCount(convention)
	if err != nil {
		return LoanParameters{}, err
	}

	return LoanParameters{
		Principal:  principal,
		AnnualRate: annualRatePercent / 100,
		TermMonths: termYears * 12,
		StartDate:  startDate,
		Convention: conv,
	}, nil
}

// Validate re-checks invariants on an already constructed parameter set.
func (p LoanParameters) Validate() error {
	if p.Principal <= 0 {
		return fmt.Errorf("%w: principal must be positive", ErrInvalidInput)
	}
	if p.AnnualRate < 0 {
		return fmt.Errorf("%w: interest rate must not be negative", ErrInvalidInput)
	}
	if p.TermMonths < 1 {
		return fmt.Errorf("%w: term must cover at least one month", ErrInvalidInput)
	}
	if _, err := ParseDayCount(string(p.Convention)); err != nil {
		return err
	}
	return nil
}

// PartPayment is an unscheduled extra principal payment on a specific date.
// Multiple part payments may share a date; the input order among them is
// preserved and drives their reported occurrence numbers.
type PartPayment struct {
	Date   time.Time
	Amount float64
}

// EntryKind discriminates the two schedule row variants.
type EntryKind string

const (
	EntryInstallment EntryKind = "installment"
	EntryPartPayment EntryKind = "part_payment"
)

// ScheduleEntry is one row of the amortization schedule. Number is the
// 1-based installment sequence and is zero for part payment rows; Occurrence
// is the 1-based count of part payments seen so far on that exact date and is
// zero for installments.
type ScheduleEntry struct {
	Kind       EntryKind
	Number     int
	Occurrence int
	Date       time.Time
	Payment    float64
	Principal  float64
	Interest   float64
	Balance    float64
}

// Summary aggregates the schedule: interest over installments only, total
// paid including part payments, and the number of months actually elapsed.
type Summary struct {
	TotalInterest  float64
	TotalPayments  float64
	LoanTermMonths int
}

// ScheduleResult is the full ordered schedule plus its summary. Entries are
// chronological, with part payment rows interleaved at the exact point they
// occur inside a period.
type ScheduleResult struct {
	Entries []ScheduleEntry
	Summary Summary
}
