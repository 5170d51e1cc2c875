package schedule

import (
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/sdiagne/loansched/internal/domain/models"
)

// Service computes fully itemized amortization schedules. It is stateless and
// safe for concurrent use; every calculation is a pure function of its input.
type Service struct {
	logger *zap.Logger
}

// NewService wires a new schedule engine instance.
func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger}
}

// pendingPayment is a part payment annotated for the splitting walk: its
// position in the caller's list and its 1-based occurrence number among
// payments sharing the exact same date.
type pendingPayment struct {
	models.PartPayment
	inputIndex int
	occurrence int
}

// Compute produces the ordered schedule for the given loan. Part payments may
// land anywhere inside a payment period; each period's interest is then
// accrued over the sub-periods delimited by those payment dates. The schedule
// ends early when the balance reaches zero before the nominal term.
func (s *Service) Compute(params models.LoanParameters, partPayments []models.PartPayment) (models.ScheduleResult, error) {
	if err := params.Validate(); err != nil {
		return models.ScheduleResult{}, err
	}

	payment := levelPayment(params.Principal, params.AnnualRate, params.TermMonths)
	queue := sortPartPayments(partPayments)

	entries := make([]models.ScheduleEntry, 0, params.TermMonths+len(queue))
	balance := params.Principal
	current := midnight(params.StartDate)

	// Part payments dated before the loan start fall inside no period and
	// are ignored, like those dated after the schedule end.
	qi := 0
	for qi < len(queue) && queue[qi].Date.Before(current) {
		qi++
	}
	if qi > 0 {
		s.logger.Debug("part payments dated before the loan start were ignored",
			zap.Int("count", qi))
	}

	var totalInterest, totalPaid float64
	months := 0

	for m := 1; m <= params.TermMonths; m++ {
		next := NextMonthlyDate(current)
		subStart := current
		periodInterest := 0.0

		// Consume every part payment dated up to and including the period
		// end. A payment dated exactly on the boundary belongs to this
		// period, never the next one.
		for qi < len(queue) && !queue[qi].Date.After(next) {
			pp := queue[qi]
			qi++

			// A payment dated on or before the running sub-period start
			// closes a zero-length sub-period: no interest, no advance.
			if pp.Date.After(subStart) {
				periodInterest += interestBetween(balance, params.AnnualRate, subStart, pp.Date, params.Convention)
				subStart = pp.Date
			}

			balance = math.Max(balance-pp.Amount, 0)
			totalPaid += pp.Amount
			entries = append(entries, models.ScheduleEntry{
				Kind:       models.EntryPartPayment,
				Occurrence: pp.occurrence,
				Date:       pp.Date,
				Payment:    pp.Amount,
				Principal:  pp.Amount,
				Balance:    balance,
			})
		}

		// Closing marker: the remainder of the period accrues on whatever
		// balance survived the part payments.
		if next.After(subStart) {
			periodInterest += interestBetween(balance, params.AnnualRate, subStart, next, params.Convention)
		}

		principalPortion := math.Min(payment-periodInterest, balance)
		balance = math.Max(balance-principalPortion, 0)

		entries = append(entries, models.ScheduleEntry{
			Kind:      models.EntryInstallment,
			Number:    m,
			Date:      next,
			Payment:   principalPortion + periodInterest,
			Principal: principalPortion,
			Interest:  periodInterest,
			Balance:   balance,
		})

		totalInterest += periodInterest
		totalPaid += principalPortion + periodInterest
		months = m
		current = next

		if balance <= 0 {
			break
		}
	}

	if qi < len(queue) {
		s.logger.Debug("part payments dated after the schedule end were ignored",
			zap.Int("count", len(queue)-qi))
	}

	return models.ScheduleResult{
		Entries: entries,
		Summary: models.Summary{
			TotalInterest:  totalInterest,
			TotalPayments:  totalPaid,
			LoanTermMonths: months,
		},
	}, nil
}

// levelPayment computes the fixed monthly installment with the standard
// annuity formula, degrading to straight principal division at zero rate.
func levelPayment(principal, annualRate float64, termMonths int) float64 {
	monthlyRate := annualRate / 12
	if monthlyRate == 0 {
		return principal / float64(termMonths)
	}
	factor := math.Pow(1+monthlyRate, float64(termMonths))
	return principal * monthlyRate * factor / (factor - 1)
}

// sortPartPayments assigns occurrence numbers in input order, then orders the
// list by date with input order breaking ties. Occurrences count, across the
// whole input, how many payments with the same exact date came before.
func sortPartPayments(partPayments []models.PartPayment) []pendingPayment {
	seen := make(map[time.Time]int, len(partPayments))
	queue := make([]pendingPayment, 0, len(partPayments))
	for i, pp := range partPayments {
		date := midnight(pp.Date)
		seen[date]++
		queue = append(queue, pendingPayment{
			PartPayment: models.PartPayment{Date: date, Amount: pp.Amount},
			inputIndex:  i,
			occurrence:  seen[date],
		})
	}

	sort.SliceStable(queue, func(i, j int) bool {
		return queue[i].Date.Before(queue[j].Date)
	})
	return queue
}

// midnight truncates a timestamp to its calendar date.
func midnight(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
