package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sdiagne/loansched/internal/domain/models"
)

func TestInterestBetweenActual365(t *testing.T) {
	// 31 days over a regular year.
	got := interestBetween(100000, 0.06, date(2023, time.January, 1), date(2023, time.February, 1), models.DayCountActual365)
	assert.InDelta(t, 100000*0.06*31/365, got, 1e-9)

	// Leap year uses a 366-day denominator.
	got = interestBetween(100000, 0.06, date(2024, time.January, 1), date(2024, time.February, 1), models.DayCountActual365)
	assert.InDelta(t, 100000*0.06*31/366, got, 1e-9)
}

// The year length comes from the sub-period's start year, even when the
// sub-period crosses into a year of different length.
func TestInterestBetweenActual365YearBoundary(t *testing.T) {
	start := date(2024, time.December, 15)
	end := date(2025, time.January, 15)

	got := interestBetween(50000, 0.05, start, end, models.DayCountActual365)
	assert.InDelta(t, 50000*0.05*31/366, got, 1e-9)
}

func TestInterestBetweenThirty360(t *testing.T) {
	// A full 30/360 month accrues exactly rate/12.
	got := interestBetween(120000, 0.06, date(2023, time.January, 15), date(2023, time.February, 15), models.DayCountThirty360)
	assert.InDelta(t, 120000*0.06*30/360, got, 1e-9)
}

func TestDays360(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"one month", date(2023, time.January, 15), date(2023, time.February, 15), 30},
		{"day 31 capped at 30", date(2023, time.January, 31), date(2023, time.February, 28), 28},
		{"same date", date(2023, time.June, 1), date(2023, time.June, 1), 0},
		{"across year end", date(2023, time.December, 1), date(2024, time.January, 1), 30},
		{"floored at zero", date(2023, time.June, 15), date(2023, time.June, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, days360(tt.start, tt.end))
		})
	}
}
