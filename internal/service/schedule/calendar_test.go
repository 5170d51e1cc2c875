package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsLeapYear(t *testing.T) {
	assert.True(t, IsLeapYear(2000))
	assert.False(t, IsLeapYear(1900))
	assert.True(t, IsLeapYear(2024))
	assert.False(t, IsLeapYear(2023))
}

func TestNextMonthlyDate(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		want time.Time
	}{
		{"plain month", date(2023, time.March, 15), date(2023, time.April, 15)},
		{"clamp to february", date(2023, time.January, 31), date(2023, time.February, 28)},
		{"clamp to leap february", date(2024, time.January, 31), date(2024, time.February, 29)},
		{"clamp 31 to 30", date(2023, time.March, 31), date(2023, time.April, 30)},
		{"year rollover", date(2023, time.December, 15), date(2024, time.January, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextMonthlyDate(tt.from))
		})
	}
}

// A day clamped by a short month stays clamped: after Mar 31 -> Apr 30, the
// following month is May 30, not May 31.
func TestNextMonthlyDateDoesNotRecoverClampedDay(t *testing.T) {
	apr := NextMonthlyDate(date(2023, time.March, 31))
	assert.Equal(t, date(2023, time.April, 30), apr)

	may := NextMonthlyDate(apr)
	assert.Equal(t, date(2023, time.May, 30), may)
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, daysInMonth(2024, time.February))
	assert.Equal(t, 28, daysInMonth(2023, time.February))
	assert.Equal(t, 30, daysInMonth(2023, time.April))
	assert.Equal(t, 31, daysInMonth(2023, time.December))
}
