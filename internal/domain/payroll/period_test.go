package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestResolvePeriod(t *testing.T) {
	p, err := ResolvePeriod(day("2025-01-01"), day("2025-02-01"))
	require.NoError(t, err)
	assert.Equal(t, 31, p.WorkingDays())

	days := p.Days()
	require.Len(t, days, 31)
	assert.Equal(t, "2025-01-01", days[0].Format(DateLayout))
	assert.Equal(t, "2025-01-31", days[30].Format(DateLayout))
	for i := 1; i < len(days); i++ {
		assert.True(t, days[i].After(days[i-1]))
	}
}

func TestResolvePeriod_SameDay(t *testing.T) {
	p, err := ResolvePeriod(day("2025-03-15"), day("2025-03-15"))
	require.NoError(t, err)
	assert.Equal(t, 0, p.WorkingDays())
	assert.Empty(t, p.Days())
}

func TestResolvePeriod_InvalidRange(t *testing.T) {
	_, err := ResolvePeriod(day("2025-03-02"), day("2025-03-01"))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestResolvePeriod_TruncatesToCalendarDay(t *testing.T) {
	start := time.Date(2025, 1, 1, 23, 59, 0, 0, time.UTC)
	end := time.Date(2025, 1, 3, 0, 1, 0, 0, time.UTC)
	p, err := ResolvePeriod(start, end)
	require.NoError(t, err)
	assert.Equal(t, 2, p.WorkingDays())
	assert.Equal(t, day("2025-01-01"), p.Start)
}

func TestPeriod_DaysIsRestartable(t *testing.T) {
	p, err := ResolvePeriod(day("2024-02-27"), day("2024-03-02"))
	require.NoError(t, err)
	first := p.Days()
	second := p.Days()
	assert.Equal(t, first, second)
	// leap year
	assert.Equal(t, 4, p.WorkingDays())
	assert.Equal(t, "2024-02-29", first[2].Format(DateLayout))
}

func TestPeriod_MonthLabelAndCutoff(t *testing.T) {
	p, err := ResolvePeriod(day("2024-12-26"), day("2025-01-26"))
	require.NoError(t, err)
	assert.Equal(t, "2025-01", p.MonthLabel())
	assert.Equal(t, time.Date(2025, 1, 26, 23, 59, 59, 999999999, time.UTC), p.Cutoff())
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("2025-01-01", "2025-01-11")
	require.NoError(t, err)
	assert.Equal(t, 10, p.WorkingDays())

	_, err = ParsePeriod("01/01/2025", "2025-01-11")
	assert.Error(t, err)
	_, err = ParsePeriod("2025-01-01", "")
	assert.Error(t, err)
	_, err = ParsePeriod("2025-01-11", "2025-01-01")
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestPeriod_WorkingDaysOnLongRange(t *testing.T) {
	p, err := ResolvePeriod(day("1700-01-01"), day("2025-01-01"))
	require.NoError(t, err)
	assert.Equal(t, 118704, p.WorkingDays())
	assert.Len(t, p.Days(), p.WorkingDays())
}
