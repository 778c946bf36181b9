package payroll

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// Period is a payroll date range. End is exclusive: it is not walked and is
// not counted as a working day, but it does decide the month label and the
// roster cutoff.
type Period struct {
	Start time.Time
	End   time.Time
}

// ResolvePeriod truncates start and end to UTC calendar days and checks that
// start is not after end.
func ResolvePeriod(start, end time.Time) (Period, error) {
	p := Period{Start: calendarDay(start), End: calendarDay(end)}
	if p.Start.After(p.End) {
		return Period{}, fmt.Errorf("%w: %s > %s", ErrInvalidRange, p.Start.Format(DateLayout), p.End.Format(DateLayout))
	}
	return p, nil
}

// ParsePeriod parses two YYYY-MM-DD dates and resolves them.
func ParsePeriod(from, to string) (Period, error) {
	start, err := time.Parse(DateLayout, from)
	if err != nil {
		return Period{}, fmt.Errorf("from_date must be in YYYY-MM-DD format: %w", err)
	}
	end, err := time.Parse(DateLayout, to)
	if err != nil {
		return Period{}, fmt.Errorf("to_date must be in YYYY-MM-DD format: %w", err)
	}
	return ResolvePeriod(start, end)
}

// WorkingDays is the number of days in [Start, End). A period where Start
// equals End has zero working days.
func (p Period) WorkingDays() int {
	// Both ends are UTC midnights; Sub would saturate on multi-century ranges.
	n := int((p.End.Unix() - p.Start.Unix()) / secondsPerDay)
	if n < 0 {
		return 0
	}
	return n
}

// Days lists every calendar day in [Start, End) in ascending order.
func (p Period) Days() []time.Time {
	days := make([]time.Time, 0, p.WorkingDays())
	for d := p.Start; d.Before(p.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// MonthLabel is the "YYYY-MM" of End, used to look up advance deductions.
func (p Period) MonthLabel() string {
	return p.End.Format("2006-01")
}

// Cutoff is the last instant of End. Employees created after it are not on the roster.
func (p Period) Cutoff() time.Time {
	return p.End.Add(24*time.Hour - time.Nanosecond)
}

const secondsPerDay = 24 * 60 * 60

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
