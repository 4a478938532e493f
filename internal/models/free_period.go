package models

import (
	"fmt"
	"time"
)

// FreePeriod is the time window during which a game is offered for free.
// Immutable; both bounds are normalized to UTC at construction.
type FreePeriod struct {
	start time.Time
	end   time.Time
}

// PeriodError reports an inverted or degenerate free period.
type PeriodError struct {
	Start time.Time
	End   time.Time
}

func (e *PeriodError) Error() string {
	return fmt.Sprintf("start must be before end: start=%s, end=%s",
		e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
}

func NewFreePeriod(start, end time.Time) (FreePeriod, error) {
	start = start.UTC()
	end = end.UTC()
	if !start.Before(end) {
		return FreePeriod{}, &PeriodError{Start: start, End: end}
	}
	return FreePeriod{start: start, end: end}, nil
}

func (fp FreePeriod) Start() time.Time {
	return fp.start
}

func (fp FreePeriod) End() time.Time {
	return fp.end
}

// IsActive reports whether now falls inside the period, bounds inclusive.
func (fp FreePeriod) IsActive(now time.Time) bool {
	now = now.UTC()
	return !now.Before(fp.start) && !now.After(fp.end)
}
