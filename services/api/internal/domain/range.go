package domain

import "time"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// DateRange is a half-open calendar interval [Start, End): the last occupied
// day is the one before End, so a rental ending on a date and another starting
// on that same date do not collide.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange parses two calendar dates and validates their ordering.
// Zero-length ranges are rejected here and never reach overlap checks.
func NewDateRange(start, end string) (DateRange, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return DateRange{}, ErrInvalidDateFormat
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return DateRange{}, ErrInvalidDateFormat
	}
	if !s.Before(e) {
		return DateRange{}, ErrInvalidDateRange
	}
	return DateRange{Start: s, End: e}, nil
}

// Overlaps reports whether two half-open ranges intersect. Touching
// endpoints (one's End equals the other's Start) do not overlap.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}
