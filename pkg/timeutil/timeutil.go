package timeutil

import "time"

// Clock abstracts the current time so services can be tested with a fixed date.
type Clock interface {
	Now() time.Time
	Today() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) Today() time.Time { return DateOnly(time.Now()) }

// FixedClock always reports the same instant. Intended for tests.
type FixedClock struct {
	Instant time.Time
}

func NewFixedClock(year int, month time.Month, day int) FixedClock {
	return FixedClock{Instant: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (c FixedClock) Now() time.Time { return c.Instant }

func (c FixedClock) Today() time.Time { return DateOnly(c.Instant) }

// DateOnly truncates a time to midnight UTC, keeping only the calendar date.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// AddMonths advances by whole calendar months (Jan 31 + 1 month = Mar 3 per
// time.AddDate normalization; schedules always anchor on days <= 28 in practice).
func AddMonths(t time.Time, n int) time.Time {
	return t.AddDate(0, n, 0)
}

// DaysBetween returns the number of calendar days from 'from' to 'to'.
// Negative when 'to' precedes 'from'.
func DaysBetween(from, to time.Time) int {
	return int(DateOnly(to).Sub(DateOnly(from)).Hours() / 24)
}

func SameDay(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}

// OnOrBefore reports whether a's calendar date is <= b's calendar date.
func OnOrBefore(a, b time.Time) bool {
	return !DateOnly(a).After(DateOnly(b))
}

// OnOrAfter reports whether a's calendar date is >= b's calendar date.
func OnOrAfter(a, b time.Time) bool {
	return !DateOnly(a).Before(DateOnly(b))
}

// Overlaps reports whether two date ranges intersect. A nil end means the
// range is open-ended.
func Overlaps(aStart time.Time, aEnd *time.Time, bStart time.Time, bEnd *time.Time) bool {
	if aEnd != nil && DateOnly(*aEnd).Before(DateOnly(bStart)) {
		return false
	}
	if bEnd != nil && DateOnly(*bEnd).Before(DateOnly(aStart)) {
		return false
	}
	return true
}

// EndOfMonth returns the last day of the month containing t.
func EndOfMonth(t time.Time) time.Time {
	firstOfNext := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1)
}
