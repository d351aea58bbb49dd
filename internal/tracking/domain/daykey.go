package domain

import (
	"time"
)

// dayKeyLayout is the wire format for calendar days. Lexicographic order
// matches chronological order, which the streak engine relies on.
const dayKeyLayout = "2006-01-02"

// DayKey identifies one local calendar day, e.g. "2024-06-10".
// It is derived in local time, never UTC-shifted: two timestamps on the
// same local day always produce the same key regardless of time of day
// or of the location their in-memory representation carries.
type DayKey string

// DayKeyOf returns the DayKey for the local calendar day containing t.
// Normalizing to local first keeps the key stable for timestamps that
// round-tripped through UTC storage.
func DayKeyOf(t time.Time) DayKey {
	return DayKey(t.In(time.Local).Format(dayKeyLayout))
}

// AddDays returns the key n calendar days after k (n may be negative).
// Arithmetic happens at local midnight so daylight-saving shifts cannot
// move the result onto a neighbouring day.
func (k DayKey) AddDays(n int) DayKey {
	t, err := k.Time()
	if err != nil {
		return k
	}
	return DayKeyOf(t.AddDate(0, 0, n))
}

// Time returns local midnight of the day identified by k.
func (k DayKey) Time() (time.Time, error) {
	return time.ParseInLocation(dayKeyLayout, string(k), time.Local)
}

// IsValid reports whether k parses as a calendar day.
func (k DayKey) IsValid() bool {
	_, err := k.Time()
	return err == nil
}

// Before reports whether k is an earlier day than other.
func (k DayKey) Before(other DayKey) bool {
	return string(k) < string(other)
}

// NextDay reports whether other is exactly the day after k.
func (k DayKey) NextDay(other DayKey) bool {
	return k.AddDays(1) == other
}
