package domain

import "time"

// WindowDays is the length of the trailing dashboard window.
const WindowDays = 7

// Window is the fixed 7-day trailing range ending at and including "today":
// index 0 = today-6, index 6 = today. It is fixed once computed for a
// given now.
type Window struct {
	days [WindowDays]DayKey
}

// NewWindow builds the trailing window anchored at the day containing now.
func NewWindow(now time.Time) Window {
	var w Window
	start := DayKeyOf(now).AddDays(-(WindowDays - 1))
	for i := 0; i < WindowDays; i++ {
		w.days[i] = start.AddDays(i)
	}
	return w
}

// Day returns the DayKey at the given index.
func (w Window) Day(i int) DayKey {
	return w.days[i]
}

// Start returns the earliest day in the window.
func (w Window) Start() DayKey {
	return w.days[0]
}

// End returns today, the last day in the window.
func (w Window) End() DayKey {
	return w.days[WindowDays-1]
}

// IndexOf maps a timestamp to its position in the window, or -1 when the
// timestamp's day is outside the window. Matching is by exact DayKey
// equality rather than numeric date difference, so daylight-saving
// shifts cannot skew the index.
func (w Window) IndexOf(t time.Time) int {
	return w.IndexOfDay(DayKeyOf(t))
}

// IndexOfDay maps a DayKey to its position in the window, or -1.
func (w Window) IndexOfDay(key DayKey) int {
	for i, day := range w.days {
		if day == key {
			return i
		}
	}
	return -1
}

// Labels returns one short weekday label per window slot ("Mon".."Sun").
func (w Window) Labels() []string {
	labels := make([]string, WindowDays)
	for i, day := range w.days {
		t, err := day.Time()
		if err != nil {
			labels[i] = string(day)
			continue
		}
		labels[i] = t.Format("Mon")
	}
	return labels
}

// Keys returns the window days in order.
func (w Window) Keys() []DayKey {
	keys := make([]DayKey, WindowDays)
	copy(keys, w.days[:])
	return keys
}
