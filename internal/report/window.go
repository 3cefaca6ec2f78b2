package report

import "time"

// Window is a half-open date range [Since, Until): a row at exactly Until is outside.
type Window struct {
	Since time.Time `json:"since"`
	Until time.Time `json:"until"`
}

// PresetDays are the range presets the dashboard offers.
var PresetDays = []int{1, 7, 30, 90, 180, 365}

// IsPresetDays reports whether n is one of the fixed presets.
func IsPresetDays(n int) bool {
	for _, d := range PresetDays {
		if d == n {
			return true
		}
	}
	return false
}

// LastDays returns the window covering the n days ending at now (exclusive).
func LastDays(n int, now time.Time) Window {
	if n < 1 {
		n = 1
	}
	return Window{Since: now.AddDate(0, 0, -n), Until: now}
}

// Between returns a custom window. Callers converting an inclusive "to" date must pass
// the start of the following day as until.
func Between(from, to time.Time) Window {
	if to.Before(from) {
		from, to = to, from
	}
	return Window{Since: from, Until: to}
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Since) && t.Before(w.Until)
}

// Days is the window length in whole days, at least 1 for any non-empty window.
func (w Window) Days() int {
	if !w.Until.After(w.Since) {
		return 0
	}
	d := int(w.Until.Sub(w.Since).Hours() / 24)
	if d < 1 {
		return 1
	}
	return d
}

// IsZero reports whether the window is unset.
func (w Window) IsZero() bool { return w.Since.IsZero() && w.Until.IsZero() }
