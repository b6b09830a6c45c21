package kernel

import "time"

// Clock supplies the current time to use cases. Domain methods never read the
// wall clock themselves; they receive "now" as an argument.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock returns the wall-clock time in UTC.
func SystemClock() Clock {
	return ClockFunc(func() time.Time {
		return time.Now().UTC()
	})
}

// FixedClock always returns t. Useful for replaying a transition at an exact instant.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time {
		return t
	})
}
