package clock

import "time"

// Clock supplies the current time to every component that classifies or
// stamps attendance events. Request payloads never carry timestamps; the
// handling side always asks the clock, so lateness math cannot be skewed by
// the caller and tests can pin time exactly.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// System returns a Clock backed by time.Now in UTC.
func System() Clock { return systemClock{} }

// Fixed returns a Clock frozen at t.
func Fixed(t time.Time) Clock { return fixedClock{t: t} }

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }
