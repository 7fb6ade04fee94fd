package aggregation

import "time"

// Clock supplies the current time for future-date validation.
// Period builders take it as a dependency so tests can pin "today".
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}
