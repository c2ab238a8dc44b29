package clock

import "time"

// Clock stamps games and events as they are recorded
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock. Times are kept in UTC so stored records
// compare equal after a round trip through JSON.
type SystemClock struct{}

func New() *SystemClock {
	return &SystemClock{}
}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
