package mocks

import (
	"sync"
	"time"

	"github.com/mcoot/cwrules/internal/dependencies/clock"
)

// MockClock returns a fixed time. With a non-zero Step every call to Now
// moves the clock on, giving each recorded event its own timestamp.
type MockClock struct {
	mu      sync.Mutex
	current time.Time
	step    time.Duration
}

var _ clock.Clock = (*MockClock)(nil)

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{current: t}
}

func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.current
	c.current = c.current.Add(c.step)
	return now
}

// Peek returns the time the next call to Now will report, without stepping
func (c *MockClock) Peek() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// SetStep makes each call to Now advance the clock by d
func (c *MockClock) SetStep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.step = d
}
