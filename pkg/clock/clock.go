package clock

import "time"

// Clock abstracts the current time so ledger timestamps can be fixed in tests.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

// NewRealClock returns a Clock backed by the system time, always in UTC.
func NewRealClock() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// MockClock is a settable Clock for tests.
type MockClock struct {
	current time.Time
}

func NewMockClock(start time.Time) *MockClock {
	return &MockClock{current: start.UTC()}
}

func (m *MockClock) Now() time.Time {
	return m.current
}

func (m *MockClock) Set(t time.Time) {
	m.current = t.UTC()
}

// Advance moves the clock forward by d.
func (m *MockClock) Advance(d time.Duration) {
	m.current = m.current.Add(d)
}
