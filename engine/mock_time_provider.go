package engine

import (
	"sync"
	"time"
)

// MockTimeProvider provides a controllable time source for testing
// Sleep advances mock time instantly and records the requested durations
type MockTimeProvider struct {
	mu          sync.RWMutex
	currentTime time.Time
	sleeps      []time.Duration
	onSleep     func(d time.Duration)
}

// NewMockTimeProvider creates a new mock time provider with the given start time
func NewMockTimeProvider(startTime time.Time) *MockTimeProvider {
	return &MockTimeProvider{
		currentTime: startTime,
	}
}

// Now returns the current mocked time
func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// SetTime sets the current time for the mock
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = t
}

// Advance advances the current time by the given duration
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}

// Sleep advances mock time by d without blocking
func (m *MockTimeProvider) Sleep(d time.Duration) {
	m.mu.Lock()
	m.currentTime = m.currentTime.Add(d)
	m.sleeps = append(m.sleeps, d)
	hook := m.onSleep
	m.mu.Unlock()

	if hook != nil {
		hook(d)
	}
}

// OnSleep registers a hook invoked after every Sleep, letting tests act between ticks
func (m *MockTimeProvider) OnSleep(fn func(d time.Duration)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onSleep = fn
}

// Sleeps returns a copy of every duration passed to Sleep
func (m *MockTimeProvider) Sleeps() []time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]time.Duration(nil), m.sleeps...)
}
