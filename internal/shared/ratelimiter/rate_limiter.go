package ratelimiter

import (
	"log/slog"
	"time"
)

// Waiter paces sequential calls to an external API.
type Waiter interface {
	WaitAfter(transfer time.Duration)
}

// MinInterval spaces consecutive calls at least Interval apart. The time the
// call itself took counts toward the interval, so a slow call is followed by a
// shorter pause.
type MinInterval struct {
	Interval time.Duration

	sleep func(time.Duration)
}

// NewMinInterval creates a MinInterval that sleeps with time.Sleep.
func NewMinInterval(interval time.Duration) *MinInterval {
	return &MinInterval{Interval: interval, sleep: time.Sleep}
}

// WithSleep replaces the sleep function, for tests.
func (m *MinInterval) WithSleep(sleep func(time.Duration)) *MinInterval {
	m.sleep = sleep
	return m
}

// Pause returns how long to wait after a call that took transfer.
func (m *MinInterval) Pause(transfer time.Duration) time.Duration {
	if d := m.Interval - transfer; d > 0 {
		return d
	}
	return 0
}

// WaitAfter blocks for Interval minus transfer, or not at all when the call
// already took longer than Interval.
func (m *MinInterval) WaitAfter(transfer time.Duration) {
	d := m.Pause(transfer)
	if d == 0 {
		return
	}
	slog.Debug("rate limit pause", "sleep", d, "transfer", transfer)
	sleep := m.sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	sleep(d)
}
