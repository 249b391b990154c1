// Package frame provides the display-refresh primitive used for smooth
// second-hand motion.
//
// A [Loop] plays the role of a browser's animation-frame scheduler: it owns a
// set of active [Ticker]s and calls each of them once per frame. Production
// code drives the loop with [Loop.Run]; tests call [Loop.Step] directly to
// produce frames deterministically.
package frame

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultRate is the refresh rate used when none is configured.
const DefaultRate = 60

// Clock provides frame timestamps.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Loop calls every active ticker once per frame.
type Loop struct {
	clock    Clock
	interval time.Duration

	mu     sync.Mutex
	active map[*Ticker]struct{}
}

// NewLoop creates a loop refreshing rate times per second. A rate of zero or
// less selects [DefaultRate]. A nil clock uses system time.
func NewLoop(rate int, clock Clock) *Loop {
	if rate <= 0 {
		rate = DefaultRate
	}
	if clock == nil {
		clock = realClock{}
	}
	return &Loop{
		clock:    clock,
		interval: time.Second / time.Duration(rate),
		active:   make(map[*Ticker]struct{}),
	}
}

// Interval returns the time between frames.
func (l *Loop) Interval() time.Duration {
	return l.interval
}

// NewTicker creates an inactive ticker bound to this loop.
func (l *Loop) NewTicker(callback func(frameTime time.Time)) *Ticker {
	return &Ticker{loop: l, callback: callback}
}

// Step delivers one frame to every active ticker.
func (l *Loop) Step() {
	l.mu.Lock()
	if len(l.active) == 0 {
		l.mu.Unlock()
		return
	}
	// Copy so callbacks may start or stop tickers without holding the lock.
	tickers := make([]*Ticker, 0, len(l.active))
	for t := range l.active {
		tickers = append(tickers, t)
	}
	l.mu.Unlock()

	now := l.clock.Now()
	for _, t := range tickers {
		if t.active.Load() && t.callback != nil {
			t.callback(now)
		}
	}
}

// HasActiveTickers reports whether any ticker is waiting for frames.
func (l *Loop) HasActiveTickers() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.active) > 0
}

// Run steps the loop at its refresh interval until ctx is done.
func (l *Loop) Run(ctx context.Context) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Step()
		}
	}
}

// Ticker calls a callback on each frame while active.
type Ticker struct {
	loop     *Loop
	callback func(frameTime time.Time)
	active   atomic.Bool
}

// Start activates the ticker. Starting an active ticker is a no-op.
func (t *Ticker) Start() {
	if t.active.Swap(true) {
		return
	}
	t.loop.mu.Lock()
	t.loop.active[t] = struct{}{}
	t.loop.mu.Unlock()
}

// Stop deactivates the ticker. A frame already being delivered when Stop
// returns will not reach the callback.
func (t *Ticker) Stop() {
	if !t.active.Swap(false) {
		return
	}
	t.loop.mu.Lock()
	delete(t.loop.active, t)
	t.loop.mu.Unlock()
}

// IsActive returns whether the ticker is currently running.
func (t *Ticker) IsActive() bool {
	return t.active.Load()
}
