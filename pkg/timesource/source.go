package timesource

import (
	"sync"
	"time"
)

// Clock provides the current wall-clock time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the host's local clock.
type SystemClock struct{}

// Now returns the current local time.
func (SystemClock) Now() time.Time { return time.Now() }

// Timer is a cancellable scheduled callback.
type Timer interface {
	// Stop prevents any further firing. It is safe to call more than once.
	Stop()
}

// Timers schedules one-shot and periodic callbacks.
type Timers interface {
	// AfterFunc calls f once after d.
	AfterFunc(d time.Duration, f func()) Timer
	// Every calls f every d until stopped. The first call happens after d.
	Every(d time.Duration, f func()) Timer
}

// Source produces live readings.
type Source interface {
	// Subscribe takes an immediate sample, delivers it to fn, and keeps
	// delivering samples until the returned subscription is cancelled.
	Subscribe(fn func(Reading)) Subscription
}

// Subscription is a handle on a running sampler.
type Subscription interface {
	// Cancel stops all scheduled work. No sample is delivered after Cancel
	// returns, except one already executing on another goroutine.
	Cancel()
}

// SystemTimers schedules callbacks with the Go runtime's timers.
type SystemTimers struct{}

type stopFunc func()

func (f stopFunc) Stop() { f() }

// AfterFunc wraps time.AfterFunc.
func (SystemTimers) AfterFunc(d time.Duration, f func()) Timer {
	t := time.AfterFunc(d, f)
	return stopFunc(func() { t.Stop() })
}

// Every runs f on its own goroutine each time a time.Ticker fires.
func (SystemTimers) Every(d time.Duration, f func()) Timer {
	ticker := time.NewTicker(d)
	done := make(chan struct{})
	var once sync.Once
	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				// A tick may race with Stop; re-check before calling f.
				select {
				case <-done:
					return
				default:
				}
				f()
			}
		}
	}()
	return stopFunc(func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	})
}
