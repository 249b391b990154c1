package timesource

import (
	"sync"
	"sync/atomic"
	"time"
)

// StepSource samples once per second, aligned to the wall-clock second.
//
// After the immediate sample it waits until the next whole second, samples,
// and then samples every second on a periodic timer. Aligning once keeps the
// periodic timer from lagging a fraction of a second behind the real boundary.
type StepSource struct {
	Clock  Clock
	Timers Timers
}

// NewStepSource creates a StepSource. Nil arguments use the system clock and
// runtime timers.
func NewStepSource(clock Clock, timers Timers) *StepSource {
	if clock == nil {
		clock = SystemClock{}
	}
	if timers == nil {
		timers = SystemTimers{}
	}
	return &StepSource{Clock: clock, Timers: timers}
}

type stepSubscription struct {
	clock  Clock
	timers Timers
	fn     func(Reading)

	cancelled atomic.Bool

	mu       sync.Mutex
	align    Timer
	periodic Timer
}

// Subscribe samples immediately, again at the next second boundary, and then
// every second.
func (s *StepSource) Subscribe(fn func(Reading)) Subscription {
	sub := &stepSubscription{clock: s.Clock, timers: s.Timers, fn: fn}

	first := NewReading(s.Clock.Now())
	delay := first.UntilNextSecond()
	sub.deliver(first)

	sub.mu.Lock()
	if !sub.cancelled.Load() {
		sub.align = s.Timers.AfterFunc(delay, sub.aligned)
	}
	sub.mu.Unlock()
	return sub
}

func (s *stepSubscription) aligned() {
	s.sample()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelled.Load() {
		return
	}
	s.periodic = s.timers.Every(time.Second, s.sample)
}

func (s *stepSubscription) sample() {
	s.deliver(NewReading(s.clock.Now()))
}

func (s *stepSubscription) deliver(r Reading) {
	if s.cancelled.Load() {
		return
	}
	s.fn(r)
}

func (s *stepSubscription) Cancel() {
	if s.cancelled.Swap(true) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.align != nil {
		s.align.Stop()
	}
	if s.periodic != nil {
		s.periodic.Stop()
	}
}
