package timesource

import (
	"sync/atomic"
	"time"

	"github.com/go-drift/clockface/pkg/frame"
)

// FrameSource samples the clock on every frame of a [frame.Loop].
type FrameSource struct {
	Clock Clock
	Loop  *frame.Loop
}

// NewFrameSource creates a FrameSource. A nil clock uses [SystemClock].
func NewFrameSource(clock Clock, loop *frame.Loop) *FrameSource {
	if clock == nil {
		clock = SystemClock{}
	}
	return &FrameSource{Clock: clock, Loop: loop}
}

type frameSubscription struct {
	clock     Clock
	fn        func(Reading)
	ticker    *frame.Ticker
	cancelled atomic.Bool
}

// Subscribe samples immediately and then once per frame.
func (s *FrameSource) Subscribe(fn func(Reading)) Subscription {
	sub := &frameSubscription{clock: s.Clock, fn: fn}
	sub.ticker = s.Loop.NewTicker(func(time.Time) { sub.sample() })
	sub.sample()
	if !sub.cancelled.Load() {
		sub.ticker.Start()
	}
	return sub
}

func (s *frameSubscription) sample() {
	if s.cancelled.Load() {
		return
	}
	s.fn(NewReading(s.clock.Now()))
}

func (s *frameSubscription) Cancel() {
	if s.cancelled.Swap(true) {
		return
	}
	s.ticker.Stop()
}
