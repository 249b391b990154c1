// Package clock is the clock widget: it owns the time sampler, the angle
// deriver and the tick sink, and turns every sample into a [Frame] for the
// rendering layer.
//
// Typical use:
//
//	w := clock.New(clock.Options{Sink: tick.NewEngine(tick.HostFactory(0))})
//	remove := w.AddListener(func(f clock.Frame) { draw(f) })
//	w.Mount()
//	defer w.Unmount()
//	defer remove()
//
// Exactly one sampler runs while the widget is mounted. Changing the motion
// mode cancels it before the replacement is armed, and every delivered sample
// is checked against the current subscription so a late callback from a
// cancelled sampler is dropped.
package clock

import (
	"context"
	"io"
	"sync"

	"github.com/go-drift/clockface/pkg/dial"
	"github.com/go-drift/clockface/pkg/errors"
	"github.com/go-drift/clockface/pkg/frame"
	"github.com/go-drift/clockface/pkg/theme"
	"github.com/go-drift/clockface/pkg/tick"
	"github.com/go-drift/clockface/pkg/timesource"
)

// Frame is one rendered state of the clock.
type Frame struct {
	Reading timesource.Reading
	Angles  dial.Angles
	Flags   dial.Flags
	Theme   theme.Brightness
	// DateLabel is the date window text, e.g. "OCT 19".
	DateLabel string
	// ModeLabel is "AUTOMATIC" for the sweep and "QUARTZ" for the step.
	ModeLabel string
	// Ticked is true when this sample triggered a tick sound.
	Ticked bool
}

// Options configures a Widget. The zero value is a dark, stepping, silent
// clock on the system clock.
type Options struct {
	Theme theme.Brightness
	Flags dial.Flags

	// Clock and Timers default to the host clock and runtime timers.
	Clock  timesource.Clock
	Timers timesource.Timers
	// Loop supplies display frames for the sweep. When nil the widget
	// creates one at FrameRate and runs it only while sweeping.
	Loop *frame.Loop
	// FrameRate is the refresh rate of a widget-owned loop. Zero selects
	// frame.DefaultRate.
	FrameRate int
	// Sink plays ticks. Nil means silence. If the sink implements
	// io.Closer it is closed on Unmount.
	Sink tick.Sink
}

type suspender interface {
	Suspend()
}

// Widget is a live analog clock. All methods are safe for concurrent use.
type Widget struct {
	clock    timesource.Clock
	timers   timesource.Timers
	loop     *frame.Loop
	ownsLoop bool
	sink     tick.Sink

	mu        sync.Mutex
	flags     dial.Flags
	theme     theme.Brightness
	deriver   dial.Deriver
	mounted   bool
	gen       uint64
	sub       timesource.Subscription
	stopLoop  context.CancelFunc
	last      Frame
	hasFrame  bool
	listeners map[int]func(Frame)
	nextID    int
}

// New creates an unmounted widget.
func New(opts Options) *Widget {
	w := &Widget{
		clock:     opts.Clock,
		timers:    opts.Timers,
		loop:      opts.Loop,
		sink:      opts.Sink,
		flags:     opts.Flags.Normalize(),
		theme:     opts.Theme,
		listeners: make(map[int]func(Frame)),
	}
	if w.clock == nil {
		w.clock = timesource.SystemClock{}
	}
	if w.timers == nil {
		w.timers = timesource.SystemTimers{}
	}
	if w.loop == nil {
		w.loop = frame.NewLoop(opts.FrameRate, w.clock)
		w.ownsLoop = true
	}
	if w.sink == nil {
		w.sink = tick.NopSink{}
	}
	return w
}

// Mount starts sampling. Mounting a mounted widget is a no-op.
func (w *Widget) Mount() {
	w.mu.Lock()
	if w.mounted {
		w.mu.Unlock()
		return
	}
	w.mounted = true
	w.mu.Unlock()

	w.resubscribe()
}

// Unmount stops sampling, releases the sink and drops pending callbacks.
func (w *Widget) Unmount() {
	w.mu.Lock()
	if !w.mounted {
		w.mu.Unlock()
		return
	}
	w.mounted = false
	w.gen++
	sub := w.sub
	w.sub = nil
	stopLoop := w.stopLoop
	w.stopLoop = nil
	w.deriver.Reset()
	w.mu.Unlock()

	if sub != nil {
		sub.Cancel()
	}
	if stopLoop != nil {
		stopLoop()
	}
	if closer, ok := w.sink.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			errors.Report(errors.Wrap("clock.Widget.Unmount", errors.KindAudio, err))
		}
	}
}

// resubscribe cancels the current sampler and arms one for the current mode.
func (w *Widget) resubscribe() {
	w.mu.Lock()
	if !w.mounted {
		w.mu.Unlock()
		return
	}
	w.gen++
	gen := w.gen
	old := w.sub
	w.sub = nil
	src := w.sourceLocked()
	stopLoop := w.syncLoopLocked()
	w.mu.Unlock()

	if old != nil {
		old.Cancel()
	}
	if stopLoop != nil {
		stopLoop()
	}

	sub := src.Subscribe(func(r timesource.Reading) { w.handle(gen, r) })

	w.mu.Lock()
	if w.gen != gen {
		// Superseded by another mode switch or an unmount while subscribing.
		w.mu.Unlock()
		sub.Cancel()
		return
	}
	w.sub = sub
	w.mu.Unlock()
}

// syncLoopLocked runs an owned frame loop only during the sweep. It starts
// the loop when needed and returns the cancel func of a loop that must stop.
func (w *Widget) syncLoopLocked() context.CancelFunc {
	if !w.ownsLoop {
		return nil
	}
	if w.flags.Continuous {
		if w.stopLoop == nil {
			ctx, cancel := context.WithCancel(context.Background())
			w.stopLoop = cancel
			go w.loop.Run(ctx)
		}
		return nil
	}
	stop := w.stopLoop
	w.stopLoop = nil
	return stop
}

func (w *Widget) sourceLocked() timesource.Source {
	if w.flags.Continuous {
		return timesource.NewFrameSource(w.clock, w.loop)
	}
	return timesource.NewStepSource(w.clock, w.timers)
}

// handle processes one sample from the subscription identified by gen.
func (w *Widget) handle(gen uint64, r timesource.Reading) {
	w.mu.Lock()
	if !w.mounted || gen != w.gen {
		w.mu.Unlock()
		return
	}
	angles, ticked := w.deriver.Observe(r, w.flags)
	f := w.frameLocked(r, angles)
	f.Ticked = ticked
	w.last = f
	w.hasFrame = true
	peak := w.theme.TickPeak()
	listeners := w.listenersLocked()
	w.mu.Unlock()

	if ticked {
		w.sink.PlayTick(peak)
	}
	notify(listeners, f)
}

func (w *Widget) frameLocked(r timesource.Reading, angles dial.Angles) Frame {
	return Frame{
		Reading:   r,
		Angles:    angles,
		Flags:     w.flags,
		Theme:     w.theme,
		DateLabel: r.DateLabel(),
		ModeLabel: w.flags.ModeLabel(),
	}
}

func (w *Widget) listenersLocked() []func(Frame) {
	out := make([]func(Frame), 0, len(w.listeners))
	for _, fn := range w.listeners {
		out = append(out, fn)
	}
	return out
}

// refresh re-emits the last frame with the current flags and theme, without
// sampling and without ticking.
func (w *Widget) refresh() {
	w.mu.Lock()
	if !w.hasFrame {
		w.mu.Unlock()
		return
	}
	f := w.frameLocked(w.last.Reading, dial.Derive(w.last.Reading, w.flags))
	w.last = f
	listeners := w.listenersLocked()
	w.mu.Unlock()

	notify(listeners, f)
}

func notify(listeners []func(Frame), f Frame) {
	for _, fn := range listeners {
		func() {
			defer errors.Recover("clock.Widget.notify")
			fn(f)
		}()
	}
}
