package tick

import (
	stderrors "errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/go-drift/clockface/pkg/errors"
)

// ErrNoAudio is returned by context factories when no audio output exists.
var ErrNoAudio = stderrors.New("tick: no audio output available")

// Context is an audio output the engine renders ticks into.
type Context interface {
	// SampleRate returns the output rate in Hz.
	SampleRate() int
	// Suspended reports whether output is paused.
	Suspended() bool
	// Resume restarts paused output.
	Resume() error
	// Suspend pauses output.
	Suspend() error
	// Play queues mono samples for immediate playback and returns without
	// waiting for them to finish. Concurrent plays mix.
	Play(samples []float32) error
	// Close releases the output.
	Close() error
}

// ContextFactory opens an audio context.
type ContextFactory func() (Context, error)

// Engine is a [Sink] that synthesizes ticks into a lazily opened [Context].
// All methods are safe for concurrent use.
type Engine struct {
	factory ContextFactory

	mu          sync.Mutex
	ctx         Context
	noise       []float64
	unavailable bool
	closed      bool
	rnd         *rand.Rand
}

// NewEngine creates an engine that opens its context with factory on the
// first tick. A nil factory yields a silent engine.
func NewEngine(factory ContextFactory) *Engine {
	seed := uint64(time.Now().UnixNano())
	return &Engine{
		factory: factory,
		rnd:     rand.New(rand.NewPCG(seed, seed>>1|1)),
	}
}

// PlayTick renders and plays one tick at the given peak gain.
// Failures are reported, never returned.
func (e *Engine) PlayTick(peak float64) {
	ctx, noise := e.prepare()
	if ctx == nil {
		return
	}

	if ctx.Suspended() {
		errors.Report(errors.Wrap("tick.Engine.resume", errors.KindAudio, ctx.Resume()))
	}

	samples := NewVoice(noise, ctx.SampleRate(), peak).Render()
	errors.Report(errors.Wrap("tick.Engine.PlayTick", errors.KindAudio, ctx.Play(samples)))
}

// prepare opens the context and fills the noise buffer on first use.
func (e *Engine) prepare() (Context, []float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || e.unavailable {
		return nil, nil
	}
	if e.ctx == nil {
		if e.factory == nil {
			e.unavailable = true
			return nil, nil
		}
		ctx, err := e.factory()
		if err != nil || ctx == nil {
			if err == nil {
				err = ErrNoAudio
			}
			e.unavailable = true
			errors.Report(errors.Wrap("tick.Engine.open", errors.KindAudio, err))
			return nil, nil
		}
		e.ctx = ctx
	}
	if e.noise == nil {
		e.noise = NoiseBuffer(e.ctx.SampleRate(), e.rnd)
	}
	return e.ctx, e.noise
}

// Available reports whether the engine can still make sound. It is true
// before the first tick, since the context has not been tried yet.
func (e *Engine) Available() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.closed && !e.unavailable && e.factory != nil
}

// Suspend pauses the context if one is open. The next tick resumes it.
func (e *Engine) Suspend() {
	e.mu.Lock()
	ctx := e.ctx
	e.mu.Unlock()
	if ctx == nil || ctx.Suspended() {
		return
	}
	errors.Report(errors.Wrap("tick.Engine.Suspend", errors.KindAudio, ctx.Suspend()))
}

// Close releases the context. Ticks after Close are ignored.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	e.noise = nil
	if e.ctx == nil {
		return nil
	}
	err := e.ctx.Close()
	e.ctx = nil
	return err
}
