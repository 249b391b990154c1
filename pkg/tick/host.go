//go:build cgo || darwin || windows

package tick

import (
	"bytes"
	"encoding/binary"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// oto allows one context per process, so every engine shares it along with
// its pause state.
var (
	hostOnce   sync.Once
	hostCtx    *oto.Context
	hostDevice *sharedDevice
	hostRate   int
	hostErr    error
)

type hostContext struct {
	*sharedDevice
	ctx     *oto.Context
	rate    int
	players sync.WaitGroup
}

// NewHostContext opens the default audio device as mono float32 output.
func NewHostContext(sampleRate int) (Context, error) {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	hostOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 1,
			Format:       oto.FormatFloat32LE,
			BufferSize:   20 * time.Millisecond,
		}
		ctx, ready, err := oto.NewContext(op)
		if err != nil {
			hostErr = err
			return
		}
		<-ready
		hostCtx = ctx
		hostDevice = &sharedDevice{dev: ctx}
		hostRate = sampleRate
	})
	if hostErr != nil {
		return nil, hostErr
	}
	return &hostContext{sharedDevice: hostDevice, ctx: hostCtx, rate: hostRate}, nil
}

// HostFactory returns a ContextFactory for the default audio device.
func HostFactory(sampleRate int) ContextFactory {
	return func() (Context, error) { return NewHostContext(sampleRate) }
}

func (c *hostContext) SampleRate() int { return c.rate }

func (c *hostContext) Play(samples []float32) error {
	if err := c.ctx.Err(); err != nil {
		return err
	}
	buf := make([]byte, 4*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(s))
	}
	p := c.ctx.NewPlayer(bytes.NewReader(buf))
	p.Play()

	c.players.Add(1)
	go func() {
		defer c.players.Done()
		for p.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		p.Close()
	}()
	return nil
}

// Close waits for queued ticks to drain and suspends the shared device. The
// next context on the device sees the pause and resumes before playing.
func (c *hostContext) Close() error {
	c.players.Wait()
	return c.Suspend()
}
