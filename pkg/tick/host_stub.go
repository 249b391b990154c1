//go:build !cgo && !darwin && !windows

package tick

// NewHostContext reports ErrNoAudio: the audio driver on this platform
// requires cgo.
func NewHostContext(sampleRate int) (Context, error) {
	return nil, ErrNoAudio
}

// HostFactory returns a ContextFactory for the default audio device.
func HostFactory(sampleRate int) ContextFactory {
	return func() (Context, error) { return NewHostContext(sampleRate) }
}
