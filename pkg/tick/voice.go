package tick

import "time"

// Voice is one tick's playback chain: noise source, band-pass filter and
// gain envelope. A voice is rendered once and discarded.
type Voice struct {
	noise      []float64
	sampleRate int
	filter     *Biquad
	envelope   Envelope
}

// NewVoice builds a fresh chain over the shared noise buffer.
func NewVoice(noise []float64, sampleRate int, peak float64) *Voice {
	return &Voice{
		noise:      noise,
		sampleRate: sampleRate,
		filter:     NewBandPass(sampleRate, CenterFrequency, Q),
		envelope:   Envelope{Peak: peak},
	}
}

// Render returns the voice's mono samples from start to stop.
func (v *Voice) Render() []float32 {
	n := int(int64(Length) * int64(v.sampleRate) / int64(time.Second))
	out := make([]float32, n)
	if len(v.noise) == 0 {
		return out
	}
	for i := range out {
		t := time.Duration(int64(i) * int64(time.Second) / int64(v.sampleRate))
		x := v.noise[i%len(v.noise)]
		out[i] = float32(v.filter.Process(x) * v.envelope.Gain(t))
	}
	return out
}
