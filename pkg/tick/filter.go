package tick

import "math"

// Biquad is a second-order IIR filter in direct form I.
type Biquad struct {
	b0, b1, b2, a1, a2 float64
	x1, x2, y1, y2     float64
}

// NewBandPass returns a band-pass biquad with constant 0 dB peak gain at
// freq, matching the "bandpass" filter type of browser audio engines.
func NewBandPass(sampleRate int, freq, q float64) *Biquad {
	w0 := 2 * math.Pi * freq / float64(sampleRate)
	sin, cos := math.Sincos(w0)
	alpha := sin / (2 * q)
	a0 := 1 + alpha
	return &Biquad{
		b0: alpha / a0,
		b1: 0,
		b2: -alpha / a0,
		a1: -2 * cos / a0,
		a2: (1 - alpha) / a0,
	}
}

// Process filters one sample.
func (f *Biquad) Process(x float64) float64 {
	y := f.b0*x + f.b1*f.x1 + f.b2*f.x2 - f.a1*f.y1 - f.a2*f.y2
	f.x2, f.x1 = f.x1, x
	f.y2, f.y1 = f.y1, y
	return y
}
