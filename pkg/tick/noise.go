package tick

import "math/rand/v2"

// NoiseBuffer returns one second of uniform white noise in [-1, 1).
func NoiseBuffer(sampleRate int, rnd *rand.Rand) []float64 {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	buf := make([]float64, sampleRate)
	for i := range buf {
		buf[i] = rnd.Float64()*2 - 1
	}
	return buf
}
