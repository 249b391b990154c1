package tick

import (
	"math"
	"time"
)

// Envelope is the percussive gain curve of one tick.
type Envelope struct {
	Peak float64
}

// Gain returns the envelope value t after the tick starts.
func (e Envelope) Gain(t time.Duration) float64 {
	switch {
	case t <= 0 || e.Peak <= 0:
		return 0
	case t < Attack:
		return e.Peak * float64(t) / float64(Attack)
	case t < DecayEnd:
		progress := float64(t-Attack) / float64(DecayEnd-Attack)
		return e.Peak * math.Pow(Floor/e.Peak, progress)
	case t < Length:
		return Floor
	default:
		return 0
	}
}
