package testing

import "sync"

// RecordingSink records the peak volume of every tick it is asked to play.
type RecordingSink struct {
	mu    sync.Mutex
	peaks []float64
}

// PlayTick records peak.
func (s *RecordingSink) PlayTick(peak float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.peaks = append(s.peaks, peak)
}

// Count returns how many ticks were played.
func (s *RecordingSink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.peaks)
}

// Peaks returns a copy of the recorded peak volumes.
func (s *RecordingSink) Peaks() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]float64, len(s.peaks))
	copy(out, s.peaks)
	return out
}
