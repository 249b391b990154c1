package clock

import (
	"github.com/go-drift/clockface/pkg/dial"
	"github.com/go-drift/clockface/pkg/theme"
)

// SetContinuous switches between the sweep (true) and the step (false) and
// returns the resulting flags. Entering the sweep turns sound off.
func (w *Widget) SetContinuous(continuous bool) dial.Flags {
	w.mu.Lock()
	if w.flags.Continuous == continuous {
		flags := w.flags
		w.mu.Unlock()
		return flags
	}
	hadSound := w.flags.SoundEnabled
	w.flags.Continuous = continuous
	w.flags = w.flags.Normalize()
	flags := w.flags
	w.mu.Unlock()

	if hadSound && !flags.SoundEnabled {
		w.suspendSink()
	}
	w.resubscribe()
	return flags
}

// SetSoundEnabled turns the tick on or off and returns the resulting flags.
// Enabling sound during the sweep is ignored.
func (w *Widget) SetSoundEnabled(on bool) dial.Flags {
	w.mu.Lock()
	if w.flags.SoundEnabled == on || (on && w.flags.Continuous) {
		flags := w.flags
		w.mu.Unlock()
		return flags
	}
	w.flags.SoundEnabled = on
	flags := w.flags
	w.mu.Unlock()

	if !on {
		w.suspendSink()
	}
	w.refresh()
	return flags
}

// SetTheme changes the face brightness and the tick volume.
func (w *Widget) SetTheme(b theme.Brightness) {
	w.mu.Lock()
	if w.theme == b {
		w.mu.Unlock()
		return
	}
	w.theme = b
	w.mu.Unlock()
	w.refresh()
}

// ToggleContinuous flips the motion mode.
func (w *Widget) ToggleContinuous() dial.Flags {
	return w.SetContinuous(!w.Flags().Continuous)
}

// ToggleSound flips the tick sound.
func (w *Widget) ToggleSound() dial.Flags {
	return w.SetSoundEnabled(!w.Flags().SoundEnabled)
}

// ToggleTheme flips between dark and light.
func (w *Widget) ToggleTheme() theme.Brightness {
	w.mu.Lock()
	b := w.theme.Toggle()
	w.mu.Unlock()
	w.SetTheme(b)
	return b
}

// Flags returns the current mode flags.
func (w *Widget) Flags() dial.Flags {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.flags
}

// Theme returns the current brightness.
func (w *Widget) Theme() theme.Brightness {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.theme
}

// Mounted reports whether the widget is sampling.
func (w *Widget) Mounted() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.mounted
}

// Snapshot returns the most recent frame. ok is false before the first
// sample.
func (w *Widget) Snapshot() (f Frame, ok bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.last, w.hasFrame
}

// AddListener registers fn to receive every frame. Listeners run on the
// sampler's goroutine and must not block. The returned function removes
// the listener.
func (w *Widget) AddListener(fn func(Frame)) (remove func()) {
	w.mu.Lock()
	id := w.nextID
	w.nextID++
	w.listeners[id] = fn
	w.mu.Unlock()
	return func() {
		w.mu.Lock()
		delete(w.listeners, id)
		w.mu.Unlock()
	}
}

func (w *Widget) suspendSink() {
	if s, ok := w.sink.(suspender); ok {
		s.Suspend()
	}
}
