package tick

import "sync"

// pausable is an output device that can be paused and restarted.
type pausable interface {
	Suspend() error
	Resume() error
}

// sharedDevice keeps the pause state of a process-wide device. The state
// belongs to the device rather than to the contexts wrapping it, so a context
// opened after another was closed still sees the pause and resumes.
type sharedDevice struct {
	dev pausable

	mu        sync.Mutex
	suspended bool
}

func (d *sharedDevice) Suspended() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.suspended
}

func (d *sharedDevice) Resume() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.dev.Resume(); err != nil {
		return err
	}
	d.suspended = false
	return nil
}

func (d *sharedDevice) Suspend() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.dev.Suspend(); err != nil {
		return err
	}
	d.suspended = true
	return nil
}
