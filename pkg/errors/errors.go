// Package errors provides structured error reporting for the clock widget.
//
// Nothing in the widget's sampling or audio paths is allowed to fail the
// caller. Failures that would otherwise be swallowed (an audio device that
// cannot be opened, a listener that panics) are reported here instead so they
// stay visible without interrupting the clock.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindAudio indicates the audio subsystem is missing or refused a request.
	KindAudio
	// KindConfig indicates an invalid or unreadable configuration.
	KindConfig
	// KindRender indicates a failure while drawing or encoding the face.
	KindRender
	// KindSchedule indicates a timer or frame callback misbehaved.
	KindSchedule
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindAudio:
		return "audio"
	case KindConfig:
		return "config"
	case KindRender:
		return "render"
	case KindSchedule:
		return "schedule"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// ClockError represents a structured error raised by the clock.
type ClockError struct {
	// Op is the operation that failed (e.g., "tick.Engine.PlayTick").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

// Wrap returns a ClockError for err raised by op. A nil err yields nil.
func Wrap(op string, kind ErrorKind, err error) *ClockError {
	if err == nil {
		return nil
	}
	return &ClockError{Op: op, Kind: kind, Err: err}
}

func (e *ClockError) Error() string {
	if e.Kind == KindUnknown {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ClockError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first ClockError in err's chain, KindPanic
// for a PanicError, and KindUnknown otherwise.
func KindOf(err error) ErrorKind {
	var ce *ClockError
	if stderrors.As(err, &ce) {
		return ce.Kind
	}
	var pe *PanicError
	if stderrors.As(err, &pe) {
		return KindPanic
	}
	return KindUnknown
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "clock.Widget.notify").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the clock.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *ClockError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
