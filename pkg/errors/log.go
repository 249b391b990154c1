package errors

import (
	"io"
	"log"
	"os"
	"strings"
)

// LogHandler writes reports through the standard logger format, one line per
// report: "clockface: <kind> <op>: <cause>". Verbose adds the stack trace,
// indented under the line.
type LogHandler struct {
	Verbose bool
	// Out overrides the destination. Nil means stderr.
	Out io.Writer
}

func (h *LogHandler) logger() *log.Logger {
	out := h.Out
	if out == nil {
		out = os.Stderr
	}
	return log.New(out, "clockface: ", log.LstdFlags|log.Lmsgprefix)
}

// HandleError logs a ClockError.
func (h *LogHandler) HandleError(err *ClockError) {
	if err == nil {
		return
	}
	l := h.logger()
	l.Printf("%s %s: %v", err.Kind, err.Op, err.Err)
	h.stack(l, err.StackTrace)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	l := h.logger()
	l.Printf("%s %s: %v", KindPanic, opOrUnknown(err.Op), err.Value)
	h.stack(l, err.StackTrace)
}

func (h *LogHandler) stack(l *log.Logger, trace string) {
	if !h.Verbose || trace == "" {
		return
	}
	for _, line := range strings.Split(strings.TrimRight(trace, "\n"), "\n") {
		l.Print("    " + line)
	}
}

func opOrUnknown(op string) string {
	if op == "" {
		return "(unknown op)"
	}
	return op
}
