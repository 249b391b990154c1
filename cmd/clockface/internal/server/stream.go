package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/go-drift/clockface/pkg/clock"
)

// handleStream sends every frame as a server-sent event. A client that falls
// more than StreamBuffer frames behind loses frames rather than stalling
// the clock.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, r, http.StatusInternalServerError, "stream_unsupported", "response does not support streaming")
		return
	}

	id := uuid.New()
	frames := make(chan clock.Frame, s.opts.StreamBuffer)
	remove := s.widget.AddListener(func(f clock.Frame) {
		select {
		case frames <- f:
		default:
		}
	})
	s.mu.Lock()
	s.streams[id] = struct{}{}
	s.mu.Unlock()
	defer func() {
		remove()
		s.mu.Lock()
		delete(s.streams, id)
		s.mu.Unlock()
	}()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Stream-Id", id.String())
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, ": stream %s\n\n", id)
	if f, ok := s.widget.Snapshot(); ok {
		if err := s.writeEvent(w, f, 0); err != nil {
			return
		}
	}
	flusher.Flush()

	for seq := uint64(1); ; seq++ {
		select {
		case <-r.Context().Done():
			return
		case f := <-frames:
			if err := s.writeEvent(w, f, seq); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func (s *Server) writeEvent(w http.ResponseWriter, f clock.Frame, seq uint64) error {
	data, err := json.Marshal(s.state(f))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "id: %d\nevent: frame\ndata: %s\n\n", seq, data)
	return err
}
