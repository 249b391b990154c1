// Package server serves the live clock face over HTTP.
package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/oapi-codegen/nullable"

	"github.com/go-drift/clockface/cmd/clockface/internal/config"
	"github.com/go-drift/clockface/pkg/clock"
	"github.com/go-drift/clockface/pkg/errors"
	"github.com/go-drift/clockface/pkg/face"
	"github.com/go-drift/clockface/pkg/theme"
	"github.com/go-drift/clockface/pkg/tick"
)

// Options configures a Server.
type Options struct {
	// Size is the default face size in pixels for /face.svg and /face.png.
	Size int
	// SampleRate is the rate of the /tick.wav payload.
	SampleRate int
	// StreamBuffer is how many frames a slow stream client may lag before
	// frames are dropped.
	StreamBuffer int
}

// Server exposes a mounted clock.Widget.
type Server struct {
	widget *clock.Widget
	opts   Options

	noiseOnce sync.Once
	noise     []float64

	mu       sync.Mutex
	lastTick time.Time
	streams  map[uuid.UUID]struct{}
}

// New creates a server for w. The caller mounts and unmounts w.
func New(w *clock.Widget, opts Options) *Server {
	if opts.Size == 0 {
		opts.Size = config.DefaultSize
	}
	if opts.SampleRate == 0 {
		opts.SampleRate = tick.DefaultSampleRate
	}
	if opts.StreamBuffer == 0 {
		opts.StreamBuffer = 8
	}
	s := &Server{
		widget:  w,
		opts:    opts,
		streams: make(map[uuid.UUID]struct{}),
	}
	w.AddListener(func(f clock.Frame) {
		if f.Ticked {
			s.mu.Lock()
			s.lastTick = f.Reading.Time
			s.mu.Unlock()
		}
	})
	return s
}

// Handler returns the HTTP router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/", s.handleIndex)
	r.Get("/face.svg", s.handleSVG)
	r.Get("/face.png", s.handlePNG)
	r.Get("/tick.wav", s.handleTick)

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Patch("/mode", s.handleMode)
		r.Get("/stream", s.handleStream)
	})
	return r
}

// Streams returns the number of connected stream clients.
func (s *Server) Streams() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.streams)
}

func (s *Server) snapshot(w http.ResponseWriter, r *http.Request) (clock.Frame, bool) {
	f, ok := s.widget.Snapshot()
	if !ok {
		writeError(w, r, http.StatusServiceUnavailable, "not_ready", "the clock has not produced a frame yet")
	}
	return f, ok
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	f, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.state(f))
}

func (s *Server) handleMode(w http.ResponseWriter, r *http.Request) {
	var patch modePatch
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&patch); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	if err := patch.validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_field", err.Error())
		return
	}
	patch.apply(s.widget)

	f, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.state(f))
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	size, ok := s.size(w, r)
	if !ok {
		return
	}
	f, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := face.WriteSVG(&buf, buildFace(f), size); err != nil {
		s.renderFailed(w, r, "server.handleSVG", err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handlePNG(w http.ResponseWriter, r *http.Request) {
	size, ok := s.size(w, r)
	if !ok {
		return
	}
	f, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := face.EncodePNG(&buf, buildFace(f), size); err != nil {
		s.renderFailed(w, r, "server.handlePNG", err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleTick(w http.ResponseWriter, r *http.Request) {
	s.noiseOnce.Do(func() {
		seed := uint64(time.Now().UnixNano())
		s.noise = tick.NoiseBuffer(s.opts.SampleRate, rand.New(rand.NewPCG(seed, seed>>1|1)))
	})
	// A theme in the URL pins the volume, so that response may be cached.
	// Without one the current theme applies and nothing is cached.
	b := s.widget.Theme()
	cache := "no-store"
	if name := r.URL.Query().Get("theme"); name != "" {
		parsed, err := theme.ParseBrightness(name)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid_theme", err.Error())
			return
		}
		b = parsed
		cache = "public, max-age=3600"
	}
	peak := b.TickPeak()

	var buf bytes.Buffer
	if err := tick.EncodeWAV(&buf, tick.RenderTick(s.noise, s.opts.SampleRate, peak), s.opts.SampleRate); err != nil {
		s.renderFailed(w, r, "server.handleTick", err)
		return
	}
	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Cache-Control", cache)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) size(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("size")
	if raw == "" {
		return s.opts.Size, true
	}
	size, err := strconv.Atoi(raw)
	if err == nil {
		err = config.ValidateSize(size)
	}
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_size", fmt.Sprintf("size: %v", err))
		return 0, false
	}
	return size, true
}

func (s *Server) renderFailed(w http.ResponseWriter, r *http.Request, op string, err error) {
	errors.Report(errors.Wrap(op, errors.KindRender, err))
	writeError(w, r, http.StatusInternalServerError, "render_failed", err.Error())
}

// tickURL is the tick sound for brightness b.
func tickURL(b theme.Brightness) string {
	return "/tick.wav?theme=" + b.String()
}

func buildFace(f clock.Frame) *face.DisplayList {
	return face.Build(face.NewScene(f.Angles, f.Theme, f.DateLabel, f.ModeLabel))
}

type errorResponse struct {
	Error struct {
		Code      string                    `json:"code"`
		Message   string                    `json:"message"`
		RequestID nullable.Nullable[string] `json:"requestId,omitempty"`
	} `json:"error"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var er errorResponse
	er.Error.Code = code
	er.Error.Message = message
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		er.Error.RequestID = nullable.NewNullableWithValue(rid)
	}
	writeJSON(w, status, er)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
