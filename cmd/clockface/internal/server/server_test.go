package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/go-drift/clockface/pkg/clock"
	"github.com/go-drift/clockface/pkg/frame"
	clocktest "github.com/go-drift/clockface/pkg/testing"
)

type harness struct {
	clock  *clocktest.FakeClock
	sink   *clocktest.RecordingSink
	widget *clock.Widget
	server *Server
}

func newHarness(t *testing.T, mount bool) *harness {
	t.Helper()
	fc := clocktest.NewFakeClock()
	sink := &clocktest.RecordingSink{}
	w := clock.New(clock.Options{
		Clock:  fc,
		Timers: fc,
		Loop:   frame.NewLoop(frame.DefaultRate, fc),
		Sink:   sink,
	})
	if mount {
		w.Mount()
		t.Cleanup(w.Unmount)
	}
	return &harness{clock: fc, sink: sink, widget: w, server: New(w, Options{Size: 200})}
}

func (h *harness) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.server.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestHealthz(t *testing.T) {
	h := newHarness(t, false)
	rec := h.do(t, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("healthz = %d %q", rec.Code, rec.Body.String())
	}
}

func TestState(t *testing.T) {
	h := newHarness(t, true)
	rec := h.do(t, http.MethodGet, "/api/state", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	st := decode(t, rec)
	if st["modeLabel"] != "QUARTZ" {
		t.Errorf("modeLabel = %v", st["modeLabel"])
	}
	if st["dateLabel"] != "JAN 1" {
		t.Errorf("dateLabel = %v", st["dateLabel"])
	}
	if st["theme"] != "dark" {
		t.Errorf("theme = %v", st["theme"])
	}
	if v, ok := st["lastTick"]; !ok || v != nil {
		t.Errorf("lastTick = %v (present %v), want null", v, ok)
	}
	if st["soundToggleEnabled"] != true {
		t.Errorf("soundToggleEnabled = %v", st["soundToggleEnabled"])
	}
}

func TestState_NotMounted(t *testing.T) {
	h := newHarness(t, false)
	rec := h.do(t, http.MethodGet, "/api/state", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decode(t, rec)
	e := body["error"].(map[string]any)
	if e["code"] != "not_ready" {
		t.Errorf("code = %v", e["code"])
	}
	if id, _ := e["requestId"].(string); id == "" {
		t.Error("missing requestId")
	}
}

func TestPatchMode_ContinuousForcesSoundOff(t *testing.T) {
	h := newHarness(t, true)
	h.widget.SetSoundEnabled(true)

	rec := h.do(t, http.MethodPatch, "/api/mode", `{"continuous": true, "soundEnabled": true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	st := decode(t, rec)
	if st["continuous"] != true || st["soundEnabled"] != false || st["soundToggleEnabled"] != false {
		t.Errorf("state = %v", st)
	}
	if st["modeLabel"] != "AUTOMATIC" {
		t.Errorf("modeLabel = %v", st["modeLabel"])
	}
	if f := h.widget.Flags(); !f.Continuous || f.SoundEnabled {
		t.Errorf("widget flags = %+v", f)
	}
}

func TestPatchMode_Partial(t *testing.T) {
	h := newHarness(t, true)

	rec := h.do(t, http.MethodPatch, "/api/mode", `{"theme": "light"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	st := decode(t, rec)
	if st["theme"] != "light" || st["continuous"] != false {
		t.Errorf("state = %v", st)
	}

	rec = h.do(t, http.MethodPatch, "/api/mode", `{"soundEnabled": true}`)
	if st := decode(t, rec); st["soundEnabled"] != true || st["theme"] != "light" {
		t.Errorf("state = %v", st)
	}
}

func TestPatchMode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		code string
	}{
		{"null continuous", `{"continuous": null}`, "invalid_field"},
		{"null theme", `{"theme": null}`, "invalid_field"},
		{"unknown theme", `{"theme": "sepia"}`, "invalid_field"},
		{"unknown field", `{"volume": 3}`, "invalid_body"},
		{"not json", `nope`, "invalid_body"},
		{"wrong type", `{"continuous": "yes"}`, "invalid_body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, true)
			rec := h.do(t, http.MethodPatch, "/api/mode", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d", rec.Code)
			}
			e := decode(t, rec)["error"].(map[string]any)
			if e["code"] != tt.code {
				t.Errorf("code = %v, want %s", e["code"], tt.code)
			}
			if f := h.widget.Flags(); f.Continuous || f.SoundEnabled {
				t.Errorf("flags changed: %+v", f)
			}
		})
	}
}

func TestState_LastTick(t *testing.T) {
	h := newHarness(t, true)
	h.widget.SetSoundEnabled(true)
	h.clock.Advance(time.Second)

	if h.sink.Count() != 1 {
		t.Fatalf("ticks = %d, want 1", h.sink.Count())
	}
	st := decode(t, h.do(t, http.MethodGet, "/api/state", ""))
	got, _ := st["lastTick"].(string)
	want := h.clock.Now().Format(time.RFC3339Nano)
	if got != want {
		t.Errorf("lastTick = %q, want %q", got, want)
	}
}

func TestFaceSVG(t *testing.T) {
	h := newHarness(t, true)
	rec := h.do(t, http.MethodGet, "/face.svg?size=128", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `width="128" height="128"`) {
		t.Errorf("size not applied: %.120s", body)
	}
	if !strings.Contains(body, ">QUARTZ</tspan>") {
		t.Error("mode label missing")
	}
}

func TestFacePNG(t *testing.T) {
	h := newHarness(t, true)
	rec := h.do(t, http.MethodGet, "/face.png?size=48", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 48 || b.Dy() != 48 {
		t.Errorf("bounds = %v", b)
	}
}

func TestFace_BadSize(t *testing.T) {
	h := newHarness(t, true)
	for _, target := range []string{"/face.png?size=x", "/face.svg?size=2", "/face.png?size=100000"} {
		rec := h.do(t, http.MethodGet, target, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d", target, rec.Code)
		}
	}
}

func TestTickWAV(t *testing.T) {
	h := newHarness(t, false)
	rec := h.do(t, http.MethodGet, "/tick.wav", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	b := rec.Body.Bytes()
	if len(b) != 44+2*4410 {
		t.Errorf("len = %d, want %d", len(b), 44+2*4410)
	}
	if !bytes.HasPrefix(b, []byte("RIFF")) || string(b[8:12]) != "WAVE" {
		t.Errorf("bad header %q", b[:12])
	}
	if ct := rec.Header().Get("Content-Type"); ct != "audio/wav" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store without a theme", cc)
	}
}

func TestIndex(t *testing.T) {
	h := newHarness(t, false)
	rec := h.do(t, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `new EventSource("/api/stream")`) {
		t.Errorf("index = %d", rec.Code)
	}
}

func TestStream(t *testing.T) {
	h := newHarness(t, true)
	ts := httptest.NewServer(h.server.Handler())
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/stream", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q", ct)
	}
	if _, err := uuid.Parse(resp.Header.Get("X-Stream-Id")); err != nil {
		t.Errorf("X-Stream-Id: %v", err)
	}

	events := make(chan map[string]any, 4)
	go func() {
		sc := bufio.NewScanner(resp.Body)
		for sc.Scan() {
			if data, ok := strings.CutPrefix(sc.Text(), "data: "); ok {
				var st map[string]any
				if json.Unmarshal([]byte(data), &st) == nil {
					events <- st
				}
			}
		}
		close(events)
	}()

	next := func() map[string]any {
		select {
		case st, ok := <-events:
			if !ok {
				t.Fatal("stream closed")
			}
			return st
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for a frame")
		}
		return nil
	}

	if st := next(); st["modeLabel"] != "QUARTZ" {
		t.Errorf("first frame = %v", st)
	}
	if n := h.server.Streams(); n != 1 {
		t.Errorf("Streams() = %d, want 1", n)
	}

	h.widget.SetTheme(h.widget.Theme().Toggle())
	if st := next(); st["theme"] != "light" {
		t.Errorf("frame after theme change = %v", st)
	}
}

func peakSample(t *testing.T, wav []byte) int {
	t.Helper()
	if len(wav) <= 44 {
		t.Fatalf("wav too short: %d bytes", len(wav))
	}
	peak := 0
	for i := 44; i+1 < len(wav); i += 2 {
		v := int(int16(binary.LittleEndian.Uint16(wav[i:])))
		if v < 0 {
			v = -v
		}
		peak = max(peak, v)
	}
	return peak
}

func TestTickWAV_ThemeInURL(t *testing.T) {
	h := newHarness(t, false)

	dark := h.do(t, http.MethodGet, "/tick.wav?theme=dark", "")
	light := h.do(t, http.MethodGet, "/tick.wav?theme=light", "")
	for _, rec := range []*httptest.ResponseRecorder{dark, light} {
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if cc := rec.Header().Get("Cache-Control"); !strings.HasPrefix(cc, "public") {
			t.Errorf("Cache-Control = %q, want cacheable for a pinned theme", cc)
		}
	}

	// Same noise, peak 0.25 against 0.15.
	d, l := peakSample(t, dark.Body.Bytes()), peakSample(t, light.Body.Bytes())
	if l == 0 || l >= d {
		t.Errorf("light peak %d should be quieter than dark peak %d", l, d)
	}
	if ratio := float64(l) / float64(d); ratio < 0.55 || ratio > 0.65 {
		t.Errorf("light/dark = %.3f, want about 0.6", ratio)
	}

	rec := h.do(t, http.MethodGet, "/tick.wav?theme=sepia", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown theme status = %d", rec.Code)
	}
	if e := decode(t, rec)["error"].(map[string]any); e["code"] != "invalid_theme" {
		t.Errorf("code = %v, want invalid_theme", e["code"])
	}
}

func TestState_TickURLFollowsTheme(t *testing.T) {
	h := newHarness(t, true)

	st := decode(t, h.do(t, http.MethodGet, "/api/state", ""))
	if st["tickUrl"] != "/tick.wav?theme=dark" {
		t.Errorf("tickUrl = %v", st["tickUrl"])
	}

	st = decode(t, h.do(t, http.MethodPatch, "/api/mode", `{"theme": "light"}`))
	if st["tickUrl"] != "/tick.wav?theme=light" {
		t.Errorf("tickUrl after theme change = %v", st["tickUrl"])
	}

	page := h.do(t, http.MethodGet, "/", "").Body.String()
	if strings.Contains(page, `new Audio("/tick.wav")`) {
		t.Error("page still loads the tick from a fixed URL")
	}
	if !strings.Contains(page, "new Audio(tickUrl)") {
		t.Error("page does not reload the tick from the state's tickUrl")
	}
}
