package cmd

import (
	"context"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-drift/clockface/cmd/clockface/internal/config"
	"github.com/go-drift/clockface/cmd/clockface/internal/server"
	"github.com/go-drift/clockface/pkg/clock"
	"github.com/go-drift/clockface/pkg/dial"
	"github.com/go-drift/clockface/pkg/tick"
)

func init() {
	RegisterCommand(&Command{
		Name:  "serve",
		Short: "Serve the live clock face over HTTP",
		Long: `Serve the live clock face over HTTP.

Routes:
  GET   /             Page showing the face, with mode, sound and theme buttons
  GET   /face.svg     Current face as SVG (?size=N)
  GET   /face.png     Current face as PNG (?size=N)
  GET   /tick.wav     One tick sound for the current theme
  GET   /api/state    Current angles, flags and labels as JSON
  PATCH /api/mode     Update continuous, soundEnabled and theme
  GET   /api/stream   Frames as server-sent events
  GET   /healthz      Liveness check

Flags:
  --addr ADDR        Listen address (default :8080)
  --theme NAME       dark or light
  --smooth, --step   Second hand sweeps or steps
  --sound, --mute    Tick sound on or off
  --size N           Default face size in pixels
  --host-audio       Also play ticks on this machine's audio output`,
		Usage: "clockface serve [--addr ADDR] [--theme NAME] [--smooth|--step] [--sound|--mute] [--size N] [--host-audio]",
		Run:   runServe,
	})
}

type serveOptions struct {
	face      faceOptions
	addr      string
	hostAudio bool
}

func parseServeArgs(args []string) (serveOptions, error) {
	var opts serveOptions
	for i := 0; i < len(args); {
		n, err := parseFaceArg(args, i, &opts.face)
		if err != nil {
			return opts, err
		}
		if n > 0 {
			i += n
			continue
		}
		switch args[i] {
		case "--addr":
			if i+1 >= len(args) {
				return opts, errMissingValue(args[i])
			}
			opts.addr = args[i+1]
			i += 2
		case "--host-audio":
			opts.hostAudio = true
			i++
		default:
			return opts, errUnknownFlag("serve", args[i])
		}
	}
	return opts, nil
}

func runServe(args []string) error {
	opts, err := parseServeArgs(args)
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(opts.face)
	if err != nil {
		return err
	}
	if opts.addr != "" {
		cfg.Addr = opts.addr
	}

	var sink tick.Sink
	if opts.hostAudio && cfg.AudioEnabled {
		sink = tick.NewEngine(tick.HostFactory(cfg.SampleRate))
	}
	widget := newWidget(cfg, sink)
	widget.Mount()
	defer widget.Unmount()

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: server.New(widget, server.Options{
			Size:       cfg.Size,
			SampleRate: cfg.SampleRate,
		}).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		// Request contexts end with ctx so open streams close on shutdown.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("clockface listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Printf("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
		return srv.Close()
	}
	return nil
}

func newWidget(cfg *config.Resolved, sink tick.Sink) *clock.Widget {
	return clock.New(clock.Options{
		Theme: cfg.Theme,
		Flags: dial.Flags{
			Continuous:   cfg.Smooth,
			SoundEnabled: cfg.Sound,
		},
		FrameRate: cfg.FrameRate,
		Sink:      sink,
	})
}
