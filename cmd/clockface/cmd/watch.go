package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-drift/clockface/pkg/clock"
	"github.com/go-drift/clockface/pkg/tick"
)

func init() {
	RegisterCommand(&Command{
		Name:  "watch",
		Short: "Run the clock in the terminal",
		Long: `Run the clock in the terminal.

Prints the time and the hand angles on one line, updated on every sample,
and plays the tick on this machine's audio output when sound is on. Stop
with Ctrl+C.

Flags:
  --theme NAME       dark or light (the dark face ticks louder)
  --smooth, --step   Second hand sweeps or steps
  --sound, --mute    Tick sound on or off`,
		Usage: "clockface watch [--theme NAME] [--smooth|--step] [--sound|--mute]",
		Run:   runWatch,
	})
}

func runWatch(args []string) error {
	var opts faceOptions
	for i := 0; i < len(args); {
		n, err := parseFaceArg(args, i, &opts)
		if err != nil {
			return err
		}
		if n == 0 {
			return errUnknownFlag("watch", args[i])
		}
		i += n
	}
	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}

	var sink tick.Sink
	if cfg.AudioEnabled {
		sink = tick.NewEngine(tick.HostFactory(cfg.SampleRate))
	}
	widget := newWidget(cfg, sink)

	frames := make(chan clock.Frame, 1)
	remove := widget.AddListener(func(f clock.Frame) {
		// Keep only the newest frame.
		select {
		case <-frames:
		default:
		}
		select {
		case frames <- f:
		default:
		}
	})
	defer remove()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	widget.Mount()
	defer widget.Unmount()

	for {
		select {
		case <-ctx.Done():
			fmt.Println()
			return nil
		case f := <-frames:
			fmt.Fprint(os.Stdout, "\r"+formatFrame(f))
		}
	}
}

func formatFrame(f clock.Frame) string {
	r := f.Reading
	mark := "    "
	if f.Ticked {
		mark = "tick"
	}
	sound := "off"
	if f.Flags.SoundEnabled {
		sound = "on "
	}
	return fmt.Sprintf("%02d:%02d:%02d.%03d  %s  hour %6.2f°  min %6.2f°  sec %6.2f°  %-9s sound %s %s",
		r.Hours, r.Minutes, r.Seconds, r.Milliseconds, f.DateLabel,
		f.Angles.Hour, f.Angles.Minute, f.Angles.Second, f.ModeLabel, sound, mark)
}
