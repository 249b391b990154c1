package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-drift/clockface/pkg/dial"
	"github.com/go-drift/clockface/pkg/face"
	"github.com/go-drift/clockface/pkg/timesource"
)

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Render one clock face to SVG or PNG",
		Long: `Render one clock face to SVG or PNG.

The face shows the current local time unless --at is given. The output
format follows the -o file extension unless --format is given.

Flags:
  --at TIME          Instant to draw, RFC 3339 (e.g. 2026-10-19T10:08:37.250+02:00)
  --format FORMAT    svg or png (default svg)
  -o, --output FILE  Write to FILE instead of stdout
  --theme NAME       dark or light
  --smooth, --step   Draw the sweep or the step second hand
  --size N           Size in pixels`,
		Usage: "clockface render [--at TIME] [--format svg|png] [-o FILE] [--theme NAME] [--smooth|--step] [--size N]",
		Run:   runRender,
	})
}

type renderOptions struct {
	face   faceOptions
	at     time.Time
	format string
	output string
}

func parseRenderArgs(args []string) (renderOptions, error) {
	var opts renderOptions
	for i := 0; i < len(args); {
		n, err := parseFaceArg(args, i, &opts.face)
		if err != nil {
			return opts, err
		}
		if n > 0 {
			i += n
			continue
		}
		flag := args[i]
		switch flag {
		case "--at", "--format", "-o", "--output":
		default:
			return opts, errUnknownFlag("render", flag)
		}
		if i+1 >= len(args) {
			return opts, errMissingValue(flag)
		}
		v := args[i+1]
		i += 2
		switch flag {
		case "--at":
			t, err := time.Parse(time.RFC3339Nano, v)
			if err != nil {
				return opts, fmt.Errorf("--at: %w", err)
			}
			opts.at = t
		case "--format":
			opts.format = strings.ToLower(v)
		default:
			opts.output = v
		}
	}

	if opts.format == "" {
		opts.format = "svg"
		if strings.EqualFold(filepath.Ext(opts.output), ".png") {
			opts.format = "png"
		}
	}
	if opts.format != "svg" && opts.format != "png" {
		return opts, fmt.Errorf("unknown format %q (want svg or png)", opts.format)
	}
	return opts, nil
}

func runRender(args []string) error {
	opts, err := parseRenderArgs(args)
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(opts.face)
	if err != nil {
		return err
	}

	at := opts.at
	if at.IsZero() {
		at = time.Now()
	}
	flags := dial.Flags{Continuous: cfg.Smooth}
	reading := timesource.NewReading(at)
	scene := face.NewScene(dial.Derive(reading, flags), cfg.Theme, reading.DateLabel(), flags.ModeLabel())
	dl := face.Build(scene)

	var out io.Writer = os.Stdout
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer f.Close()
		out = f
	}
	bw := bufio.NewWriter(out)

	switch opts.format {
	case "png":
		err = face.EncodePNG(bw, dl, cfg.Size)
	default:
		err = face.WriteSVG(bw, dl, cfg.Size)
	}
	if err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if opts.output != "" {
		fmt.Fprintf(os.Stderr, "Wrote %s (%s, %dpx)\n", opts.output, opts.format, cfg.Size)
	}
	return nil
}
