// Package face draws the analog clock face.
//
// [Build] records a [Scene] into a [DisplayList] in a 200x200 view box.
// The list can be replayed onto an SVG writer ([WriteSVG]) or rasterized
// with golang.org/x/image/vector ([Rasterize], [EncodePNG]).
package face

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-drift/clockface/pkg/dial"
	"github.com/go-drift/clockface/pkg/graphics"
	"github.com/go-drift/clockface/pkg/theme"
)

// ViewBox is the side of the square coordinate space the face is drawn in.
const ViewBox = 200.0

var center = graphics.Offset{X: ViewBox / 2, Y: ViewBox / 2}

// Scene is everything needed to draw one frame.
type Scene struct {
	Angles    dial.Angles
	Palette   theme.Palette
	DateLabel string
	ModeLabel string
}

// NewScene assembles a scene for the given brightness.
func NewScene(angles dial.Angles, b theme.Brightness, dateLabel, modeLabel string) Scene {
	return Scene{
		Angles:    angles,
		Palette:   b.Palette(),
		DateLabel: dateLabel,
		ModeLabel: modeLabel,
	}
}

// Build records the face for s.
func Build(s Scene) *DisplayList {
	var r PictureRecorder
	p := s.Palette

	drawBody(&r, p)
	drawTicks(&r, p)
	drawNumerals(&r, p)
	drawDate(&r, p, s.DateLabel)
	r.DrawText(
		[]TextSpan{{Text: s.ModeLabel, Color: p.ModeLabel}},
		graphics.Offset{X: center.X, Y: 140},
		TextStyle{Size: 5, LetterSpacing: 1.5},
	)

	// Shadow pass, then the hands themselves.
	shadow := graphics.Offset{X: 1, Y: 1}
	drawHands(&r, s.Angles, p, shadow, &p.HandShadow)
	drawHands(&r, s.Angles, p, graphics.Offset{}, nil)

	r.DrawCircle(center, 3.5, Paint{Color: p.CenterCap})
	r.DrawCircle(center, 1.5, Paint{Color: p.CenterCapInner})
	return r.EndRecording()
}

func drawBody(r *PictureRecorder, p theme.Palette) {
	faceFill := &Gradient{
		Kind:   GradientRadial,
		Start:  center,
		Radius: 98,
		Stops: []GradientStop{
			{Offset: 0.8, Color: p.FaceCenter},
			{Offset: 1, Color: p.FaceEdge},
		},
	}
	rim := &Gradient{
		Kind:  GradientLinear,
		Start: graphics.Offset{X: 0, Y: 0},
		End:   graphics.Offset{X: ViewBox, Y: ViewBox},
		Stops: []GradientStop{
			{Offset: 0, Color: p.RimFrom},
			{Offset: 1, Color: p.RimTo},
		},
	}
	r.DrawCircle(center, 98, Paint{Gradient: faceFill})
	r.DrawCircle(center, 98, Paint{Gradient: rim, Style: PaintStroke, StrokeWidth: 4})
	r.DrawCircle(center, 92, Paint{Color: p.InnerRing, Style: PaintStroke, StrokeWidth: 1})
}

func drawTicks(r *PictureRecorder, p theme.Palette) {
	for i := 0; i < 60; i++ {
		angle := float64(i * 6)
		from, to, paint := graphics.Offset{X: 100, Y: 18}, graphics.Offset{X: 100, Y: 22}, Paint{Color: p.TickMinor, Style: PaintStroke, StrokeWidth: 1}
		if i%5 == 0 {
			from, to, paint = graphics.Offset{X: 100, Y: 15}, graphics.Offset{X: 100, Y: 25}, Paint{Color: p.TickMajor, Style: PaintStroke, StrokeWidth: 2}
		}
		r.DrawLine(from.RotateAround(center, angle), to.RotateAround(center, angle), paint)
	}
}

func drawNumerals(r *PictureRecorder, p theme.Palette) {
	const radius = 65
	for n := 1; n <= 12; n++ {
		rad := float64(n*30-90) * math.Pi / 180
		at := graphics.Offset{
			X: center.X + radius*math.Cos(rad),
			Y: center.Y + radius*math.Sin(rad) + 5,
		}
		r.DrawText([]TextSpan{{Text: strconv.Itoa(n), Color: p.Numeral}}, at, TextStyle{Size: 14})
	}
}

func drawDate(r *PictureRecorder, p theme.Palette, label string) {
	origin := graphics.Offset{X: 134, Y: 100}
	r.DrawRRect(graphics.RectFromCenter(origin, 42, 18), 2, Paint{Color: p.DateBackground})
	r.DrawRRect(graphics.RectFromCenter(origin, 42, 18), 2, Paint{Color: p.DateBorder, Style: PaintStroke, StrokeWidth: 1})

	month, day, _ := strings.Cut(label, " ")
	r.DrawText(
		[]TextSpan{
			{Text: month, Color: p.DateMonth},
			{Text: day, Color: p.DateDay, Gap: 3},
		},
		origin.Add(graphics.Offset{Y: 4}),
		TextStyle{Size: 9, Bold: true},
	)
}

// drawHands draws the three hands displaced by offset. A non-nil override
// paints every hand in that color, for the drop shadow.
func drawHands(r *PictureRecorder, a dial.Angles, p theme.Palette, offset graphics.Offset, override *graphics.Color) {
	color := func(c graphics.Color) graphics.Color {
		if override != nil {
			return *override
		}
		return c
	}
	hand := func(tipY, tailY, angle, width float64, c graphics.Color) {
		from := graphics.Offset{X: 100, Y: tailY}.RotateAround(center, angle).Add(offset)
		to := graphics.Offset{X: 100, Y: tipY}.RotateAround(center, angle).Add(offset)
		r.DrawLine(from, to, Paint{Color: color(c), Style: PaintStroke, StrokeWidth: width})
	}

	hand(55, 100, a.Hour, 4, p.HandHour)
	hand(35, 100, a.Minute, 3, p.HandMinute)
	hand(30, 120, a.Second, 1.5, p.HandSecond)

	weight := graphics.Offset{X: 100, Y: 120}.RotateAround(center, a.Second).Add(offset)
	r.DrawCircle(weight, 2, Paint{Color: color(p.HandSecond)})
}
