package face

import "github.com/go-drift/clockface/pkg/graphics"

// PaintStyle selects fill or stroke.
type PaintStyle int

const (
	// PaintFill fills the shape's interior.
	PaintFill PaintStyle = iota
	// PaintStroke outlines the shape with StrokeWidth.
	PaintStroke
)

// GradientKind selects the gradient geometry.
type GradientKind int

const (
	GradientLinear GradientKind = iota
	GradientRadial
)

// GradientStop is one color stop; Offset is in [0, 1].
type GradientStop struct {
	Offset float64
	Color  graphics.Color
}

// Gradient is a linear or radial color ramp in view-box coordinates.
// Linear gradients run from Start to End; radial gradients spread from
// Start out to Radius.
type Gradient struct {
	Kind   GradientKind
	Start  graphics.Offset
	End    graphics.Offset
	Radius float64
	Stops  []GradientStop
}

// At returns the gradient color at parameter t, clamped to [0, 1].
func (g *Gradient) At(t float64) graphics.Color {
	if len(g.Stops) == 0 {
		return graphics.ColorTransparent
	}
	if t <= g.Stops[0].Offset {
		return g.Stops[0].Color
	}
	for i := 1; i < len(g.Stops); i++ {
		prev, next := g.Stops[i-1], g.Stops[i]
		if t <= next.Offset {
			span := next.Offset - prev.Offset
			if span <= 0 {
				return next.Color
			}
			return prev.Color.Lerp(next.Color, (t-prev.Offset)/span)
		}
	}
	return g.Stops[len(g.Stops)-1].Color
}

// Paint describes how a shape is drawn. A non-nil Gradient overrides Color.
type Paint struct {
	Color       graphics.Color
	Gradient    *Gradient
	Style       PaintStyle
	StrokeWidth float64
}

// TextSpan is a run of text in one color. Gap is extra space before the run.
type TextSpan struct {
	Text  string
	Color graphics.Color
	Gap   float64
}

// TextStyle applies to a whole line of spans.
type TextStyle struct {
	Size          float64
	Bold          bool
	LetterSpacing float64
}

// Canvas receives drawing commands in view-box coordinates.
type Canvas interface {
	DrawCircle(center graphics.Offset, radius float64, paint Paint)
	// DrawLine strokes a segment with round caps.
	DrawLine(from, to graphics.Offset, paint Paint)
	DrawRRect(rect graphics.Rect, radius float64, paint Paint)
	// DrawText draws spans as one line centered horizontally on at, with
	// at.Y as the baseline.
	DrawText(spans []TextSpan, at graphics.Offset, style TextStyle)
}

// DisplayList is an immutable list of drawing operations.
// It can be replayed onto any Canvas implementation.
type DisplayList struct {
	ops []displayOp
}

// Paint replays the recorded operations onto the provided canvas.
func (d *DisplayList) Paint(canvas Canvas) {
	for _, op := range d.ops {
		op.execute(canvas)
	}
}

// Len returns the number of recorded operations.
func (d *DisplayList) Len() int {
	return len(d.ops)
}

// PictureRecorder records drawing commands into a display list.
type PictureRecorder struct {
	ops []displayOp
}

// EndRecording returns the recorded operations and resets the recorder.
func (r *PictureRecorder) EndRecording() *DisplayList {
	ops := make([]displayOp, len(r.ops))
	copy(ops, r.ops)
	r.ops = r.ops[:0]
	return &DisplayList{ops: ops}
}

type displayOp interface {
	execute(canvas Canvas)
}

type opCircle struct {
	center graphics.Offset
	radius float64
	paint  Paint
}

func (o opCircle) execute(c Canvas) { c.DrawCircle(o.center, o.radius, o.paint) }

type opLine struct {
	from, to graphics.Offset
	paint    Paint
}

func (o opLine) execute(c Canvas) { c.DrawLine(o.from, o.to, o.paint) }

type opRRect struct {
	rect   graphics.Rect
	radius float64
	paint  Paint
}

func (o opRRect) execute(c Canvas) { c.DrawRRect(o.rect, o.radius, o.paint) }

type opText struct {
	spans []TextSpan
	at    graphics.Offset
	style TextStyle
}

func (o opText) execute(c Canvas) { c.DrawText(o.spans, o.at, o.style) }

func (r *PictureRecorder) DrawCircle(center graphics.Offset, radius float64, paint Paint) {
	r.ops = append(r.ops, opCircle{center: center, radius: radius, paint: paint})
}

func (r *PictureRecorder) DrawLine(from, to graphics.Offset, paint Paint) {
	r.ops = append(r.ops, opLine{from: from, to: to, paint: paint})
}

func (r *PictureRecorder) DrawRRect(rect graphics.Rect, radius float64, paint Paint) {
	r.ops = append(r.ops, opRRect{rect: rect, radius: radius, paint: paint})
}

func (r *PictureRecorder) DrawText(spans []TextSpan, at graphics.Offset, style TextStyle) {
	cp := make([]TextSpan, len(spans))
	copy(cp, spans)
	r.ops = append(r.ops, opText{spans: cp, at: at, style: style})
}
