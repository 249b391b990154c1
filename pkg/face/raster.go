package face

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/go-drift/clockface/pkg/errors"
	"github.com/go-drift/clockface/pkg/graphics"
)

// circleSegments is the number of edges used to approximate a circle.
const circleSegments = 96

var (
	fontsOnce sync.Once
	fontsErr  error
	regular   *opentype.Font
	bold      *opentype.Font
)

func loadFonts() error {
	fontsOnce.Do(func() {
		var err error
		if regular, err = opentype.Parse(goregular.TTF); err != nil {
			fontsErr = fmt.Errorf("parse regular font: %w", err)
			return
		}
		if bold, err = opentype.Parse(gobold.TTF); err != nil {
			fontsErr = fmt.Errorf("parse bold font: %w", err)
		}
	})
	return fontsErr
}

// Rasterize paints dl into a new size x size image.
func Rasterize(dl *DisplayList, size int) *image.RGBA {
	if size <= 0 {
		size = int(ViewBox)
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	c := &rasterCanvas{
		dst:   dst,
		scale: float64(size) / ViewBox,
		faces: make(map[faceKey]font.Face),
	}
	defer c.close()
	dl.Paint(c)
	return dst
}

// EncodePNG rasterizes dl and writes it as PNG.
func EncodePNG(w io.Writer, dl *DisplayList, size int) error {
	if err := png.Encode(w, Rasterize(dl, size)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

type faceKey struct {
	size float64
	bold bool
}

type rasterCanvas struct {
	dst   *image.RGBA
	scale float64
	// Faces are not safe for concurrent use, so each canvas owns its own.
	faces map[faceKey]font.Face
}

func (c *rasterCanvas) close() {
	for _, f := range c.faces {
		f.Close()
	}
}

func (c *rasterCanvas) px(o graphics.Offset) graphics.Offset {
	return o.Scale(c.scale)
}

// fill rasterizes closed contours and composites them with paint.
// Contours with the same orientation union; a reversed contour cuts a hole.
func (c *rasterCanvas) fill(contours [][]graphics.Offset, paint Paint) {
	b := c.dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over
	for _, pts := range contours {
		if len(pts) < 3 {
			continue
		}
		z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
		for _, p := range pts[1:] {
			z.LineTo(float32(p.X), float32(p.Y))
		}
		z.ClosePath()
	}
	z.Draw(c.dst, b, c.source(paint), image.Point{})
}

func (c *rasterCanvas) source(p Paint) image.Image {
	if p.Gradient != nil {
		return &gradientImage{g: p.Gradient, scale: c.scale}
	}
	return image.NewUniform(p.Color)
}

func (c *rasterCanvas) DrawCircle(ctr graphics.Offset, radius float64, paint Paint) {
	ctr = c.px(ctr)
	radius *= c.scale
	if paint.Style == PaintStroke {
		half := paint.StrokeWidth * c.scale / 2
		outer := circle(ctr, radius+half)
		inner := reverse(circle(ctr, math.Max(radius-half, 0)))
		c.fill([][]graphics.Offset{outer, inner}, paint)
		return
	}
	c.fill([][]graphics.Offset{circle(ctr, radius)}, paint)
}

func (c *rasterCanvas) DrawLine(from, to graphics.Offset, paint Paint) {
	from, to = c.px(from), c.px(to)
	half := paint.StrokeWidth * c.scale / 2
	dx, dy := to.X-from.X, to.Y-from.Y
	length := math.Hypot(dx, dy)
	contours := [][]graphics.Offset{circle(from, half), circle(to, half)}
	if length > 0 {
		nx, ny := -dy/length*half, dx/length*half
		body := []graphics.Offset{
			{X: from.X + nx, Y: from.Y + ny},
			{X: to.X + nx, Y: to.Y + ny},
			{X: to.X - nx, Y: to.Y - ny},
			{X: from.X - nx, Y: from.Y - ny},
		}
		contours = append(contours, orient(body))
	}
	c.fill(contours, paint)
}

func (c *rasterCanvas) DrawRRect(rect graphics.Rect, radius float64, paint Paint) {
	s := c.scale
	r := graphics.Rect{Left: rect.Left * s, Top: rect.Top * s, Right: rect.Right * s, Bottom: rect.Bottom * s}
	radius *= s
	if paint.Style == PaintStroke {
		half := paint.StrokeWidth * s / 2
		outer := roundRect(graphics.Rect{Left: r.Left - half, Top: r.Top - half, Right: r.Right + half, Bottom: r.Bottom + half}, radius+half)
		inner := reverse(roundRect(graphics.Rect{Left: r.Left + half, Top: r.Top + half, Right: r.Right - half, Bottom: r.Bottom - half}, math.Max(radius-half, 0)))
		c.fill([][]graphics.Offset{outer, inner}, paint)
		return
	}
	c.fill([][]graphics.Offset{roundRect(r, radius)}, paint)
}

func (c *rasterCanvas) DrawText(spans []TextSpan, at graphics.Offset, style TextStyle) {
	face, err := c.face(style)
	if err != nil {
		errors.Report(errors.Wrap("face.DrawText", errors.KindRender, err))
		return
	}
	spacing := style.LetterSpacing * c.scale

	advance := func(s string) float64 {
		var w float64
		for _, r := range s {
			adv, _ := face.GlyphAdvance(r)
			w += fix(adv) + spacing
		}
		return w
	}
	var total float64
	for _, s := range spans {
		total += s.Gap*c.scale + advance(s.Text)
	}

	pos := c.px(at)
	x := pos.X - total/2
	for _, s := range spans {
		x += s.Gap * c.scale
		d := font.Drawer{Dst: c.dst, Src: image.NewUniform(s.Color), Face: face}
		for _, r := range s.Text {
			d.Dot = fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(pos.Y * 64)}
			d.DrawString(string(r))
			adv, _ := face.GlyphAdvance(r)
			x += fix(adv) + spacing
		}
	}
}

func (c *rasterCanvas) face(style TextStyle) (font.Face, error) {
	key := faceKey{size: style.Size * c.scale, bold: style.Bold}
	if f, ok := c.faces[key]; ok {
		return f, nil
	}
	if err := loadFonts(); err != nil {
		return nil, err
	}
	src := regular
	if style.Bold {
		src = bold
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    key.size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	c.faces[key] = f
	return f, nil
}

func fix(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// gradientImage is an unbounded image whose pixels follow a gradient given
// in view-box units.
type gradientImage struct {
	g     *Gradient
	scale float64
}

func (g *gradientImage) ColorModel() color.Model { return color.RGBA64Model }

func (g *gradientImage) Bounds() image.Rectangle {
	return image.Rectangle{Min: image.Point{X: -1e9, Y: -1e9}, Max: image.Point{X: 1e9, Y: 1e9}}
}

func (g *gradientImage) At(x, y int) color.Color {
	p := graphics.Offset{X: (float64(x) + 0.5) / g.scale, Y: (float64(y) + 0.5) / g.scale}
	var t float64
	switch g.g.Kind {
	case GradientRadial:
		if g.g.Radius > 0 {
			t = math.Hypot(p.X-g.g.Start.X, p.Y-g.g.Start.Y) / g.g.Radius
		}
	default:
		dx, dy := g.g.End.X-g.g.Start.X, g.g.End.Y-g.g.Start.Y
		if l2 := dx*dx + dy*dy; l2 > 0 {
			t = ((p.X-g.g.Start.X)*dx + (p.Y-g.g.Start.Y)*dy) / l2
		}
	}
	return g.g.At(t)
}

// circle returns a clockwise polygon approximating a circle.
func circle(c graphics.Offset, r float64) []graphics.Offset {
	pts := make([]graphics.Offset, circleSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / circleSegments
		pts[i] = graphics.Offset{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)}
	}
	return pts
}

// roundRect returns a clockwise polygon for a rectangle with rounded corners.
func roundRect(r graphics.Rect, radius float64) []graphics.Offset {
	radius = math.Min(radius, math.Min(r.Width(), r.Height())/2)
	const steps = 8
	corners := []struct {
		c     graphics.Offset
		start float64
	}{
		{graphics.Offset{X: r.Right - radius, Y: r.Top + radius}, -math.Pi / 2},
		{graphics.Offset{X: r.Right - radius, Y: r.Bottom - radius}, 0},
		{graphics.Offset{X: r.Left + radius, Y: r.Bottom - radius}, math.Pi / 2},
		{graphics.Offset{X: r.Left + radius, Y: r.Top + radius}, math.Pi},
	}
	pts := make([]graphics.Offset, 0, 4*(steps+1))
	for _, k := range corners {
		for i := 0; i <= steps; i++ {
			a := k.start + math.Pi/2*float64(i)/steps
			pts = append(pts, graphics.Offset{X: k.c.X + radius*math.Cos(a), Y: k.c.Y + radius*math.Sin(a)})
		}
	}
	return pts
}

// orient returns pts wound the same way as circle.
func orient(pts []graphics.Offset) []graphics.Offset {
	var area float64
	for i := range pts {
		j := (i + 1) % len(pts)
		area += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	if area < 0 {
		return reverse(pts)
	}
	return pts
}

func reverse(pts []graphics.Offset) []graphics.Offset {
	out := make([]graphics.Offset, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}
