package face

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"math"
	"strconv"

	"github.com/go-drift/clockface/pkg/graphics"
)

// WriteSVG writes dl as a standalone SVG document size pixels square.
func WriteSVG(w io.Writer, dl *DisplayList, size int) error {
	c := &svgCanvas{}
	fmt.Fprintf(&c.buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%d" height="%d">`,
		num(ViewBox), num(ViewBox), size, size)
	c.buf.WriteByte('\n')
	dl.Paint(c)
	c.buf.WriteString("</svg>\n")
	_, err := w.Write(c.buf.Bytes())
	return err
}

type svgCanvas struct {
	buf       bytes.Buffer
	gradients int
}

// paintAttrs returns the fill/stroke attributes for p, emitting a gradient
// definition first when needed.
func (c *svgCanvas) paintAttrs(p Paint) string {
	value := p.Color.CSS()
	if p.Gradient != nil {
		value = "url(#" + c.defineGradient(p.Gradient) + ")"
	}
	if p.Style == PaintStroke {
		return fmt.Sprintf(`fill="none" stroke="%s" stroke-width="%s"`, value, num(p.StrokeWidth))
	}
	return fmt.Sprintf(`fill="%s"`, value)
}

func (c *svgCanvas) defineGradient(g *Gradient) string {
	id := "g" + strconv.Itoa(c.gradients)
	c.gradients++

	c.buf.WriteString("<defs>")
	switch g.Kind {
	case GradientRadial:
		fmt.Fprintf(&c.buf, `<radialGradient id="%s" gradientUnits="userSpaceOnUse" cx="%s" cy="%s" r="%s">`,
			id, num(g.Start.X), num(g.Start.Y), num(g.Radius))
	default:
		fmt.Fprintf(&c.buf, `<linearGradient id="%s" gradientUnits="userSpaceOnUse" x1="%s" y1="%s" x2="%s" y2="%s">`,
			id, num(g.Start.X), num(g.Start.Y), num(g.End.X), num(g.End.Y))
	}
	for _, s := range g.Stops {
		fmt.Fprintf(&c.buf, `<stop offset="%s" stop-color="%s"/>`, num(s.Offset), s.Color.CSS())
	}
	if g.Kind == GradientRadial {
		c.buf.WriteString("</radialGradient>")
	} else {
		c.buf.WriteString("</linearGradient>")
	}
	c.buf.WriteString("</defs>\n")
	return id
}

func (c *svgCanvas) DrawCircle(center graphics.Offset, radius float64, paint Paint) {
	attrs := c.paintAttrs(paint)
	fmt.Fprintf(&c.buf, `<circle cx="%s" cy="%s" r="%s" %s/>`+"\n", num(center.X), num(center.Y), num(radius), attrs)
}

func (c *svgCanvas) DrawLine(from, to graphics.Offset, paint Paint) {
	attrs := c.paintAttrs(Paint{Color: paint.Color, Gradient: paint.Gradient, Style: PaintStroke, StrokeWidth: paint.StrokeWidth})
	fmt.Fprintf(&c.buf, `<line x1="%s" y1="%s" x2="%s" y2="%s" %s stroke-linecap="round"/>`+"\n",
		num(from.X), num(from.Y), num(to.X), num(to.Y), attrs)
}

func (c *svgCanvas) DrawRRect(rect graphics.Rect, radius float64, paint Paint) {
	attrs := c.paintAttrs(paint)
	fmt.Fprintf(&c.buf, `<rect x="%s" y="%s" width="%s" height="%s" rx="%s" %s/>`+"\n",
		num(rect.Left), num(rect.Top), num(rect.Width()), num(rect.Height()), num(radius), attrs)
}

func (c *svgCanvas) DrawText(spans []TextSpan, at graphics.Offset, style TextStyle) {
	weight := "500"
	if style.Bold {
		weight = "bold"
	}
	fmt.Fprintf(&c.buf, `<text x="%s" y="%s" text-anchor="middle" font-family="sans-serif" font-size="%s" font-weight="%s"`,
		num(at.X), num(at.Y), num(style.Size), weight)
	if style.LetterSpacing != 0 {
		fmt.Fprintf(&c.buf, ` letter-spacing="%s"`, num(style.LetterSpacing))
	}
	c.buf.WriteByte('>')
	for _, s := range spans {
		c.buf.WriteString("<tspan")
		if s.Gap != 0 {
			fmt.Fprintf(&c.buf, ` dx="%s"`, num(s.Gap))
		}
		fmt.Fprintf(&c.buf, ` fill="%s">%s</tspan>`, s.Color.CSS(), html.EscapeString(s.Text))
	}
	c.buf.WriteString("</text>\n")
}

// num formats v with at most three decimals.
func num(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0 // normalize -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
