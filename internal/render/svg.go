package render

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/litescript/ls-wheel/internal/astro"
)

// SVGOption configures RenderSVG.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width float64
	title string
}

// WithWidth sets the pixel width and height of the document. Without it the
// document has only a viewBox and scales to its container.
func WithWidth(px float64) SVGOption { return func(r *svgRenderer) { r.width = px } }

// WithTitle adds a <title> element.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// RenderSVG writes the scene as a standalone SVG document.
func RenderSVG(s Scene, opts ...SVGOption) []byte {
	var r svgRenderer
	for _, opt := range opts {
		opt(&r)
	}

	e := s.Extent
	var buf bytes.Buffer
	if r.width > 0 {
		fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
			-e, -e, 2*e, 2*e, r.width, r.width)
	} else {
		fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f">`+"\n",
			-e, -e, 2*e, 2*e)
	}
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(r.title))
	}

	fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
		-e, -e, 2*e, 2*e, escapeXML(s.Background))

	for _, d := range s.Discs {
		fmt.Fprintf(&buf, `  <circle r="%.2f" fill="%s"/>`+"\n", d.Radius, escapeXML(d.Fill))
	}
	for _, sp := range s.Spokes {
		writeSpoke(&buf, sp, "spoke")
	}
	for _, rg := range s.Rings {
		fmt.Fprintf(&buf, `  <circle r="%.2f" fill="none" stroke="%s" stroke-width="%.2g"/>`+"\n",
			rg.Radius, escapeXML(rg.Stroke), rg.Width)
	}
	for _, t := range s.Ticks {
		writeSpoke(&buf, t, "tick")
	}

	fmt.Fprintf(&buf, `  <g font-family="%s" text-anchor="middle" dominant-baseline="central">`+"\n",
		escapeXML(s.FontFamily))
	for _, l := range s.Labels {
		x, y := l.XY()
		weight := ""
		if l.Bold {
			weight = ` font-weight="bold"`
		}
		fmt.Fprintf(&buf, `    <text x="%.2f" y="%.2f" font-size="%.0f" fill="%s"%s data-owner="%s">%s</text>`+"\n",
			x, y, l.Size, escapeXML(l.Color), weight, escapeXML(l.Owner), escapeXML(l.Text))
	}
	buf.WriteString("  </g>\n")

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writeSpoke(buf *bytes.Buffer, sp Spoke, class string) {
	x1, y1 := astro.PolarToXY(sp.Angle, sp.Inner)
	x2, y2 := astro.PolarToXY(sp.Angle, sp.Outer)
	fmt.Fprintf(buf, `  <line class="%s" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2g"/>`+"\n",
		class, x1, y1, x2, y2, escapeXML(sp.Stroke), sp.Width)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
