package render

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-wheel/internal/astro"
)

// Terminal cells are roughly twice as tall as they are wide.
const cellAspect = 2.0

const (
	colorCanvasBg   = "236" // very dark background
	colorFocus      = "229" // bright gold
	glyphRing       = '·'
	glyphSpoke      = '∙'
	glyphTick       = '+'
	glyphFocusArrow = '◄'
)

// Draw priorities. A cell keeps the highest-priority rune written to it.
const (
	prioRing = iota + 1
	prioSpoke
	prioTick
	prioCusp
	prioHouse
	prioName
	prioGlyph
	prioFocusName
	prioFocusGlyph
)

// TermLabelMode controls which planet names are printed beside glyphs.
type TermLabelMode int

const (
	TermLabelNone    TermLabelMode = iota // No names
	TermLabelFocused                      // Only the focused planet
	TermLabelAll                          // Every planet
)

func (m TermLabelMode) String() string {
	switch m {
	case TermLabelNone:
		return "off"
	case TermLabelFocused:
		return "focus"
	case TermLabelAll:
		return "all"
	default:
		return "unknown"
	}
}

// TermOptions configures RenderTerminal.
type TermOptions struct {
	Focus  string // planet name to highlight
	Labels TermLabelMode
	Plain  bool // ASCII stand-ins instead of astrological glyphs
}

// Canvas is a grid of coloured runes.
type Canvas struct {
	width, height int
	runes         [][]rune
	colors        [][]lipgloss.Color
	prio          [][]int
}

// NewCanvas returns a blank canvas.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{width: width, height: height}
	c.runes = make([][]rune, height)
	c.colors = make([][]lipgloss.Color, height)
	c.prio = make([][]int, height)
	for y := 0; y < height; y++ {
		c.runes[y] = make([]rune, width)
		c.colors[y] = make([]lipgloss.Color, width)
		c.prio[y] = make([]int, width)
		for x := 0; x < width; x++ {
			c.runes[y][x] = ' '
			c.colors[y][x] = colorCanvasBg
		}
	}
	return c
}

// Set writes r at (x, y) unless the cell holds something more important.
// Out-of-bounds writes are dropped.
func (c *Canvas) Set(x, y int, r rune, color lipgloss.Color, prio int) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	if prio < c.prio[y][x] {
		return
	}
	c.runes[y][x] = r
	c.colors[y][x] = color
	c.prio[y][x] = prio
}

// Text writes s starting at (x, y).
func (c *Canvas) Text(x, y int, s string, color lipgloss.Color, prio int) {
	for i, r := range []rune(s) {
		c.Set(x+i, y, r, color, prio)
	}
}

// Centered writes s centred on (x, y).
func (c *Canvas) Centered(x, y int, s string, color lipgloss.Color, prio int) {
	c.Text(x-len([]rune(s))/2, y, s, color, prio)
}

// Rune returns the rune at (x, y), or a space when out of bounds.
func (c *Canvas) Rune(x, y int) rune {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return ' '
	}
	return c.runes[y][x]
}

// Plain returns the canvas without colour.
func (c *Canvas) Plain() string {
	var b strings.Builder
	for y := 0; y < c.height; y++ {
		b.WriteString(string(c.runes[y]))
		if y < c.height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// String renders the canvas with lipgloss colours, one style per run of
// equal colour.
func (c *Canvas) String() string {
	var b strings.Builder
	for y := 0; y < c.height; y++ {
		start := 0
		for x := 1; x <= c.width; x++ {
			if x < c.width && c.colors[y][x] == c.colors[y][start] {
				continue
			}
			style := lipgloss.NewStyle().Foreground(c.colors[y][start])
			b.WriteString(style.Render(string(c.runes[y][start:x])))
			start = x
		}
		if y < c.height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// projector maps scene coordinates to cells.
type projector struct {
	cx, cy         float64
	scaleX, scaleY float64
}

func newProjector(s Scene, width, height int) projector {
	halfH := float64(height)/2 - 0.5
	halfW := float64(width)/2/cellAspect - 0.5
	sy := math.Min(halfH, halfW) / s.Extent
	return projector{
		cx:     float64(width-1) / 2,
		cy:     float64(height-1) / 2,
		scaleX: sy * cellAspect,
		scaleY: sy,
	}
}

func (p projector) cell(angle, radius float64) (int, int) {
	x, y := astro.PolarToXY(angle, radius)
	return int(math.Round(p.cx + x*p.scaleX)), int(math.Round(p.cy + y*p.scaleY))
}

// RenderTerminal draws the scene onto a width×height canvas.
func RenderTerminal(s Scene, width, height int, opts TermOptions) *Canvas {
	c := NewCanvas(width, height)
	if width <= 0 || height <= 0 || s.Extent <= 0 {
		return c
	}
	p := newProjector(s, width, height)

	for _, rg := range s.Rings {
		steps := int(2*math.Pi*rg.Radius*p.scaleX) + 8
		for i := 0; i < steps; i++ {
			a := 2 * math.Pi * float64(i) / float64(steps)
			x, y := p.cell(a, rg.Radius)
			c.Set(x, y, glyphRing, lipgloss.Color(rg.Stroke), prioRing)
		}
	}

	for _, sp := range s.Spokes {
		steps := int((sp.Outer-sp.Inner)*p.scaleY) + 2
		for i := 0; i <= steps; i++ {
			r := sp.Inner + (sp.Outer-sp.Inner)*float64(i)/float64(steps)
			x, y := p.cell(sp.Angle, r)
			c.Set(x, y, glyphSpoke, lipgloss.Color(sp.Stroke), prioSpoke)
		}
	}

	for _, t := range s.Ticks {
		x, y := p.cell(t.Angle, t.Outer)
		c.Set(x, y, glyphTick, lipgloss.Color(t.Stroke), prioTick)
	}

	text := func(l Label) string {
		if opts.Plain {
			return l.Plain()
		}
		return l.Text
	}

	for _, l := range s.LabelsOf(LabelCuspSign) {
		x, y := p.cell(l.Angle, l.Radius)
		c.Centered(x, y, text(l), lipgloss.Color(l.Color), prioCusp)
	}
	for _, l := range s.LabelsOf(LabelHouseNum) {
		x, y := p.cell(l.Angle, l.Radius)
		c.Centered(x, y, l.Text, lipgloss.Color(l.Color), prioHouse)
	}

	for _, l := range s.LabelsOf(LabelPlanet) {
		focused := l.Owner == opts.Focus
		x, y := p.cell(l.Angle, l.Radius)

		glyphColor := lipgloss.Color(l.Color)
		glyphPrio := prioGlyph
		if focused {
			glyphColor = colorFocus
			glyphPrio = prioFocusGlyph
		}
		glyph := text(l)
		if opts.Plain {
			// The full name goes in the label slot; the glyph cell gets the initial.
			glyph = initial(l.Owner)
		}
		c.Centered(x, y, glyph, glyphColor, glyphPrio)

		show := opts.Labels == TermLabelAll || (opts.Labels == TermLabelFocused && focused)
		if !show {
			continue
		}
		name := l.Owner
		namePrio := prioName
		nameColor := lipgloss.Color(l.Color)
		if focused {
			name = string(glyphFocusArrow) + " " + name
			namePrio = prioFocusName
			nameColor = colorFocus
		}
		c.Text(x+2, y, name, nameColor, namePrio)
	}

	return c
}

func initial(name string) string {
	for _, r := range name {
		return string(r)
	}
	return "?"
}
