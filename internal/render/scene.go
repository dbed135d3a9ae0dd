// Package render turns a chart into drawing primitives and writes them out
// as SVG, PNG or a coloured terminal canvas.
//
// Scene coordinates are chart units with the origin at the wheel centre and
// y growing downward. Every primitive is positioned by a screen angle (from
// astro.ScreenAngle) and a radius, so sinks only deal with polar-to-cartesian
// conversion and scaling.
package render

import (
	"fmt"

	"github.com/litescript/ls-wheel/internal/astro"
	"github.com/litescript/ls-wheel/internal/chart"
	"github.com/litescript/ls-wheel/internal/layout"
	"github.com/litescript/ls-wheel/internal/style"
)

// sceneMargin is added around the outer ring, in chart units.
const sceneMargin = 30

// LabelKind says what a label shows.
type LabelKind int

const (
	LabelCuspSign LabelKind = iota
	LabelCuspDeg
	LabelCuspMin
	LabelPlanet
	LabelPlanetDeg
	LabelPlanetSign
	LabelPlanetMin
	LabelRetro
	LabelHouseNum
)

// Disc is a filled circle centred on the origin.
type Disc struct {
	Radius float64
	Fill   string
}

// Ring is a stroked circle centred on the origin.
type Ring struct {
	Radius float64
	Stroke string
	Width  float64
}

// Spoke is a radial line segment.
type Spoke struct {
	Angle  float64
	Inner  float64
	Outer  float64
	Stroke string
	Width  float64
}

// Label is text centred at a polar position.
type Label struct {
	Kind   LabelKind
	Owner  string // planet name or house id
	Text   string
	Alt    string // plain-ASCII stand-in for fonts without astrological glyphs
	Angle  float64
	Radius float64
	Size   float64
	Color  string
	Bold   bool
}

// XY returns the label centre in scene coordinates.
func (l Label) XY() (float64, float64) {
	return astro.PolarToXY(l.Angle, l.Radius)
}

// Plain returns Alt when set, Text otherwise.
func (l Label) Plain() string {
	if l.Alt != "" {
		return l.Alt
	}
	return l.Text
}

// Scene is a fully resolved wheel drawing.
type Scene struct {
	// Extent is the half-width of the square the scene occupies.
	Extent     float64
	Background string
	FontFamily string

	Discs  []Disc
	Spokes []Spoke
	Rings  []Ring
	Ticks  []Spoke
	Labels []Label

	// Layout is the planet placement the scene was drawn from.
	Layout layout.Layout
}

// LabelsOf returns the labels of one kind, in drawing order.
func (s Scene) LabelsOf(kind LabelKind) []Label {
	var out []Label
	for _, l := range s.Labels {
		if l.Kind == kind {
			out = append(out, l)
		}
	}
	return out
}

// Option configures BuildScene.
type Option func(*sceneBuilder)

type sceneBuilder struct {
	rotation float64
	ticks    bool
	cfg      *layout.Config
	resolver style.Resolver
}

// WithRotation turns the whole wheel by deg degrees counter-clockwise
// from the ascendant-left orientation.
func WithRotation(deg float64) Option { return func(b *sceneBuilder) { b.rotation = deg } }

// WithTicks marks the true longitude of each displaced planet with a short
// tick on the zodiac inner edge.
func WithTicks() Option { return func(b *sceneBuilder) { b.ticks = true } }

// WithLayoutConfig overrides the theme's layout settings.
func WithLayoutConfig(cfg layout.Config) Option { return func(b *sceneBuilder) { b.cfg = &cfg } }

// WithResolver overrides the theme registry for planet styles.
func WithResolver(r style.Resolver) Option { return func(b *sceneBuilder) { b.resolver = r } }

// registryVisibility adapts a style.Resolver to chart.VisibilityResolver.
type registryVisibility struct{ r style.Resolver }

func (v registryVisibility) IsVisible(name string) bool { return v.r.Resolve(name).Visible }

// BuildScene lays out the planets and produces the drawing for a chart.
func BuildScene(c *chart.Chart, th style.Theme, opts ...Option) Scene {
	b := sceneBuilder{resolver: th.Registry}
	for _, opt := range opts {
		opt(&b)
	}
	cfg := th.LayoutConfig()
	if b.cfg != nil {
		cfg = *b.cfg
	}

	ref := c.AscLon + b.rotation
	angle := func(lon float64) float64 { return astro.ScreenAngle(lon, ref) }

	colors := th.Colors
	radii := th.Radii
	fonts := th.Fonts

	s := Scene{
		Extent:     radii.R1 + sceneMargin,
		Background: colors.Background,
		FontFamily: fonts.Family,
	}

	s.Discs = []Disc{
		{Radius: radii.R1, Fill: colors.Zones.OuterRing},
		{Radius: radii.R3, Fill: colors.Zones.PlanetRing},
		{Radius: radii.R9, Fill: colors.Zones.InnerDisk},
		{Radius: radii.R11, Fill: colors.Zones.CenterCore},
	}

	for _, h := range c.Houses {
		s.Spokes = append(s.Spokes, Spoke{
			Angle:  angle(h.AbsLon),
			Inner:  radii.R11,
			Outer:  radii.R3,
			Stroke: colors.Line,
			Width:  1.5,
		})
	}

	for _, r := range []float64{radii.R1, radii.R3, radii.R9, radii.R11} {
		s.Rings = append(s.Rings, Ring{Radius: r, Stroke: colors.TextMain, Width: 2})
	}

	// Cusp labels: sign glyph on the cusp, degrees and minutes either side.
	spread := th.Settings.ArcSpread
	for _, h := range c.Houses {
		a := angle(h.AbsLon)
		z := astro.Position(h.AbsLon)
		owner := fmt.Sprint(h.ID)
		s.Labels = append(s.Labels,
			Label{Kind: LabelCuspSign, Owner: owner, Text: z.Sign().Glyph, Alt: z.Sign().Abbr,
				Angle: a, Radius: radii.R2, Size: fonts.Sign, Color: th.ElementColor(z.SignIdx)},
			Label{Kind: LabelCuspMin, Owner: owner, Text: fmt.Sprintf("%d′", z.Min), Alt: fmt.Sprintf("%d'", z.Min),
				Angle: a + spread, Radius: radii.R2, Size: fonts.Base, Color: colors.TextDim, Bold: true},
			Label{Kind: LabelCuspDeg, Owner: owner, Text: fmt.Sprintf("%d°", z.Deg),
				Angle: a - spread, Radius: radii.R2, Size: fonts.Base, Color: colors.TextMain, Bold: true},
		)
	}

	l := layout.Plan(c.Objects(registryVisibility{b.resolver}), cfg)
	s.Layout = l

	for _, o := range l.Objects {
		p, _ := c.Planet(o.ID)
		ps := b.resolver.Resolve(o.ID)
		z := astro.Position(o.TrueLon)
		a := angle(o.RenderLon)

		s.Labels = append(s.Labels,
			Label{Kind: LabelPlanet, Owner: o.ID, Text: ps.Symbol, Alt: o.ID,
				Angle: a, Radius: radii.R4, Size: fonts.Planet, Color: ps.Color},
			Label{Kind: LabelPlanetDeg, Owner: o.ID, Text: fmt.Sprintf("%d°", z.Deg),
				Angle: a, Radius: radii.R5, Size: fonts.Base, Color: colors.TextMain, Bold: true},
			Label{Kind: LabelPlanetSign, Owner: o.ID, Text: z.Sign().Glyph, Alt: z.Sign().Abbr,
				Angle: a, Radius: radii.R6, Size: fonts.Sign, Color: th.ElementColor(z.SignIdx)},
			Label{Kind: LabelPlanetMin, Owner: o.ID, Text: fmt.Sprintf("%d′", z.Min), Alt: fmt.Sprintf("%d'", z.Min),
				Angle: a, Radius: radii.R7, Size: fonts.Base, Color: colors.TextDim, Bold: true},
		)
		if p.Retro {
			s.Labels = append(s.Labels, Label{Kind: LabelRetro, Owner: o.ID, Text: "R",
				Angle: a, Radius: radii.R8, Size: fonts.Retro, Color: colors.Retro, Bold: true})
		}

		if b.ticks && o.RenderLon != o.TrueLon {
			s.Ticks = append(s.Ticks, Spoke{
				Angle:  angle(o.TrueLon),
				Inner:  radii.R3 - 12,
				Outer:  radii.R3,
				Stroke: ps.Color,
				Width:  2,
			})
		}
	}

	for _, m := range c.Mids() {
		s.Labels = append(s.Labels, Label{Kind: LabelHouseNum, Owner: m.ID, Text: m.ID,
			Angle: angle(m.Lon), Radius: radii.R10, Size: fonts.HouseNum, Color: colors.Highlight, Bold: true})
	}

	return s
}
