// Package style holds the visual theme of the wheel and resolves how each
// named body is drawn.
package style

import (
	"unicode/utf8"

	"github.com/litescript/ls-wheel/internal/astro"
	"github.com/litescript/ls-wheel/internal/layout"
)

// FallbackColor is used for bodies missing from the registry.
const FallbackColor = "#8b949e"

// PlanetStyle is how one body is drawn.
type PlanetStyle struct {
	Symbol  string
	Color   string
	Visible bool
}

// Resolver maps a body name to its style.
type Resolver interface {
	Resolve(name string) PlanetStyle
}

// Registry is a fixed table of body styles.
type Registry map[string]PlanetStyle

// Resolve returns the registered style, or a visible fallback that uses
// the first character of the name as its symbol.
func (r Registry) Resolve(name string) PlanetStyle {
	if s, ok := r[name]; ok {
		return s
	}
	sym := "?"
	if c, size := utf8.DecodeRuneInString(name); size > 0 {
		sym = string(c)
	}
	return PlanetStyle{Symbol: sym, Color: FallbackColor, Visible: true}
}

// IsVisible reports whether the body is drawn at all.
func (r Registry) IsVisible(name string) bool {
	return r.Resolve(name).Visible
}

// DefaultRegistry returns the standard planet glyphs and colours.
func DefaultRegistry() Registry {
	return Registry{
		"Su":     {Symbol: "☉", Color: "#FF8A80", Visible: true},
		"Mo":     {Symbol: "☽", Color: "#90CAF9", Visible: true},
		"Me":     {Symbol: "☿", Color: "#A5D6A7", Visible: true},
		"Ve":     {Symbol: "♀", Color: "#FFE082", Visible: true},
		"Ma":     {Symbol: "♂", Color: "#FF8A80", Visible: true},
		"Ju":     {Symbol: "♃", Color: "#FF8A80", Visible: true},
		"Sa":     {Symbol: "♄", Color: "#FFE082", Visible: true},
		"Ur":     {Symbol: "♅", Color: "#A5D6A7", Visible: true},
		"Ne":     {Symbol: "♆", Color: "#90CAF9", Visible: true},
		"Pl":     {Symbol: "♇", Color: "#90CAF9", Visible: true},
		"Ra":     {Symbol: "☊", Color: "#90CAF9", Visible: true},
		"Ke":     {Symbol: "☋", Color: "#90CAF9", Visible: true},
		"Lilith": {Symbol: "⚸", Color: "#fa5252", Visible: true},
	}
}

// Zones are the fill colours of the concentric bands.
type Zones struct {
	OuterRing  string `toml:"outer_ring"`
	PlanetRing string `toml:"planet_ring"`
	InnerDisk  string `toml:"inner_disk"`
	CenterCore string `toml:"center_core"`
}

// Elements are the sign colours per element.
type Elements struct {
	Fire  string `toml:"fire"`
	Earth string `toml:"earth"`
	Air   string `toml:"air"`
	Water string `toml:"water"`
}

// Colors is the palette.
type Colors struct {
	Background string   `toml:"background"`
	Line       string   `toml:"line"`
	Highlight  string   `toml:"highlight"`
	TextMain   string   `toml:"text_main"`
	TextDim    string   `toml:"text_dim"`
	Retro      string   `toml:"retro"`
	Zones      Zones    `toml:"zones"`
	Elements   Elements `toml:"elements"`
}

// Radii are ring radii in chart units, outermost first.
//
//	R1 outer border, R2 cusp label band, R3 zodiac inner edge,
//	R4..R8 planet stack (glyph, degrees, sign, minutes, retrograde),
//	R9 inner disk, R10 house numbers, R11 centre core.
type Radii struct {
	R1  float64 `toml:"r1"`
	R2  float64 `toml:"r2"`
	R3  float64 `toml:"r3"`
	R4  float64 `toml:"r4"`
	R5  float64 `toml:"r5"`
	R6  float64 `toml:"r6"`
	R7  float64 `toml:"r7"`
	R8  float64 `toml:"r8"`
	R9  float64 `toml:"r9"`
	R10 float64 `toml:"r10"`
	R11 float64 `toml:"r11"`
}

// Fonts are text sizes in chart units.
type Fonts struct {
	Family   string  `toml:"family"`
	Base     float64 `toml:"base"`
	Sign     float64 `toml:"sign"`
	Planet   float64 `toml:"planet"`
	HouseNum float64 `toml:"house_num"`
	Retro    float64 `toml:"retro"`
}

// Settings tune layout.
type Settings struct {
	// CollisionMinDist is the minimum angular distance in degrees.
	CollisionMinDist float64 `toml:"collision_min_dist"`
	// ArcSpread offsets cusp degree/minute labels from the cusp, in radians.
	ArcSpread float64 `toml:"arc_spread"`
}

// Theme is everything a renderer needs besides the chart itself.
type Theme struct {
	Registry Registry
	Colors   Colors
	Radii    Radii
	Fonts    Fonts
	Settings Settings
}

// DefaultTheme returns the reference dark theme.
func DefaultTheme() Theme {
	return Theme{
		Registry: DefaultRegistry(),
		Colors: Colors{
			Background: "#0d1117",
			Line:       "#30363d",
			Highlight:  "#e6edf3",
			TextMain:   "#e6edf3",
			TextDim:    "#e6edf3",
			Retro:      "#FF8A80",
			Zones: Zones{
				OuterRing:  "#161b22",
				PlanetRing: "#0d1117",
				InnerDisk:  "#21262d",
				CenterCore: "#0d1117",
			},
			Elements: Elements{
				Fire:  "#FF8A80",
				Earth: "#FFE082",
				Air:   "#A5D6A7",
				Water: "#90CAF9",
			},
		},
		Radii: Radii{
			R1: 450, R2: 420, R3: 390,
			R4: 355, R5: 315, R6: 270, R7: 230, R8: 200,
			R9: 175, R10: 150, R11: 125,
		},
		Fonts: Fonts{
			Family:   `"Segoe UI Symbol", Menlo, Consolas, monospace`,
			Base:     20,
			Sign:     26,
			Planet:   32,
			HouseNum: 20,
			Retro:    16,
		},
		Settings: Settings{
			CollisionMinDist: layout.DefaultMinAngularDistance,
			ArcSpread:        0.09,
		},
	}
}

// LayoutConfig returns the layout parameters carried by the theme.
func (t Theme) LayoutConfig() layout.Config {
	return layout.Config{MinAngularDistance: t.Settings.CollisionMinDist}
}

// ElementColor returns the colour of the sign's element.
func (t Theme) ElementColor(signIdx int) string {
	switch astro.ElementOf(signIdx) {
	case astro.ElementFire:
		return t.Colors.Elements.Fire
	case astro.ElementEarth:
		return t.Colors.Elements.Earth
	case astro.ElementAir:
		return t.Colors.Elements.Air
	default:
		return t.Colors.Elements.Water
	}
}
