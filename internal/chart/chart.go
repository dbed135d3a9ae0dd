// Package chart defines the input of a wheel render: planet and house cusp
// longitudes plus the ascendant, as produced by an upstream ephemeris.
package chart

import (
	"strconv"

	"github.com/litescript/ls-wheel/internal/astro"
	"github.com/litescript/ls-wheel/internal/layout"
)

// Planet is one body to draw on the planet ring.
type Planet struct {
	Name   string  `yaml:"name" json:"name"`
	AbsLon float64 `yaml:"abs_lon" json:"abs_lon"`
	Retro  bool    `yaml:"is_retro" json:"is_retro"`
}

// House is a house cusp. Cusps are drawn at their raw longitude and never
// take part in collision layout.
type House struct {
	ID     int     `yaml:"id" json:"id"`
	AbsLon float64 `yaml:"abs_lon" json:"abs_lon"`
}

// HouseMid marks where a house number label goes.
type HouseMid struct {
	ID  string  `yaml:"id" json:"id"`
	Lon float64 `yaml:"lon" json:"lon"`
}

// Chart is the full set of positions for one wheel.
type Chart struct {
	AscLon    float64    `yaml:"asc_lon" json:"asc_lon"`
	Planets   []Planet   `yaml:"planets" json:"planets"`
	Houses    []House    `yaml:"houses" json:"houses"`
	HouseMids []HouseMid `yaml:"house_mids,omitempty" json:"house_mids,omitempty"`
}

// VisibilityResolver decides whether a named body is drawn at all.
type VisibilityResolver interface {
	IsVisible(name string) bool
}

// Objects converts the planets into layout objects. With a nil resolver
// every planet is visible.
func (c *Chart) Objects(r VisibilityResolver) []layout.Object {
	objs := make([]layout.Object, len(c.Planets))
	for i, p := range c.Planets {
		visible := true
		if r != nil {
			visible = r.IsVisible(p.Name)
		}
		objs[i] = layout.NewObject(p.Name, p.AbsLon, visible)
	}
	return objs
}

// Planet returns the planet with the given name.
func (c *Chart) Planet(name string) (Planet, bool) {
	for _, p := range c.Planets {
		if p.Name == name {
			return p, true
		}
	}
	return Planet{}, false
}

// Mids returns the house number anchors. Explicit house_mids win;
// otherwise each house gets the midpoint between its cusp and the next,
// measured forward across the 0° seam.
func (c *Chart) Mids() []HouseMid {
	if len(c.HouseMids) > 0 {
		return c.HouseMids
	}
	n := len(c.Houses)
	if n < 2 {
		return nil
	}

	mids := make([]HouseMid, n)
	for i, h := range c.Houses {
		next := c.Houses[(i+1)%n]
		span := astro.Normalize360(next.AbsLon - h.AbsLon)
		mids[i] = HouseMid{
			ID:  strconv.Itoa(h.ID),
			Lon: astro.Normalize360(h.AbsLon + span/2),
		}
	}
	return mids
}
