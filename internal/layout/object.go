// Package layout places labelled objects around a circular chart so that
// glyphs of angularly close bodies do not overlap.
//
// Objects are sorted by true longitude, chained into clusters wherever
// consecutive gaps fall below the minimum angular distance, and each
// cluster is spread evenly around its mean position. A cluster that
// straddles the 0°/360° seam is detected and spread as one group.
package layout

import (
	"errors"
	"fmt"
	"math"
)

// DefaultMinAngularDistance is the minimum separation, in degrees, used by
// the reference chart style.
const DefaultMinAngularDistance = 7.5

// ErrInvalidDistance is returned by Config.Validate for a non-positive or
// non-finite minimum distance.
var ErrInvalidDistance = errors.New("min angular distance must be a positive number")

// Object is a single point to place on the wheel.
//
// TrueLon is the computed ecliptic longitude in [0, 360) and is never
// changed by the engine. RenderLon is the display longitude the engine
// assigns; it starts equal to TrueLon.
type Object struct {
	ID        string  `json:"id"`
	TrueLon   float64 `json:"true_lon"`
	RenderLon float64 `json:"render_lon"`
	Visible   bool    `json:"visible"`
}

// NewObject creates an object whose render longitude equals its true one.
func NewObject(id string, lon float64, visible bool) Object {
	return Object{
		ID:        id,
		TrueLon:   lon,
		RenderLon: lon,
		Visible:   visible,
	}
}

// Displacement returns how far, in degrees, the object was moved from its
// true longitude, taking the shortest way around the circle.
func (o Object) Displacement() float64 {
	d := math.Mod(o.RenderLon-o.TrueLon, 360)
	switch {
	case d > 180:
		d -= 360
	case d <= -180:
		d += 360
	}
	return d
}

// Config holds layout parameters. It is passed explicitly to every call.
type Config struct {
	// MinAngularDistance is the spacing, in degrees, enforced between
	// neighbours inside a cluster. Must be > 0.
	MinAngularDistance float64
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		MinAngularDistance: DefaultMinAngularDistance,
	}
}

// Validate reports whether the configuration satisfies the engine's
// precondition. The engine itself never calls it.
func (c Config) Validate() error {
	d := c.MinAngularDistance
	if math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidDistance, d)
	}
	return nil
}
