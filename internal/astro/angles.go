// Package astro provides the angular math shared by layout and rendering:
// unit conversion, ecliptic-to-screen mapping and zodiac positions.
package astro

import (
	"math"

	"github.com/golang/geo/s1"
)

// ToRadians converts degrees to radians. Any real is accepted.
func ToRadians(deg float64) float64 {
	return (s1.Angle(deg) * s1.Degree).Radians()
}

// ToDegrees converts radians to degrees. Any real is accepted.
func ToDegrees(rad float64) float64 {
	return s1.Angle(rad).Degrees()
}

// ScreenAngle maps an ecliptic longitude to a drawing angle in radians,
// relative to the reference axis (normally the ascendant).
//
// The reference axis always lands on π (9 o'clock) and longitudes increase
// counter-clockwise on screen. The result is not reduced modulo 2π; callers
// feed it straight into sin/cos.
func ScreenAngle(objLon, refLon float64) float64 {
	return math.Pi + ToRadians(refLon-objLon)
}

// Normalize360 wraps an angle in degrees to the range [0, 360).
func Normalize360(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// math.Mod of a tiny negative can round back up to 360
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// SeparationDeg returns the shortest circular distance between two
// longitudes, in degrees (0-180).
func SeparationDeg(a, b float64) float64 {
	d := Normalize360(a - b)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// PolarToXY converts a screen angle and radius to cartesian offsets from
// the chart centre. Screen y grows downward, matching canvas conventions.
func PolarToXY(angle, radius float64) (float64, float64) {
	return math.Cos(angle) * radius, math.Sin(angle) * radius
}
