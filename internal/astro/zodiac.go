package astro

import (
	"fmt"
	"math"
)

// Element is one of the four classical elements a sign belongs to.
type Element string

const (
	ElementFire  Element = "fire"
	ElementEarth Element = "earth"
	ElementAir   Element = "air"
	ElementWater Element = "water"
)

// Sign describes one 30° zodiac sign.
type Sign struct {
	Name  string
	Abbr  string
	Glyph string
}

// Signs lists the zodiac in ecliptic order starting at 0° Aries.
var Signs = [12]Sign{
	{"Aries", "Ar", "♈"},
	{"Taurus", "Ta", "♉"},
	{"Gemini", "Ge", "♊"},
	{"Cancer", "Cn", "♋"},
	{"Leo", "Le", "♌"},
	{"Virgo", "Vi", "♍"},
	{"Libra", "Li", "♎"},
	{"Scorpio", "Sc", "♏"},
	{"Sagittarius", "Sg", "♐"},
	{"Capricorn", "Cp", "♑"},
	{"Aquarius", "Aq", "♒"},
	{"Pisces", "Pi", "♓"},
}

// SignIndex returns the sign (0-11) containing the longitude.
func SignIndex(lon float64) int {
	idx := int(Normalize360(lon) / 30)
	if idx > 11 {
		idx = 11
	}
	return idx
}

// ElementOf returns the element of a sign index.
// Signs cycle fire, earth, air, water from Aries.
func ElementOf(signIdx int) Element {
	switch ((signIdx % 4) + 4) % 4 {
	case 0:
		return ElementFire
	case 1:
		return ElementEarth
	case 2:
		return ElementAir
	default:
		return ElementWater
	}
}

// ZodiacPosition is a longitude split into sign and degrees/minutes/seconds
// within that sign.
type ZodiacPosition struct {
	SignIdx int
	Deg     int
	Min     int
	Sec     int
}

// Sign returns the sign record for the position.
func (p ZodiacPosition) Sign() Sign {
	return Signs[p.SignIdx]
}

// Position splits an ecliptic longitude into sign and DMS parts.
// Seconds are rounded; a rounded 60″ carries into minutes and 60′ into
// degrees. The sign index is taken from the longitude itself, so 29°59′59.9″
// reads as 30°00′00″ of the same sign.
func Position(lon float64) ZodiacPosition {
	lon = Normalize360(lon)
	rel := math.Mod(lon, 30)

	d := int(math.Floor(rel))
	mFloat := (rel - float64(d)) * 60
	m := int(math.Floor(mFloat))
	s := int(math.Round((mFloat - float64(m)) * 60))

	if s == 60 {
		s = 0
		m++
	}
	if m == 60 {
		m = 0
		d++
	}

	return ZodiacPosition{SignIdx: SignIndex(lon), Deg: d, Min: m, Sec: s}
}

// FormatDMS renders the in-sign position of a longitude as DD°MM′SS″.
func FormatDMS(lon float64) string {
	p := Position(lon)
	return fmt.Sprintf("%02d°%02d′%02d″", p.Deg, p.Min, p.Sec)
}
