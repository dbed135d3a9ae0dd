package chart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-wheel/internal/astro"
)

// Load reads a chart from a YAML or JSON file.
func Load(path string) (*Chart, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &OpError{
			Op:   "chart.load",
			Kind: OpenKind(err),
			Path: path,
			Err:  err,
		}
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		var oe *OpError
		if errors.As(err, &oe) {
			oe.Path = path
			return nil, oe
		}
		return nil, err
	}
	return c, nil
}

// Decode reads a chart document. JSON is accepted as a subset of YAML.
// Longitudes are normalized into [0, 360); non-finite values and duplicate
// planet names are rejected.
func Decode(r io.Reader) (*Chart, error) {
	var c Chart
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, &OpError{
			Op:   "chart.decode",
			Kind: KindInvalidChart,
			Err:  err,
		}
	}

	if err := c.normalize(); err != nil {
		return nil, &OpError{
			Op:   "chart.validate",
			Kind: KindInvalidChart,
			Err:  err,
		}
	}
	return &c, nil
}

func (c *Chart) normalize() error {
	if !finite(c.AscLon) {
		return fmt.Errorf("asc_lon is not a finite number: %v", c.AscLon)
	}
	c.AscLon = astro.Normalize360(c.AscLon)

	seen := make(map[string]bool, len(c.Planets))
	for i := range c.Planets {
		p := &c.Planets[i]
		if p.Name == "" {
			return fmt.Errorf("planet %d has no name", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate planet %q", p.Name)
		}
		seen[p.Name] = true
		if !finite(p.AbsLon) {
			return fmt.Errorf("planet %s: abs_lon is not a finite number: %v", p.Name, p.AbsLon)
		}
		p.AbsLon = astro.Normalize360(p.AbsLon)
	}

	for i := range c.Houses {
		h := &c.Houses[i]
		if !finite(h.AbsLon) {
			return fmt.Errorf("house %d: abs_lon is not a finite number: %v", h.ID, h.AbsLon)
		}
		h.AbsLon = astro.Normalize360(h.AbsLon)
	}

	for i := range c.HouseMids {
		m := &c.HouseMids[i]
		if !finite(m.Lon) {
			return fmt.Errorf("house mid %s: lon is not a finite number: %v", m.ID, m.Lon)
		}
		m.Lon = astro.Normalize360(m.Lon)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
