package style

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/litescript/ls-wheel/internal/chart"
)

// planetEntry is the file form of a registry entry. Pointer fields tell
// "absent" apart from "zero".
type planetEntry struct {
	Symbol  *string `toml:"symbol"`
	Color   *string `toml:"color"`
	Visible *bool   `toml:"visible"`
}

type themeFile struct {
	Planets  map[string]planetEntry `toml:"planets"`
	Colors   Colors                 `toml:"colors"`
	Radii    Radii                  `toml:"radii"`
	Fonts    Fonts                  `toml:"fonts"`
	Settings Settings               `toml:"settings"`
}

// LoadTheme reads a TOML theme file and applies it over DefaultTheme.
func LoadTheme(path string) (Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return Theme{}, &chart.OpError{
			Op:   "style.load_theme",
			Kind: chart.OpenKind(err),
			Path: path,
			Err:  err,
		}
	}
	defer f.Close()

	t, err := DecodeTheme(f)
	if err != nil {
		return Theme{}, &chart.OpError{
			Op:   "style.load_theme",
			Kind: chart.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	return t, nil
}

// DecodeTheme reads TOML and applies only the keys present over the
// defaults. Unknown keys are an error.
func DecodeTheme(r io.Reader) (Theme, error) {
	t := DefaultTheme()
	file := themeFile{
		Colors:   t.Colors,
		Radii:    t.Radii,
		Fonts:    t.Fonts,
		Settings: t.Settings,
	}

	md, err := toml.NewDecoder(r).Decode(&file)
	if err != nil {
		return Theme{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Theme{}, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}

	t.Colors = file.Colors
	t.Radii = file.Radii
	t.Fonts = file.Fonts
	t.Settings = file.Settings
	for name, e := range file.Planets {
		t.Registry[name] = mergeEntry(t.Registry, name, e)
	}

	if err := t.Validate(); err != nil {
		return Theme{}, err
	}
	return t, nil
}

func mergeEntry(reg Registry, name string, e planetEntry) PlanetStyle {
	s := reg.Resolve(name)
	if e.Symbol != nil {
		s.Symbol = *e.Symbol
	}
	if e.Color != nil {
		s.Color = *e.Color
	}
	if e.Visible != nil {
		s.Visible = *e.Visible
	}
	return s
}

// Validate checks the settings the renderer depends on.
func (t Theme) Validate() error {
	if err := t.LayoutConfig().Validate(); err != nil {
		return fmt.Errorf("settings.collision_min_dist: %w", err)
	}
	r := t.Radii
	rings := []float64{r.R1, r.R2, r.R3, r.R4, r.R5, r.R6, r.R7, r.R8, r.R9, r.R10, r.R11}
	for i, v := range rings {
		if v <= 0 {
			return fmt.Errorf("radii.r%d must be positive, got %v", i+1, v)
		}
	}
	if r.R1 < r.R3 || r.R3 < r.R9 || r.R9 < r.R11 {
		return fmt.Errorf("ring borders must shrink inward: r1=%v r3=%v r9=%v r11=%v", r.R1, r.R3, r.R9, r.R11)
	}
	return nil
}
