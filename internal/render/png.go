package render

import (
	"fmt"
	"io"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/litescript/ls-wheel/internal/astro"
)

// DefaultPNGSize is the edge length of a PNG render in pixels.
const DefaultPNGSize = 1024

// The Go fonts carry no astrological glyphs, so PNG output draws each
// label's Plain text.
var (
	fontsOnce sync.Once
	fontsErr  error
	regular   *truetype.Font
	bold      *truetype.Font

	facesMu sync.Mutex
	faces   = map[faceKey]font.Face{}
)

type faceKey struct {
	bold bool
	size float64
}

func loadFonts() error {
	fontsOnce.Do(func() {
		regular, fontsErr = truetype.Parse(goregular.TTF)
		if fontsErr != nil {
			return
		}
		bold, fontsErr = truetype.Parse(gobold.TTF)
	})
	return fontsErr
}

func face(isBold bool, size float64) font.Face {
	key := faceKey{bold: isBold, size: size}
	facesMu.Lock()
	defer facesMu.Unlock()
	if f, ok := faces[key]; ok {
		return f
	}
	src := regular
	if isBold {
		src = bold
	}
	f := truetype.NewFace(src, &truetype.Options{Size: size, Hinting: font.HintingFull})
	faces[key] = f
	return f
}

// RenderPNG rasterises the scene into a size×size PNG.
func RenderPNG(w io.Writer, s Scene, size int) error {
	if size <= 0 {
		return fmt.Errorf("png size must be positive, got %d", size)
	}
	if err := loadFonts(); err != nil {
		return fmt.Errorf("load fonts: %w", err)
	}

	dc := gg.NewContext(size, size)
	dc.SetHexColor(s.Background)
	dc.Clear()

	scale := float64(size) / 2 / s.Extent
	dc.Translate(float64(size)/2, float64(size)/2)

	for _, d := range s.Discs {
		dc.DrawCircle(0, 0, d.Radius*scale)
		dc.SetHexColor(d.Fill)
		dc.Fill()
	}
	for _, sp := range s.Spokes {
		strokeSpoke(dc, sp, scale)
	}
	for _, rg := range s.Rings {
		dc.DrawCircle(0, 0, rg.Radius*scale)
		dc.SetHexColor(rg.Stroke)
		dc.SetLineWidth(rg.Width * scale)
		dc.Stroke()
	}
	for _, t := range s.Ticks {
		strokeSpoke(dc, t, scale)
	}

	for _, l := range s.Labels {
		x, y := l.XY()
		dc.SetFontFace(face(l.Bold, l.Size*scale))
		dc.SetHexColor(l.Color)
		dc.DrawStringAnchored(l.Plain(), x*scale, y*scale, 0.5, 0.5)
	}

	return dc.EncodePNG(w)
}

func strokeSpoke(dc *gg.Context, sp Spoke, scale float64) {
	x1, y1 := astro.PolarToXY(sp.Angle, sp.Inner*scale)
	x2, y2 := astro.PolarToXY(sp.Angle, sp.Outer*scale)
	dc.DrawLine(x1, y1, x2, y2)
	dc.SetHexColor(sp.Stroke)
	dc.SetLineWidth(sp.Width * scale)
	dc.Stroke()
}
