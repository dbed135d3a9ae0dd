package render

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"image/png"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/litescript/ls-wheel/internal/astro"
	"github.com/litescript/ls-wheel/internal/chart"
	"github.com/litescript/ls-wheel/internal/layout"
	"github.com/litescript/ls-wheel/internal/style"
)

const tolerance = 1e-9

func testChart() *chart.Chart {
	c := &chart.Chart{
		AscLon: 0,
		Planets: []chart.Planet{
			{Name: "Su", AbsLon: 10},
			{Name: "Mo", AbsLon: 12, Retro: true},
			{Name: "Ma", AbsLon: 200},
			{Name: "Ur", AbsLon: 100},
		},
	}
	for i := 0; i < 12; i++ {
		c.Houses = append(c.Houses, chart.House{ID: i + 1, AbsLon: float64(i * 30)})
	}
	return c
}

func testTheme() style.Theme {
	th := style.DefaultTheme()
	ur := th.Registry["Ur"]
	ur.Visible = false
	th.Registry["Ur"] = ur
	return th
}

func findLabel(t *testing.T, s Scene, kind LabelKind, owner string) Label {
	t.Helper()
	for _, l := range s.LabelsOf(kind) {
		if l.Owner == owner {
			return l
		}
	}
	t.Fatalf("no label kind %d for %s", kind, owner)
	return Label{}
}

func TestBuildScene_Structure(t *testing.T) {
	th := testTheme()
	s := BuildScene(testChart(), th)

	if s.Extent != th.Radii.R1+sceneMargin {
		t.Errorf("Extent = %v", s.Extent)
	}
	if len(s.Discs) != 4 || s.Discs[0].Radius != th.Radii.R1 || s.Discs[3].Radius != th.Radii.R11 {
		t.Errorf("discs = %+v", s.Discs)
	}
	if len(s.Rings) != 4 {
		t.Errorf("rings = %d, want 4", len(s.Rings))
	}
	if len(s.Spokes) != 12 {
		t.Errorf("spokes = %d, want 12", len(s.Spokes))
	}
	if len(s.Ticks) != 0 {
		t.Errorf("ticks drawn without WithTicks: %d", len(s.Ticks))
	}

	if got := len(s.LabelsOf(LabelCuspSign)); got != 12 {
		t.Errorf("cusp sign labels = %d, want 12", got)
	}
	if got := len(s.LabelsOf(LabelHouseNum)); got != 12 {
		t.Errorf("house numbers = %d, want 12", got)
	}

	// Ur is hidden by the theme
	if got := len(s.LabelsOf(LabelPlanet)); got != 3 {
		t.Errorf("planet glyphs = %d, want 3", got)
	}
	for _, l := range s.Labels {
		if l.Owner == "Ur" {
			t.Errorf("hidden planet drawn: %+v", l)
		}
	}

	retro := s.LabelsOf(LabelRetro)
	if len(retro) != 1 || retro[0].Owner != "Mo" {
		t.Errorf("retro labels = %+v", retro)
	}
}

func TestBuildScene_PlanetsUseRenderLongitude(t *testing.T) {
	c := testChart()
	s := BuildScene(c, testTheme())

	su, ok := s.Layout.Find("Su")
	if !ok {
		t.Fatal("Su missing from layout")
	}
	if math.Abs(su.RenderLon-7.25) > tolerance {
		t.Fatalf("Su RenderLon = %v, want 7.25", su.RenderLon)
	}

	glyph := findLabel(t, s, LabelPlanet, "Su")
	want := astro.ScreenAngle(7.25, c.AscLon)
	if math.Abs(glyph.Angle-want) > tolerance {
		t.Errorf("Su glyph angle = %v, want %v", glyph.Angle, want)
	}
	if glyph.Text != "☉" || glyph.Alt != "Su" {
		t.Errorf("Su glyph = %q / %q", glyph.Text, glyph.Alt)
	}

	// Degree text reports the true position, not the displaced one
	deg := findLabel(t, s, LabelPlanetDeg, "Su")
	if deg.Text != "10°" {
		t.Errorf("Su degree label = %q, want 10°", deg.Text)
	}
}

func TestBuildScene_CuspLabelsStraddleCusp(t *testing.T) {
	th := testTheme()
	c := testChart()
	s := BuildScene(c, th)

	sign := findLabel(t, s, LabelCuspSign, "2")
	minute := findLabel(t, s, LabelCuspMin, "2")
	deg := findLabel(t, s, LabelCuspDeg, "2")

	if math.Abs(minute.Angle-(sign.Angle+th.Settings.ArcSpread)) > tolerance {
		t.Errorf("minutes angle = %v, want %v", minute.Angle, sign.Angle+th.Settings.ArcSpread)
	}
	if math.Abs(deg.Angle-(sign.Angle-th.Settings.ArcSpread)) > tolerance {
		t.Errorf("degrees angle = %v, want %v", deg.Angle, sign.Angle-th.Settings.ArcSpread)
	}
	// Cusp 2 sits at 30°, the start of Taurus
	if sign.Alt != "Ta" || sign.Color != th.Colors.Elements.Earth {
		t.Errorf("cusp 2 sign = %+v", sign)
	}
}

func TestBuildScene_Options(t *testing.T) {
	c := testChart()
	th := testTheme()

	base := BuildScene(c, th)
	rotated := BuildScene(c, th, WithRotation(30))
	a := findLabel(t, base, LabelPlanet, "Ma").Angle
	b := findLabel(t, rotated, LabelPlanet, "Ma").Angle
	if math.Abs((b-a)-astro.ToRadians(30)) > tolerance {
		t.Errorf("rotation moved Ma by %v rad, want %v", b-a, astro.ToRadians(30))
	}

	ticked := BuildScene(c, th, WithTicks())
	// Su and Mo are displaced, Ma is alone
	if len(ticked.Ticks) != 2 {
		t.Errorf("ticks = %d, want 2", len(ticked.Ticks))
	}

	wide := BuildScene(c, th, WithLayoutConfig(layout.Config{MinAngularDistance: 1}))
	if len(wide.Ticks) != 0 {
		t.Errorf("ticks without WithTicks = %d", len(wide.Ticks))
	}
	if su, _ := wide.Layout.Find("Su"); su.RenderLon != 10 {
		t.Errorf("Su should not move at 1° spacing, got %v", su.RenderLon)
	}

	showAll := style.Registry{}
	all := BuildScene(c, th, WithResolver(showAll))
	if got := len(all.LabelsOf(LabelPlanet)); got != 4 {
		t.Errorf("planets with permissive resolver = %d, want 4", got)
	}
}

func TestRenderSVG(t *testing.T) {
	s := BuildScene(testChart(), testTheme(), WithTicks())
	out := string(RenderSVG(s, WithWidth(800), WithTitle("Natal <test>")))

	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Errorf("bad prefix: %.60s", out)
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Error("missing closing tag")
	}
	if !strings.Contains(out, `width="800" height="800"`) {
		t.Error("width option not applied")
	}
	if !strings.Contains(out, "<title>Natal &lt;test&gt;</title>") {
		t.Error("title not escaped")
	}
	if got := strings.Count(out, "<text "); got != len(s.Labels) {
		t.Errorf("text elements = %d, want %d", got, len(s.Labels))
	}
	if got := strings.Count(out, `class="tick"`); got != len(s.Ticks) {
		t.Errorf("tick lines = %d, want %d", got, len(s.Ticks))
	}
	if !strings.Contains(out, "☉") {
		t.Error("planet glyphs missing")
	}

	hostile := s
	hostile.Background = `#000" onload="x`
	hostile.Labels = append([]Label(nil), s.Labels...)
	hostile.Labels[0].Color = `red"><script/>`
	hostile.Rings = append([]Ring(nil), s.Rings...)
	hostile.Rings[0].Stroke = `"&`
	doc := RenderSVG(hostile)
	if bytes.Contains(doc, []byte(`" onload=`)) || bytes.Contains(doc, []byte("<script")) {
		t.Error("theme colours written unescaped")
	}
	dec := xml.NewDecoder(bytes.NewReader(doc))
	for {
		if _, err := dec.Token(); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("SVG with quoted colours is not well-formed: %v", err)
		}
	}

	bare := string(RenderSVG(s))
	if strings.Contains(bare, "width=\"800\"") || strings.Contains(bare, "<title>") {
		t.Error("options leaked into default render")
	}
}

func TestRenderPNG(t *testing.T) {
	s := BuildScene(testChart(), testTheme())

	var buf bytes.Buffer
	if err := RenderPNG(&buf, s, 256); err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	cfg, err := png.DecodeConfig(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Width != 256 || cfg.Height != 256 {
		t.Errorf("size = %dx%d, want 256x256", cfg.Width, cfg.Height)
	}

	if err := RenderPNG(&bytes.Buffer{}, s, 0); err == nil {
		t.Error("expected error for zero size")
	}
}

func TestRenderTerminal(t *testing.T) {
	s := BuildScene(testChart(), testTheme())

	c := RenderTerminal(s, 80, 30, TermOptions{Focus: "Ma", Labels: TermLabelFocused, Plain: true})
	plain := c.Plain()
	lines := strings.Split(plain, "\n")
	if len(lines) != 30 {
		t.Fatalf("lines = %d, want 30", len(lines))
	}
	for i, line := range lines {
		if n := len([]rune(line)); n != 80 {
			t.Fatalf("line %d width = %d, want 80", i, n)
		}
	}
	if !strings.Contains(plain, "◄ Ma") {
		t.Error("focused label missing")
	}
	if strings.Contains(plain, "Su") {
		t.Error("unfocused label drawn in focus mode")
	}
	if strings.Contains(plain, "◄ Su") {
		t.Error("wrong planet focused")
	}

	all := RenderTerminal(s, 80, 30, TermOptions{Labels: TermLabelAll, Plain: true}).Plain()
	if !strings.Contains(all, "Ma") {
		t.Error("label missing in all mode")
	}

	glyphs := RenderTerminal(s, 80, 30, TermOptions{}).Plain()
	if !strings.Contains(glyphs, "♂") {
		t.Error("Ma glyph missing")
	}
	if strings.ContainsRune(glyphs, '◄') {
		t.Error("labels drawn with labels off")
	}

	empty := RenderTerminal(s, 0, 0, TermOptions{})
	if empty.Plain() != "" {
		t.Error("zero canvas should render empty")
	}
}

func TestCanvas_Priority(t *testing.T) {
	c := NewCanvas(5, 1)
	c.Set(2, 0, 'a', "1", prioGlyph)
	c.Set(2, 0, 'b', "1", prioRing)
	if got := c.Rune(2, 0); got != 'a' {
		t.Errorf("low priority write replaced glyph: %q", got)
	}
	c.Set(2, 0, 'c', "1", prioFocusGlyph)
	if got := c.Rune(2, 0); got != 'c' {
		t.Errorf("high priority write dropped: %q", got)
	}

	c.Centered(2, 0, "xyz", "1", prioFocusGlyph)
	if got := c.Plain(); got != " xyz " {
		t.Errorf("Centered = %q", got)
	}

	// Out of bounds is ignored
	c.Set(-1, 0, 'q', "1", prioFocusGlyph)
	c.Set(9, 9, 'q', "1", prioFocusGlyph)
	if c.Rune(-1, 0) != ' ' {
		t.Error("out of bounds rune should be blank")
	}
}

func TestWritePlacementTable(t *testing.T) {
	c := testChart()
	s := BuildScene(c, testTheme())

	var buf bytes.Buffer
	WritePlacementTable(&buf, c, s.Layout)
	out := buf.String()

	for _, want := range []string{"Su", "Mo", "Ma", "#1/2", "Total: 3 planets in 2 clusters"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Ur") {
		t.Error("hidden planet listed")
	}
	if strings.Contains(out, "saturated") {
		t.Error("unexpected saturation warning")
	}

	buf.Reset()
	WritePlacementTable(&buf, &chart.Chart{}, layout.Plan(nil, layout.DefaultConfig()))
	if !strings.Contains(buf.String(), "No visible planets") {
		t.Errorf("empty table = %q", buf.String())
	}
}

func TestPlacementExport_WriteJSON(t *testing.T) {
	c := testChart()
	cfg := layout.DefaultConfig()
	l := layout.Plan(c.Objects(testTheme().Registry), cfg)

	var buf bytes.Buffer
	if err := ExportPlacements(c, l, cfg).WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var got PlacementExport
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.MinAngularDistance != 7.5 || len(got.Planets) != 3 {
		t.Fatalf("export = %+v", got)
	}

	mo := got.Planets[1]
	if mo.Name != "Mo" || !mo.Retro || mo.ClusterSize != 2 {
		t.Errorf("Mo row = %+v", mo)
	}
	if math.Abs(mo.Shift-2.75) > tolerance {
		t.Errorf("Mo shift = %v, want 2.75", mo.Shift)
	}
	if mo.Position != "Ar 12°00′00″" {
		t.Errorf("Mo position = %q", mo.Position)
	}
}

func TestTruncateStr(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"Su", 8, "Su"},
		{"Proserpina", 8, "Proser.."},
		{"Lilith", 3, "Lil"},
		{"Ménélas", 8, "Ménélas"},
		{"Περσεφόνη", 6, "Περσ.."},
		{"Ωρα", 2, "Ωρ"},
	}
	for _, tt := range tests {
		if got := truncateStr(tt.in, tt.max); got != tt.want {
			t.Errorf("truncateStr(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
