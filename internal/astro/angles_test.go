package astro

import (
	"math"
	"testing"
)

func TestToRadians(t *testing.T) {
	tests := []struct {
		deg  float64
		want float64
	}{
		{0, 0},
		{90, math.Pi / 2},
		{180, math.Pi},
		{-180, -math.Pi},
		{720, 4 * math.Pi},
	}

	for _, tt := range tests {
		got := ToRadians(tt.deg)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("ToRadians(%v) = %v, want %v", tt.deg, got, tt.want)
		}
	}
}

func TestToDegrees_RoundTrip(t *testing.T) {
	for _, deg := range []float64{-725.5, -1, 0, 7.5, 123.456, 359.999, 1e4} {
		got := ToDegrees(ToRadians(deg))
		if math.Abs(got-deg) > 1e-9 {
			t.Errorf("ToDegrees(ToRadians(%v)) = %v", deg, got)
		}
	}
}

func TestScreenAngle(t *testing.T) {
	tests := []struct {
		name string
		obj  float64
		ref  float64
		want float64
	}{
		{"reference axis maps to pi", 123.4, 123.4, math.Pi},
		{"reference at zero", 0, 0, math.Pi},
		{"ninety degrees ahead", 90, 0, math.Pi / 2},
		{"ninety degrees behind", 0, 90, 3 * math.Pi / 2},
		// no reduction modulo 2π
		{"unclamped", 0, 350, math.Pi + ToRadians(350)},
		{"negative beyond", 350, 0, math.Pi - ToRadians(350)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScreenAngle(tt.obj, tt.ref)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("ScreenAngle(%v, %v) = %v, want %v", tt.obj, tt.ref, got, tt.want)
			}
		})
	}
}

func TestScreenAngle_Periodic(t *testing.T) {
	// 10° and 370° differ by exactly 2π, so they draw at the same spot
	a := ScreenAngle(10, 100)
	b := ScreenAngle(370, 100)
	if math.Abs(math.Cos(a)-math.Cos(b)) > 1e-9 || math.Abs(math.Sin(a)-math.Sin(b)) > 1e-9 {
		t.Errorf("angles %v and %v should be equivalent on screen", a, b)
	}
}

func TestNormalize360(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{0, 0},
		{359.5, 359.5},
		{360, 0},
		{361, 1},
		{-1, 359},
		{-360, 0},
		{725, 5},
		{-1e-20, 0},
	}

	for _, tt := range tests {
		got := Normalize360(tt.input)
		if math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("Normalize360(%v) = %v, want %v", tt.input, got, tt.expected)
		}
		if got < 0 || got >= 360 {
			t.Errorf("Normalize360(%v) = %v out of range", tt.input, got)
		}
	}
}

func TestSeparationDeg(t *testing.T) {
	tests := []struct {
		a, b float64
		want float64
	}{
		{10, 20, 10},
		{20, 10, 10},
		{359, 1, 2},
		{1, 359, 2},
		{0, 180, 180},
		{90, 270, 180},
	}

	for _, tt := range tests {
		got := SeparationDeg(tt.a, tt.b)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("SeparationDeg(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestPolarToXY(t *testing.T) {
	// ascendant direction: angle π points left
	x, y := PolarToXY(math.Pi, 100)
	if math.Abs(x+100) > 1e-9 || math.Abs(y) > 1e-9 {
		t.Errorf("PolarToXY(π, 100) = (%v, %v), want (-100, 0)", x, y)
	}

	x, y = PolarToXY(math.Pi/2, 50)
	if math.Abs(x) > 1e-9 || math.Abs(y-50) > 1e-9 {
		t.Errorf("PolarToXY(π/2, 50) = (%v, %v), want (0, 50)", x, y)
	}
}
