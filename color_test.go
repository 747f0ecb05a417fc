package fireworks

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestHueToColorPeriodic(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for _, h := range []float64{1, 30, 90, 179.5, 200, 359} {
		a := HueToColor(rng, h)
		for _, shifted := range []float64{h + 360, h + 720, h - 360} {
			if b := HueToColor(rng, shifted); b != a {
				t.Errorf("HueToColor(%v) = %+v, HueToColor(%v) = %+v", h, a, shifted, b)
			}
		}
	}
}

func TestHueToColorSaturated(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for _, h := range []float64{0, 0, 0, 15, 60, 120, 240, 300, -45} {
		c := HueToColor(rng, h)
		hi := max(c.R, c.G, c.B)
		lo := min(c.R, c.G, c.B)
		if hi != 255 || lo != 0 {
			t.Errorf("HueToColor(%v) = %+v, want full saturation and value", h, c)
		}
		if c.A != 255 {
			t.Errorf("HueToColor(%v) alpha = %d, want 255", h, c.A)
		}
	}
}

func TestHueToColorPrimaries(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	tests := []struct {
		hue  float64
		want Color
	}{
		{360, Color{255, 0, 0, 255}},
		{120, Color{0, 255, 0, 255}},
		{240, Color{0, 0, 255, 255}},
	}
	for _, tt := range tests {
		if got := HueToColor(rng, tt.hue); got != tt.want {
			t.Errorf("HueToColor(%v) = %+v, want %+v", tt.hue, got, tt.want)
		}
	}
}

func TestColorHue(t *testing.T) {
	tests := []struct {
		c    Color
		want float64
	}{
		{ColorRed, 0},
		{Color{0, 255, 0, 255}, 120},
		{Color{0, 0, 255, 255}, 240},
	}
	for _, tt := range tests {
		if got := tt.c.Hue(); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%+v.Hue() = %v, want %v", tt.c, got, tt.want)
		}
	}
}

func TestSetAlphaClamps(t *testing.T) {
	tests := []struct {
		in   int
		want uint8
	}{
		{-10, 0},
		{0, 0},
		{128, 128},
		{255, 255},
		{400, 255},
	}
	for _, tt := range tests {
		c := SetAlpha(ColorGold, tt.in)
		if c.A != tt.want {
			t.Errorf("SetAlpha(%d).A = %d, want %d", tt.in, c.A, tt.want)
		}
		if c.R != ColorGold.R || c.G != ColorGold.G || c.B != ColorGold.B {
			t.Errorf("SetAlpha changed RGB: %+v", c)
		}
	}
	if !SetAlpha(ColorWhite, 0).Transparent() {
		t.Error("zero alpha should be transparent")
	}
}

func TestColorRGBA(t *testing.T) {
	r, g, b, a := Color{255, 0, 0, 128}.RGBA()
	// Non-premultiplied input comes out premultiplied.
	if a != 128*0x101 || r != 128*0x101 || g != 0 || b != 0 {
		t.Errorf("RGBA = (%d, %d, %d, %d)", r, g, b, a)
	}
}

func TestVectorAndRange(t *testing.T) {
	v := Vector{1, 2}.Add(Vector{3, 4}).Sub(Vector{1, 1}).Scale(2)
	if v != (Vector{6, 10}) {
		t.Errorf("vector ops = %+v, want {6 10}", v)
	}

	tests := []struct {
		r    Range
		x    float64
		want bool
	}{
		{Range{10, 20}, 15, true},
		{Range{10, 20}, 10, true},
		{Range{20, 10}, 15, true},
		{Range{10, 20}, 25, false},
		{Range{10, 20}, 5, false},
	}
	for _, tt := range tests {
		if got := tt.r.Contains(tt.x); got != tt.want {
			t.Errorf("%+v.Contains(%v) = %v, want %v", tt.r, tt.x, got, tt.want)
		}
	}
	if s := (Range{20, 10}).Span(); s != 10 {
		t.Errorf("Span = %v, want 10", s)
	}
}

func TestLookupFadeCurve(t *testing.T) {
	for _, name := range append(FadeCurveNames(), "") {
		curve, err := LookupFadeCurve(name)
		if err != nil {
			t.Fatalf("LookupFadeCurve(%q): %v", name, err)
		}
		if got := fadeAlpha(curve, 200, 0, 1); got != 200 {
			t.Errorf("%q at start = %d, want 200", name, got)
		}
		if got := fadeAlpha(curve, 200, 1, 1); got != 0 {
			t.Errorf("%q at end = %d, want 0", name, got)
		}
		prev := 255
		for e := 0.0; e <= 1; e += 0.05 {
			a := fadeAlpha(curve, 255, e, 1)
			if a > prev {
				t.Errorf("%q not monotonic at %v: %d > %d", name, e, a, prev)
			}
			prev = a
		}
	}
	if _, err := LookupFadeCurve("bounce-everywhere"); err == nil {
		t.Error("unknown curve should fail")
	}
}
