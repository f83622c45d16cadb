package boot

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestInterpolate(t *testing.T) {
	tests := []struct {
		name string
		p    float64
		in   []float64
		out  []float64
		want float64
	}{
		{"below range clamps", -0.5, []float64{0, 1}, []float64{0, 10}, 0},
		{"above range clamps", 2, []float64{0, 1}, []float64{0, 10}, 10},
		{"start", 0, []float64{0, 1}, []float64{3, 7}, 3},
		{"midpoint", 0.5, []float64{0, 1}, []float64{0, 10}, 5},
		{"second segment", 0.75, []float64{0, 0.5, 1}, []float64{0, 1, 0}, 0.5},
		{"descending output", 0.25, []float64{0, 1}, []float64{1, 0}, 0.75},
		{"offset range", 0.3, []float64{0.2, 0.4}, []float64{0, 1}, 0.5},
		{"exact knot", 0.5, []float64{0, 0.5, 1}, []float64{0, 4, 0}, 4},
		{"duplicate knot", 0.5, []float64{0, 0.5, 0.5, 1}, []float64{0, 1, 2, 2}, 1},
		{"mismatched lengths", 0.5, []float64{0, 1}, []float64{1}, 0},
		{"empty", 0.5, nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Interpolate(tt.p, tt.in, tt.out); !approx(got, tt.want) {
				t.Errorf("Interpolate(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestAt(t *testing.T) {
	start := At(0)
	if start.CrosshairOpacity != 0 || !approx(start.CrosshairScale, 0.6) {
		t.Errorf("start crosshair = %v/%v", start.CrosshairOpacity, start.CrosshairScale)
	}
	if start.Opacity != 1 || start.TitleReveal != 0 || start.EmblemOpacity != 0 {
		t.Errorf("unexpected start frame %+v", start)
	}

	mid := At(5000.0 / 9300.0)
	if mid.FrameOpacity != 1 || mid.TitleOpacity != 1 {
		t.Errorf("frame and title should be visible at 5s: %+v", mid)
	}
	if mid.TitleReveal <= 0 || mid.TitleReveal >= 1 {
		t.Errorf("title should be partly revealed at 5s, got %v", mid.TitleReveal)
	}

	end := At(1)
	if end.Opacity != 0 || end.TitleReveal != 1 || end.ScanlineY != 1 {
		t.Errorf("unexpected end frame %+v", end)
	}

	if At(-1) != start || At(3) != end {
		t.Error("progress outside [0,1] should clamp")
	}
}

func TestAtChannelsBounded(t *testing.T) {
	for i := 0; i <= 100; i++ {
		f := At(float64(i) / 100)
		for name, v := range map[string]float64{
			"crosshair": f.CrosshairOpacity,
			"scale":     f.CrosshairScale,
			"emblem":    f.EmblemOpacity,
			"frame":     f.FrameOpacity,
			"title":     f.TitleOpacity,
			"reveal":    f.TitleReveal,
			"scanline":  f.ScanlineY,
			"opacity":   f.Opacity,
		} {
			if v < 0 || v > 1 {
				t.Errorf("p=%d%%: %s = %v out of [0,1]", i, name, v)
			}
		}
	}
}
