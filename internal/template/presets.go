package template

import (
	"fmt"
	"image"
	"math"

	"github.com/fogleman/gg"
)

// PatternSize is the side of preset and generated patterns.
const PatternSize = 400

// Preset names a built-in pattern.
type Preset string

const (
	Grid     Preset = "grid"
	Diagonal Preset = "diagonal"
	Stars    Preset = "stars"
	Flower   Preset = "flower"
)

// Presets lists the built-in patterns in menu order.
func Presets() []Preset {
	return []Preset{Grid, Diagonal, Stars, Flower}
}

// ParsePreset looks a preset up by name.
func ParsePreset(name string) (Preset, error) {
	for _, p := range Presets() {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown preset %q", name)
}

// Image draws the preset.
func (p Preset) Image() image.Image {
	dc := blank()
	switch p {
	case Grid:
		dc.SetHexColor("#ccc")
		dc.SetLineWidth(2)
		for x := 0; x < PatternSize; x += 40 {
			dc.DrawLine(float64(x), 0, float64(x), PatternSize)
			dc.Stroke()
		}
		for y := 0; y < PatternSize; y += 40 {
			dc.DrawLine(0, float64(y), PatternSize, float64(y))
			dc.Stroke()
		}
	case Diagonal:
		stripes(dc, 50, 15)
	case Stars:
		dc.SetHexColor("#FFE66D")
		for y := 60; y < PatternSize; y += 100 {
			for x := 60; x < PatternSize; x += 100 {
				star(dc, float64(x), float64(y), 5, 25, 12)
			}
		}
	case Flower:
		for y := 80; y < PatternSize; y += 160 {
			for x := 80; x < PatternSize; x += 160 {
				flower(dc, float64(x), float64(y), 35)
			}
		}
	}
	return dc.Image()
}

func blank() *gg.Context {
	dc := gg.NewContext(PatternSize, PatternSize)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetLineCapButt()
	return dc
}

// stripes draws 45° lines running down to the right, step pixels apart.
func stripes(dc *gg.Context, step int, width float64) {
	dc.SetHexColor("#4ECDC4")
	dc.SetLineWidth(width)
	for i := -PatternSize; i < 2*PatternSize; i += step {
		dc.DrawLine(float64(i), 0, float64(i+PatternSize), PatternSize)
		dc.Stroke()
	}
}

// star fills a star with the given number of spikes, starting at the top spike.
func star(dc *gg.Context, cx, cy float64, spikes int, outer, inner float64) {
	rot := math.Pi / 2 * 3
	step := math.Pi / float64(spikes)
	dc.MoveTo(cx, cy-outer)
	for i := 0; i < spikes; i++ {
		dc.LineTo(cx+math.Cos(rot)*outer, cy+math.Sin(rot)*outer)
		rot += step
		dc.LineTo(cx+math.Cos(rot)*inner, cy+math.Sin(rot)*inner)
		rot += step
	}
	dc.ClosePath()
	dc.Fill()
}

// flower draws six red petals around a yellow centre.
func flower(dc *gg.Context, cx, cy, radius float64) {
	dc.SetHexColor("#FF6B6B")
	for i := 0; i < 6; i++ {
		angle := math.Pi * 2 * float64(i) / 6
		dc.DrawCircle(cx+math.Cos(angle)*radius/2, cy+math.Sin(angle)*radius/2, radius/2.5)
		dc.Fill()
	}
	dc.SetHexColor("#FFE66D")
	dc.DrawCircle(cx, cy, radius/3)
	dc.Fill()
}
