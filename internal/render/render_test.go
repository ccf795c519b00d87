package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"screwboard/internal/geometry"
	"screwboard/internal/layout"
	"screwboard/internal/parts"
	"screwboard/internal/placement"
)

func TestLightenDarken(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		percent  float64
		fn       func(color.RGBA, float64) color.RGBA
		expected string
	}{
		{"lighten clamps", "#4ECDC4", 20, Lighten, "#81fff7"},
		{"darken", "#4ECDC4", 20, Darken, "#1b9a91"},
		{"darken black", "#000000", 60, Darken, "#000000"},
		{"lighten rounds down", "#101010", 15, Lighten, "#363636"},
		{"adjust negative", "#FF6B6B", -40, AdjustBrightness, "#990505"},
		{"adjust background", "#F7F7F7", -15, AdjustBrightness, "#d1d1d1"},
		{"adjust positive", "#000000", 10, AdjustBrightness, "#1a1a1a"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := ParseHex(tc.in)
			if err != nil {
				t.Fatalf("ParseHex(%q) error: %v", tc.in, err)
			}
			if got := Hex(tc.fn(c, tc.percent)); got != tc.expected {
				t.Errorf("got %s, expected %s", got, tc.expected)
			}
		})
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in       string
		expected string
		ok       bool
	}{
		{"#abc", "#aabbcc", true},
		{"FF6B6B", "#ff6b6b", true},
		{" #2ECC71 ", "#2ecc71", true},
		{"#12345", "", false},
		{"#zzzzzz", "", false},
		{"", "", false},
	}
	for _, tc := range tests {
		c, err := ParseHex(tc.in)
		if (err == nil) != tc.ok {
			t.Errorf("ParseHex(%q) error = %v, expected ok=%v", tc.in, err, tc.ok)
			continue
		}
		if tc.ok && Hex(c) != tc.expected {
			t.Errorf("ParseHex(%q) = %s, expected %s", tc.in, Hex(c), tc.expected)
		}
	}
}

func newScene() Scene {
	return Scene{
		Mapper:           layout.NewMapper(layout.DefaultBoard(), 700, 450),
		Background:       "#F7F7F7",
		TemplateRotation: 90,
	}
}

// sample reads the display pixel showing board-space point p.
func sample(img *image.RGBA, m layout.Mapper, p geometry.Point) color.RGBA {
	d := m.BoardToDisplay(p)
	return img.RGBAAt(int(math.Floor(d.X)), int(math.Floor(d.Y)))
}

func near(a, b uint8, tol int) bool {
	d := int(a) - int(b)
	return d >= -tol && d <= tol
}

func TestRenderSize(t *testing.T) {
	s := newScene()
	if b := Render(s).Bounds(); b.Dx() != 700 || b.Dy() != 450 {
		t.Errorf("Render() bounds = %v, expected 700x450", b)
	}
	s.Legend = true
	if b := Render(s).Bounds(); b.Dx() != 700 || b.Dy() != 450+legendHeight {
		t.Errorf("Render() with legend bounds = %v", b)
	}
}

func TestRenderGridHoles(t *testing.T) {
	s := newScene()
	img := Render(s)
	hole := sample(img, s.Mapper, s.Mapper.Board.Metrics.CellCenter(s.Mapper.Origin(), 0, 0))
	if !near(hole.R, 0xd1, 3) || !near(hole.G, 0xd1, 3) {
		t.Errorf("grid hole colour = %v, expected about #d1d1d1", hole)
	}
	corner := sample(img, s.Mapper, s.Mapper.CellToPixelOrigin(0, 0).Add(geometry.Pt(2, 2)))
	if !near(corner.R, 0xf7, 3) {
		t.Errorf("cell corner colour = %v, expected background", corner)
	}
}

func TestRenderPartAndHoles(t *testing.T) {
	s := newScene()
	s.Parts = []placement.Part{{Type: parts.Square, Color: "#FF6B6B", GridX: 0, GridY: 0, ID: 1}}
	img := Render(s)

	body := sample(img, s.Mapper, s.Mapper.CellToPixelOrigin(0, 1).Add(geometry.Pt(36, 17.5)))
	if body.R < 220 || body.G > 150 || body.B > 150 {
		t.Errorf("square body colour = %v, expected red", body)
	}
	hole := sample(img, s.Mapper, s.Mapper.Board.Metrics.CellCenter(s.Mapper.Origin(), 1, 1))
	if hole != white {
		t.Errorf("square hole colour = %v, expected white", hole)
	}
}

func TestRenderScrewSlot(t *testing.T) {
	s := newScene()
	s.Screws = []placement.Screw{{GridX: 5, GridY: 5, Color: "#FFE66D"}}
	img := Render(s)
	c := sample(img, s.Mapper, s.Mapper.Board.Metrics.CellCenter(s.Mapper.Origin(), 5, 5))
	if c.R > 60 || c.G > 60 || c.B > 60 {
		t.Errorf("screw centre colour = %v, expected the dark slot", c)
	}
}

func TestRenderHoverColour(t *testing.T) {
	tests := []struct {
		name     string
		canPlace bool
		check    func(color.RGBA) bool
	}{
		{"blocked is red", false, func(c color.RGBA) bool { return c.R > 240 && c.G < 190 }},
		{"placeable uses colour", true, func(c color.RGBA) bool { return c.R < 200 && c.G > 220 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newScene()
			s.Hover = &Hover{Cell: layout.Cell{Col: 10, Row: 0}, Type: parts.Circle, Color: "#2ECC71", CanPlace: tc.canPlace}
			img := Render(s)
			c := sample(img, s.Mapper, s.Mapper.CellToPixelOrigin(10, 1).Add(geometry.Pt(30, 10)))
			if !tc.check(c) {
				t.Errorf("hover colour = %v", c)
			}
		})
	}
}

func halfTemplate() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			c := color.RGBA{R: 0xff, A: 0xff}
			if x >= 10 {
				c = color.RGBA{B: 0xff, A: 0xff}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestRenderTemplateRotation(t *testing.T) {
	tests := []struct {
		rotation int
		check    func(color.RGBA) bool
	}{
		{0, func(c color.RGBA) bool { return c.R > 240 && c.B < 190 }},
		{180, func(c color.RGBA) bool { return c.B > 240 && c.R < 190 }},
		{90, func(c color.RGBA) bool { return near(c.R, 0xf7, 3) && near(c.B, 0xf7, 3) }},
	}
	for _, tc := range tests {
		s := newScene()
		s.Template = halfTemplate()
		s.TemplateRotation = tc.rotation
		img := Render(s)
		c := sample(img, s.Mapper, s.Mapper.CellToPixelOrigin(1, 1).Add(geometry.Pt(3, 3)))
		if !tc.check(c) {
			t.Errorf("rotation %d: template pixel = %v", tc.rotation, c)
		}
	}
}

func apply(a [6]float64, x, y float64) geometry.Point {
	return geometry.Pt(a[0]*x+a[1]*y+a[2], a[3]*x+a[4]*y+a[5])
}

func TestTemplateTransformCorners(t *testing.T) {
	m := layout.NewMapper(layout.DefaultBoard(), 700, 450)
	o := m.Origin()
	tw, th := m.Board.TotalSize()
	far := o.Add(geometry.Pt(tw, th))
	// One template pixel per board pixel keeps the scale exact.
	src := image.Rect(0, 0, int(tw), int(th))

	straight := TemplateTransform(m, src, 0)
	if got, expected := apply(straight, 0, 0), m.BoardToDisplay(o); got != expected {
		t.Errorf("rotation 0 maps (0,0) to %v, expected %v", got, expected)
	}
	if got, expected := apply(straight, tw, th), m.BoardToDisplay(far); got != expected {
		t.Errorf("rotation 0 maps the far corner to %v, expected %v", got, expected)
	}

	flipped := TemplateTransform(m, src, 180)
	got, expected := apply(flipped, 0, 0), m.BoardToDisplay(far)
	if math.Abs(got.X-expected.X) > 1e-9 || math.Abs(got.Y-expected.Y) > 1e-9 {
		t.Errorf("rotation 180 maps (0,0) to %v, expected %v", got, expected)
	}
}

func TestLegendText(t *testing.T) {
	s := newScene()
	s.Parts = make([]placement.Part, 2)
	s.Screws = make([]placement.Screw, 3)
	if got, expected := LegendText(s), "parts 2  screws 3  template 90°"; got != expected {
		t.Errorf("LegendText() = %q, expected %q", got, expected)
	}
}

func TestEncodePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, newScene()); err != nil {
		t.Fatalf("EncodePNG() error: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	if img.Bounds().Dx() != 700 {
		t.Errorf("decoded width = %d, expected 700", img.Bounds().Dx())
	}
}
