package render

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

const legendHeight = 28

var legendFace = sync.OnceValues(func() (font.Face, error) {
	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return truetype.NewFace(ttfFont, &truetype.Options{
		Size:    12,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
})

// LegendText is the footer line for s.
func LegendText(s Scene) string {
	return fmt.Sprintf("parts %d  screws %d  template %d°", len(s.Parts), len(s.Screws), s.TemplateRotation)
}

func (r *renderer) legend() {
	dc := r.dc
	top := r.scene.Mapper.CanvasHeight
	width := r.scene.Mapper.CanvasWidth

	dc.DrawRectangle(0, top, width, legendHeight)
	dc.SetColor(Darken(r.bg, 8))
	dc.Fill()

	face, err := legendFace()
	if err != nil {
		return
	}
	dc.SetFontFace(face)
	dc.SetColor(Darken(r.bg, 70))
	dc.DrawStringAnchored(LegendText(r.scene), 10, top+legendHeight/2, 0, 0.5)
}
