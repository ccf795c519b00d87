package template

import (
	"errors"
	"image"
	"math/rand/v2"
	"strings"
)

// ErrEmptyPrompt means no pattern description was given.
var ErrEmptyPrompt = errors.New("describe the pattern first")

var randomColors = []string{"#4ECDC4", "#FF6B6B", "#2ECC71", "#FFE66D"}

// Generate draws a pattern for a free-text description. Diagonal, star and flower
// keywords, in English or Russian, pick a motif; anything else gets 30 random
// squares drawn from rng.
func Generate(prompt string, rng *rand.Rand) (image.Image, error) {
	prompt = strings.ToLower(strings.TrimSpace(prompt))
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}
	dc := blank()
	switch {
	case containsAny(prompt, "диагональ", "diagonal"):
		stripes(dc, 60, 20)
	case containsAny(prompt, "звезд", "star"):
		dc.SetHexColor("#FFE66D")
		for y := 60; y < PatternSize; y += 120 {
			for x := 60; x < PatternSize; x += 120 {
				star(dc, float64(x), float64(y), 5, 30, 15)
			}
		}
	case containsAny(prompt, "цвет", "flower"):
		for y := 100; y < PatternSize; y += 180 {
			for x := 100; x < PatternSize; x += 180 {
				flower(dc, float64(x), float64(y), 40)
			}
		}
	default:
		for i := 0; i < 30; i++ {
			dc.SetHexColor(randomColors[rng.IntN(len(randomColors))])
			x := rng.Float64() * PatternSize
			y := rng.Float64() * PatternSize
			size := 20 + rng.Float64()*40
			dc.DrawRectangle(x-size/2, y-size/2, size, size)
			dc.Fill()
		}
	}
	return dc.Image(), nil
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
