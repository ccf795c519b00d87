// Package template loads and prepares the bitmaps drawn faintly under the board.
//
// Imported pictures go through the same adjustment the image editor offers (scale,
// quarter turns and offset) and are rendered onto a canvas with the board's
// proportions. Presets and keyword patterns are drawn procedurally.
package template

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"net/http"
	"os"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	_ "golang.org/x/image/webp"

	"screwboard/internal/geometry"
	"screwboard/internal/layout"
)

var (
	// ErrNotImage means the file is not an image at all.
	ErrNotImage = errors.New("not an image file")
	// ErrDecode means the file looked like an image but could not be read.
	ErrDecode = errors.New("failed to decode image")
	// ErrOptions means editor settings are out of range.
	ErrOptions = errors.New("invalid image settings")
)

// Image editor limits, in percent.
const (
	MinScale  = 50
	MaxScale  = 200
	MaxOffset = 50
)

// Canvas is the board-shaped target the edited picture is rendered onto: the grid
// with 50px cells and 3px gaps.
var Canvas = layout.Board{
	GridWidth:  12,
	GridHeight: 19,
	Metrics:    geometry.Metrics{CellSize: 50, Gap: 3},
}

// Import reads an image file. Files are sniffed by content, not extension.
func Import(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open template: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a PNG, JPEG, GIF or WebP image from r.
func Decode(r io.Reader) (image.Image, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(512)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	if kind := http.DetectContentType(head); !strings.HasPrefix(kind, "image/") {
		return nil, fmt.Errorf("%w: %s", ErrNotImage, kind)
	}
	img, _, err := image.Decode(br)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}

// Options are the image editor settings.
type Options struct {
	Scale    int // percent of the canvas size
	Rotation int // degrees clockwise, a quarter turn
	OffsetX  int // percent of the canvas width
	OffsetY  int // percent of the canvas height
}

// DefaultOptions fills the canvas with the picture as is.
func DefaultOptions() Options {
	return Options{Scale: 100}
}

// Validate reports settings outside the editor's ranges.
func (o Options) Validate() error {
	switch {
	case o.Scale < MinScale || o.Scale > MaxScale:
		return fmt.Errorf("%w: scale %d%% not in %d..%d", ErrOptions, o.Scale, MinScale, MaxScale)
	case o.Rotation%90 != 0 || o.Rotation < 0 || o.Rotation >= 360:
		return fmt.Errorf("%w: rotation %d°", ErrOptions, o.Rotation)
	case abs(o.OffsetX) > MaxOffset || abs(o.OffsetY) > MaxOffset:
		return fmt.Errorf("%w: offset %d%%,%d%% beyond ±%d", ErrOptions, o.OffsetX, o.OffsetY, MaxOffset)
	}
	return nil
}

// Apply renders src onto a transparent Canvas-sized image: stretched to Scale
// percent of the canvas, turned about its centre, then moved by the offsets.
// Whatever falls outside the canvas is cut off.
func Apply(src image.Image, o Options) (*image.RGBA, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if src.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrDecode)
	}
	w, h := Canvas.TotalSize()
	dst := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	draw.CatmullRom.Transform(dst, Transform(src.Bounds(), o), src, src.Bounds(), draw.Over, nil)
	return dst, nil
}

// Transform maps pixels of src to Canvas pixels for o.
func Transform(src image.Rectangle, o Options) f64.Aff3 {
	w, h := Canvas.TotalSize()
	scale := float64(o.Scale) / 100
	sw, sh := w*scale, h*scale
	a := sw / float64(src.Dx())
	b := sh / float64(src.Dy())

	// Source pixels relative to the centre of the scaled picture.
	ox := -a*float64(src.Min.X) - sw/2
	oy := -b*float64(src.Min.Y) - sh/2

	cx := w/2 + float64(o.OffsetX)/100*w
	cy := h/2 + float64(o.OffsetY)/100*h
	sin, cos := math.Sincos(float64(o.Rotation) * math.Pi / 180)
	return f64.Aff3{
		a * cos, -b * sin, cx + cos*ox - sin*oy,
		a * sin, b * cos, cy + sin*ox + cos*oy,
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
