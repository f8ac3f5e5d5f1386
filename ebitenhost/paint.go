package ebitenhost

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/motion"
)

// Color represents an RGBA color with components in [0, 1]. Not
// premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default fill.
var ColorWhite = Color{1, 1, 1, 1}

func (c Color) rgba() color.RGBA {
	return color.RGBA{
		R: uint8(c.R*c.A*255 + 0.5),
		G: uint8(c.G*c.A*255 + 0.5),
		B: uint8(c.B*c.A*255 + 0.5),
		A: uint8(c.A*255 + 0.5),
	}
}

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// elementMatrix maps the unit square onto el's box in screen space with t
// applied about the pivot.
func elementMatrix(el *motion.Element, vp *motion.Viewport, t Transform) [6]float64 {
	b := el.Bounds()
	ox, oy := b.X, b.Y
	if vp != nil {
		ox, oy = vp.PageToScreen(ox, oy)
	}
	unit := [6]float64{b.Width, 0, 0, b.Height, 0, 0}
	return multiplyAffine(t.local(ox, oy), unit)
}

// FillElement paints el's box as a solid rectangle, transformed by t and
// positioned through the viewport scroll. Fully transparent results are
// skipped.
func FillElement(screen *ebiten.Image, el *motion.Element, vp *motion.Viewport, t Transform, c Color) {
	a := c.A * t.Alpha
	if a <= 0 || el.IsDisposed() {
		return
	}
	if a > 1 {
		a = 1
	}
	var op ebiten.DrawImageOptions
	op.GeoM = geoM(elementMatrix(el, vp, t))
	op.ColorScale.Scale(float32(c.R), float32(c.G), float32(c.B), 1)
	op.ColorScale.ScaleAlpha(float32(a))
	screen.DrawImage(ensureWhitePixel(), &op)
}

// ElementCorners returns the four screen-space corners of el's transformed
// box, clockwise from top-left.
func ElementCorners(el *motion.Element, vp *motion.Viewport, t Transform) [4]motion.Vec2 {
	m := elementMatrix(el, vp, t)
	var out [4]motion.Vec2
	for i, p := range [4][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}} {
		out[i].X, out[i].Y = transformPoint(m, p[0], p[1])
	}
	return out
}
