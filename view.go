package printdesk

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// whitePixel is a 1x1 white image used for solid color fills.
// Created lazily so headless compositor-only users never touch the GPU.
var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	return whitePixel
}

// fillRect draws a solid axis-aligned rectangle onto dst.
func fillRect(dst *ebiten.Image, x, y, w, h float64, c color.RGBA) {
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.Scale(
		float32(c.R)/255*float32(c.A)/255,
		float32(c.G)/255*float32(c.A)/255,
		float32(c.B)/255*float32(c.A)/255,
		float32(c.A)/255,
	)
	dst.DrawImage(ensureWhitePixel(), &op)
}
