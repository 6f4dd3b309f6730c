package printdesk

import (
	"bytes"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	deskClearColor = color.RGBA{46, 42, 56, 255}
	slotColor      = color.RGBA{28, 25, 34, 255}
	keptDotColor   = color.RGBA{240, 196, 60, 255}
	cardShadow     = color.RGBA{0, 0, 0, 80}
)

// DeskView renders a Desk's floating prints bottom-to-top. Each record's
// JPEG is decoded to a texture once and cached by record id; discarding an
// object releases its texture on the next Sweep.
type DeskView struct {
	desk  *Desk
	cache map[string]*ebiten.Image
	live  map[string]bool // scratch set for Sweep
}

// NewDeskView creates a view for desk.
func NewDeskView(desk *Desk) *DeskView {
	return &DeskView{
		desk:  desk,
		cache: make(map[string]*ebiten.Image),
		live:  make(map[string]bool),
	}
}

// Draw renders the desk background, the print slot, and every object in
// z-order with its drop shadow and kept indicator.
func (v *DeskView) Draw(screen *ebiten.Image) {
	screen.Fill(deskClearColor)

	// Slot graphic at the eject origin.
	fillRect(screen, v.desk.SlotX-cardWidth/2-12, v.desk.SlotY-14, cardWidth+24, 14, slotColor)

	for _, o := range v.desk.ByZOrder() {
		tex := v.texture(o.Record)
		if tex == nil {
			continue
		}
		v.drawCard(screen, o, tex)
	}
}

// drawCard draws one floating print with the object's full transform.
func (v *DeskView) drawCard(screen *ebiten.Image, o *FloatingObject, tex *ebiten.Image) {
	texW := float64(tex.Bounds().Dx())
	if texW <= 0 {
		return
	}
	fit := o.Width / texW
	rad := o.RotationDegrees * math.Pi / 180

	// Shadow: the same card, darkened and offset, drawn first.
	var shadow ebiten.DrawImageOptions
	shadow.GeoM.Scale(fit, fit)
	shadow.GeoM.Translate(-o.Width/2, -o.Height/2)
	shadow.GeoM.Scale(o.Scale, o.Scale)
	shadow.GeoM.Rotate(rad)
	shadow.GeoM.Translate(o.X+4, o.Y+6)
	shadow.ColorScale.Scale(0, 0, 0, float32(cardShadow.A)/255)
	screen.DrawImage(tex, &shadow)

	var op ebiten.DrawImageOptions
	op.GeoM.Scale(fit, fit)
	op.GeoM.Translate(-o.Width/2, -o.Height/2)
	op.GeoM.Scale(o.Scale, o.Scale)
	op.GeoM.Rotate(rad)
	op.GeoM.Translate(o.X, o.Y)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(tex, &op)

	if o.Kept {
		// Kept indicator rides the card's bottom-right corner.
		lx := o.Width/2 - 14
		ly := o.Height/2 - 14
		wx, wy := objectAffine(o).Apply(lx, ly)
		fillRect(screen, wx-4, wy-4, 8, 8, keptDotColor)
	}
}

// texture returns the cached texture for rec, decoding it on first use.
// A record whose bytes fail to decode renders nothing (and is retried next
// frame only if re-requested with fresh bytes, which cannot happen — records
// are immutable — so the nil is cached too).
func (v *DeskView) texture(rec *PrintRecord) *ebiten.Image {
	if tex, ok := v.cache[rec.ID]; ok {
		return tex
	}
	img, err := DecodeSource(bytes.NewReader(rec.Bytes))
	if err != nil {
		v.cache[rec.ID] = nil
		return nil
	}
	tex := ebiten.NewImageFromImage(img)
	v.cache[rec.ID] = tex
	return tex
}

// Sweep releases textures for records no longer on the desk. Call after
// discards (or once in a while); harmless to call every frame.
func (v *DeskView) Sweep() {
	clear(v.live)
	for _, o := range v.desk.Objects() {
		v.live[o.Record.ID] = true
	}
	for id, tex := range v.cache {
		if !v.live[id] {
			if tex != nil {
				tex.Deallocate()
			}
			delete(v.cache, id)
		}
	}
}
