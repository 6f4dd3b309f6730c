package printdesk

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Editing bounds. Deliberately wider than the desk's post-print bounds: the
// editor is where the crop is chosen, the desk only nudges a finished card.
const (
	editorScaleMin = 0.2
	editorScaleMax = 3.0
	editorRotStep  = 90.0
	editorRotHold  = 1.5 // degrees per frame while an arrow key is held
	wheelZoomRate  = 0.05
	editorMargin   = 40 // screen pixels around the paper
)

// previewTints are the cheap filter approximations used only for live
// feedback: a translucent overlay per variant instead of the per-pixel pass.
// The committed result always comes from ApplyFilter via the Compositor,
// never from this table.
var previewTints = map[FilterVariant]color.RGBA{
	FilterGrayscale: {128, 128, 128, 115},
	FilterSepia:     {112, 66, 20, 95},
	FilterVintage:   {255, 178, 80, 60},
	FilterCool:      {80, 120, 255, 55},
}

// Editor is the live preview surface for one pending print. While mounted it
// re-renders every frame from the current TransformState, frame, filter, and
// caption, using the same placement contract as the Compositor
// ([PlacementAffine] — shared by construction). Confirm freezes the state and
// runs the real Compositor; Dismiss releases GPU resources.
type Editor struct {
	Frame     FrameVariant
	Filter    FilterVariant
	Caption   string
	Transform TransformState

	comp   *Compositor
	src    image.Image // retained for the full-resolution compose
	srcTex *ebiten.Image
	active bool

	region       *ebiten.Image // offscreen photo-region buffer
	regionFrame  FrameVariant  // frame the buffer was sized for
	captionTex   *ebiten.Image
	captionText  string
	dragging     bool
	lastX, lastY int
	rWasDown     bool
	viewScale    float64
	viewX, viewY float64
}

// NewEditor creates an editor for the decoded source image.
func NewEditor(src image.Image, comp *Compositor) *Editor {
	return &Editor{
		Frame:     FrameSquare,
		Transform: TransformState{Scale: 1},
		comp:      comp,
		src:       src,
		srcTex:    ebiten.NewImageFromImage(src),
		active:    true,
	}
}

// Active reports whether the editor is still mounted. The host loop must
// stop calling Update/Draw once this returns false.
func (e *Editor) Active() bool {
	return e.active
}

// Update processes one frame of editing input: drag pans, the wheel zooms,
// R rotates in 90° steps, and holding an arrow key rotates continuously.
func (e *Editor) Update() {
	if !e.active {
		return
	}

	_, wy := ebiten.Wheel()
	if wy != 0 {
		e.SetScale(e.Transform.Scale * (1 + wy*wheelZoomRate))
	}

	x, y := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	switch {
	case pressed && !e.dragging:
		e.dragging = true
		e.lastX, e.lastY = x, y
	case pressed && e.dragging:
		if e.viewScale > 0 {
			// Screen deltas become region-space pan deltas.
			e.Pan(float64(x-e.lastX)/e.viewScale, float64(y-e.lastY)/e.viewScale)
		}
		e.lastX, e.lastY = x, y
	case !pressed:
		e.dragging = false
	}

	rDown := ebiten.IsKeyPressed(ebiten.KeyR)
	if rDown && !e.rWasDown {
		e.RotateStep()
	}
	e.rWasDown = rDown

	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		e.SetRotation(e.Transform.RotationDegrees - editorRotHold)
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		e.SetRotation(e.Transform.RotationDegrees + editorRotHold)
	}
}

// Pan shifts the source placement by (dx, dy) photo-region pixels.
func (e *Editor) Pan(dx, dy float64) {
	e.Transform.PanX += dx
	e.Transform.PanY += dy
}

// SetScale sets the placement scale, clamped to the editing bounds.
func (e *Editor) SetScale(s float64) {
	e.Transform.Scale = clamp(s, editorScaleMin, editorScaleMax)
}

// RotateStep advances the placement rotation by one fixed step.
func (e *Editor) RotateStep() {
	e.Transform.RotationDegrees += editorRotStep
	for e.Transform.RotationDegrees >= 360 {
		e.Transform.RotationDegrees -= 360
	}
}

// SetRotation sets the placement rotation directly (continuous gesture path).
func (e *Editor) SetRotation(deg float64) {
	e.Transform.RotationDegrees = deg
}

// Confirm freezes the current state and composites the final print. The
// TransformState and selections are handed to the Compositor exactly as they
// stand — nothing is re-derived.
func (e *Editor) Confirm() (*PrintRecord, error) {
	return e.comp.Compose(e.src, e.Transform, e.Frame, e.Filter, e.Caption)
}

// Dismiss unmounts the editor and releases its GPU images. After Dismiss the
// editor ignores Update and draws nothing; there is no dangling render work.
func (e *Editor) Dismiss() {
	if !e.active {
		return
	}
	e.active = false
	e.dragging = false
	if e.srcTex != nil {
		e.srcTex.Deallocate()
		e.srcTex = nil
	}
	if e.region != nil {
		e.region.Deallocate()
		e.region = nil
	}
	if e.captionTex != nil {
		e.captionTex.Deallocate()
		e.captionTex = nil
	}
}

// Draw renders the live preview centered on screen: paper, letterboxed photo
// region with the source placed per the shared contract, filter tint, and
// caption band.
func (e *Editor) Draw(screen *ebiten.Image) {
	if !e.active {
		return
	}
	spec := LookupFrame(e.Frame)
	sw := float64(screen.Bounds().Dx())
	sh := float64(screen.Bounds().Dy())
	if spec.CanvasWidth <= 0 || spec.CanvasHeight <= 0 {
		return
	}

	fitW := (sw - 2*editorMargin) / float64(spec.CanvasWidth)
	fitH := (sh - 2*editorMargin) / float64(spec.CanvasHeight)
	e.viewScale = fitW
	if fitH < fitW {
		e.viewScale = fitH
	}
	e.viewX = (sw - float64(spec.CanvasWidth)*e.viewScale) / 2
	e.viewY = (sh - float64(spec.CanvasHeight)*e.viewScale) / 2

	// Paper.
	fillRect(screen, e.viewX, e.viewY,
		float64(spec.CanvasWidth)*e.viewScale, float64(spec.CanvasHeight)*e.viewScale,
		paperColor)

	e.drawRegion(screen, spec)
	e.drawCaptionPreview(screen, spec)
}

// drawRegion renders the photo region into an offscreen buffer (so the source
// clips at the region boundary exactly as in the compositor) and blits it.
func (e *Editor) drawRegion(screen *ebiten.Image, spec FrameSpec) {
	if e.region == nil || e.regionFrame != e.Frame {
		if e.region != nil {
			e.region.Deallocate()
		}
		e.region = ebiten.NewImage(spec.PhotoRegionWidth, spec.PhotoRegionHeight)
		e.regionFrame = e.Frame
	}
	e.region.Fill(letterboxColor)

	sb := e.src.Bounds()
	m := PlacementAffine(e.Transform,
		float64(spec.PhotoRegionWidth), float64(spec.PhotoRegionHeight),
		float64(sb.Dx()), float64(sb.Dy()))

	var op ebiten.DrawImageOptions
	op.GeoM.SetElement(0, 0, m[0])
	op.GeoM.SetElement(1, 0, m[1])
	op.GeoM.SetElement(0, 1, m[2])
	op.GeoM.SetElement(1, 1, m[3])
	op.GeoM.SetElement(0, 2, m[4])
	op.GeoM.SetElement(1, 2, m[5])
	op.Filter = ebiten.FilterLinear
	e.region.DrawImage(e.srcTex, &op)

	if tint, ok := previewTints[e.Filter]; ok {
		fillRect(e.region, 0, 0,
			float64(spec.PhotoRegionWidth), float64(spec.PhotoRegionHeight), tint)
	}

	var blit ebiten.DrawImageOptions
	blit.GeoM.Scale(e.viewScale, e.viewScale)
	blit.GeoM.Translate(
		e.viewX+float64(spec.SidePadding)*e.viewScale,
		e.viewY+float64(spec.TopPadding)*e.viewScale)
	blit.Filter = ebiten.FilterLinear
	screen.DrawImage(e.region, &blit)
}

// drawCaptionPreview rasterizes the caption once per text change and draws it
// centered in the bottom band. The compose-time rotation jitter is cosmetic
// and intentionally absent here.
func (e *Editor) drawCaptionPreview(screen *ebiten.Image, spec FrameSpec) {
	text := e.Caption
	if text == "" {
		text = e.comp.now().Format(dateLayout)
	}
	if e.captionTex == nil || e.captionText != text {
		if e.captionTex != nil {
			e.captionTex.Deallocate()
		}
		e.captionTex = rasterizeCaption(text)
		e.captionText = text
	}
	if e.captionTex == nil {
		return
	}

	b := e.captionTex.Bounds()
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
	op.GeoM.Scale(captionScale*e.viewScale, captionScale*e.viewScale)
	op.GeoM.Translate(
		e.viewX+float64(spec.CanvasWidth)/2*e.viewScale,
		e.viewY+(float64(spec.CanvasHeight)-float64(spec.BottomPadding)/2)*e.viewScale)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(e.captionTex, &op)
}

// rasterizeCaption renders text with the bitmap face into a new texture.
// Returns nil for zero-width text.
func rasterizeCaption(text string) *ebiten.Image {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	if width <= 0 {
		return nil
	}
	label := image.NewRGBA(image.Rect(0, 0, width, face.Height))
	d := font.Drawer{
		Dst:  label,
		Src:  image.NewUniform(inkColor),
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(text)
	return ebiten.NewImageFromImage(label)
}
