package printdesk

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	stddraw "image/draw"
	"image/jpeg"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
)

// Paper, letterbox, and ink tones used by the compositor.
var (
	paperColor     = color.RGBA{247, 243, 235, 255}
	letterboxColor = color.RGBA{16, 16, 16, 255}
	inkColor       = color.RGBA{70, 66, 74, 255}
	strokeColor    = color.RGBA{0, 0, 0, 70}
	shadowColor    = color.RGBA{0, 0, 0, 55}
)

const (
	jpegQuality      = 92
	captionScale     = 4.0 // basicfont glyphs scaled up for a stamped look
	captionJitterMax = 1.5 // degrees, either direction
	shadowOffset     = 5
	dateLayout       = "06.01.02" // YY.MM.DD
)

// Compositor renders confirmed edits into final print bitmaps. It is
// deterministic for identical inputs apart from the caption rotation jitter,
// which draws from the compositor's own rand source; seed it for bit-identical
// output in tests.
type Compositor struct {
	jitter *rand.Rand
	now    func() time.Time
}

// NewCompositor creates a compositor with time-seeded caption jitter.
func NewCompositor() *Compositor {
	return NewCompositorSeeded(time.Now().UnixNano())
}

// NewCompositorSeeded creates a compositor whose caption jitter draws from a
// fixed seed, making Compose fully deterministic.
func NewCompositorSeeded(seed int64) *Compositor {
	return &Compositor{
		jitter: rand.New(rand.NewSource(seed)),
		now:    time.Now,
	}
}

// Compose renders src into a final print and returns the immutable
// PrintRecord. The transform, frame, filter, and caption are used exactly as
// given — the Editor hands its frozen state here without re-derivation.
func (c *Compositor) Compose(src image.Image, t TransformState, frame FrameVariant, filter FilterVariant, caption string) (*PrintRecord, error) {
	canvas, err := c.renderCanvas(src, t, frame, filter, caption)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode print: %w", err)
	}

	return &PrintRecord{
		ID:        uuid.NewString(),
		Bytes:     buf.Bytes(),
		CreatedAt: c.now(),
		Caption:   caption,
		Filter:    filter,
		Frame:     frame,
	}, nil
}

// renderCanvas produces the full-resolution print canvas. Split from Compose
// so tests can assert on pixels before JPEG encoding.
func (c *Compositor) renderCanvas(src image.Image, t TransformState, frame FrameVariant, filter FilterVariant, caption string) (*image.RGBA, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil image", ErrDecode)
	}
	sb := src.Bounds()
	if sb.Dx() <= 0 || sb.Dy() <= 0 {
		return nil, fmt.Errorf("%w: empty image", ErrDecode)
	}

	spec := LookupFrame(frame)
	if spec.CanvasWidth <= 0 || spec.CanvasHeight <= 0 {
		// The closed frame table never supplies this; guard anyway.
		return nil, fmt.Errorf("invalid frame dimensions %dx%d", spec.CanvasWidth, spec.CanvasHeight)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, spec.CanvasWidth, spec.CanvasHeight))
	fillPaper(canvas)

	// Letterboxed photo region, source placed per the shared contract.
	region := image.NewRGBA(image.Rect(0, 0, spec.PhotoRegionWidth, spec.PhotoRegionHeight))
	stddraw.Draw(region, region.Bounds(), image.NewUniform(letterboxColor), image.Point{}, stddraw.Src)

	m := PlacementAffine(t,
		float64(spec.PhotoRegionWidth), float64(spec.PhotoRegionHeight),
		float64(sb.Dx()), float64(sb.Dy()))
	// Pull the source's bounds origin to (0,0) before placing.
	m = m.Mul(translateAffine(float64(-sb.Min.X), float64(-sb.Min.Y)))
	draw.CatmullRom.Transform(region, aff3(m), src, sb, draw.Over, nil)

	// Transform-then-filter: the filter sees exactly the placed pixels.
	ApplyFilter(region, filter)

	regionAt := image.Rect(spec.SidePadding, spec.TopPadding,
		spec.SidePadding+spec.PhotoRegionWidth, spec.TopPadding+spec.PhotoRegionHeight)

	// Drop shadow under the region for inset depth, then the region itself,
	// then the cut-border stroke on top.
	shadowAt := regionAt.Add(image.Pt(shadowOffset, shadowOffset))
	stddraw.Draw(canvas, shadowAt, image.NewUniform(shadowColor), image.Point{}, stddraw.Over)
	stddraw.Draw(canvas, regionAt, region, image.Point{}, stddraw.Src)
	strokeRect(canvas, regionAt, strokeColor)
	strokeRect(canvas, regionAt.Inset(1), color.RGBA{0, 0, 0, 30})

	text := caption
	if text == "" {
		text = c.now().Format(dateLayout)
	}
	jitterDeg := (c.jitter.Float64()*2 - 1) * captionJitterMax
	drawCaption(canvas, spec, text, jitterDeg)

	return canvas, nil
}

// fillPaper fills the canvas with the paper tone plus a faint deterministic
// texture. The noise is a pure hash of the pixel position — no rand state —
// so repeated composes are bit-identical.
func fillPaper(canvas *image.RGBA) {
	b := canvas.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := canvas.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x++ {
			n := paperNoise(x, y)
			canvas.Pix[row] = clamp8(float64(paperColor.R) + n)
			canvas.Pix[row+1] = clamp8(float64(paperColor.G) + n)
			canvas.Pix[row+2] = clamp8(float64(paperColor.B) + n)
			canvas.Pix[row+3] = 255
			row += 4
		}
	}
}

// paperNoise hashes a pixel position to a small brightness delta in [-3, 4].
func paperNoise(x, y int) float64 {
	h := uint32(x)*374761393 + uint32(y)*668265263
	h = (h ^ (h >> 13)) * 1274126177
	return float64(int(h>>29)) - 3
}

// strokeRect blends a 1px border just inside r.
func strokeRect(canvas *image.RGBA, r image.Rectangle, c color.RGBA) {
	u := image.NewUniform(c)
	top := image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1)
	bottom := image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y)
	left := image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y)
	right := image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y)
	for _, edge := range []image.Rectangle{top, bottom, left, right} {
		stddraw.Draw(canvas, edge, u, image.Point{}, stddraw.Over)
	}
}

// drawCaption rasterizes the caption at 1x with the bitmap face, then scales
// and rotates it onto the bottom band, centered horizontally at
// canvasHeight - bottomPadding/2.
func drawCaption(canvas *image.RGBA, spec FrameSpec, text string, jitterDeg float64) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	if width <= 0 {
		return
	}
	height := face.Height

	label := image.NewRGBA(image.Rect(0, 0, width, height))
	d := font.Drawer{
		Dst:  label,
		Src:  image.NewUniform(inkColor),
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(text)

	cx := float64(spec.CanvasWidth) / 2
	cy := float64(spec.CanvasHeight) - float64(spec.BottomPadding)/2
	rad := jitterDeg * math.Pi / 180

	m := translateAffine(cx, cy).
		Mul(rotateScaleAffine(rad, captionScale)).
		Mul(translateAffine(-float64(width)/2, -float64(height)/2))
	// Nearest keeps the blocky stamped look of the scaled bitmap glyphs.
	draw.NearestNeighbor.Transform(canvas, aff3(m), label, label.Bounds(), draw.Over, nil)
}

// aff3 converts an Affine to the row-major f64.Aff3 used by x/image/draw.
func aff3(m Affine) f64.Aff3 {
	return f64.Aff3{m[0], m[2], m[4], m[1], m[3], m[5]}
}
