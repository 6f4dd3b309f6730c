package printdesk

import (
	"image"
	"math"
)

// colorTransform is one row-major 3x3 channel matrix plus an additive offset.
// Each filter variant is pure data in filterTable; there is no per-variant
// code path beyond the shared per-pixel loop.
type colorTransform struct {
	mat      [9]float64 // r' g' b' rows over (r, g, b)
	offset   [3]float64
	vignette bool // multiply-blend a radial vignette after the pixel pass
}

// filterTable maps each FilterVariant to its transform. FilterNone has no
// entry; ApplyFilter returns immediately for it (idempotence by construction).
var filterTable = map[FilterVariant]colorTransform{
	FilterGrayscale: {
		mat: [9]float64{
			0.3, 0.59, 0.11,
			0.3, 0.59, 0.11,
			0.3, 0.59, 0.11,
		},
	},
	FilterSepia: {
		mat: [9]float64{
			0.393, 0.769, 0.189,
			0.349, 0.686, 0.168,
			0.272, 0.534, 0.131,
		},
		vignette: true,
	},
	FilterVintage: {
		mat: [9]float64{
			1.1, 0, 0,
			0, 0.9, 0,
			0, 0, 0.8,
		},
		offset:   [3]float64{20, 10, 0},
		vignette: true,
	},
	FilterCool: {
		mat: [9]float64{
			0.9, 0, 0,
			0, 0.95, 0,
			0, 0, 1.2,
		},
	},
}

// Vignette shape: transparent inside a third of the region width, darkening
// toward the full width. The dark tone is a warm brown at 40% peak opacity.
const (
	vignetteInnerFrac = 1.0 / 3.0
	vignetteMaxAlpha  = 0.4
)

var vignetteTone = [3]float64{58, 28, 6}

// ApplyFilter runs the variant's per-pixel color transform over img in place,
// followed by the radial vignette for the variants that carry one. All output
// channels are clamped to [0, 255]; alpha is untouched. FilterNone is a no-op.
func ApplyFilter(img *image.RGBA, v FilterVariant) {
	ct, ok := filterTable[v]
	if !ok {
		return
	}

	bounds := img.Bounds()
	pix := img.Pix
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := img.PixOffset(bounds.Min.X, y)
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r := float64(pix[row])
			g := float64(pix[row+1])
			b := float64(pix[row+2])

			pix[row] = clamp8(ct.mat[0]*r + ct.mat[1]*g + ct.mat[2]*b + ct.offset[0])
			pix[row+1] = clamp8(ct.mat[3]*r + ct.mat[4]*g + ct.mat[5]*b + ct.offset[1])
			pix[row+2] = clamp8(ct.mat[6]*r + ct.mat[7]*g + ct.mat[8]*b + ct.offset[2])
			row += 4
		}
	}

	if ct.vignette {
		applyVignette(img)
	}
}

// applyVignette multiply-blends a radial gradient centered on the image:
// fully transparent at radius ≈ width/3, rising to vignetteMaxAlpha of the
// warm dark tone at radius ≈ width.
func applyVignette(img *image.RGBA) {
	bounds := img.Bounds()
	w := float64(bounds.Dx())
	h := float64(bounds.Dy())
	if w <= 0 || h <= 0 {
		return
	}
	cx := float64(bounds.Min.X) + w/2
	cy := float64(bounds.Min.Y) + h/2
	inner := w * vignetteInnerFrac
	outer := w
	span := outer - inner

	pix := img.Pix
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := img.PixOffset(bounds.Min.X, y)
		dy := float64(y) + 0.5 - cy
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dx := float64(x) + 0.5 - cx
			d := math.Sqrt(dx*dx + dy*dy)
			if d > inner {
				a := clamp((d-inner)/span, 0, 1) * vignetteMaxAlpha
				for c := 0; c < 3; c++ {
					orig := float64(pix[row+c])
					dark := orig * vignetteTone[c] / 255
					pix[row+c] = clamp8(orig*(1-a) + dark*a)
				}
			}
			row += 4
		}
	}
}

// clamp8 rounds and clamps a channel value to [0, 255]. No wraparound.
func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
