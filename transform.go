package printdesk

import "math"

// Affine is a 2D affine matrix in column-major [a, b, c, d, tx, ty] form:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Affine [6]float64

// identityAffine is the identity affine matrix.
var identityAffine = Affine{1, 0, 0, 1, 0, 0}

// Mul multiplies two affine matrices: result = m * n (n applied first).
func (m Affine) Mul(n Affine) Affine {
	return Affine{
		m[0]*n[0] + m[2]*n[1],
		m[1]*n[0] + m[3]*n[1],
		m[0]*n[2] + m[2]*n[3],
		m[1]*n[2] + m[3]*n[3],
		m[0]*n[4] + m[2]*n[5] + m[4],
		m[1]*n[4] + m[3]*n[5] + m[5],
	}
}

// Invert computes the inverse affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ≈ 0).
func (m Affine) Invert() Affine {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityAffine
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Affine{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// Apply transforms the point (x, y) by the matrix.
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// translateAffine returns a pure translation matrix.
func translateAffine(tx, ty float64) Affine {
	return Affine{1, 0, 0, 1, tx, ty}
}

// rotateScaleAffine returns rotation by rad followed by uniform scale s,
// both about the origin.
func rotateScaleAffine(rad, s float64) Affine {
	sin, cos := math.Sincos(rad)
	return Affine{cos * s, sin * s, -sin * s, cos * s, 0, 0}
}

// PlacementAffine maps source-image pixel coordinates into photo-region pixel
// coordinates for the given TransformState. This is the single geometric
// contract shared by the Compositor and the Editor preview: the region's
// center is translated by (PanX, PanY), rotated by RotationDegrees, scaled by
// Scale, and the source image is drawn centered at that point.
//
// Order is translate → rotate → scale, all about the region center. Both
// render paths build their matrices through this function; deviating from it
// anywhere breaks the preview/export pixel match.
func PlacementAffine(t TransformState, regionW, regionH, srcW, srcH float64) Affine {
	s := t.Scale
	if s <= 0 {
		s = 1
	}
	rad := t.RotationDegrees * math.Pi / 180

	center := translateAffine(regionW/2+t.PanX, regionH/2+t.PanY)
	spin := rotateScaleAffine(rad, s)
	recenter := translateAffine(-srcW/2, -srcH/2)
	return center.Mul(spin).Mul(recenter)
}

// objectAffine maps a FloatingObject's local card coordinates (origin at the
// card center) to desk coordinates. Used for hit testing and rendering.
func objectAffine(o *FloatingObject) Affine {
	rad := o.RotationDegrees * math.Pi / 180
	return translateAffine(o.X, o.Y).Mul(rotateScaleAffine(rad, o.Scale))
}

// objectContains reports whether the desk-space point (x, y) falls inside the
// object's card. The point is pulled back into local space via the inverse
// affine, then tested against the centered card rectangle.
func objectContains(o *FloatingObject, x, y float64) bool {
	lx, ly := objectAffine(o).Invert().Apply(x, y)
	return lx >= -o.Width/2 && lx <= o.Width/2 &&
		ly >= -o.Height/2 && ly <= o.Height/2
}
