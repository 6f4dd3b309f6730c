package printdesk

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 3 float64 fields on a FloatingObject
// simultaneously. The Desk drives lifecycle motion with these; call
// Update(dt) each frame until Done.
//
// There is no global animation manager — the Desk updates the active group of
// each object during its own Update pass.
type TweenGroup struct {
	tweens [3]*gween.Tween
	count  int
	fields [3]*float64
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenEject animates an object straight down from its slot position by
// distance pixels, simulating the print sliding out of the slot.
func TweenEject(o *FloatingObject, distance float64, duration float32) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(float32(o.Y), float32(o.Y+distance), duration, ease.OutQuad)
	g.fields[0] = &o.Y
	return g
}

// TweenSettle animates an object's position and rotation to its rest values.
func TweenSettle(o *FloatingObject, toX, toY, toRot float64, duration float32) *TweenGroup {
	g := &TweenGroup{count: 3}
	g.tweens[0] = gween.New(float32(o.X), float32(toX), duration, ease.OutCubic)
	g.tweens[1] = gween.New(float32(o.Y), float32(toY), duration, ease.OutCubic)
	g.tweens[2] = gween.New(float32(o.RotationDegrees), float32(toRot), duration, ease.OutCubic)
	g.fields[0] = &o.X
	g.fields[1] = &o.Y
	g.fields[2] = &o.RotationDegrees
	return g
}

// TweenGlide animates an object's position to a target without touching
// rotation. Used for cosmetic moves of Idle objects (layout reset).
func TweenGlide(o *FloatingObject, toX, toY float64, duration float32) *TweenGroup {
	g := &TweenGroup{count: 2}
	g.tweens[0] = gween.New(float32(o.X), float32(toX), duration, ease.OutCubic)
	g.tweens[1] = gween.New(float32(o.Y), float32(toY), duration, ease.OutCubic)
	g.fields[0] = &o.X
	g.fields[1] = &o.Y
	return g
}
