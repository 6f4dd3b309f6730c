package printdesk

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// DeskInput feeds Ebitengine input state into a Desk's gesture entry points:
// mouse press/move/release drives drag, the wheel zooms the object under the
// cursor, and a two-finger touch drives pinch zoom/rotate.
//
// All gesture state lives here and is scoped to the active gesture — it is
// reset on every release and on Reset, so a desk unmounted mid-drag leaves no
// stale tracking behind.
type DeskInput struct {
	desk *Desk

	mouseDown bool
	touchIDs  []ebiten.TouchID

	pinchActive bool
	prevDist    float64
	prevAngle   float64
}

// NewDeskInput creates the input adapter for desk.
func NewDeskInput(desk *Desk) *DeskInput {
	return &DeskInput{desk: desk}
}

// Update reads the current input state and routes it to the desk.
// Call once per frame while the desk is mounted.
func (in *DeskInput) Update() {
	if in.updatePinch() {
		return // two-finger gesture suppresses single-pointer handling
	}

	x, y := ebiten.CursorPosition()
	fx, fy := float64(x), float64(y)

	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	switch {
	case pressed && !in.mouseDown:
		in.mouseDown = true
		in.desk.PointerDown(fx, fy)
	case pressed && in.mouseDown:
		in.desk.PointerMove(fx, fy)
	case !pressed && in.mouseDown:
		in.mouseDown = false
		in.desk.PointerUp()
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		in.desk.Zoom(fx, fy, 1+wy*0.1)
	}
}

// updatePinch tracks a two-finger gesture, reporting true while one is
// active. Distance ratio becomes a scale step, angle delta a rotation step.
func (in *DeskInput) updatePinch() bool {
	in.touchIDs = ebiten.AppendTouchIDs(in.touchIDs[:0])
	if len(in.touchIDs) < 2 {
		if in.pinchActive {
			in.pinchActive = false
			in.desk.PointerUp()
		}
		return false
	}

	x0, y0 := ebiten.TouchPosition(in.touchIDs[0])
	x1, y1 := ebiten.TouchPosition(in.touchIDs[1])
	dx := float64(x1 - x0)
	dy := float64(y1 - y0)
	dist := math.Sqrt(dx*dx + dy*dy)
	angle := math.Atan2(dy, dx)

	if !in.pinchActive {
		in.pinchActive = true
		// Acquire the object under the gesture center for the duration.
		cx := float64(x0+x1) / 2
		cy := float64(y0+y1) / 2
		in.desk.PointerDown(cx, cy)
	} else if in.prevDist > 0 {
		in.desk.Pinch(dist/in.prevDist, angleDeltaDegrees(in.prevAngle, angle))
	}
	in.prevDist = dist
	in.prevAngle = angle
	return true
}

// angleDeltaDegrees returns the shortest signed rotation from prev to next
// (both radians) in degrees, normalized into (-180, 180]. Atan2 jumps from
// +π to -π as the finger line crosses 180°; the raw difference there is a
// near-full turn in the wrong direction.
func angleDeltaDegrees(prev, next float64) float64 {
	d := (next - prev) * 180 / math.Pi
	for d <= -180 {
		d += 360
	}
	for d > 180 {
		d -= 360
	}
	return d
}

// Reset clears any in-progress gesture tracking and releases the desk's drag
// reference. Call when the desk is being unmounted mid-gesture.
func (in *DeskInput) Reset() {
	in.mouseDown = false
	in.pinchActive = false
	in.prevDist = 0
	in.desk.PointerUp()
}
