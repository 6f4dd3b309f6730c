package printdesk

import (
	"fmt"
	"math/rand"
	"sort"
	"time"
)

// Desk geometry and timing. Lifecycle phases are time thresholds checked
// against accumulated Update(dt) time, so tests advance them with synthetic
// dt instead of wall-clock waits.
const (
	cardWidth = 180.0 // on-desk card width; height follows the frame aspect

	ejectDelay    = 0.35 // seconds at the slot before the print starts moving
	ejectDuration = 0.80 // seconds sliding out of the slot
	settleDur     = 0.70 // seconds flying to the rest position

	deskScaleMin = 0.5 // post-print manipulation bounds (editor bounds differ)
	deskScaleMax = 2.0

	restMargin       = 110.0 // keeps random rest positions fully in view
	restRotMax       = 8.0   // degrees, either direction
	layoutGutter     = 24.0
	layoutRotMax     = 2.0 // degrees, either direction
	layoutGlideDur   = 0.45
	layoutCellAspect = 1.3 // grid cell height = cardWidth * aspect
)

// FloatingObject is one print living on the desk: desk position, rotation,
// scale, z-order, lifecycle phase, and the kept flag. (X, Y) is the card
// center. Mutate only through the Desk's entry points.
type FloatingObject struct {
	Record          *PrintRecord
	X, Y            float64
	RotationDegrees float64
	Scale           float64
	ZIndex          int
	Phase           Phase
	Kept            bool
	Width, Height   float64

	phaseElapsed          float64
	restX, restY, restRot float64
	anim                  *TweenGroup
	keepPending           bool
	pendingDiscard        bool
}

// keepResult carries the outcome of an async store call back to Update.
type keepResult struct {
	obj  *FloatingObject
	kept bool
	err  error
}

// Desk owns the live set of floating prints: lifecycle animation, gesture
// routing to the topmost hit object, z-order, layout reset, and the keep
// boundary to the Store. Single-threaded apart from async keep goroutines,
// whose results are drained in Update.
type Desk struct {
	Viewport     Rect
	SlotX, SlotY float64 // where new prints eject from

	// OnStoreError, when set, receives persistence failures from async
	// keep/unkeep operations. Local desk state is never desynchronized by
	// a store failure either way.
	OnStoreError func(error)

	store   Store
	ownerID string
	rng     *rand.Rand

	objects  []*FloatingObject
	zCounter int // single incrementing counter; the only source of z values

	dragObj        *FloatingObject
	grabDX, grabDY float64

	keepResults chan keepResult
	zBuf        []*FloatingObject
}

// NewDesk creates a desk covering viewport, persisting kept prints to store
// under ownerID (empty means the local/anonymous scope). The print slot sits
// at the top center of the viewport.
func NewDesk(viewport Rect, store Store, ownerID string) *Desk {
	return &Desk{
		Viewport:    viewport,
		SlotX:       viewport.X + viewport.Width/2,
		SlotY:       viewport.Y + 40,
		store:       store,
		ownerID:     ownerID,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		keepResults: make(chan keepResult, 16),
	}
}

// Objects returns the live object slice. The returned slice MUST NOT be mutated.
func (d *Desk) Objects() []*FloatingObject {
	return d.objects
}

// Store returns the desk's persistence adapter.
func (d *Desk) Store() Store {
	return d.store
}

// nextZ returns a z-index strictly greater than every value handed out so
// far. Monotonic by construction — no comparisons against existing objects.
func (d *Desk) nextZ() int {
	d.zCounter++
	return d.zCounter
}

// Spawn adds a new print to the desk in the Ejecting phase at the slot
// position. The rest position (a random in-view point with rotation jitter)
// is computed up front so the whole entrance is decided at spawn time.
func (d *Desk) Spawn(rec *PrintRecord) *FloatingObject {
	spec := LookupFrame(rec.Frame)
	h := cardWidth * layoutCellAspect
	if spec.CanvasWidth > 0 {
		h = cardWidth * float64(spec.CanvasHeight) / float64(spec.CanvasWidth)
	}

	o := &FloatingObject{
		Record: rec,
		X:      d.SlotX,
		Y:      d.SlotY,
		Scale:  1,
		ZIndex: d.nextZ(),
		Phase:  PhaseEjecting,
		Width:  cardWidth,
		Height: h,
	}
	o.restX, o.restY, o.restRot = d.randomRest()
	d.objects = append(d.objects, o)
	return o
}

// randomRest picks a rest point within the viewport (inset by restMargin on
// each side) and a rotation jitter. Cosmetic variation, not a contract —
// tests assert ranges only.
func (d *Desk) randomRest() (x, y, rot float64) {
	w := d.Viewport.Width - 2*restMargin
	h := d.Viewport.Height - 2*restMargin
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	x = d.Viewport.X + restMargin + d.rng.Float64()*w
	y = d.Viewport.Y + restMargin + d.rng.Float64()*h
	rot = (d.rng.Float64()*2 - 1) * restRotMax
	return x, y, rot
}

// Update advances every object's lifecycle by dt seconds and applies
// completed async keep results. Call once per frame.
func (d *Desk) Update(dt float64) {
	d.drainKeepResults()

	for _, o := range d.objects {
		switch o.Phase {
		case PhaseEjecting:
			o.phaseElapsed += dt
			if o.anim == nil && o.phaseElapsed >= ejectDelay {
				o.anim = TweenEject(o, o.Height*0.85, ejectDuration)
			}
			if o.anim != nil {
				o.anim.Update(float32(dt))
			}
			if o.phaseElapsed >= ejectDelay+ejectDuration {
				o.Phase = PhaseSettling
				o.phaseElapsed = 0
				o.anim = TweenSettle(o, o.restX, o.restY, o.restRot, settleDur)
			}
		case PhaseSettling:
			o.phaseElapsed += dt
			o.anim.Update(float32(dt))
			if o.phaseElapsed >= settleDur {
				// Snap exactly to the precomputed rest; Idle is terminal.
				o.X, o.Y, o.RotationDegrees = o.restX, o.restY, o.restRot
				o.Phase = PhaseIdle
				o.phaseElapsed = 0
				o.anim = nil
			}
		case PhaseIdle:
			if o.anim != nil {
				o.anim.Update(float32(dt))
				if o.anim.Done {
					o.anim = nil
				}
			}
		}
	}
}

// ByZOrder returns the objects sorted bottom-to-top for drawing.
// The returned slice is reused across calls and MUST NOT be retained.
func (d *Desk) ByZOrder() []*FloatingObject {
	d.zBuf = append(d.zBuf[:0], d.objects...)
	sort.SliceStable(d.zBuf, func(i, j int) bool {
		return d.zBuf[i].ZIndex < d.zBuf[j].ZIndex
	})
	return d.zBuf
}

// ObjectAt returns the topmost object whose card contains the desk point
// (x, y), or nil. Objects still ejecting or settling are hit-testable (the
// record exists and is addressable) but ignore gestures.
func (d *Desk) ObjectAt(x, y float64) *FloatingObject {
	ordered := d.ByZOrder()
	for i := len(ordered) - 1; i >= 0; i-- {
		if objectContains(ordered[i], x, y) {
			return ordered[i]
		}
	}
	return nil
}

// BringToFront assigns o a z-index strictly greater than all others.
func (d *Desk) BringToFront(o *FloatingObject) {
	o.ZIndex = d.nextZ()
}

// --- Gesture entry points ---
//
// The desk is the single mutation path for object state: callers feed plain
// desk-space coordinates here (see DeskInput for the Ebitengine wiring) and
// never reach into objects directly.

// PointerDown routes a press to the topmost hit object. An Idle hit comes to
// the front and begins drag tracking; non-Idle hits are returned but inert.
func (d *Desk) PointerDown(x, y float64) *FloatingObject {
	o := d.ObjectAt(x, y)
	if o == nil {
		return nil
	}
	if o.Phase == PhaseIdle {
		d.BringToFront(o)
		d.dragObj = o
		d.grabDX = o.X - x
		d.grabDY = o.Y - y
		o.anim = nil // a grab interrupts any cosmetic glide
	}
	return o
}

// PointerMove updates the dragged object 1:1 with the pointer.
// Last move wins; there is no smoothing.
func (d *Desk) PointerMove(x, y float64) {
	if d.dragObj == nil {
		return
	}
	d.dragObj.X = x + d.grabDX
	d.dragObj.Y = y + d.grabDY
}

// PointerUp ends drag tracking. Dragging fully off-viewport is not an error;
// ResetSingle or LayoutReset recovers the object.
func (d *Desk) PointerUp() {
	d.dragObj = nil
}

// Dragging returns the object currently being dragged, or nil.
func (d *Desk) Dragging() *FloatingObject {
	return d.dragObj
}

// Zoom scales the object under (x, y) — or the active drag object — by
// factor, clamped to the desk bounds, and focuses it.
func (d *Desk) Zoom(x, y, factor float64) {
	o := d.dragObj
	if o == nil {
		o = d.ObjectAt(x, y)
	}
	if o == nil || o.Phase != PhaseIdle {
		return
	}
	d.BringToFront(o)
	o.Scale = clamp(o.Scale*factor, deskScaleMin, deskScaleMax)
}

// Pinch applies a two-pointer gesture step to the active object:
// scaleFactor multiplies the scale (clamped), rotDeltaDegrees adds rotation.
func (d *Desk) Pinch(scaleFactor, rotDeltaDegrees float64) {
	o := d.dragObj
	if o == nil || o.Phase != PhaseIdle {
		return
	}
	o.Scale = clamp(o.Scale*scaleFactor, deskScaleMin, deskScaleMax)
	o.RotationDegrees += rotDeltaDegrees
}

// RotateBy adds deg degrees to an Idle object's rotation (rotate handle drag).
func (d *Desk) RotateBy(o *FloatingObject, deg float64) {
	if o.Phase != PhaseIdle {
		return
	}
	o.RotationDegrees += deg
}

// ResetSingle clamps o back inside the viewport and zeroes its rotation and
// scale, leaving every other object untouched.
func (d *Desk) ResetSingle(o *FloatingObject) {
	o.RotationDegrees = 0
	o.Scale = 1
	minX := d.Viewport.X + o.Width/2
	maxX := d.Viewport.X + d.Viewport.Width - o.Width/2
	minY := d.Viewport.Y + o.Height/2
	maxY := d.Viewport.Y + d.Viewport.Height - o.Height/2
	if minX <= maxX {
		o.X = clamp(o.X, minX, maxX)
	}
	if minY <= maxY {
		o.Y = clamp(o.Y, minY, maxY)
	}
}

// Discard removes o from the desk. A kept object is retracted from the store
// first; if that fails the object stays on the desk and the error is
// returned, so the kept indicator never lies. An async keep still in flight
// is retracted when its result drains, so the store never holds a record for
// a discarded object.
func (d *Desk) Discard(o *FloatingObject) error {
	if o.Kept {
		if err := d.store.Unkeep(o.Record.ID, d.ownerID); err != nil {
			return fmt.Errorf("failed to retract print %s: %w", o.Record.ID, err)
		}
		o.Kept = false
	}
	if o.keepPending {
		o.pendingDiscard = true
	}
	for i, obj := range d.objects {
		if obj == o {
			d.objects = append(d.objects[:i], d.objects[i+1:]...)
			break
		}
	}
	if d.dragObj == o {
		// Removing mid-gesture must drop the drag reference too.
		d.dragObj = nil
	}
	return nil
}

// ToggleKeep persists (or retracts) o's record synchronously. The Kept flag
// flips only after the store confirms; on failure it is left unchanged.
func (d *Desk) ToggleKeep(o *FloatingObject) error {
	if o.Kept {
		if err := d.store.Unkeep(o.Record.ID, d.ownerID); err != nil {
			return fmt.Errorf("failed to unkeep print %s: %w", o.Record.ID, err)
		}
		o.Kept = false
		return nil
	}
	if err := d.store.Keep(*o.Record, d.ownerID); err != nil {
		return fmt.Errorf("failed to keep print %s: %w", o.Record.ID, err)
	}
	o.Kept = true
	return nil
}

// ToggleKeepAsync runs ToggleKeep's store call on a goroutine so a slow store
// never blocks dragging or rendering. The flag flip (and any error, via
// OnStoreError) lands during a later Update. Toggles are ignored while one is
// already pending for the object.
func (d *Desk) ToggleKeepAsync(o *FloatingObject) {
	if o.keepPending {
		return
	}
	o.keepPending = true
	rec := *o.Record
	wasKept := o.Kept
	go func() {
		var err error
		if wasKept {
			err = d.store.Unkeep(rec.ID, d.ownerID)
		} else {
			err = d.store.Keep(rec, d.ownerID)
		}
		d.keepResults <- keepResult{obj: o, kept: !wasKept, err: err}
	}()
}

// drainKeepResults applies finished async keep operations without blocking.
// A result for an object discarded while its keep was in flight is retracted
// instead of applied.
func (d *Desk) drainKeepResults() {
	for {
		select {
		case res := <-d.keepResults:
			res.obj.keepPending = false
			if res.err != nil {
				if d.OnStoreError != nil {
					d.OnStoreError(res.err)
				}
				continue
			}
			if res.obj.pendingDiscard {
				if res.kept {
					if err := d.store.Unkeep(res.obj.Record.ID, d.ownerID); err != nil && d.OnStoreError != nil {
						d.OnStoreError(fmt.Errorf("failed to retract discarded print %s: %w", res.obj.Record.ID, err))
					}
				}
				continue
			}
			res.obj.Kept = res.kept
		default:
			return
		}
	}
}

// LayoutReset arranges all Idle objects in a row-major grid. Column count
// comes from the viewport width and the fixed card width/gutter; objects keep
// their current relative (z) ordering, glide to their cells, reset to scale 1
// with a small rotation jitter, and are re-stacked by grid order. An object
// mid-drag stays with the pointer; a glide would fight the drag for its
// position.
func (d *Desk) LayoutReset() {
	cols := int((d.Viewport.Width + layoutGutter) / (cardWidth + layoutGutter))
	if cols < 1 {
		cols = 1
	}

	var idle []*FloatingObject
	for _, o := range d.ByZOrder() {
		if o.Phase == PhaseIdle && o != d.dragObj {
			idle = append(idle, o)
		}
	}
	if len(idle) == 0 {
		return
	}

	gridCols := cols
	if len(idle) < gridCols {
		gridCols = len(idle)
	}
	cellH := cardWidth * layoutCellAspect
	totalW := float64(gridCols)*cardWidth + float64(gridCols-1)*layoutGutter
	originX := d.Viewport.X + (d.Viewport.Width-totalW)/2
	originY := d.Viewport.Y + layoutGutter

	for i, o := range idle {
		row := i / cols
		col := i % cols
		cx := originX + float64(col)*(cardWidth+layoutGutter) + cardWidth/2
		cy := originY + float64(row)*(cellH+layoutGutter) + cellH/2

		o.Scale = 1
		o.RotationDegrees = (d.rng.Float64()*2 - 1) * layoutRotMax
		o.ZIndex = d.nextZ()
		o.anim = TweenGlide(o, cx, cy, layoutGlideDur)
	}
}
