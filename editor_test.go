package printdesk

import (
	"image/color"
	"testing"
)

// testEditor builds an editor without GPU resources; everything exercised
// here is plain state on the struct.
func testEditor() *Editor {
	return &Editor{
		Frame:     FrameSquare,
		Transform: TransformState{Scale: 1},
		comp:      testCompositor(1),
		src:       solidRGBA(200, 150, color.RGBA{90, 120, 150, 255}),
		active:    true,
	}
}

func TestEditorSetScaleClamped(t *testing.T) {
	e := testEditor()
	e.SetScale(50)
	if e.Transform.Scale != editorScaleMax {
		t.Errorf("scale = %v, want %v", e.Transform.Scale, editorScaleMax)
	}
	e.SetScale(0.01)
	if e.Transform.Scale != editorScaleMin {
		t.Errorf("scale = %v, want %v", e.Transform.Scale, editorScaleMin)
	}
}

func TestEditorRotateStepWraps(t *testing.T) {
	e := testEditor()
	for i := 0; i < 4; i++ {
		e.RotateStep()
	}
	if e.Transform.RotationDegrees != 0 {
		t.Errorf("four quarter turns = %v°, want 0", e.Transform.RotationDegrees)
	}
	e.RotateStep()
	if e.Transform.RotationDegrees != 90 {
		t.Errorf("fifth quarter turn = %v°, want 90", e.Transform.RotationDegrees)
	}
}

func TestEditorSetRotation(t *testing.T) {
	e := testEditor()
	e.SetRotation(123.5)
	if e.Transform.RotationDegrees != 123.5 {
		t.Errorf("rotation = %v, want 123.5", e.Transform.RotationDegrees)
	}
	e.SetRotation(-10)
	if e.Transform.RotationDegrees != -10 {
		t.Errorf("rotation = %v, want -10", e.Transform.RotationDegrees)
	}
}

func TestEditorPanAccumulates(t *testing.T) {
	e := testEditor()
	e.Pan(10, -4)
	e.Pan(-3, 6)
	assertNear(t, "PanX", e.Transform.PanX, 7)
	assertNear(t, "PanY", e.Transform.PanY, 2)
}

func TestEditorConfirmFreezesState(t *testing.T) {
	e := testEditor()
	e.Frame = FrameWide
	e.Filter = FilterCool
	e.Caption = "boardwalk"
	e.Transform = TransformState{PanX: 30, PanY: -10, RotationDegrees: 90, Scale: 1.5}

	rec, err := e.Confirm()
	if err != nil {
		t.Fatal(err)
	}
	if rec.Frame != FrameWide || rec.Filter != FilterCool || rec.Caption != "boardwalk" {
		t.Errorf("record does not carry the frozen selections: %+v", rec)
	}

	// Confirming twice produces two independent records.
	rec2, err := e.Confirm()
	if err != nil {
		t.Fatal(err)
	}
	if rec2.ID == rec.ID {
		t.Error("two confirms shared a record id")
	}
}

func TestEditorDismissDeactivates(t *testing.T) {
	e := testEditor()
	e.Dismiss()
	if e.Active() {
		t.Error("editor still active after dismiss")
	}
	e.Dismiss() // second dismiss is a no-op
	e.Update()  // inactive editor ignores input
}

func TestPreviewTintsCoverAllFilters(t *testing.T) {
	// Every real filter has a live-preview tint; FilterNone has none.
	for v := range filterTable {
		if _, ok := previewTints[v]; !ok {
			t.Errorf("filter variant %d has no preview tint", v)
		}
	}
	if _, ok := previewTints[FilterNone]; ok {
		t.Error("FilterNone should not carry a tint")
	}
}
