package printdesk

import "testing"

func TestLookupFrameTotal(t *testing.T) {
	for _, v := range FrameVariants() {
		spec := LookupFrame(v)
		if spec.Variant != v {
			t.Errorf("LookupFrame(%d).Variant = %d, want %d", v, spec.Variant, v)
		}
		if spec.CanvasWidth <= 0 || spec.CanvasHeight <= 0 {
			t.Errorf("variant %d has empty canvas %dx%d", v, spec.CanvasWidth, spec.CanvasHeight)
		}
	}
}

func TestFrameGeometryInvariant(t *testing.T) {
	for _, v := range FrameVariants() {
		spec := LookupFrame(v)
		got := spec.CanvasHeight - spec.TopPadding - spec.BottomPadding
		if spec.PhotoRegionHeight != got {
			t.Errorf("variant %d: PhotoRegionHeight = %d, want canvasHeight - top - bottom = %d",
				v, spec.PhotoRegionHeight, got)
		}
		maxW := spec.CanvasWidth - 2*spec.SidePadding
		if spec.PhotoRegionWidth > maxW {
			t.Errorf("variant %d: PhotoRegionWidth = %d exceeds canvasWidth - 2*side = %d",
				v, spec.PhotoRegionWidth, maxW)
		}
	}
}

func TestLookupFrameUnknownFallsBack(t *testing.T) {
	spec := LookupFrame(FrameVariant(200))
	if spec.Variant != FrameSquare {
		t.Errorf("unknown variant should fall back to FrameSquare, got %d", spec.Variant)
	}
}

func TestWideFrameShortBottomBand(t *testing.T) {
	wide := LookupFrame(FrameWide)
	square := LookupFrame(FrameSquare)
	if wide.BottomPadding >= square.BottomPadding {
		t.Errorf("wide bottom band = %d, want shorter than square's %d",
			wide.BottomPadding, square.BottomPadding)
	}
}
