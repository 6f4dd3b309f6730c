package printdesk

// FrameSpec describes one frame preset: the final canvas dimensions and the
// padding that carves out the photo aperture. All values are pixels.
//
// Invariants, checked by tests:
//
//	PhotoRegionHeight = CanvasHeight - TopPadding - BottomPadding
//	PhotoRegionWidth <= CanvasWidth - 2*SidePadding
type FrameSpec struct {
	Variant           FrameVariant
	CanvasWidth       int
	CanvasHeight      int
	PhotoRegionWidth  int
	PhotoRegionHeight int
	TopPadding        int
	SidePadding       int
	BottomPadding     int
}

// frameTable maps each FrameVariant to its spec. Pure data; the bottom band
// is tuned per variant (wide prints get a shorter caption band).
var frameTable = [...]FrameSpec{
	FrameSquare: {
		Variant:           FrameSquare,
		CanvasWidth:       1080,
		CanvasHeight:      1320,
		PhotoRegionWidth:  960,
		PhotoRegionHeight: 960,
		TopPadding:        60,
		SidePadding:       60,
		BottomPadding:     300,
	},
	FramePortrait: {
		Variant:           FramePortrait,
		CanvasWidth:       1080,
		CanvasHeight:      1560,
		PhotoRegionWidth:  960,
		PhotoRegionHeight: 1200,
		TopPadding:        60,
		SidePadding:       60,
		BottomPadding:     300,
	},
	FrameWide: {
		Variant:           FrameWide,
		CanvasWidth:       1440,
		CanvasHeight:      1080,
		PhotoRegionWidth:  1320,
		PhotoRegionHeight: 840,
		TopPadding:        60,
		SidePadding:       60,
		BottomPadding:     180,
	},
}

// LookupFrame returns the FrameSpec for the given variant. Total over the
// closed enum: unknown values fall back to FrameSquare rather than erroring.
func LookupFrame(v FrameVariant) FrameSpec {
	if int(v) >= len(frameTable) {
		return frameTable[FrameSquare]
	}
	return frameTable[v]
}

// FrameVariants lists all supported variants in declaration order.
func FrameVariants() []FrameVariant {
	return []FrameVariant{FrameSquare, FramePortrait, FrameWide}
}
