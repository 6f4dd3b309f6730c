package printdesk

import (
	"fmt"
	"io"
	"time"
)

// FrameVariant selects one of the supported print frame presets.
type FrameVariant uint8

const (
	FrameSquare   FrameVariant = iota // classic square aperture
	FramePortrait                     // narrow/tall aperture
	FrameWide                         // cinema aperture with a short caption band
)

// FilterVariant selects one of the supported color treatments.
// The set is closed; there is no user-defined filter surface.
type FilterVariant uint8

const (
	FilterNone      FilterVariant = iota // pass-through
	FilterGrayscale                      // luminance broadcast to all channels
	FilterSepia                          // fixed sepia matrix + vignette
	FilterVintage                        // warm bias + vignette
	FilterCool                           // blue-leaning channel scale
)

// Phase is a FloatingObject's lifecycle phase. Transitions only move forward:
// Ejecting → Settling → Idle. Idle is terminal until the object is discarded.
type Phase uint8

const (
	PhaseEjecting Phase = iota // sliding out of the print slot; not interactive
	PhaseSettling              // flying to its rest position; not interactive
	PhaseIdle                  // fully interactive
)

// TransformState is the user's placement of the source image relative to the
// center of the frame's photo region. Mutated continuously while editing;
// frozen once handed to the Compositor.
type TransformState struct {
	PanX            float64
	PanY            float64
	RotationDegrees float64
	Scale           float64 // must be > 0
}

// PrintRecord is the immutable result of compositing one photo edit.
// Created exactly once per confirm; editing again produces a new record.
type PrintRecord struct {
	ID        string
	Bytes     []byte // encoded final raster (JPEG)
	SourceRef string // opaque reference to the source image, may be empty
	CreatedAt time.Time
	Caption   string
	Filter    FilterVariant
	Frame     FrameVariant
}

// WriteImage writes the record's final raster bytes to w unmodified.
// This is the export surface: the bytes are already a standalone JPEG file.
func (r *PrintRecord) WriteImage(w io.Writer) error {
	if len(r.Bytes) == 0 {
		return fmt.Errorf("print %s has no image bytes", r.ID)
	}
	if _, err := w.Write(r.Bytes); err != nil {
		return fmt.Errorf("failed to write print %s: %w", r.ID, err)
	}
	return nil
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// clamp limits v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
