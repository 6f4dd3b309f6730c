package printdesk

import (
	"bytes"
	"errors"
	"image/color"
	"testing"
	"time"
)

func testCompositor(seed int64) *Compositor {
	c := NewCompositorSeeded(seed)
	c.now = func() time.Time {
		return time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)
	}
	return c
}

func TestComposeDeterministic(t *testing.T) {
	src := solidRGBA(400, 400, color.RGBA{180, 90, 40, 255})
	st := TransformState{PanX: 12, PanY: -8, RotationDegrees: 15, Scale: 1.4}

	a, err := testCompositor(7).Compose(src, st, FramePortrait, FilterVintage, "july")
	if err != nil {
		t.Fatal(err)
	}
	b, err := testCompositor(7).Compose(src, st, FramePortrait, FilterVintage, "july")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Bytes, b.Bytes) {
		t.Error("same seed and inputs produced different print bytes")
	}
	if a.ID == b.ID {
		t.Error("records must get distinct ids")
	}
}

func TestComposeRecordFields(t *testing.T) {
	src := solidRGBA(100, 100, color.RGBA{50, 50, 50, 255})
	rec, err := testCompositor(1).Compose(src, TransformState{Scale: 1}, FrameWide, FilterCool, "hi")
	if err != nil {
		t.Fatal(err)
	}
	if rec.ID == "" {
		t.Error("record id is empty")
	}
	if rec.Frame != FrameWide || rec.Filter != FilterCool || rec.Caption != "hi" {
		t.Errorf("record selections not carried: %+v", rec)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
	// JPEG SOI marker.
	if len(rec.Bytes) < 2 || rec.Bytes[0] != 0xFF || rec.Bytes[1] != 0xD8 {
		t.Error("record bytes are not a JPEG")
	}
}

func TestComposeOutputDecodesToCanvasSize(t *testing.T) {
	src := solidRGBA(100, 100, color.RGBA{50, 50, 50, 255})
	for _, v := range FrameVariants() {
		rec, err := testCompositor(1).Compose(src, TransformState{Scale: 1}, v, FilterNone, "x")
		if err != nil {
			t.Fatal(err)
		}
		img, err := DecodeSource(bytes.NewReader(rec.Bytes))
		if err != nil {
			t.Fatal(err)
		}
		spec := LookupFrame(v)
		if img.Bounds().Dx() != spec.CanvasWidth || img.Bounds().Dy() != spec.CanvasHeight {
			t.Errorf("variant %d: decoded %dx%d, want %dx%d",
				v, img.Bounds().Dx(), img.Bounds().Dy(), spec.CanvasWidth, spec.CanvasHeight)
		}
	}
}

func TestRenderCanvasGrayscaleRegion(t *testing.T) {
	src := solidRGBA(400, 400, color.RGBA{255, 0, 0, 255})
	canvas, err := testCompositor(1).renderCanvas(src, TransformState{Scale: 1}, FrameSquare, FilterGrayscale, "test")
	if err != nil {
		t.Fatal(err)
	}

	spec := LookupFrame(FrameSquare)
	// Center of the photo region: the red source turned gray.
	cx := spec.SidePadding + spec.PhotoRegionWidth/2
	cy := spec.TopPadding + spec.PhotoRegionHeight/2
	got := canvas.RGBAAt(cx, cy)
	if got.R != got.G || got.G != got.B {
		t.Errorf("region center not gray: %v", got)
	}
	if int(got.R) < 75 || int(got.R) > 79 {
		t.Errorf("grayscale red = %d, want ≈77", got.R)
	}

	// A point well inside the region but outside the centered 400px source is
	// letterbox; grayscale of a gray is itself.
	lb := canvas.RGBAAt(spec.SidePadding+20, spec.TopPadding+20)
	if int(lb.R) > 20 {
		t.Errorf("letterbox pixel too bright: %v", lb)
	}
}

func TestRenderCanvasSepiaRegion(t *testing.T) {
	src := solidRGBA(400, 400, color.RGBA{255, 0, 0, 255})
	canvas, err := testCompositor(1).renderCanvas(src, TransformState{Scale: 1}, FrameSquare, FilterSepia, "test")
	if err != nil {
		t.Fatal(err)
	}
	spec := LookupFrame(FrameSquare)
	got := canvas.RGBAAt(spec.SidePadding+spec.PhotoRegionWidth/2, spec.TopPadding+spec.PhotoRegionHeight/2)
	want := color.RGBA{100, 89, 69, 255}
	if got != want {
		t.Errorf("sepia region center = %v, want %v", got, want)
	}
}

func TestRenderCanvasPaperBorder(t *testing.T) {
	src := solidRGBA(100, 100, color.RGBA{0, 0, 0, 255})
	canvas, err := testCompositor(1).renderCanvas(src, TransformState{Scale: 1}, FrameSquare, FilterNone, "x")
	if err != nil {
		t.Fatal(err)
	}
	got := canvas.RGBAAt(10, 10)
	if abs(int(got.R)-int(paperColor.R)) > 4 ||
		abs(int(got.G)-int(paperColor.G)) > 4 ||
		abs(int(got.B)-int(paperColor.B)) > 4 {
		t.Errorf("border pixel %v too far from paper %v", got, paperColor)
	}
}

func TestRenderCanvasDateCaption(t *testing.T) {
	src := solidRGBA(100, 100, color.RGBA{120, 120, 120, 255})
	canvas, err := testCompositor(1).renderCanvas(src, TransformState{Scale: 1}, FrameSquare, FilterNone, "")
	if err != nil {
		t.Fatal(err)
	}

	// An empty caption renders the capture date; ink pixels must appear in
	// the bottom band.
	spec := LookupFrame(FrameSquare)
	found := 0
	for y := spec.CanvasHeight - spec.BottomPadding; y < spec.CanvasHeight; y++ {
		for x := 0; x < spec.CanvasWidth; x++ {
			if canvas.RGBAAt(x, y) == inkColor {
				found++
			}
		}
	}
	if found == 0 {
		t.Error("no ink pixels in the bottom band for the date caption")
	}
}

func TestRenderCanvasCaptionJitterBounded(t *testing.T) {
	// Jitter never pushes ink outside the bottom band.
	src := solidRGBA(100, 100, color.RGBA{255, 255, 255, 255})
	spec := LookupFrame(FrameSquare)
	for seed := int64(0); seed < 5; seed++ {
		canvas, err := testCompositor(seed).renderCanvas(src, TransformState{Scale: 1}, FrameSquare, FilterNone, "anniversary trip")
		if err != nil {
			t.Fatal(err)
		}
		for y := 0; y < spec.CanvasHeight-spec.BottomPadding; y++ {
			for x := 0; x < spec.CanvasWidth; x++ {
				if canvas.RGBAAt(x, y) == inkColor {
					t.Fatalf("seed %d: ink at (%d, %d), above the caption band", seed, x, y)
				}
			}
		}
	}
}

func TestComposeNilSource(t *testing.T) {
	_, err := testCompositor(1).Compose(nil, TransformState{Scale: 1}, FrameSquare, FilterNone, "x")
	if !errors.Is(err, ErrDecode) {
		t.Errorf("nil source error = %v, want ErrDecode", err)
	}
}

func TestComposeEmptySource(t *testing.T) {
	src := solidRGBA(0, 0, color.RGBA{})
	_, err := testCompositor(1).Compose(src, TransformState{Scale: 1}, FrameSquare, FilterNone, "x")
	if !errors.Is(err, ErrDecode) {
		t.Errorf("empty source error = %v, want ErrDecode", err)
	}
}

func TestWriteImage(t *testing.T) {
	src := solidRGBA(50, 50, color.RGBA{10, 200, 30, 255})
	rec, err := testCompositor(1).Compose(src, TransformState{Scale: 1}, FrameSquare, FilterNone, "x")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := rec.WriteImage(&buf); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf.Bytes(), rec.Bytes) {
		t.Error("WriteImage output differs from record bytes")
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
