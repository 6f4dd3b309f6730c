package printdesk

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"
)

func TestDecodeSourcePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 12, 8))); err != nil {
		t.Fatal(err)
	}
	img, err := DecodeSource(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 12 || img.Bounds().Dy() != 8 {
		t.Errorf("decoded %v, want 12x8", img.Bounds())
	}
}

func TestDecodeSourceGarbage(t *testing.T) {
	_, err := DecodeSource(strings.NewReader("definitely not an image"))
	if !errors.Is(err, ErrDecode) {
		t.Errorf("garbage input error = %v, want ErrDecode", err)
	}
}

func TestDecodeSourceEmpty(t *testing.T) {
	_, err := DecodeSource(strings.NewReader(""))
	if !errors.Is(err, ErrDecode) {
		t.Errorf("empty input error = %v, want ErrDecode", err)
	}
}
