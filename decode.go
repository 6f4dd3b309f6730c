package printdesk

import (
	"errors"
	"fmt"
	"image"
	"io"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// ErrDecode is returned when a source image cannot be decoded. Callers should
// treat it as a non-fatal "try another photo" condition: no compositing work
// has happened and no existing desk state is affected.
var ErrDecode = errors.New("source image decode failed")

// DecodeSource decodes a user-supplied source image (JPEG, PNG, or GIF).
// Fails fast before any compositing work.
func DecodeSource(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: empty image", ErrDecode)
	}
	return img, nil
}
