package screen

import (
	"image"

	"github.com/pkg/errors"
)

// bgraToRGBA converts a 32 bits-per-pixel ZPixmap into an opaque RGBA image.
func bgraToRGBA(data []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("invalid image size %dx%d", width, height)
	}
	if len(data) < width*height*4 {
		return nil, errors.Errorf("short image data: got %d bytes for %dx%d", len(data), width, height)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height; i++ {
		o := i * 4
		img.Pix[o] = data[o+2]
		img.Pix[o+1] = data[o+1]
		img.Pix[o+2] = data[o]
		img.Pix[o+3] = 0xff
	}
	return img, nil
}
