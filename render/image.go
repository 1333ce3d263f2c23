package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

var ErrUnknownFormat = errors.New("unknown image format")

// Format is an output image encoding.
type Format string

const (
	PNG  Format = "png"
	TIFF Format = "tiff"
	BMP  Format = "bmp"
)

// FormatFromName picks a format from a file name's extension.
func FormatFromName(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return PNG, nil
	case ".tif", ".tiff":
		return TIFF, nil
	case ".bmp":
		return BMP, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(name))
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case PNG:
		return png.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case BMP:
		return bmp.Encode(w, img)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// ToImage converts a pixel buffer to an 8 bit image.
//
// Each channel is multiplied by scale (1/samples for an accumulated buffer) and clamped.
// Buffer row 0 is the bottom of the picture, so rows are flipped.
func ToImage(pixels []float32, width, height int, scale float32) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		row := height - 1 - y
		for x := 0; x < width; x++ {
			o := 3 * (row*width + x)
			img.SetNRGBA(x, y, color.NRGBA{
				R: toByte(pixels[o] * scale),
				G: toByte(pixels[o+1] * scale),
				B: toByte(pixels[o+2] * scale),
				A: 0xff,
			})
		}
	}

	return img
}

func toByte(v float32) uint8 {
	return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5)
}
