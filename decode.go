package checkerboard

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"

	// Register common decoders, including WebP via x/image/webp.
	_ "golang.org/x/image/webp"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// Decode reads any registered format. Whether the result can be cleaned is
// decided later by Load; most jpeg and webp inputs have no alpha channel.
func Decode(r io.Reader) (image.Image, string, error) {
	return image.Decode(r)
}

// DecodeImageBytes decodes an in-memory image.
func DecodeImageBytes(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("empty image data")
	}
	return Decode(bytes.NewReader(data))
}

// EncodePNG writes img as PNG. NRGBA and NRGBA64 rasters always keep their
// alpha channel, even when every pixel is opaque.
func EncodePNG(w io.Writer, img image.Image) error {
	switch img.(type) {
	case *image.NRGBA, *image.NRGBA64:
		return png.Encode(w, withAlpha{img})
	}
	return png.Encode(w, img)
}

// withAlpha reports itself as non-opaque so the PNG encoder picks an RGBA
// colour type instead of dropping alpha.
type withAlpha struct {
	image.Image
}

func (withAlpha) Opaque() bool { return false }

// Load decodes data and returns a mutable raster ready for Clean. Inputs that
// fail to decode or do not carry exactly four channels (R, G, B, alpha)
// return an error wrapping ErrNotApplicable.
func Load(data []byte) (draw.Image, string, error) {
	img, format, err := DecodeImageBytes(data)
	if err != nil {
		return nil, "", fmt.Errorf("decode: %v: %w", err, ErrNotApplicable)
	}

	channels := Channels(img)
	if format == "png" {
		if n, ok := pngChannels(data); ok {
			channels = n
		}
	}
	if channels != 4 {
		return nil, format, fmt.Errorf("%s image has %d channels: %w", format, channels, ErrNotApplicable)
	}

	return toRaster(img), format, nil
}

// Channels reports how many channels the decoded image carries, counting
// alpha. Unknown layouts report 0.
func Channels(img image.Image) int {
	switch m := img.(type) {
	case *image.Gray, *image.Gray16, *image.Alpha, *image.Alpha16:
		return 1
	case *image.YCbCr:
		return 3
	case *image.Paletted:
		for _, c := range m.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return 4
			}
		}
		return 3
	case *image.NRGBA, *image.RGBA, *image.NRGBA64, *image.RGBA64, *image.NYCbCrA:
		return 4
	default:
		return 0
	}
}

// toRaster returns NRGBA and NRGBA64 images unchanged and copies everything
// else into a new NRGBA buffer.
func toRaster(img image.Image) draw.Image {
	switch m := img.(type) {
	case *image.NRGBA:
		return m
	case *image.NRGBA64:
		return m
	}

	bounds := img.Bounds()
	dst := image.NewNRGBA(bounds)
	draw.Draw(dst, bounds, img, bounds.Min, draw.Src)
	return dst
}
