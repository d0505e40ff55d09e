package checkerboard

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"reflect"
	"testing"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// pngHeader builds a PNG prefix with an IHDR of the given colour type and the
// extra chunk names, enough for pngChannels to inspect.
func pngHeader(colorType byte, chunks ...string) []byte {
	var buf bytes.Buffer
	buf.Write(pngSignature)

	writeChunk := func(kind string, body []byte) {
		var n [4]byte
		binary.BigEndian.PutUint32(n[:], uint32(len(body)))
		buf.Write(n[:])
		buf.WriteString(kind)
		buf.Write(body)
		buf.Write([]byte{0, 0, 0, 0})
	}

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], 1)
	binary.BigEndian.PutUint32(ihdr[4:8], 1)
	ihdr[8] = 8
	ihdr[9] = colorType
	writeChunk("IHDR", ihdr)

	for _, c := range chunks {
		writeChunk(c, []byte{0, 0})
	}
	writeChunk("IEND", nil)
	return buf.Bytes()
}

func TestPNGChannels(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want int
		ok   bool
	}{
		{name: "gray", data: pngHeader(pngGray), want: 1, ok: true},
		{name: "gray alpha", data: pngHeader(pngGrayAlpha), want: 2, ok: true},
		{name: "rgb", data: pngHeader(pngRGB), want: 3, ok: true},
		{name: "rgb trns", data: pngHeader(pngRGB, "tRNS"), want: 4, ok: true},
		{name: "palette", data: pngHeader(pngPalette, "PLTE"), want: 3, ok: true},
		{name: "palette trns", data: pngHeader(pngPalette, "PLTE", "tRNS"), want: 4, ok: true},
		{name: "trns after idat ignored", data: pngHeader(pngRGB, "IDAT", "tRNS"), want: 3, ok: true},
		{name: "rgba", data: pngHeader(pngRGBA), want: 4, ok: true},
		{name: "not png", data: []byte("GIF89a"), ok: false},
		{name: "truncated", data: pngSignature, ok: false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, ok := pngChannels(tc.data)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("pngChannels=%d,%v want %d,%v", got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestLoadApplicability(t *testing.T) {
	rgba := filledNRGBA(4, 4, darkSquare)
	rgba.SetNRGBA(0, 0, seedPixel)

	opaque := filledNRGBA(4, 4, darkSquare)

	gray := image.NewGray(image.Rect(0, 0, 4, 4))

	var jpg bytes.Buffer
	if err := jpeg.Encode(&jpg, opaque, nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}

	pal := image.NewPaletted(image.Rect(0, 0, 4, 4), color.Palette{
		color.RGBA{},
		color.RGBA{R: 77, G: 79, B: 76, A: 255},
	})
	for i := range pal.Pix {
		pal.Pix[i] = 1
	}
	pal.Pix[0] = 0

	cases := []struct {
		name   string
		data   []byte
		format string
		ok     bool
	}{
		{name: "rgba png", data: encodePNG(t, rgba), format: "png", ok: true},
		{name: "paletted png with transparency", data: encodePNG(t, pal), format: "png", ok: true},
		{name: "opaque rgb png", data: encodePNG(t, opaque), format: "png"},
		{name: "gray png", data: encodePNG(t, gray), format: "png"},
		{name: "jpeg", data: jpg.Bytes(), format: "jpeg"},
		{name: "garbage", data: []byte("not an image")},
		{name: "empty", data: nil},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			img, format, err := Load(tc.data)
			if format != tc.format {
				t.Fatalf("format=%q want %q", format, tc.format)
			}
			if !tc.ok {
				if !errors.Is(err, ErrNotApplicable) {
					t.Fatalf("err=%v want ErrNotApplicable", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if _, err := Clean(img); err != nil {
				t.Fatalf("Clean: %v", err)
			}
			if _, _, _, a := img.At(3, 3).RGBA(); a != 0 {
				t.Fatalf("expected flood to reach (3,3), alpha=%d", a)
			}
		})
	}
}

func TestChannels(t *testing.T) {
	r := image.Rect(0, 0, 1, 1)
	cases := []struct {
		name string
		img  image.Image
		want int
	}{
		{name: "gray", img: image.NewGray(r), want: 1},
		{name: "ycbcr", img: image.NewYCbCr(r, image.YCbCrSubsampleRatio444), want: 3},
		{name: "nycbcra", img: image.NewNYCbCrA(r, image.YCbCrSubsampleRatio444), want: 4},
		{name: "nrgba", img: image.NewNRGBA(r), want: 4},
		{name: "rgba64", img: image.NewRGBA64(r), want: 4},
		{name: "opaque palette", img: image.NewPaletted(r, color.Palette{color.Black}), want: 3},
		{name: "cmyk", img: image.NewCMYK(r), want: 0},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := Channels(tc.img); got != tc.want {
				t.Fatalf("Channels=%d want %d", got, tc.want)
			}
		})
	}
}

func TestEncodePNGKeepsAlpha(t *testing.T) {
	img8 := filledNRGBA(2, 2, darkSquare)

	img16 := image.NewNRGBA64(image.Rect(0, 0, 2, 2))
	for i := range img16.Pix {
		img16.Pix[i] = 0xff
	}

	for name, img := range map[string]image.Image{"nrgba": img8, "nrgba64": img16} {
		var buf bytes.Buffer
		if err := EncodePNG(&buf, img); err != nil {
			t.Fatalf("%s: EncodePNG: %v", name, err)
		}
		if n, ok := pngChannels(buf.Bytes()); !ok || n != 4 {
			t.Fatalf("%s: channels=%d want 4", name, n)
		}

		out, stats, err := CleanBytes(buf.Bytes())
		if err != nil {
			t.Fatalf("%s: CleanBytes: %v", name, err)
		}
		if stats.Cleared != 0 {
			t.Fatalf("%s: cleared=%d", name, stats.Cleared)
		}
		if n, _ := pngChannels(out); n != 4 {
			t.Fatalf("%s: cleaned output channels=%d want 4", name, n)
		}

		decoded, _, err := DecodeImageBytes(out)
		if err != nil {
			t.Fatalf("%s: decode: %v", name, err)
		}
		if reflect.TypeOf(decoded) != reflect.TypeOf(img) {
			t.Fatalf("%s: decoded as %T", name, decoded)
		}
	}

	// Other image types are encoded as the standard encoder chooses.
	var buf bytes.Buffer
	if err := EncodePNG(&buf, image.NewGray(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatalf("EncodePNG gray: %v", err)
	}
	if n, _ := pngChannels(buf.Bytes()); n != 1 {
		t.Fatalf("gray channels=%d want 1", n)
	}
}
