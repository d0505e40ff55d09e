package checkerboard

import (
	"bytes"
	"encoding/binary"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// PNG colour types from the IHDR chunk.
const (
	pngGray      = 0
	pngRGB       = 2
	pngPalette   = 3
	pngGrayAlpha = 4
	pngRGBA      = 6
)

// pngChannels reads the channel count a PNG file stores, walking chunks up to
// the first IDAT. A tRNS chunk counts as an alpha channel. The image decoder
// expands gray+alpha into NRGBA, so the decoded type alone cannot tell a
// two-channel file from a four-channel one.
func pngChannels(data []byte) (int, bool) {
	if !bytes.HasPrefix(data, pngSignature) {
		return 0, false
	}

	colorType := -1
	trns := false

	for off := len(pngSignature); off+8 <= len(data); {
		length := int(binary.BigEndian.Uint32(data[off : off+4]))
		kind := string(data[off+4 : off+8])
		body := off + 8
		if length < 0 || body+length > len(data) {
			break
		}

		switch kind {
		case "IHDR":
			if length < 13 {
				return 0, false
			}
			colorType = int(data[body+9])
		case "tRNS":
			trns = true
		}
		if kind == "IDAT" || kind == "IEND" {
			break
		}

		off = body + length + 4 // skip CRC
	}

	var n int
	switch colorType {
	case pngGray:
		n = 1
	case pngRGB, pngPalette:
		n = 3
	case pngGrayAlpha:
		return 2, true
	case pngRGBA:
		return 4, true
	default:
		return 0, false
	}
	if trns {
		n++
	}
	return n, true
}
