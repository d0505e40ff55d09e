package checkerboard

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"
)

// DecodeBase64Image decodes base64 or a "data:" URL into an image.
func DecodeBase64Image(input string) (image.Image, string, error) {
	data, err := decodeBase64(input)
	if err != nil {
		return nil, "", err
	}

	return DecodeImageBytes(data)
}

// EncodePNGToBase64 is EncodePNG followed by standard base64.
func EncodePNGToBase64(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// CleanBase64 removes the checkerboard from a base64-encoded image and
// returns the cleaned image as base64 PNG.
func CleanBase64(input string) (string, Stats, error) {
	data, err := decodeBase64(input)
	if err != nil {
		return "", Stats{}, err
	}

	out, stats, err := CleanBytes(data)
	if err != nil {
		return "", Stats{}, err
	}

	return base64.StdEncoding.EncodeToString(out), stats, nil
}

func decodeBase64(input string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(stripDataPrefix(input))
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	return data, nil
}

// stripDataPrefix drops a "data:image/png;base64," style header.
func stripDataPrefix(input string) string {
	if len(input) < 5 || !strings.EqualFold(input[:5], "data:") {
		return input
	}
	if _, payload, ok := strings.Cut(input, ","); ok {
		return payload
	}
	return input
}
